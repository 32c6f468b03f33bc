// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"

	sideslip "github.com/viifo/sideslip/widget"
)

// Config is the demo configuration, read from a TOML file.
type Config struct {
	Title string `toml:"title"`
	// Edge is the edge the panel slides in from.
	Edge string `toml:"edge"`
	// PanelWidth is the panel width in dp. Zero sizes the panel to
	// its contents.
	PanelWidth float32 `toml:"panel_width"`
	// Margin insets the content, in dp.
	Margin float32 `toml:"margin"`
	// MinVelocity and MaxVelocity bound the fling velocity, in dp
	// per second.
	MinVelocity float32 `toml:"min_velocity"`
	MaxVelocity float32 `toml:"max_velocity"`
	// Items is the number of entries in the panel menu.
	Items    int    `toml:"items"`
	LogLevel string `toml:"log_level"`
}

// defaultConfig returns the configuration used for unset keys.
func defaultConfig() Config {
	return Config{
		Title:      "SideSlip",
		Edge:       "trailing",
		PanelWidth: 280,
		Items:      12,
		LogLevel:   "info",
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Config{}, fmt.Errorf("config: %s: unknown key %q", path, keys[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := c.edge(); err != nil {
		return err
	}
	if _, err := c.level(); err != nil {
		return err
	}
	switch {
	case c.PanelWidth < 0:
		return errors.New("panel_width is negative")
	case c.Margin < 0:
		return errors.New("margin is negative")
	case c.MinVelocity < 0 || c.MaxVelocity < 0:
		return errors.New("velocity bounds are negative")
	case c.MaxVelocity > 0 && c.MinVelocity > c.MaxVelocity:
		return fmt.Errorf("min_velocity %v exceeds max_velocity %v", c.MinVelocity, c.MaxVelocity)
	case c.Items < 0:
		return errors.New("items is negative")
	}
	return nil
}

// edge parses Edge. The panel needs a side, so EdgeNone is an error.
func (c Config) edge() (sideslip.Edge, error) {
	e, err := sideslip.ParseEdge(c.Edge)
	if err != nil {
		return sideslip.EdgeNone, err
	}
	if e == sideslip.EdgeNone {
		return sideslip.EdgeNone, errors.New("edge must be leading or trailing")
	}
	return e, nil
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
