// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sideslip "github.com/viifo/sideslip/widget"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sideslip.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaultConfig() {
		t.Errorf("got %+v want defaults", cfg)
	}
	if e, err := cfg.edge(); err != nil || e != sideslip.Trailing {
		t.Errorf("default edge: got (%v, %v)", e, err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
edge = "left"
panel_width = 320
min_velocity = 200
log_level = "debug"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PanelWidth != 320 || cfg.MinVelocity != 200 {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Title != "SideSlip" || cfg.Items != 12 {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
	if e, _ := cfg.edge(); e != sideslip.Leading {
		t.Errorf("edge: got %v want Leading", e)
	}
	if l, _ := cfg.level(); l != slog.LevelDebug {
		t.Errorf("level: got %v want DEBUG", l)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":   `gravity = "start"`,
		"no edge":       `edge = "none"`,
		"vertical edge": `edge = "top"`,
		"bad level":     `log_level = "loud"`,
		"negative":      `panel_width = -1`,
		"velocities":    "min_velocity = 900\nmax_velocity = 100",
		"syntax":        `edge = `,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, content))
			if err == nil {
				t.Fatal("no error")
			}
			if !strings.HasPrefix(err.Error(), "config: ") {
				t.Errorf("unwrapped error: %v", err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file loaded")
	}
}
