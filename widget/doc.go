// SPDX-License-Identifier: Unlicense OR MIT

// Package widget implements SideSlip, a container that slides a side
// panel in from the edge of a content view, moving both as one. Widgets
// contain persistent state and process user events; drawing the
// children is left to the caller's layout.Widgets.
package widget
