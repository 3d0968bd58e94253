// Package display draws teletext grids on a terminal.
//
// The package follows a layered design:
//
//	┌─────────────────────────────────────────┐
//	│     Viewer (position, mode, requests)   │
//	├─────────────────────────────────────────┤
//	│   Palette (terrain class → RGB color)   │
//	├─────────────────────────────────────────┤
//	│          Backend abstraction            │
//	├─────────────────────────────────────────┤
//	│   Terminal (tcell) │ NullBackend (test) │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := display.NewTerminal()
//	v := display.NewViewer(term, renderer, palette, display.ViewerOptions{...})
//	err := v.Run(ctx)
package display
