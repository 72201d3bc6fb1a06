// Package ui renders table summaries for the terminal.
//
// The HTML digest built by the summary package is meant for mail clients.
// The same summary can be previewed in a terminal with RenderPreview, which
// lays out the reduced table with Bubbles, lists the constants, and prints
// one line of statistics per numeric column with a sparkline of its values.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Low readings, constants
//	ColorError     (red)    - Readings near the top of their range
//	ColorWarning   (yellow) - Readings above the middle of their range
//	ColorInfo      (cyan)   - Column names
//	ColorMuted     (gray)   - Secondary text, borders
//	ColorSecondary (blue)   - Section titles
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
package ui
