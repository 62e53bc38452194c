// Package viz draws rendered fields in the terminal.
//
// A [Canvas] holds a 0x00RRGGBB pixel buffer and prints it with the upper
// half block, one character cell per two pixel rows:
//
//	▀  foreground = top pixel, background = bottom pixel
//
// The package also carries the lipgloss styles and themes shared by the
// explorer and the CLI.
package viz
