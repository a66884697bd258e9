// Package ui provides styled terminal output for the proxy-cli commands.
//
// Everything here writes to stderr (or the writer it is given). Stdout
// belongs to the directive line read by the shell wrapper, so no component
// in this package prints there.
//
// Components:
//
//   - Printer: success, error and info boxes
//   - Confirm: yes/no question under a warning box
//   - LinePrompt: one-line text input (Bubble Tea on a terminal, plain
//     line read otherwise)
//   - StatusReport: detailed and compact renderings of the proxy state
package ui
