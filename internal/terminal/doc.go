// Package terminal drives the full-screen console used by the interactive
// menu: raw mode, the alternate screen, frame output and key decoding.
//
// Screen output is written to the console's output file (stderr in the CLI)
// so stdout stays clean for the shell wrapper. Keys are read by a single
// goroutine that lives only between Enter and Leave; after Leave the input
// file can be read normally by a line prompt.
package terminal
