// Package menu implements the interactive full-screen menu.
//
// Controller.Run owns the loop: render a frame from the session state, block
// for one debounced key, then move the selection or run an action. Actions
// never end the loop on failure; they leave a status message that is shown
// for a moment and then cleared. Only terminal failures end Run early, and
// full-screen mode is always released first.
//
// The port prompt runs on the normal screen. The controller leaves
// full-screen mode for it and enters again afterwards, discarding queued
// keys on both sides.
package menu
