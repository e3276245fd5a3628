package cli

import "errors"

// Control signals threaded between the input manager, menu engine and
// handlers. They walk the frame stack from outside the running action, which
// an ordinary call return cannot do.
var (
	// ErrBack abandons the current prompt or frame and returns one level up
	ErrBack = errors.New("back")

	// ErrMainMenu unwinds every frame above the root menu
	ErrMainMenu = errors.New("main_menu")

	// ErrQuit exits the program from any depth
	ErrQuit = errors.New("quit")

	// ErrSessionExpired unwinds the whole stack back to the login prompt
	ErrSessionExpired = errors.New("session expired")
)
