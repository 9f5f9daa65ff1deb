package main

// Exit codes shared by all commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Instructions or configuration error
	ExitDataError   = 3 // Data error (dump unreadable, revision missing)
)
