package main

// Exit codes shared by all commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed input, unreadable dataset)
	ExitQueryError  = 4 // Query syntax error (position reported)
	ExitNotFound    = 5 // Dataset or record not found
)
