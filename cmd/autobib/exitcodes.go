package main

// Exit codes shared by all subcommands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, unknown key)
	ExitDataError   = 3 // Data error (key not found, malformed input)
	ExitPartial     = 4 // Some citation keys could not be resolved
)
