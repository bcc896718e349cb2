package main

// Exit codes
const (
	ExitSuccess              = 0 // Success
	ExitError                = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError          = 2 // Configuration error (bad config file, template, log level)
	ExitDataError            = 3 // Data error (empty or unreadable guideline/bibliography)
	ExitClipboardUnavailable = 4 // --copy requested but no clipboard tool found
)
