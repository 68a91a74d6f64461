package cmd

import "strconv"

// Process exit statuses.
const (
	ExitOK      = 0
	ExitInvalid = 1 // at least one document failed validation
	ExitUsage   = 2 // unreadable or unparseable input, bad flags or settings
)

// ExitError carries a process exit status out of a command. Err, when set,
// is printed to stderr; a nil Err means the command already reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
