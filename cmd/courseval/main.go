package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Run completed
	ExitCheckFailed = 1 // Spec validation found issues
	ExitError       = 2 // Configuration or runtime error
)

// CheckFailureError indicates that validation ran successfully but the spec
// has issues.
type CheckFailureError struct {
	Message string
}

func (e *CheckFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var checkErr *CheckFailureError
		if errors.As(err, &checkErr) {
			os.Exit(ExitCheckFailed)
		}

		os.Exit(ExitError)
	}
}
