// cmd/apiview/exitcode.go
package main

import (
	"fmt"

	"github.com/julianshen/apiview/internal/render"
)

// ExitError is returned when a command should exit with a non-zero code.
// Using a typed error instead of os.Exit ensures deferred cleanup runs.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// exitCodeFromDiagnostics returns 1 if any diagnostic attached to lines has
// a level at or above failOn, 0 otherwise. An empty failOn disables gating.
func exitCodeFromDiagnostics(lines []render.Line, failOn string) (int, error) {
	if failOn == "" {
		return 0, nil
	}
	threshold, err := render.ParseLevel(failOn)
	if err != nil {
		return 0, err
	}
	for _, l := range lines {
		for _, d := range l.Diagnostics {
			if d.Level >= threshold {
				return 1, nil
			}
		}
	}
	return 0, nil
}
