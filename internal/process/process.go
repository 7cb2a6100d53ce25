// Package process terminates the browser started for PDF export together with
// everything it spawned.
package process

import "errors"

// ErrInvalidPID is returned for pids that would address the caller's own
// process group or every process.
var ErrInvalidPID = errors.New("invalid pid")
