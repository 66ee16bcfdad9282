package cmdtree

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName    = errors.New("command name must be a single non-empty token")
	ErrNameTooLong    = errors.New("command name too long")
	ErrCommentTooLong = errors.New("command comment too long")
	ErrDuplicateName  = errors.New("command already registered at this level")
	ErrNoSuchParent   = errors.New("no such parent command")
	ErrNotFound       = errors.New("command not found")
	ErrHasChildren    = errors.New("command has subcommands")
	ErrStaleHandle    = errors.New("stale or invalid command handle")

	// ErrUnsupported marks a dispatch that had nothing to report.
	ErrUnsupported = errors.New("missing parameter or unsupported command")
	// ErrNoOutput marks an action that returned a non-positive count without an error.
	ErrNoOutput = errors.New("command produced no output")
)

// ActionError carries the failure of a command action together with the
// resolved path of the command that failed.
type ActionError struct {
	Path string
	Err  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Path, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
