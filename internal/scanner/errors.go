package scanner

import (
	"errors"
	"fmt"
)

var (
	// ErrHostRequired is wrapped by HostResolutionError.
	ErrHostRequired = errors.New("target has no host")
	// ErrNotFound matches a LaunchError whose executable could not be found.
	ErrNotFound = errors.New("executable not found")
	// ErrOSRejected matches a LaunchError the operating system refused.
	ErrOSRejected = errors.New("process creation rejected")
	// ErrAlreadyWaited is returned by a second Process.Wait.
	ErrAlreadyWaited = errors.New("process already waited")
)

// HostResolutionError reports a spec that needs the target's host when the
// target has none.
type HostResolutionError struct {
	Scanner ID
	Target  string
}

func (e *HostResolutionError) Error() string {
	return fmt.Sprintf("%s requires a host but target %q has none", e.Scanner, e.Target)
}

func (e *HostResolutionError) Unwrap() error {
	return ErrHostRequired
}

// LaunchKind classifies a LaunchError.
type LaunchKind int

const (
	NotFound LaunchKind = iota + 1
	OSRejected
)

func (k LaunchKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case OSRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// LaunchError reports a failure to create the child process.
type LaunchError struct {
	Scanner    ID
	Executable string
	Kind       LaunchKind
	Err        error
}

func (e *LaunchError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("launching %s: executable %q not found", e.Scanner, e.Executable)
	default:
		return fmt.Sprintf("launching %s: %v", e.Scanner, e.Err)
	}
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrNotFound and ErrOSRejected by kind.
func (e *LaunchError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrOSRejected:
		return e.Kind == OSRejected
	}
	return false
}
