package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// SurfaceErrorKind classifies a failure to acquire the next surface texture.
type SurfaceErrorKind int

const (
	// SurfaceErrorOther is any acquisition failure not covered by another kind.
	SurfaceErrorOther SurfaceErrorKind = iota

	// SurfaceErrorLost means the surface must be reconfigured before it can be used again.
	SurfaceErrorLost

	// SurfaceErrorOutdated means the surface configuration no longer matches the window.
	SurfaceErrorOutdated

	// SurfaceErrorOutOfMemory means the device ran out of memory. Rendering cannot continue.
	SurfaceErrorOutOfMemory

	// SurfaceErrorTimeout means no texture became available in time.
	SurfaceErrorTimeout
)

func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceErrorLost:
		return "lost"
	case SurfaceErrorOutdated:
		return "outdated"
	case SurfaceErrorOutOfMemory:
		return "out of memory"
	case SurfaceErrorTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// SurfaceError is returned by BeginFrame when no surface texture could be acquired.
type SurfaceError struct {
	Kind SurfaceErrorKind
	Err  error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("surface %s: %v", e.Kind, e.Err)
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// Recoverable reports whether reconfiguring the surface at its last size is expected to fix the error.
//
// Returns:
//   - bool: true for lost and outdated surfaces
func (e *SurfaceError) Recoverable() bool {
	return e.Kind == SurfaceErrorLost || e.Kind == SurfaceErrorOutdated
}

// classifySurfaceError wraps an acquisition error in a SurfaceError. The native layer only reports
// the status in the message, so the kind is recovered from it.
func classifySurfaceError(err error) *SurfaceError {
	if err == nil {
		return nil
	}
	var se *SurfaceError
	if errors.As(err, &se) {
		return se
	}

	msg := strings.ToLower(err.Error())
	kind := SurfaceErrorOther
	switch {
	case strings.Contains(msg, "outofmemory"), strings.Contains(msg, "out of memory"):
		kind = SurfaceErrorOutOfMemory
	case strings.Contains(msg, "outdated"):
		kind = SurfaceErrorOutdated
	case strings.Contains(msg, "lost"):
		kind = SurfaceErrorLost
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		kind = SurfaceErrorTimeout
	}
	return &SurfaceError{Kind: kind, Err: err}
}
