package fetch

import "fmt"

// FetchError reports a failed asset retrieval: transport failure, non-success response,
// unresolvable name, or content that cannot be decoded as the requested type.
type FetchError struct {
	// Name is the asset-relative name that was requested.
	Name string
	// Location is the resolved URL or file path, if resolution succeeded.
	Location string
	// Reason is a short description of the failing step.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *FetchError) Error() string {
	loc := e.Location
	if loc == "" {
		loc = e.Name
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", loc, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", loc, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
