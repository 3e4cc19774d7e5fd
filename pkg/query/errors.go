package query

import "fmt"

// UpstreamError marks a failure of the external generative service. The
// HTTP layer translates it to a 502, keeping it distinct from bad input
// and from store failures.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
