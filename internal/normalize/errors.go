package normalize

import "fmt"

// MalformedEventError reports structurally invalid input and the index of
// the event that failed
type MalformedEventError struct {
	Index  int
	Reason string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed event at index %d: %s", e.Index, e.Reason)
}
