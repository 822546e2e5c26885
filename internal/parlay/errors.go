package parlay

import (
	"errors"
	"fmt"
)

// ErrNoLegs indicates an empty leg list after blank filtering
var ErrNoLegs = errors.New("parlay requires at least one leg")

// UnknownFormatError indicates a format other than "american" or "decimal"
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown odds format %q", e.Format)
}

// InvalidLegError indicates a leg that cannot be parsed under the declared
// format: zero in American mode, anything at or below 1 in decimal mode, or
// non-numeric input in either.
type InvalidLegError struct {
	Leg    string
	Format string
}

func (e *InvalidLegError) Error() string {
	return fmt.Sprintf("invalid %s leg %q", e.Format, e.Leg)
}
