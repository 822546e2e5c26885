package sports

import "fmt"

// UnknownPresetError indicates a preset name outside the fixed table
type UnknownPresetError struct {
	Name string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown market preset %q", e.Name)
}

// DomainMismatchError indicates a domain-restricted preset paired with a
// sport key outside its family
type DomainMismatchError struct {
	Preset     string
	SportKey   string
	WantPrefix string
}

func (e *DomainMismatchError) Error() string {
	return fmt.Sprintf("preset %q requires a %s* sport, got %s", e.Preset, e.WantPrefix, e.SportKey)
}
