package domain

import "fmt"

// InvalidProfileError reports a malformed or inconsistent household profile.
// It is detected at the input boundary before any simulation work begins.
type InvalidProfileError struct {
	Field  string
	Reason string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s: %s", e.Field, e.Reason)
}

// SimulationConfigError reports a rejected run configuration, such as a
// simulation count outside the allowed bounds or an unknown preset name.
type SimulationConfigError struct {
	Field  string
	Reason string
}

func (e *SimulationConfigError) Error() string {
	return fmt.Sprintf("invalid simulation config: %s: %s", e.Field, e.Reason)
}
