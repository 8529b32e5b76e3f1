package rocket

import (
	"fmt"
	"strings"
)

// UnresolvedReferenceError reports a position reference that cannot be
// satisfied: a component whose parent's position is not available when the
// component is reached. It indicates a malformed tree and is never retried.
type UnresolvedReferenceError struct {
	Path   string
	Reason string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference at %q: %s", e.Path, e.Reason)
}

// InvalidGeometryError reports a component that lacks sufficient data to
// derive its mass or volume, and carries no override to compensate.
type InvalidGeometryError struct {
	Path   string
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry at %q: %s", e.Path, e.Reason)
}

// AutomaticRadiusUnresolvedError reports an automatic radius whose adjoining
// component could not supply a concrete value. This is a dependency-ordering
// failure in the design, not a transient condition.
type AutomaticRadiusUnresolvedError struct {
	Path      string
	Adjoining string // path of the component the radius depends on, if any
}

func (e *AutomaticRadiusUnresolvedError) Error() string {
	if e.Adjoining == "" {
		return fmt.Sprintf("automatic radius at %q has no adjoining component to infer from", e.Path)
	}
	return fmt.Sprintf("automatic radius at %q depends on unresolved component %q", e.Path, e.Adjoining)
}

// NoDefaultConfigurationError reports that motor selection found zero or
// more than one configuration marked default.
type NoDefaultConfigurationError struct {
	Marked []string // IDs of configurations marked default
}

func (e *NoDefaultConfigurationError) Error() string {
	if len(e.Marked) == 0 {
		return "no motor configuration is marked default"
	}
	return fmt.Sprintf("%d motor configurations marked default: %s",
		len(e.Marked), strings.Join(e.Marked, ", "))
}
