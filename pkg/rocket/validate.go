package rocket

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks
// resolution or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks resolution
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Path     string             // component path (empty if design-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Path, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Path    string
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// Validate runs Tier 1 structural checks on the design and returns a slice
// of validation errors. An empty slice means the structure is sound. This
// function is read-only and never mutates the design.
func Validate(d *Design) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateArena(d)...)
	errs = append(errs, validateNames(d)...)
	errs = append(errs, validatePayloads(d)...)
	errs = append(errs, validateConfigurations(d)...)
	return errs
}

// ValidateAll runs all validation tiers (structural, geometric, advisory)
// and returns a ValidationResult with separated errors and warnings.
func ValidateAll(d *Design) ValidationResult {
	tier1 := Validate(d)
	tier2 := validateGeometry(d)
	tier3 := validateAdvisory(d)

	var result ValidationResult
	for _, e := range append(tier1, tier2...) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{Path: e.Path, Message: e.Message})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	result.Warnings = append(result.Warnings, tier3...)
	return result
}

// validateArena checks parent back-references: exactly one root at index 0,
// every parent index in range and strictly less than the child index. The
// strict ordering makes cycles impossible and guarantees that a single
// forward pass sees every parent before its children.
func validateArena(d *Design) []ValidationError {
	var errs []ValidationError

	for i, c := range d.Components {
		switch {
		case i == 0 && c.Parent != NoParent:
			errs = append(errs, ValidationError{
				Path:     d.Path(i),
				Message:  "first component must be the root (no parent)",
				Severity: SeverityError,
			})
		case i > 0 && c.Parent == NoParent:
			errs = append(errs, ValidationError{
				Path:     d.Path(i),
				Message:  "multiple root components",
				Severity: SeverityError,
			})
		case i > 0 && (c.Parent < 0 || c.Parent >= len(d.Components)):
			errs = append(errs, ValidationError{
				Path:     d.Path(i),
				Message:  fmt.Sprintf("parent index %d out of range", c.Parent),
				Severity: SeverityError,
			})
		case i > 0 && c.Parent >= i:
			errs = append(errs, ValidationError{
				Path:     d.Path(i),
				Message:  fmt.Sprintf("parent index %d does not precede component %d", c.Parent, i),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateNames checks that non-empty component names are unique.
func validateNames(d *Design) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int)

	for i, c := range d.Components {
		if c.Name == "" {
			continue
		}
		if first, dup := seen[c.Name]; dup {
			errs = append(errs, ValidationError{
				Path:     d.Path(i),
				Message:  fmt.Sprintf("duplicate name %q (first used by component %d)", c.Name, first),
				Severity: SeverityError,
			})
			continue
		}
		seen[c.Name] = i
	}

	return errs
}

// validatePayloads checks that every component carries a payload matching
// its declared kind.
func validatePayloads(d *Design) []ValidationError {
	var errs []ValidationError

	for i, c := range d.Components {
		if c.Data == nil {
			errs = append(errs, ValidationError{
				Path:     d.Path(i),
				Message:  "component has no data payload",
				Severity: SeverityError,
			})
			continue
		}
		var ok bool
		switch c.Data.(type) {
		case NoseConeData:
			ok = c.Kind == KindNoseCone
		case BodyTubeData:
			ok = c.Kind == KindBodyTube
		case TransitionData:
			ok = c.Kind == KindTransition
		case InnerTubeData:
			ok = c.Kind == KindInnerTube
		case FinSetData:
			ok = c.Kind == KindFinSet
		case BulkheadData:
			ok = c.Kind == KindBulkhead
		case CouplerData:
			ok = c.Kind == KindCoupler
		case LaunchLugData:
			ok = c.Kind == KindLaunchLug
		case MassComponentData:
			ok = c.Kind == KindMass
		}
		if !ok {
			errs = append(errs, ValidationError{
				Path:     d.Path(i),
				Message:  fmt.Sprintf("payload %T does not match kind %s", c.Data, c.Kind),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateConfigurations checks motor configuration references. Whether a
// default exists is the selector's concern, not a structural property.
func validateConfigurations(d *Design) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)

	for _, cfg := range d.Configurations {
		if cfg.ID == "" {
			errs = append(errs, ValidationError{
				Message:  "motor configuration with empty ID",
				Severity: SeverityError,
			})
		} else if seen[cfg.ID] {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate motor configuration ID %q", cfg.ID),
				Severity: SeverityError,
			})
		}
		seen[cfg.ID] = true

		mount := d.Get(cfg.MountIndex)
		if mount == nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("motor configuration %q: mount index %d out of range", cfg.ID, cfg.MountIndex),
				Severity: SeverityError,
			})
			continue
		}
		if it, ok := mount.Data.(InnerTubeData); !ok || !it.MotorMount {
			errs = append(errs, ValidationError{
				Path:     d.Path(cfg.MountIndex),
				Message:  fmt.Sprintf("motor configuration %q mounted on a component that is not a motor mount", cfg.ID),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateGeometry runs Tier 2 dimensional checks. A finding here means
// mass resolution would fail; surfacing it early gives a better message.
func validateGeometry(d *Design) []ValidationError {
	var errs []ValidationError

	bad := func(i int, msg string) {
		errs = append(errs, ValidationError{Path: d.Path(i), Message: msg, Severity: SeverityError})
	}
	checkRadius := func(i int, name string, r Radius) {
		if !r.Auto && r.Value <= 0 {
			bad(i, fmt.Sprintf("%s is %.4f, must be positive or automatic", name, r.Value))
		}
	}
	checkPositive := func(i int, name string, v float64) {
		if v <= 0 {
			bad(i, fmt.Sprintf("%s is %.4f, must be positive", name, v))
		}
	}

	for i, c := range d.Components {
		if c.Mass.Overridden && c.Mass.Kilograms < 0 {
			bad(i, fmt.Sprintf("mass override is %.4f kg, must be non-negative", c.Mass.Kilograms))
		}

		switch data := c.Data.(type) {
		case NoseConeData:
			checkPositive(i, "length", data.Length)
			checkRadius(i, "base radius", data.BaseRadius)
			checkPositive(i, "thickness", data.Thickness)
			switch data.Shape {
			case ShapeParabolic:
				if data.ShapeParam < 0 || data.ShapeParam > 1 {
					bad(i, fmt.Sprintf("parabolic shape parameter is %.4f, must be in [0, 1]", data.ShapeParam))
				}
			case ShapeHaack:
				if data.ShapeParam < 0 {
					bad(i, fmt.Sprintf("Haack series constant is %.4f, must be non-negative", data.ShapeParam))
				}
			}
		case BodyTubeData:
			checkPositive(i, "length", data.Length)
			checkRadius(i, "outer radius", data.OuterRadius)
			checkPositive(i, "thickness", data.Thickness)
		case TransitionData:
			checkPositive(i, "length", data.Length)
			checkRadius(i, "fore radius", data.ForeRadius)
			checkRadius(i, "aft radius", data.AftRadius)
			checkPositive(i, "thickness", data.Thickness)
		case InnerTubeData:
			checkPositive(i, "length", data.Length)
			checkRadius(i, "outer radius", data.OuterRadius)
			checkPositive(i, "thickness", data.Thickness)
		case FinSetData:
			if data.Count < 1 {
				bad(i, fmt.Sprintf("fin count is %d, must be at least 1", data.Count))
			}
			checkPositive(i, "root chord", data.RootChord)
			checkPositive(i, "span", data.Span)
			checkPositive(i, "thickness", data.Thickness)
			if data.TipChord < 0 {
				bad(i, fmt.Sprintf("tip chord is %.4f, must be non-negative", data.TipChord))
			}
		case BulkheadData:
			checkRadius(i, "outer radius", data.OuterRadius)
			checkPositive(i, "thickness", data.Thickness)
		case CouplerData:
			// Zero-length couplers are legal; they resolve to a point.
			if data.Length < 0 {
				bad(i, fmt.Sprintf("length is %.4f, must be non-negative", data.Length))
			}
			checkRadius(i, "outer radius", data.OuterRadius)
			checkPositive(i, "thickness", data.Thickness)
		case LaunchLugData:
			checkPositive(i, "length", data.Length)
			checkRadius(i, "outer radius", data.OuterRadius)
			checkPositive(i, "thickness", data.Thickness)
		case MassComponentData:
			if !c.Mass.Overridden {
				bad(i, "mass component has no derivable shape and requires a mass override")
			}
			if data.PackedLength < 0 || data.PackedRadius < 0 {
				bad(i, "packed volume dimensions must be non-negative")
			}
		}

		// Density is only needed when mass is derived from geometry.
		if !c.Mass.Overridden && c.Kind != KindMass && c.Material.Density <= 0 {
			bad(i, fmt.Sprintf("material density is %.2f kg/m³ and no mass override is set", c.Material.Density))
		}
	}

	// Motor fit is not checked here: mounts with automatic radii have no
	// concrete bore until resolution, which runs CheckMotorFit itself.

	return errs
}

// validateAdvisory runs Tier 3 checks that never block resolution.
func validateAdvisory(d *Design) []ValidationWarning {
	var warnings []ValidationWarning

	for i, c := range d.Components {
		wall := func(r Radius, t float64) {
			if !r.Auto && t > r.Value/2 {
				warnings = append(warnings, ValidationWarning{
					Path:    d.Path(i),
					Message: fmt.Sprintf("wall thickness %.4f m exceeds half the radius %.4f m; component is nearly solid", t, r.Value),
				})
			}
		}
		switch data := c.Data.(type) {
		case BodyTubeData:
			wall(data.OuterRadius, data.Thickness)
		case InnerTubeData:
			wall(data.OuterRadius, data.Thickness)
		case CouplerData:
			wall(data.OuterRadius, data.Thickness)
		}
	}

	for _, cfg := range d.Configurations {
		if cfg.Default && cfg.Motor == nil {
			warnings = append(warnings, ValidationWarning{
				Message: fmt.Sprintf("default motor configuration %q has no motor selected", cfg.ID),
			})
		}
	}

	return warnings
}
