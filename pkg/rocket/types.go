package rocket

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentID is a content-addressed identifier for components.
type ComponentID string

// ZeroID is the zero value of ComponentID.
const ZeroID ComponentID = ""

// NewComponentID derives a stable identifier from a component path.
func NewComponentID(path string) ComponentID {
	sum := sha256.Sum256([]byte(path))
	return ComponentID(hex.EncodeToString(sum[:8]))
}

// Short returns a truncated form of the ID for error messages.
func (id ComponentID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// IsZero reports whether the ID is unset.
func (id ComponentID) IsZero() bool { return id == ZeroID }

func (id ComponentID) String() string { return string(id) }

// NoParent marks a component with no parent (the tree root).
const NoParent = -1

// ComponentKind enumerates the physical component types.
type ComponentKind int

const (
	KindNoseCone ComponentKind = iota
	KindBodyTube
	KindTransition
	KindInnerTube
	KindFinSet
	KindBulkhead
	KindCoupler
	KindLaunchLug
	KindMass // discrete mass (payload, avionics, recovery hardware)
)

func (k ComponentKind) String() string {
	switch k {
	case KindNoseCone:
		return "nose-cone"
	case KindBodyTube:
		return "body-tube"
	case KindTransition:
		return "transition"
	case KindInnerTube:
		return "inner-tube"
	case KindFinSet:
		return "fin-set"
	case KindBulkhead:
		return "bulkhead"
	case KindCoupler:
		return "coupler"
	case KindLaunchLug:
		return "launch-lug"
	case KindMass:
		return "mass"
	default:
		return "unknown"
	}
}

// Anchor names the reference point on the parent from which a component's
// axial offset is measured.
type Anchor int

const (
	AnchorTop Anchor = iota // parent's forward end
	AnchorMiddle
	AnchorBottom // parent's aft end
)

func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorMiddle:
		return "middle"
	case AnchorBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
}

// Placement locates a component relative to its immediate parent.
// Offset is measured along the longitudinal axis from the named anchor,
// positive toward the tail. Offsets are always parent-local; absolute
// positions come out of the position resolver only.
type Placement struct {
	Anchor Anchor  `json:"anchor"`
	Offset float64 `json:"offset"` // m
}

// MaterialSpec describes the material a component is made of.
type MaterialSpec struct {
	Name    string  `json:"name,omitempty"`
	Density float64 `json:"density,omitempty"` // kg/m³
}

// MassSpec is either derived from material density and geometry, or pinned
// to an explicit override. Overrides replace the computed value entirely;
// they are never additive corrections.
type MassSpec struct {
	Overridden bool    `json:"overridden,omitempty"`
	Kilograms  float64 `json:"kilograms,omitempty"` // meaningful only when Overridden
}

// MassOverride returns a MassSpec pinned to an explicit value.
func MassOverride(kg float64) MassSpec {
	return MassSpec{Overridden: true, Kilograms: kg}
}

// Radius is a radius attribute that is either a fixed value or "automatic",
// to be inferred from an adjoining component during resolution.
type Radius struct {
	Auto  bool    `json:"auto,omitempty"`
	Value float64 `json:"value,omitempty"` // m, meaningful only when !Auto
}

// FixedRadius returns a concrete radius.
func FixedRadius(m float64) Radius { return Radius{Value: m} }

// AutoRadius returns a radius to be inferred at resolution time.
func AutoRadius() Radius { return Radius{Auto: true} }

func (r Radius) String() string {
	if r.Auto {
		return "auto"
	}
	return fmt.Sprintf("%g", r.Value)
}

// NoseShape enumerates nose-cone profile families.
type NoseShape int

const (
	ShapeConical NoseShape = iota
	ShapeOgive             // tangent ogive
	ShapeElliptical
	ShapeParabolic // shape parameter K in [0,1]
	ShapeHaack     // shape parameter C; C=0 is Von Karman, C=1/3 is LV-Haack
)

func (s NoseShape) String() string {
	switch s {
	case ShapeConical:
		return "conical"
	case ShapeOgive:
		return "ogive"
	case ShapeElliptical:
		return "elliptical"
	case ShapeParabolic:
		return "parabolic"
	case ShapeHaack:
		return "haack"
	default:
		return "unknown"
	}
}

// ParseNoseShape maps a shape name to a NoseShape. "von-karman" is accepted
// as an alias for the Haack family with shape parameter 0.
func ParseNoseShape(name string) (NoseShape, error) {
	switch name {
	case "conical", "cone":
		return ShapeConical, nil
	case "ogive", "tangent-ogive":
		return ShapeOgive, nil
	case "elliptical":
		return ShapeElliptical, nil
	case "parabolic":
		return ShapeParabolic, nil
	case "haack", "von-karman":
		return ShapeHaack, nil
	}
	return 0, fmt.Errorf("unknown nose shape %q", name)
}

// Point2 is a 2D point in a fin planform cross-section (x along the rocket
// axis, y outward from the root chord).
type Point2 struct {
	X, Y float64
}
