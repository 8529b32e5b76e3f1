package resolve

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jmalven/phenolic/pkg/rocket"
)

// Span is a component's absolute axial extent. Coordinates are meters from
// the top of the root component, positive toward the tail; forward children
// such as an offset nose cone sit at negative coordinates.
type Span struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Length returns the axial extent of the span.
func (s Span) Length() float64 { return s.Bottom - s.Top }

// Middle returns the axial midpoint of the span.
func (s Span) Middle() float64 { return (s.Top + s.Bottom) / 2 }

// ResolvedComponent is one component with every deferred attribute made
// concrete: automatic radii substituted, absolute position assigned, mass
// derived. It carries enough parametric geometry for a downstream mesher.
type ResolvedComponent struct {
	Index int                  `json:"index"`
	ID    rocket.ComponentID   `json:"id"`
	Path  string               `json:"path"`
	Kind  rocket.ComponentKind `json:"kind"`

	Span       Span    `json:"span"`
	ForeRadius float64 `json:"fore_radius"` // outer radius at Span.Top
	AftRadius  float64 `json:"aft_radius"`  // outer radius at Span.Bottom
	Thickness  float64 `json:"thickness,omitempty"`

	Mass     float64 `json:"mass"`     // kg
	Volume   float64 `json:"volume"`   // m³ of structural material
	Centroid float64 `json:"centroid"` // absolute axial CG of this component
}

// MassProperties aggregates the whole rocket about its own center of
// gravity. Inertia components are Ixx and Iyy transverse (equal by
// axisymmetry in this model) and Izz about the longitudinal axis.
type MassProperties struct {
	Mass    float64    `json:"mass"` // kg
	CG      float64    `json:"cg"`   // m from the root component top
	Inertia mgl64.Vec3 `json:"inertia"`
}

// Snapshot is the read-only result of a full resolution pass: the resolved
// components in arena order plus the aggregated mass properties. Downstream
// consumers (flight solver, mesher) treat it as fixed for the duration of a
// run.
type Snapshot struct {
	Design     *rocket.Design      `json:"-"`
	Components []ResolvedComponent `json:"components"`
	Mass       MassProperties      `json:"mass_properties"`
}

// Component returns the resolved component at the given arena index, or nil.
func (s *Snapshot) Component(i int) *ResolvedComponent {
	if i < 0 || i >= len(s.Components) {
		return nil
	}
	return &s.Components[i]
}

// ByName returns the resolved component with the given design name.
func (s *Snapshot) ByName(name string) (*ResolvedComponent, bool) {
	i, ok := s.Design.Lookup(name)
	if !ok {
		return nil, false
	}
	return s.Component(i), true
}

// OverallLength returns the axial distance from the foremost point to the
// aftmost point across all components.
func (s *Snapshot) OverallLength() float64 {
	if len(s.Components) == 0 {
		return 0
	}
	top := s.Components[0].Span.Top
	bottom := s.Components[0].Span.Bottom
	for _, rc := range s.Components[1:] {
		if rc.Span.Top < top {
			top = rc.Span.Top
		}
		if rc.Span.Bottom > bottom {
			bottom = rc.Span.Bottom
		}
	}
	return bottom - top
}
