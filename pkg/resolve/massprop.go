package resolve

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jmalven/phenolic/pkg/rocket"
)

// componentMass is the per-component output of the mass pass, positions
// absolute.
type componentMass struct {
	mass     float64
	volume   float64
	centroid float64 // absolute axial CG of the component

	// local inertia about the component's own centroid, z along the rocket
	// axis. Radial offsets (fins) are already folded in.
	ixx, izz float64
}

// resolveMass derives every component's mass and the whole-rocket mass
// properties. Masses honor the override-or-derive rule: an override replaces
// the density × volume computation entirely, but the geometric centroid is
// still used so an overridden component weighs in at the right station.
func resolveMass(d *rocket.Design, radii []radialExtent, spans []Span) ([]componentMass, MassProperties, error) {
	masses := make([]componentMass, d.ComponentCount())

	var total, moment float64
	for i, c := range d.Components {
		cm, err := componentMassOf(d, radii, spans, i, c)
		if err != nil {
			return nil, MassProperties{}, err
		}
		masses[i] = cm
		total += cm.mass
		moment += cm.mass * cm.centroid
	}

	if total <= 0 {
		return nil, MassProperties{}, &rocket.InvalidGeometryError{
			Path:   d.Path(0),
			Reason: "rocket has no mass",
		}
	}
	cg := moment / total

	// Parallel-axis pass about the whole-rocket CG. Transverse axes pick up
	// the axial offset; the longitudinal axis does not, since component
	// centroids sit on it (radial terms are already in the local inertia).
	var ixx, izz float64
	for _, cm := range masses {
		dAx := cm.centroid - cg
		ixx += cm.ixx + cm.mass*dAx*dAx
		izz += cm.izz
	}

	props := MassProperties{
		Mass:    total,
		CG:      cg,
		Inertia: mgl64.Vec3{ixx, ixx, izz},
	}
	return masses, props, nil
}

func componentMassOf(d *rocket.Design, radii []radialExtent, spans []Span, i int, c *rocket.Component) (componentMass, error) {
	span := spans[i]
	ext := radii[i]

	switch data := c.Data.(type) {
	case rocket.NoseConeData:
		profile := NoseProfile(data.Shape, data.ShapeParam, ext.aft, data.Length)
		shell := integrateShell(profile, data.Thickness, data.Length)
		return shellMass(d, i, c, span, shell)

	case rocket.BodyTubeData:
		return shellMass(d, i, c, span, tubeShell(ext.fore, data.Thickness, data.Length))

	case rocket.TransitionData:
		profile := transitionProfile(ext.fore, ext.aft, data.Length)
		shell := integrateShell(profile, data.Thickness, data.Length)
		return shellMass(d, i, c, span, shell)

	case rocket.InnerTubeData:
		return shellMass(d, i, c, span, tubeShell(ext.fore, data.Thickness, data.Length))

	case rocket.CouplerData:
		if data.Length == 0 {
			// A zero-length coupler is a pure joint: no volume, and any
			// override mass sits at its point.
			return pointMass(c, span.Top), nil
		}
		return shellMass(d, i, c, span, tubeShell(ext.fore, data.Thickness, data.Length))

	case rocket.LaunchLugData:
		return shellMass(d, i, c, span, tubeShell(ext.fore, data.Thickness, data.Length))

	case rocket.BulkheadData:
		return shellMass(d, i, c, span, discSolid(ext.fore, data.Thickness))

	case rocket.FinSetData:
		return finSetMass(d, radii, i, c, span, data)

	case rocket.MassComponentData:
		return packedMass(d, i, c, span, data)

	default:
		return componentMass{}, &rocket.InvalidGeometryError{
			Path:   d.Path(i),
			Reason: "component kind has no mass model",
		}
	}
}

// shellMass finishes a revolved component: pick override or density-derived
// mass, then scale the shell's geometric inertia to the actual mass.
func shellMass(d *rocket.Design, i int, c *rocket.Component, span Span, shell revolvedShell) (componentMass, error) {
	mass := c.Mass.Kilograms
	if !c.Mass.Overridden {
		if shell.volume <= 0 {
			return componentMass{}, &rocket.InvalidGeometryError{
				Path:   d.Path(i),
				Reason: "component has zero structural volume and no mass override",
			}
		}
		mass = c.Material.Density * shell.volume
	}

	cm := componentMass{
		mass:     mass,
		volume:   shell.volume,
		centroid: span.Top + shell.centroid,
	}
	if shell.volume > 0 {
		// Effective density folds overrides into the inertia integrals.
		rho := mass / shell.volume
		cm.izz = rho * shell.quartic / 2
		cm.ixx = rho * (shell.second + shell.quartic/4)
	}
	return cm, nil
}

// finSetMass models N identical trapezoidal fins as a ring of flat plates
// around the parent tube. For three or more evenly spaced fins the ring is
// balanced, so the set's centroid stays on the axis.
func finSetMass(d *rocket.Design, radii []radialExtent, i int, c *rocket.Component, span Span, data rocket.FinSetData) (componentMass, error) {
	area, chordCentroid := planformArea(data.Planform())
	volume := area * data.Thickness * float64(data.Count)

	mass := c.Mass.Kilograms
	if !c.Mass.Overridden {
		if volume <= 0 {
			return componentMass{}, &rocket.InvalidGeometryError{
				Path:   d.Path(i),
				Reason: "fin set has zero planform area and no mass override",
			}
		}
		mass = c.Material.Density * volume
	}

	// Radial distance from the axis to a fin's spanwise centroid.
	var rootRadius float64
	if c.Parent != rocket.NoParent {
		rootRadius = radii[c.Parent].aft
		if c.Placement.Anchor == rocket.AnchorTop {
			rootRadius = radii[c.Parent].fore
		}
	}
	spanCentroid := data.Span / 3 * (data.RootChord + 2*data.TipChord) / (data.RootChord + data.TipChord)
	radial := rootRadius + spanCentroid

	return componentMass{
		mass:     mass,
		volume:   volume,
		centroid: span.Top + chordCentroid,
		izz:      mass * radial * radial,
		ixx:      mass * radial * radial / 2,
	}, nil
}

// packedMass is a mass-only component: solid-cylinder inertia over its
// packed envelope, zero structural volume.
func packedMass(d *rocket.Design, i int, c *rocket.Component, span Span, data rocket.MassComponentData) (componentMass, error) {
	if !c.Mass.Overridden {
		return componentMass{}, &rocket.InvalidGeometryError{
			Path:   d.Path(i),
			Reason: "mass component requires a mass override",
		}
	}
	m := c.Mass.Kilograms
	r, l := data.PackedRadius, data.PackedLength
	return componentMass{
		mass:     m,
		centroid: span.Top + l/2,
		izz:      m * r * r / 2,
		ixx:      m * (3*r*r + l*l) / 12,
	}, nil
}

func pointMass(c *rocket.Component, at float64) componentMass {
	var m float64
	if c.Mass.Overridden {
		m = c.Mass.Kilograms
	}
	return componentMass{mass: m, centroid: at}
}
