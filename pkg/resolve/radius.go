package resolve

import (
	"github.com/jmalven/phenolic/pkg/rocket"
)

// radialExtent is a component's concrete outer radius at both axial ends.
// Revolved bodies vary linearly (or by profile) between the two; tubes and
// bulkheads have fore == aft.
type radialExtent struct {
	fore, aft float64
	resolved  bool
}

// resolveRadii substitutes every automatic radius with the adjoining
// component's concrete outer radius. The arena orders parents before
// children, so a single forward pass is a complete dependency pass: by the
// time a component is reached, the component its automatic radius adjoins
// has either been resolved or is itself irrecoverably automatic.
func resolveRadii(d *rocket.Design) ([]radialExtent, error) {
	out := make([]radialExtent, d.ComponentCount())

	for i, c := range d.Components {
		ext, err := componentRadii(d, out, i, c)
		if err != nil {
			return nil, err
		}
		out[i] = ext
	}
	return out, nil
}

func componentRadii(d *rocket.Design, done []radialExtent, i int, c *rocket.Component) (radialExtent, error) {
	// resolveOne maps one radius attribute to a concrete value. bore
	// selects the parent's inner rather than outer surface, for components
	// that sit inside a tube.
	resolveOne := func(r rocket.Radius, bore bool) (float64, error) {
		if !r.Auto {
			return r.Value, nil
		}
		if c.Parent == rocket.NoParent {
			return 0, &rocket.AutomaticRadiusUnresolvedError{Path: d.Path(i)}
		}
		pext := done[c.Parent]
		if !pext.resolved {
			return 0, &rocket.AutomaticRadiusUnresolvedError{
				Path:      d.Path(i),
				Adjoining: d.Path(c.Parent),
			}
		}
		// The parent's radius at the child's anchor station.
		v := pext.aft
		if c.Placement.Anchor == rocket.AnchorTop {
			v = pext.fore
		}
		if bore {
			v -= parentThickness(d.Get(c.Parent))
		}
		if v <= 0 {
			return 0, &rocket.AutomaticRadiusUnresolvedError{
				Path:      d.Path(i),
				Adjoining: d.Path(c.Parent),
			}
		}
		return v, nil
	}

	var ext radialExtent
	switch data := c.Data.(type) {
	case rocket.NoseConeData:
		base, err := resolveOne(data.BaseRadius, false)
		if err != nil {
			return ext, err
		}
		ext = radialExtent{fore: 0, aft: base, resolved: true}
	case rocket.BodyTubeData:
		r, err := resolveOne(data.OuterRadius, false)
		if err != nil {
			return ext, err
		}
		ext = radialExtent{fore: r, aft: r, resolved: true}
	case rocket.TransitionData:
		fore, err := resolveOne(data.ForeRadius, false)
		if err != nil {
			return ext, err
		}
		aft, err := resolveOne(data.AftRadius, false)
		if err != nil {
			return ext, err
		}
		ext = radialExtent{fore: fore, aft: aft, resolved: true}
	case rocket.InnerTubeData:
		r, err := resolveOne(data.OuterRadius, true)
		if err != nil {
			return ext, err
		}
		ext = radialExtent{fore: r, aft: r, resolved: true}
	case rocket.CouplerData:
		r, err := resolveOne(data.OuterRadius, true)
		if err != nil {
			return ext, err
		}
		ext = radialExtent{fore: r, aft: r, resolved: true}
	case rocket.BulkheadData:
		r, err := resolveOne(data.OuterRadius, true)
		if err != nil {
			return ext, err
		}
		ext = radialExtent{fore: r, aft: r, resolved: true}
	case rocket.LaunchLugData:
		r, err := resolveOne(data.OuterRadius, false)
		if err != nil {
			return ext, err
		}
		ext = radialExtent{fore: r, aft: r, resolved: true}
	case rocket.FinSetData:
		// Fins are not revolved bodies; their radial footprint is handled
		// by the mesher using the parent radius.
		ext = radialExtent{resolved: true}
	case rocket.MassComponentData:
		ext = radialExtent{fore: data.PackedRadius, aft: data.PackedRadius, resolved: true}
	default:
		ext = radialExtent{resolved: true}
	}
	return ext, nil
}

func parentThickness(c *rocket.Component) float64 {
	switch data := c.Data.(type) {
	case rocket.BodyTubeData:
		return data.Thickness
	case rocket.InnerTubeData:
		return data.Thickness
	case rocket.CouplerData:
		return data.Thickness
	case rocket.NoseConeData:
		return data.Thickness
	case rocket.TransitionData:
		return data.Thickness
	default:
		return 0
	}
}
