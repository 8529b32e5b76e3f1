package resolve

import (
	"github.com/jmalven/phenolic/pkg/rocket"
)

// Resolve runs the full resolution pass over a design: validation, automatic
// radii, absolute positions, mass properties. The design is read-only
// throughout; the returned Snapshot carries every derived value. On failure
// the error names the offending component and nothing is returned; there is
// no partially resolved state.
func Resolve(d *rocket.Design) (*Snapshot, error) {
	if result := rocket.ValidateAll(d); len(result.Errors) > 0 {
		return nil, result.Errors[0]
	}

	radii, err := resolveRadii(d)
	if err != nil {
		return nil, err
	}
	spans, err := resolvePositions(d)
	if err != nil {
		return nil, err
	}
	if err := checkMotorFit(d, radii); err != nil {
		return nil, err
	}
	masses, props, err := resolveMass(d, radii, spans)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Design:     d,
		Components: make([]ResolvedComponent, d.ComponentCount()),
		Mass:       props,
	}
	for i, c := range d.Components {
		snap.Components[i] = ResolvedComponent{
			Index:      i,
			ID:         c.ID,
			Path:       d.Path(i),
			Kind:       c.Kind,
			Span:       spans[i],
			ForeRadius: radii[i].fore,
			AftRadius:  radii[i].aft,
			Thickness:  componentThickness(c),
			Mass:       masses[i].mass,
			Volume:     masses[i].volume,
			Centroid:   masses[i].centroid,
		}
	}
	return snap, nil
}

// checkMotorFit verifies every configured motor against its mount's
// concrete geometry. After the radius pass all bores are known, including
// mounts whose radius was automatic.
func checkMotorFit(d *rocket.Design, radii []radialExtent) error {
	for _, cfg := range d.Configurations {
		if cfg.Motor == nil {
			continue
		}
		c := d.Get(cfg.MountIndex)
		it, ok := c.Data.(rocket.InnerTubeData)
		if !ok {
			continue // structural validation already rejected this
		}
		path := d.Path(cfg.MountIndex)
		bore := radii[cfg.MountIndex].fore - it.Thickness
		if cfg.Motor.Diameter > 2*bore {
			return &rocket.InvalidGeometryError{
				Path:   path,
				Reason: "motor " + cfg.Motor.Designation + " does not fit the resolved mount bore",
			}
		}
		if cfg.Motor.Length > it.Length {
			return &rocket.InvalidGeometryError{
				Path:   path,
				Reason: "motor " + cfg.Motor.Designation + " is longer than its mount",
			}
		}
	}
	return nil
}

func componentThickness(c *rocket.Component) float64 {
	switch data := c.Data.(type) {
	case rocket.NoseConeData:
		return data.Thickness
	case rocket.BodyTubeData:
		return data.Thickness
	case rocket.TransitionData:
		return data.Thickness
	case rocket.InnerTubeData:
		return data.Thickness
	case rocket.CouplerData:
		return data.Thickness
	case rocket.LaunchLugData:
		return data.Thickness
	case rocket.BulkheadData:
		return data.Thickness
	case rocket.FinSetData:
		return data.Thickness
	default:
		return 0
	}
}
