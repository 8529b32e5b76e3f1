// Package tessellate walks a resolved rocket snapshot and produces triangle
// meshes using a geometry kernel. One mesh is produced per renderable
// component; fin sets render as one mesh containing all fins.
package tessellate

import (
	"fmt"

	"github.com/jmalven/phenolic/pkg/kernel"
	"github.com/jmalven/phenolic/pkg/resolve"
	"github.com/jmalven/phenolic/pkg/rocket"
)

// noseSamples is the number of stations sampled along a nose-cone profile
// for the revolved outline.
const noseSamples = 48

// Tessellate builds one mesh per renderable component in the snapshot.
// The snapshot is read-only; positions and radii are already absolute, so
// each component's solid is built at the origin and translated into place.
// Mass-only components have no visible structure and are skipped.
func Tessellate(snap *resolve.Snapshot, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if snap == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for i := range snap.Components {
		rc := &snap.Components[i]
		solid, err := buildSolid(snap, k, rc)
		if err != nil {
			return nil, fmt.Errorf("tessellate %s: %w", rc.Path, err)
		}
		if solid == nil {
			continue
		}

		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", rc.Path, err)
		}
		mesh.PartName = partName(snap, rc)
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// buildSolid constructs the positioned solid for one component, or nil for
// components with no renderable geometry.
func buildSolid(snap *resolve.Snapshot, k kernel.Kernel, rc *resolve.ResolvedComponent) (kernel.Solid, error) {
	c := snap.Design.Get(rc.Index)
	if c == nil {
		return nil, fmt.Errorf("component index %d not in design", rc.Index)
	}

	switch data := c.Data.(type) {
	case rocket.NoseConeData:
		return noseSolid(k, rc, data), nil

	case rocket.BodyTubeData:
		s := k.Tube(data.Length, rc.ForeRadius, rc.ForeRadius-data.Thickness)
		return k.Translate(s, 0, 0, rc.Span.Top), nil

	case rocket.InnerTubeData:
		s := k.Tube(data.Length, rc.ForeRadius, rc.ForeRadius-data.Thickness)
		return k.Translate(s, 0, 0, rc.Span.Top), nil

	case rocket.CouplerData:
		if data.Length == 0 {
			return nil, nil
		}
		s := k.Tube(data.Length, rc.ForeRadius, rc.ForeRadius-data.Thickness)
		return k.Translate(s, 0, 0, rc.Span.Top), nil

	case rocket.TransitionData:
		s := k.Frustum(data.Length, rc.ForeRadius, rc.AftRadius)
		return k.Translate(s, 0, 0, rc.Span.Top), nil

	case rocket.BulkheadData:
		s := k.Cylinder(data.Thickness, rc.ForeRadius, 0)
		return k.Translate(s, 0, 0, rc.Span.Top), nil

	case rocket.LaunchLugData:
		s := k.Tube(data.Length, rc.ForeRadius, rc.ForeRadius-data.Thickness)
		// Lugs sit on the parent's outer surface.
		radial := parentRadius(snap, c) + rc.ForeRadius
		return k.Translate(s, radial, 0, rc.Span.Top), nil

	case rocket.FinSetData:
		return finSolid(snap, k, rc, c, data), nil

	case rocket.MassComponentData:
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported component kind %s", c.Kind)
	}
}

// noseSolid revolves the sampled outer profile of a nose cone. The outline
// runs tip to base along the surface, then back to the axis.
func noseSolid(k kernel.Kernel, rc *resolve.ResolvedComponent, data rocket.NoseConeData) kernel.Solid {
	profile := resolve.NoseProfile(data.Shape, data.ShapeParam, rc.AftRadius, data.Length)

	outline := make([]kernel.Point2, 0, noseSamples+2)
	outline = append(outline, kernel.Point2{X: 0, Y: 0})
	for i := 1; i <= noseSamples; i++ {
		x := data.Length * float64(i) / noseSamples
		outline = append(outline, kernel.Point2{X: profile(x), Y: x})
	}
	outline = append(outline, kernel.Point2{X: 0, Y: data.Length})

	return k.Translate(k.Revolve(outline), 0, 0, rc.Span.Top)
}

// finSolid builds the full fin set: one trapezoidal plate replicated
// Count times around the parent tube.
func finSolid(snap *resolve.Snapshot, k kernel.Kernel, rc *resolve.ResolvedComponent, c *rocket.Component, data rocket.FinSetData) kernel.Solid {
	root := parentRadius(snap, c)

	// Planform points are (chordwise, spanwise). Build the plate outline as
	// (radial, axial) so the chord runs along the rocket axis after the
	// same mapping Revolve uses, then extrude the thickness tangentially.
	planform := data.Planform()
	outline := make([]kernel.Point2, len(planform))
	for i, p := range planform {
		outline[i] = kernel.Point2{X: root + p.Y, Y: p.X}
	}

	plate := k.Extrude(outline, data.Thickness)
	// Extrude leaves the outline in the XY plane swept along Z: X is
	// radial, Y is chordwise, Z is thickness. Rotate +90° about X so the
	// chord runs along the rocket axis, centering the thickness.
	plate = k.Translate(plate, 0, 0, -data.Thickness/2)
	plate = k.Rotate(plate, 90, 0, 0)
	plate = k.Translate(plate, 0, 0, rc.Span.Top)

	set := plate
	for i := 1; i < data.Count; i++ {
		set = k.Union(set, k.Rotate(plate, 0, 0, 360*float64(i)/float64(data.Count)))
	}
	return set
}

// parentRadius returns the parent's resolved outer radius at the component's
// anchor station, or zero for the root.
func parentRadius(snap *resolve.Snapshot, c *rocket.Component) float64 {
	if c.Parent == rocket.NoParent {
		return 0
	}
	p := snap.Component(c.Parent)
	if p == nil {
		return 0
	}
	if c.Placement.Anchor == rocket.AnchorTop {
		return p.ForeRadius
	}
	return p.AftRadius
}

func partName(snap *resolve.Snapshot, rc *resolve.ResolvedComponent) string {
	if c := snap.Design.Get(rc.Index); c != nil && c.Name != "" {
		return c.Name
	}
	return rc.ID.Short()
}
