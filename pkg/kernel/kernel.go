// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx, manifold) provide solid modeling and boolean
// operations behind this interface. The kernel abstraction allows swapping
// backends without changing the rest of the system.
//
// Conventions: the longitudinal axis is Z, increasing toward the rocket
// tail. Axial primitives span z ∈ [0, height] so that placement
// translations put a component's forward end at its resolved position.
package kernel

// Point2 is a vertex of a 2D outline handed to Revolve or Extrude.
type Point2 struct {
	X, Y float64
}

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Cylinder(height, radius float64, segments int) Solid
	Tube(height, outerRadius, innerRadius float64) Solid
	Frustum(height, foreRadius, aftRadius float64) Solid

	// Revolve spins a closed outline around the Z axis. Outline points are
	// (radius, axial); the outline must not cross the axis.
	Revolve(outline []Point2) Solid

	// Extrude sweeps a closed planar outline along Z by thickness.
	Extrude(outline []Point2, thickness float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
