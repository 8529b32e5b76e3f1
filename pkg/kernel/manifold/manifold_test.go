//go:build manifold

package manifold

import (
	"math"
	"testing"

	"github.com/jmalven/phenolic/pkg/kernel"
)

func mustNew(t *testing.T) kernel.Kernel {
	t.Helper()
	k, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return k
}

func TestCylinder(t *testing.T) {
	k := mustNew(t)
	s := k.Cylinder(0.2, 0.05, 64)
	if s == nil {
		t.Fatal("Cylinder() returned nil")
	}
	min, max := s.BoundingBox()

	// Primitives span z in [0, height].
	if math.Abs(min[2]) > 1e-6 {
		t.Errorf("Cylinder min Z = %f, want 0", min[2])
	}
	if math.Abs(max[2]-0.2) > 1e-6 {
		t.Errorf("Cylinder max Z = %f, want 0.2", max[2])
	}

	// X/Y bounds should be within the radius (polygon inscribed in circle).
	for i := 0; i < 2; i++ {
		if min[i] > -0.045 {
			t.Errorf("Cylinder min[%d] = %f, want <= -0.045", i, min[i])
		}
		if max[i] < 0.045 {
			t.Errorf("Cylinder max[%d] = %f, want >= 0.045", i, max[i])
		}
	}
}

func TestFrustum(t *testing.T) {
	k := mustNew(t)
	s := k.Frustum(0.05, 0.0778, 0.0635)
	min, max := s.BoundingBox()

	if math.Abs(min[2]) > 1e-6 {
		t.Errorf("Frustum min Z = %f, want 0", min[2])
	}
	if math.Abs(max[2]-0.05) > 1e-6 {
		t.Errorf("Frustum max Z = %f, want 0.05", max[2])
	}
	// Radial extent follows the larger (fore) radius.
	if max[0] < 0.07 {
		t.Errorf("Frustum max X = %f, want >= 0.07", max[0])
	}
}

func TestTube(t *testing.T) {
	k := mustNew(t)
	tube := k.Tube(0.1, 0.05, 0.048)
	if tube == nil {
		t.Fatal("Tube() returned nil")
	}

	// The bounding box matches the outer cylinder; the bore is interior.
	min, max := tube.BoundingBox()
	if math.Abs(min[2]) > 1e-6 || math.Abs(max[2]-0.1) > 1e-6 {
		t.Errorf("Tube Z bounds = [%f, %f], want [0, 0.1]", min[2], max[2])
	}

	mesh, err := k.ToMesh(tube)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("tube mesh is empty")
	}
}

func TestRevolveCone(t *testing.T) {
	k := mustNew(t)
	outline := []kernel.Point2{
		{X: 0, Y: 0},
		{X: 0.05, Y: 0.2},
		{X: 0, Y: 0.2},
	}
	s := k.Revolve(outline)
	if s == nil {
		t.Fatal("Revolve() returned nil")
	}
	min, max := s.BoundingBox()
	if math.Abs(min[2]) > 1e-6 || math.Abs(max[2]-0.2) > 1e-6 {
		t.Errorf("Revolve Z bounds = [%f, %f], want [0, 0.2]", min[2], max[2])
	}
}

func TestExtrude(t *testing.T) {
	k := mustNew(t)
	outline := []kernel.Point2{
		{X: 0, Y: 0},
		{X: 0.12, Y: 0},
		{X: 0.09, Y: 0.06},
		{X: 0.05, Y: 0.06},
	}
	s := k.Extrude(outline, 0.003)
	min, max := s.BoundingBox()
	if math.Abs(min[2]) > 1e-6 || math.Abs(max[2]-0.003) > 1e-6 {
		t.Errorf("Extrude Z bounds = [%f, %f], want [0, 0.003]", min[2], max[2])
	}
}

func TestDifference(t *testing.T) {
	k := mustNew(t)
	outer := k.Cylinder(0.1, 0.05, 64)
	bore := k.Cylinder(0.12, 0.02, 64)
	result := k.Difference(outer, bore)
	if result == nil {
		t.Fatal("Difference() returned nil")
	}

	// The bore is contained in the outer footprint, so the bounding box is
	// unchanged.
	min, max := result.BoundingBox()
	if math.Abs(min[2]) > 1e-6 || math.Abs(max[2]-0.1) > 1e-6 {
		t.Errorf("Difference Z bounds = [%f, %f], want [0, 0.1]", min[2], max[2])
	}
}

func TestTranslate(t *testing.T) {
	k := mustNew(t)
	cyl := k.Cylinder(0.1, 0.01, 64)
	moved := k.Translate(cyl, 0.1, 0.2, 0.3)
	if moved == nil {
		t.Fatal("Translate() returned nil")
	}

	min, max := moved.BoundingBox()
	if math.Abs(min[2]-0.3) > 1e-6 || math.Abs(max[2]-0.4) > 1e-6 {
		t.Errorf("Translate Z bounds = [%f, %f], want [0.3, 0.4]", min[2], max[2])
	}
	if math.Abs((min[0]+max[0])/2-0.1) > 1e-6 {
		t.Errorf("Translate X center = %f, want 0.1", (min[0]+max[0])/2)
	}
}

func TestToMesh(t *testing.T) {
	k := mustNew(t)
	cyl := k.Cylinder(0.1, 0.05, 64)
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if mesh == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if mesh.IsEmpty() {
		t.Error("ToMesh() returned empty mesh for a cylinder")
	}

	if mesh.TriangleCount() < 4 {
		t.Errorf("ToMesh() triangle count = %d, want >= 4", mesh.TriangleCount())
	}

	// Verify normals array has the same length as vertices.
	if len(mesh.Normals) != len(mesh.Vertices) {
		t.Errorf("ToMesh() normals length = %d, vertices length = %d, want equal",
			len(mesh.Normals), len(mesh.Vertices))
	}
}
