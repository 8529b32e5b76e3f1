package resolve

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/jmalven/phenolic/pkg/rocket"
)

func mustAdd(t *testing.T, d *rocket.Design, parent int, c *rocket.Component) int {
	t.Helper()
	idx, err := d.AddComponent(parent, c)
	if err != nil {
		t.Fatalf("AddComponent(%q): %v", c.Name, err)
	}
	return idx
}

// buildHPR assembles a high-power rocket in the 0.0778 m airframe class:
// Von Karman nose with automatic base radius, airframe with four fins and a
// boat tail, motor mount, avionics mass.
func buildHPR(t *testing.T) *rocket.Design {
	t.Helper()
	d := rocket.NewDesign("hpr")

	body := mustAdd(t, d, rocket.NoParent, &rocket.Component{
		Kind:     rocket.KindBodyTube,
		Name:     "airframe",
		Material: rocket.MaterialSpec{Name: "fiberglass", Density: 1650},
		Data:     rocket.BodyTubeData{Length: 2.0, OuterRadius: rocket.FixedRadius(0.0777875), Thickness: 0.0016},
	})
	mustAdd(t, d, body, &rocket.Component{
		Kind:      rocket.KindNoseCone,
		Name:      "nose",
		Placement: rocket.Placement{Anchor: rocket.AnchorTop, Offset: -0.381},
		Material:  rocket.MaterialSpec{Name: "fiberglass", Density: 1650},
		Data: rocket.NoseConeData{
			Length:     0.381,
			Shape:      rocket.ShapeHaack,
			BaseRadius: rocket.AutoRadius(),
			Thickness:  0.003,
		},
	})
	mustAdd(t, d, body, &rocket.Component{
		Kind:      rocket.KindFinSet,
		Name:      "fins",
		Placement: rocket.Placement{Anchor: rocket.AnchorBottom, Offset: -0.3048},
		Material:  rocket.MaterialSpec{Name: "plywood", Density: 630},
		Data: rocket.FinSetData{
			Count: 4, RootChord: 0.3048, TipChord: 0.01905,
			Span: 0.1524, SweepLength: 0.254, Thickness: 0.003,
		},
	})
	mustAdd(t, d, body, &rocket.Component{
		Kind:      rocket.KindTransition,
		Name:      "boat-tail",
		Placement: rocket.Placement{Anchor: rocket.AnchorBottom},
		Material:  rocket.MaterialSpec{Name: "fiberglass", Density: 1650},
		Data: rocket.TransitionData{
			Length:     0.0508,
			ForeRadius: rocket.AutoRadius(),
			AftRadius:  rocket.FixedRadius(0.0635),
			Thickness:  0.003,
		},
	})
	mount := mustAdd(t, d, body, &rocket.Component{
		Kind:      rocket.KindInnerTube,
		Name:      "mount",
		Placement: rocket.Placement{Anchor: rocket.AnchorBottom, Offset: -0.6},
		Material:  rocket.MaterialSpec{Name: "phenolic", Density: 950},
		Data:      rocket.InnerTubeData{Length: 0.6, OuterRadius: rocket.FixedRadius(0.0385), Thickness: 0.002, MotorMount: true},
	})
	mustAdd(t, d, mount, &rocket.Component{
		Kind:      rocket.KindBulkhead,
		Name:      "thrust-plate",
		Placement: rocket.Placement{Anchor: rocket.AnchorTop},
		Material:  rocket.MaterialSpec{Name: "aluminum", Density: 2700},
		Data:      rocket.BulkheadData{OuterRadius: rocket.AutoRadius(), Thickness: 0.006},
	})
	mustAdd(t, d, body, &rocket.Component{
		Kind:      rocket.KindMass,
		Name:      "avionics",
		Placement: rocket.Placement{Anchor: rocket.AnchorTop, Offset: 0.2},
		Mass:      rocket.MassOverride(0.45),
		Data:      rocket.MassComponentData{PackedLength: 0.1, PackedRadius: 0.03},
	})
	return d
}

func mustResolve(t *testing.T, d *rocket.Design) *Snapshot {
	t.Helper()
	snap, err := Resolve(d)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return snap
}

func TestResolveIdempotent(t *testing.T) {
	d := buildHPR(t)
	a := mustResolve(t, d)
	b := mustResolve(t, d)

	if a.Mass != b.Mass {
		t.Fatalf("mass properties differ between runs: %+v vs %+v", a.Mass, b.Mass)
	}
	for i := range a.Components {
		if a.Components[i] != b.Components[i] {
			t.Fatalf("component %d differs between runs:\n%+v\n%+v", i, a.Components[i], b.Components[i])
		}
	}
}

func TestAutomaticRadiusResolvesExactly(t *testing.T) {
	snap := mustResolve(t, buildHPR(t))

	nose, ok := snap.ByName("nose")
	if !ok {
		t.Fatal("nose not in snapshot")
	}
	if nose.AftRadius != 0.0777875 {
		t.Fatalf("nose base radius = %v, want exactly 0.0777875", nose.AftRadius)
	}

	tail, _ := snap.ByName("boat-tail")
	if tail.ForeRadius != 0.0777875 {
		t.Fatalf("boat tail fore radius = %v, want exactly 0.0777875", tail.ForeRadius)
	}
	if tail.AftRadius != 0.0635 {
		t.Fatalf("boat tail aft radius = %v, want 0.0635", tail.AftRadius)
	}

	// The thrust plate sits inside the mount, so its automatic radius is
	// the mount bore, not the outer surface.
	plate, _ := snap.ByName("thrust-plate")
	if want := 0.0385 - 0.002; math.Abs(plate.ForeRadius-want) > 1e-12 {
		t.Fatalf("thrust plate radius = %v, want %v", plate.ForeRadius, want)
	}
}

func TestPositions(t *testing.T) {
	snap := mustResolve(t, buildHPR(t))

	nose, _ := snap.ByName("nose")
	if nose.Span.Top != -0.381 || nose.Span.Bottom != 0 {
		t.Fatalf("nose span = %+v", nose.Span)
	}
	body, _ := snap.ByName("airframe")
	if body.Span.Top != 0 || body.Span.Bottom != 2.0 {
		t.Fatalf("airframe span = %+v", body.Span)
	}
	tail, _ := snap.ByName("boat-tail")
	if tail.Span.Top != 2.0 {
		t.Fatalf("boat tail top = %v, want 2.0", tail.Span.Top)
	}
	fins, _ := snap.ByName("fins")
	if got := fins.Span.Top; math.Abs(got-(2.0-0.3048)) > 1e-12 {
		t.Fatalf("fin top = %v", got)
	}
	if got := snap.OverallLength(); math.Abs(got-(0.381+2.0+0.0508)) > 1e-12 {
		t.Fatalf("overall length = %v", got)
	}
}

func TestMassOverrideIsExact(t *testing.T) {
	d := buildHPR(t)
	// Pin the airframe mass; density and dimensions must stop mattering.
	i, _ := d.Lookup("airframe")
	d.Components[i].Mass = rocket.MassOverride(3.21)
	d.Components[i].Material.Density = 999999

	snap := mustResolve(t, d)
	body, _ := snap.ByName("airframe")
	if body.Mass != 3.21 {
		t.Fatalf("overridden mass = %v, want exactly 3.21", body.Mass)
	}
	av, _ := snap.ByName("avionics")
	if av.Mass != 0.45 {
		t.Fatalf("avionics mass = %v, want exactly 0.45", av.Mass)
	}
}

func TestTotalMassIsComponentSum(t *testing.T) {
	snap := mustResolve(t, buildHPR(t))
	var sum float64
	for _, rc := range snap.Components {
		sum += rc.Mass
	}
	if math.Abs(sum-snap.Mass.Mass) > 1e-12 {
		t.Fatalf("total %v != component sum %v", snap.Mass.Mass, sum)
	}
}

func TestCenterOfGravityFirstMoment(t *testing.T) {
	snap := mustResolve(t, buildHPR(t))
	var moment float64
	for _, rc := range snap.Components {
		moment += rc.Mass * (rc.Centroid - snap.Mass.CG)
	}
	if math.Abs(moment) > 1e-9 {
		t.Fatalf("first moment about CG = %v, want ≈ 0", moment)
	}
}

func TestBodyTubeShellMass(t *testing.T) {
	d := rocket.NewDesign("tube-only")
	mustAdd(t, d, rocket.NoParent, &rocket.Component{
		Kind:     rocket.KindBodyTube,
		Name:     "tube",
		Material: rocket.MaterialSpec{Density: 1650},
		Data:     rocket.BodyTubeData{Length: 1.0, OuterRadius: rocket.FixedRadius(0.0778), Thickness: 0.0016},
	})
	snap := mustResolve(t, d)

	want := 1650 * math.Pi * (0.0778*0.0778 - 0.0762*0.0762) * 1.0
	got := snap.Mass.Mass
	if math.Abs(got-want)/want > 0.01 {
		t.Fatalf("shell mass = %v, want %v ±1%%", got, want)
	}
	if math.Abs(want-1.27)/1.27 > 0.01 {
		t.Fatalf("reference value drifted: %v", want)
	}
}

func TestZeroLengthCouplerResolvesToPoint(t *testing.T) {
	d := buildHPR(t)
	joint := mustAdd(t, d, 0, &rocket.Component{
		Kind:      rocket.KindCoupler,
		Name:      "joint",
		Placement: rocket.Placement{Anchor: rocket.AnchorTop, Offset: 1.0},
		Material:  rocket.MaterialSpec{Density: 1650},
		Data:      rocket.CouplerData{Length: 0, OuterRadius: rocket.FixedRadius(0.076), Thickness: 0.0016},
	})
	mustAdd(t, d, joint, &rocket.Component{
		Kind:      rocket.KindBulkhead,
		Name:      "ring",
		Placement: rocket.Placement{Anchor: rocket.AnchorBottom},
		Material:  rocket.MaterialSpec{Density: 630},
		Data:      rocket.BulkheadData{OuterRadius: rocket.AutoRadius(), Thickness: 0.003},
	})

	snap := mustResolve(t, d)
	c, _ := snap.ByName("joint")
	if c.Span.Top != 1.0 || c.Span.Bottom != 1.0 {
		t.Fatalf("coupler span = %+v, want point at 1.0", c.Span)
	}
	if c.Mass != 0 {
		t.Fatalf("zero-length coupler mass = %v, want 0", c.Mass)
	}
	ring, _ := snap.ByName("ring")
	if ring.Span.Top != 1.0 {
		t.Fatalf("ring anchored to coupler point resolves to %v", ring.Span.Top)
	}
}

func TestAutomaticRadiusOnRootFails(t *testing.T) {
	d := rocket.NewDesign("bad")
	mustAdd(t, d, rocket.NoParent, &rocket.Component{
		Kind:     rocket.KindBodyTube,
		Name:     "tube",
		Material: rocket.MaterialSpec{Density: 1650},
		Data:     rocket.BodyTubeData{Length: 1, OuterRadius: rocket.AutoRadius(), Thickness: 0.001},
	})

	_, err := Resolve(d)
	var unresolved *rocket.AutomaticRadiusUnresolvedError
	if !errors.As(err, &unresolved) {
		t.Fatalf("error = %v, want AutomaticRadiusUnresolvedError", err)
	}
	if unresolved.Path != "tube" {
		t.Fatalf("offending path = %q", unresolved.Path)
	}
}

func TestUnresolvedReference(t *testing.T) {
	// Hand-build a malformed arena where a child precedes its parent; the
	// position pass must refuse it as a structural-integrity failure.
	d := rocket.NewDesign("malformed")
	mustAdd(t, d, rocket.NoParent, &rocket.Component{
		Kind:     rocket.KindBodyTube,
		Name:     "a",
		Material: rocket.MaterialSpec{Density: 1},
		Data:     rocket.BodyTubeData{Length: 1, OuterRadius: rocket.FixedRadius(0.01), Thickness: 0.001},
	})
	mustAdd(t, d, 0, &rocket.Component{
		Kind:     rocket.KindBodyTube,
		Name:     "b",
		Material: rocket.MaterialSpec{Density: 1},
		Data:     rocket.BodyTubeData{Length: 1, OuterRadius: rocket.FixedRadius(0.01), Thickness: 0.001},
	})
	d.Components[1].Parent = 1 // forward reference

	_, err := resolvePositions(d)
	var unresolved *rocket.UnresolvedReferenceError
	if !errors.As(err, &unresolved) {
		t.Fatalf("error = %v, want UnresolvedReferenceError", err)
	}
}

func TestParabolicShapeParameterRejected(t *testing.T) {
	// K=2 makes the parabolic profile divide by zero. Resolution must fail
	// naming the nose cone, never hand back NaN mass properties.
	d := rocket.NewDesign("bad-nose")
	body := mustAdd(t, d, rocket.NoParent, &rocket.Component{
		Kind:     rocket.KindBodyTube,
		Name:     "tube",
		Material: rocket.MaterialSpec{Density: 1650},
		Data:     rocket.BodyTubeData{Length: 0.5, OuterRadius: rocket.FixedRadius(0.05), Thickness: 0.001},
	})
	mustAdd(t, d, body, &rocket.Component{
		Kind:      rocket.KindNoseCone,
		Name:      "nose",
		Placement: rocket.Placement{Anchor: rocket.AnchorTop, Offset: -0.3},
		Material:  rocket.MaterialSpec{Density: 1650},
		Data: rocket.NoseConeData{
			Length:     0.3,
			Shape:      rocket.ShapeParabolic,
			ShapeParam: 2,
			BaseRadius: rocket.AutoRadius(),
			Thickness:  0.002,
		},
	})

	snap, err := Resolve(d)
	if err == nil {
		t.Fatalf("Resolve succeeded with mass %v, want shape parameter rejection", snap.Mass.Mass)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot on failure")
	}
	if !strings.Contains(err.Error(), "nose") || !strings.Contains(err.Error(), "shape parameter") {
		t.Fatalf("error = %v, want it to name the nose and the shape parameter", err)
	}

	// K=1 is the full parabola and resolves to finite mass properties.
	nose, _ := d.Lookup("nose")
	data := d.Components[nose].Data.(rocket.NoseConeData)
	data.ShapeParam = 1
	d.Components[nose].Data = data
	good := mustResolve(t, d)
	if math.IsNaN(good.Mass.Mass) || math.IsNaN(good.Mass.CG) {
		t.Fatalf("mass properties not finite: %+v", good.Mass)
	}
}

func TestMotorFitAgainstResolvedBore(t *testing.T) {
	d := buildHPR(t)
	mount, _ := d.Lookup("mount")
	cfg := &rocket.MotorConfiguration{
		ID:         "flight",
		MountIndex: mount,
		Default:    true,
		Motor:      &rocket.MotorSpec{Designation: "M2500T", Diameter: 0.075, Length: 0.579, TotalMass: 4.77},
	}
	if err := d.AddConfiguration(cfg); err != nil {
		t.Fatal(err)
	}

	// 75 mm motor in a 73 mm bore: rejected during resolution.
	_, err := Resolve(d)
	var geo *rocket.InvalidGeometryError
	if !errors.As(err, &geo) {
		t.Fatalf("error = %v, want InvalidGeometryError", err)
	}

	// Shrink to a 54 mm motor and resolution succeeds.
	cfg.Motor = &rocket.MotorSpec{Designation: "K540", Diameter: 0.054, Length: 0.579, TotalMass: 1.9}
	mustResolve(t, d)
}

func TestNoseConeMassAgainstClosedForm(t *testing.T) {
	// A conical shell thin enough that the clamped inner profile matches
	// the exact frustum difference. Outer cone volume πR²L/3 minus inner
	// cone π(R−t·secα)²(L−…)/3 is awkward; instead compare against a fine
	// Riemann sum of the same section function.
	d := rocket.NewDesign("cone")
	body := mustAdd(t, d, rocket.NoParent, &rocket.Component{
		Kind:     rocket.KindBodyTube,
		Name:     "tube",
		Material: rocket.MaterialSpec{Density: 1650},
		Data:     rocket.BodyTubeData{Length: 0.5, OuterRadius: rocket.FixedRadius(0.05), Thickness: 0.001},
	})
	mustAdd(t, d, body, &rocket.Component{
		Kind:      rocket.KindNoseCone,
		Name:      "cone",
		Placement: rocket.Placement{Anchor: rocket.AnchorTop, Offset: -0.2},
		Material:  rocket.MaterialSpec{Density: 1650},
		Data: rocket.NoseConeData{
			Length:     0.2,
			Shape:      rocket.ShapeConical,
			BaseRadius: rocket.AutoRadius(),
			Thickness:  0.002,
		},
	})
	snap := mustResolve(t, d)
	cone, _ := snap.ByName("cone")

	const steps = 200000
	profile := func(x float64) float64 { return 0.05 * x / 0.2 }
	var sum float64
	for i := 0; i < steps; i++ {
		x := (float64(i) + 0.5) * 0.2 / steps
		ro := profile(x)
		ri := ro - 0.002
		if ri < 0 {
			ri = 0
		}
		sum += (ro*ro - ri*ri) * (0.2 / steps)
	}
	want := 1650 * math.Pi * sum
	if math.Abs(cone.Mass-want)/want > 0.001 {
		t.Fatalf("cone mass = %v, want %v ±0.1%%", cone.Mass, want)
	}
}

func TestHaackProfileEndpoints(t *testing.T) {
	profile := NoseProfile(rocket.ShapeHaack, 0, 0.0777875, 0.381)
	if r := profile(0); r != 0 {
		t.Fatalf("tip radius = %v, want 0", r)
	}
	if r := profile(0.381); math.Abs(r-0.0777875) > 1e-9 {
		t.Fatalf("base radius = %v, want 0.0777875", r)
	}
	// Von Karman is monotonic in x.
	prev := 0.0
	for i := 1; i <= 100; i++ {
		r := profile(0.381 * float64(i) / 100)
		if r < prev {
			t.Fatalf("profile not monotonic at step %d", i)
		}
		prev = r
	}
}

func TestPlanformArea(t *testing.T) {
	// Unit square.
	area, cx := planformArea([]rocket.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	if math.Abs(area-1) > 1e-12 || math.Abs(cx-0.5) > 1e-12 {
		t.Fatalf("square: area=%v cx=%v", area, cx)
	}
	// Trapezoidal fin: area must match (root+tip)/2 × span.
	fin := rocket.FinSetData{RootChord: 0.3048, TipChord: 0.01905, Span: 0.1524, SweepLength: 0.254}
	area, _ = planformArea(fin.Planform())
	want := (fin.RootChord + fin.TipChord) / 2 * fin.Span
	if math.Abs(area-want) > 1e-12 {
		t.Fatalf("fin area = %v, want %v", area, want)
	}
}
