package rocket

import (
	"errors"
	"strings"
	"testing"
)

func mustAdd(t *testing.T, d *Design, parent int, c *Component) int {
	t.Helper()
	idx, err := d.AddComponent(parent, c)
	if err != nil {
		t.Fatalf("AddComponent(%q): %v", c.Name, err)
	}
	return idx
}

// buildTestRocket assembles a small single-stage rocket: nose cone, body
// tube with fins, launch lug, and a motor mount holding a bulkhead.
func buildTestRocket(t *testing.T) *Design {
	t.Helper()
	d := NewDesign("test-rocket")

	body := mustAdd(t, d, NoParent, &Component{
		Kind:     KindBodyTube,
		Name:     "airframe",
		Material: MaterialSpec{Name: "cardboard", Density: 680},
		Data:     BodyTubeData{Length: 0.6, OuterRadius: FixedRadius(0.025), Thickness: 0.001},
	})
	mustAdd(t, d, body, &Component{
		Kind:      KindNoseCone,
		Name:      "nose",
		Placement: Placement{Anchor: AnchorTop, Offset: -0.15},
		Material:  MaterialSpec{Name: "polystyrene", Density: 1050},
		Data:      NoseConeData{Length: 0.15, Shape: ShapeOgive, BaseRadius: AutoRadius(), Thickness: 0.002},
	})
	mustAdd(t, d, body, &Component{
		Kind:      KindFinSet,
		Name:      "fins",
		Placement: Placement{Anchor: AnchorBottom, Offset: -0.08},
		Material:  MaterialSpec{Name: "plywood", Density: 630},
		Data:      FinSetData{Count: 3, RootChord: 0.08, TipChord: 0.04, Span: 0.05, SweepLength: 0.03, Thickness: 0.003},
	})
	mustAdd(t, d, body, &Component{
		Kind:      KindLaunchLug,
		Name:      "lug",
		Placement: Placement{Anchor: AnchorMiddle},
		Material:  MaterialSpec{Name: "cardboard", Density: 680},
		Data:      LaunchLugData{Length: 0.05, OuterRadius: FixedRadius(0.003), Thickness: 0.0005},
	})
	mount := mustAdd(t, d, body, &Component{
		Kind:      KindInnerTube,
		Name:      "mount",
		Placement: Placement{Anchor: AnchorBottom, Offset: -0.07},
		Material:  MaterialSpec{Name: "cardboard", Density: 680},
		Data:      InnerTubeData{Length: 0.07, OuterRadius: FixedRadius(0.0095), Thickness: 0.0005, MotorMount: true},
	})
	mustAdd(t, d, mount, &Component{
		Kind:      KindBulkhead,
		Name:      "thrust-ring",
		Placement: Placement{Anchor: AnchorTop},
		Material:  MaterialSpec{Name: "plywood", Density: 630},
		Data:      BulkheadData{OuterRadius: FixedRadius(0.009), Thickness: 0.003},
	})
	return d
}

func TestAddComponentRootRules(t *testing.T) {
	d := NewDesign("r")
	if _, err := d.AddComponent(0, &Component{Kind: KindBodyTube, Data: BodyTubeData{}}); err == nil {
		t.Fatal("expected error adding child to empty design")
	}
	mustAdd(t, d, NoParent, &Component{Kind: KindBodyTube, Name: "body", Data: BodyTubeData{Length: 1, OuterRadius: FixedRadius(0.05), Thickness: 0.001}})
	if _, err := d.AddComponent(NoParent, &Component{Kind: KindBodyTube, Data: BodyTubeData{}}); err == nil {
		t.Fatal("expected error adding a second root")
	}
	if _, err := d.AddComponent(5, &Component{Kind: KindBodyTube, Data: BodyTubeData{}}); err == nil {
		t.Fatal("expected error for out-of-range parent")
	}
}

func TestDesignNavigation(t *testing.T) {
	d := buildTestRocket(t)

	if got := d.ComponentCount(); got != 6 {
		t.Fatalf("ComponentCount = %d, want 6", got)
	}
	if d.Root().Name != "airframe" {
		t.Fatalf("Root = %q, want airframe", d.Root().Name)
	}

	mount, ok := d.Lookup("mount")
	if !ok {
		t.Fatal("Lookup(mount) failed")
	}
	kids := d.Children(mount)
	if len(kids) != 1 || d.Get(kids[0]).Name != "thrust-ring" {
		t.Fatalf("Children(mount) = %v", kids)
	}

	if got := d.Path(kids[0]); got != "airframe/mount/thrust-ring" {
		t.Fatalf("Path = %q", got)
	}

	var order []string
	d.Walk(func(i int, c *Component) { order = append(order, c.Name) })
	want := "airframe nose fins lug mount thrust-ring"
	if got := strings.Join(order, " "); got != want {
		t.Fatalf("Walk order = %q, want %q", got, want)
	}
}

func TestComponentIDsAreStable(t *testing.T) {
	a := buildTestRocket(t)
	b := buildTestRocket(t)
	for i := range a.Components {
		if a.Components[i].ID != b.Components[i].ID {
			t.Errorf("component %d: ID %s != %s", i, a.Components[i].ID, b.Components[i].ID)
		}
		if a.Components[i].ID.IsZero() {
			t.Errorf("component %d: zero ID", i)
		}
	}
}

func TestValidateCleanDesign(t *testing.T) {
	d := buildTestRocket(t)
	if errs := Validate(d); len(errs) != 0 {
		t.Fatalf("Validate returned %d errors: %v", len(errs), errs)
	}
	res := ValidateAll(d)
	if len(res.Errors) != 0 {
		t.Fatalf("ValidateAll returned errors: %v", res.Errors)
	}
}

func TestValidateDuplicateNames(t *testing.T) {
	d := buildTestRocket(t)
	mustAdd(t, d, 0, &Component{
		Kind:     KindBulkhead,
		Name:     "nose", // clashes with the nose cone
		Material: MaterialSpec{Density: 630},
		Data:     BulkheadData{OuterRadius: FixedRadius(0.02), Thickness: 0.003},
	})
	errs := Validate(d)
	if len(errs) == 0 {
		t.Fatal("expected a duplicate-name error")
	}
	if !strings.Contains(errs[0].Message, "duplicate name") {
		t.Fatalf("unexpected message: %s", errs[0].Message)
	}
}

func TestValidatePayloadMismatch(t *testing.T) {
	d := buildTestRocket(t)
	// Corrupt a component: fin-set kind with body-tube payload.
	d.Components[2].Data = BodyTubeData{Length: 1, OuterRadius: FixedRadius(0.01), Thickness: 0.001}
	errs := Validate(d)
	if len(errs) == 0 {
		t.Fatal("expected payload mismatch error")
	}
}

func TestValidateGeometryFindings(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(d *Design)
		want   string
	}{
		{
			name: "negative tube length",
			mutate: func(d *Design) {
				d.Components[0].Data = BodyTubeData{Length: -1, OuterRadius: FixedRadius(0.025), Thickness: 0.001}
			},
			want: "length",
		},
		{
			name: "zero fin count",
			mutate: func(d *Design) {
				i, _ := d.Lookup("fins")
				data := d.Components[i].Data.(FinSetData)
				data.Count = 0
				d.Components[i].Data = data
			},
			want: "fin count",
		},
		{
			name: "mass component without override",
			mutate: func(d *Design) {
				mustAdd(t, d, 0, &Component{Kind: KindMass, Name: "payload", Data: MassComponentData{}})
			},
			want: "mass override",
		},
		{
			name: "missing density",
			mutate: func(d *Design) {
				d.Components[0].Material.Density = 0
			},
			want: "density",
		},
		{
			name: "parabolic shape parameter out of range",
			mutate: func(d *Design) {
				i, _ := d.Lookup("nose")
				d.Components[i].Data = NoseConeData{Length: 0.15, Shape: ShapeParabolic, ShapeParam: 2, BaseRadius: AutoRadius(), Thickness: 0.002}
			},
			want: "shape parameter",
		},
		{
			name: "negative Haack constant",
			mutate: func(d *Design) {
				i, _ := d.Lookup("nose")
				d.Components[i].Data = NoseConeData{Length: 0.15, Shape: ShapeHaack, ShapeParam: -0.5, BaseRadius: AutoRadius(), Thickness: 0.002}
			},
			want: "Haack",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := buildTestRocket(t)
			tc.mutate(d)
			res := ValidateAll(d)
			found := false
			for _, e := range res.Errors {
				if strings.Contains(e.Message, tc.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("no error containing %q in %v", tc.want, res.Errors)
			}
		})
	}
}

func TestValidateSelfReferentialParent(t *testing.T) {
	// Hand-built arena whose only component names itself as parent. The
	// validator must report the malformed tree, not follow the cycle.
	d := &Design{
		Name: "broken",
		Components: []*Component{{
			Kind:     KindBodyTube,
			Name:     "loop",
			Parent:   0,
			Material: MaterialSpec{Density: 680},
			Data:     BodyTubeData{Length: 0.5, OuterRadius: FixedRadius(0.02), Thickness: 0.001},
		}},
	}

	errs := Validate(d)
	if len(errs) == 0 {
		t.Fatal("expected a structural error for a self-referential parent")
	}
	if !strings.Contains(errs[0].Message, "root") {
		t.Fatalf("unexpected message: %s", errs[0].Message)
	}
}

func TestPathSurvivesParentCycle(t *testing.T) {
	bulkhead := func(name string, parent int) *Component {
		return &Component{
			Kind:     KindBulkhead,
			Name:     name,
			Parent:   parent,
			Material: MaterialSpec{Density: 630},
			Data:     BulkheadData{OuterRadius: FixedRadius(0.02), Thickness: 0.003},
		}
	}
	d := &Design{
		Name: "cyclic",
		Components: []*Component{
			{
				Kind:     KindBodyTube,
				Name:     "airframe",
				Parent:   NoParent,
				Material: MaterialSpec{Density: 680},
				Data:     BodyTubeData{Length: 0.5, OuterRadius: FixedRadius(0.02), Thickness: 0.001},
			},
			bulkhead("fore", 2), // 1 and 2 reference each other
			bulkhead("aft", 1),
		},
	}

	if got := d.Path(1); !strings.Contains(got, "#1") {
		t.Fatalf("Path(1) = %q, want index fallback for a cyclic chain", got)
	}
	if got := d.Path(0); got != "airframe" {
		t.Fatalf("Path(0) = %q, want airframe", got)
	}

	errs := Validate(d)
	if len(errs) == 0 {
		t.Fatal("expected structural errors for cyclic parent indices")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "does not precede") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no ordering error in %v", errs)
	}
}

func TestZeroLengthCouplerIsLegal(t *testing.T) {
	d := buildTestRocket(t)
	mustAdd(t, d, 0, &Component{
		Kind:      KindCoupler,
		Name:      "joint",
		Placement: Placement{Anchor: AnchorBottom},
		Material:  MaterialSpec{Density: 680},
		Data:      CouplerData{Length: 0, OuterRadius: FixedRadius(0.024), Thickness: 0.001},
	})
	res := ValidateAll(d)
	if len(res.Errors) != 0 {
		t.Fatalf("zero-length coupler flagged: %v", res.Errors)
	}
}

func TestDefaultConfigurationSelection(t *testing.T) {
	d := buildTestRocket(t)
	mount, _ := d.Lookup("mount")

	motor := &MotorSpec{Designation: "C6", Diameter: 0.018, Length: 0.07, TotalMass: 0.024}
	if err := d.AddConfiguration(&MotorConfiguration{ID: "flight", MountIndex: mount, Motor: motor, Default: true}); err != nil {
		t.Fatal(err)
	}
	if err := d.AddConfiguration(&MotorConfiguration{ID: "empty", MountIndex: mount}); err != nil {
		t.Fatal(err)
	}

	cfg, err := d.DefaultConfiguration()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ID != "flight" {
		t.Fatalf("default = %q, want flight", cfg.ID)
	}
}

func TestNoDefaultConfiguration(t *testing.T) {
	d := buildTestRocket(t)
	mount, _ := d.Lookup("mount")
	if err := d.AddConfiguration(&MotorConfiguration{ID: "a", MountIndex: mount}); err != nil {
		t.Fatal(err)
	}

	_, err := d.DefaultConfiguration()
	var ndc *NoDefaultConfigurationError
	if !errors.As(err, &ndc) {
		t.Fatalf("error = %v, want NoDefaultConfigurationError", err)
	}
	if len(ndc.Marked) != 0 {
		t.Fatalf("Marked = %v, want empty", ndc.Marked)
	}

	// Two defaults is just as wrong as zero.
	if err := d.AddConfiguration(&MotorConfiguration{ID: "b", MountIndex: mount, Default: true}); err != nil {
		t.Fatal(err)
	}
	if err := d.AddConfiguration(&MotorConfiguration{ID: "c", MountIndex: mount, Default: true}); err != nil {
		t.Fatal(err)
	}
	_, err = d.DefaultConfiguration()
	if !errors.As(err, &ndc) {
		t.Fatalf("error = %v, want NoDefaultConfigurationError", err)
	}
	if len(ndc.Marked) != 2 {
		t.Fatalf("Marked = %v, want two IDs", ndc.Marked)
	}
}

func TestConfigurationRequiresMotorMount(t *testing.T) {
	d := buildTestRocket(t)
	// The airframe is a body tube, not a mount.
	err := d.AddConfiguration(&MotorConfiguration{ID: "bad", MountIndex: 0})
	if err == nil {
		t.Fatal("expected error for non-mount component")
	}
}

func TestCheckMotorFit(t *testing.T) {
	d := buildTestRocket(t)
	mount, _ := d.Lookup("mount")

	tooFat := &MotorConfiguration{ID: "fat", MountIndex: mount,
		Motor: &MotorSpec{Designation: "D12", Diameter: 0.024, Length: 0.07}}
	var geo *InvalidGeometryError
	if err := d.CheckMotorFit(tooFat); !errors.As(err, &geo) {
		t.Fatalf("fat motor: error = %v, want InvalidGeometryError", err)
	}

	tooLong := &MotorConfiguration{ID: "long", MountIndex: mount,
		Motor: &MotorSpec{Designation: "E9", Diameter: 0.018, Length: 0.095}}
	if err := d.CheckMotorFit(tooLong); !errors.As(err, &geo) {
		t.Fatalf("long motor: error = %v, want InvalidGeometryError", err)
	}

	fits := &MotorConfiguration{ID: "ok", MountIndex: mount,
		Motor: &MotorSpec{Designation: "C6", Diameter: 0.018, Length: 0.07}}
	if err := d.CheckMotorFit(fits); err != nil {
		t.Fatalf("fitting motor rejected: %v", err)
	}
}

func TestMotorMounts(t *testing.T) {
	d := buildTestRocket(t)
	mounts := d.MotorMounts()
	if len(mounts) != 1 {
		t.Fatalf("MotorMounts = %v, want one entry", mounts)
	}
	if d.Get(mounts[0]).Name != "mount" {
		t.Fatalf("mount name = %q", d.Get(mounts[0]).Name)
	}
}

func TestParseNoseShape(t *testing.T) {
	shape, err := ParseNoseShape("von-karman")
	if err != nil {
		t.Fatal(err)
	}
	if shape != ShapeHaack {
		t.Fatalf("von-karman parsed as %s, want haack", shape)
	}
	if _, err := ParseNoseShape("pointy"); err == nil {
		t.Fatal("expected error for unknown shape")
	}
}

func TestFinPlanform(t *testing.T) {
	data := FinSetData{Count: 4, RootChord: 0.3048, TipChord: 0.01905, Span: 0.1524, SweepLength: 0.254, Thickness: 0.003}
	pts := data.Planform()
	if len(pts) != 4 {
		t.Fatalf("planform has %d points", len(pts))
	}
	if pts[2].Y != data.Span || pts[3].Y != data.Span {
		t.Fatal("tip points not at span height")
	}
	if pts[3].X != data.SweepLength {
		t.Fatalf("tip leading edge at %g, want %g", pts[3].X, data.SweepLength)
	}
}

func TestReferenceAvionicsSuite(t *testing.T) {
	suite := ReferenceAvionicsSuite()
	if len(suite) != 4 {
		t.Fatalf("suite has %d sensors, want 4", len(suite))
	}
	kinds := map[SensorKind]Sensor{}
	for _, s := range suite {
		kinds[s.Kind] = s
	}
	if acc := kinds[SensorAccelerometer]; !acc.ConsiderGravity || acc.Noise.SamplingRate != 100 {
		t.Fatalf("accelerometer misconfigured: %+v", acc)
	}
	if gnss := kinds[SensorGnss]; gnss.PositionAccuracy != 3.0 || gnss.AltitudeAccuracy != 5.0 {
		t.Fatalf("gnss misconfigured: %+v", gnss)
	}
}
