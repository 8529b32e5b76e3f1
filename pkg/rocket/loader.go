package rocket

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
)

// This file loads a declarative rocket description from JSON. The format is
// the cross-boundary contract for machine-produced descriptions (e.g. the
// OpenRocket converter): flat component list, parents by name, all values in
// SI units. Unknown fields are ignored so the format can grow.

// internal JSON shapes, kept unexported so the schema can evolve freely.
type designJSON struct {
	Name           string          `json:"name"`
	Components     []componentJSON `json:"components"`
	Configurations []configJSON    `json:"motor_configurations"`
	Sensors        []sensorJSON    `json:"sensors"`
}

type componentJSON struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Parent   string  `json:"parent"` // empty = root
	Anchor   string  `json:"anchor"` // top | middle | bottom; empty = top
	Offset   float64 `json:"offset"`
	Material struct {
		Name    string  `json:"name"`
		Density float64 `json:"density"`
	} `json:"material"`
	MassOverride *float64 `json:"mass_override"`

	// Kind-specific dimensions; unused fields are simply absent.
	Length      float64     `json:"length"`
	Thickness   float64     `json:"thickness"`
	OuterRadius *radiusJSON `json:"outer_radius"`
	BaseRadius  *radiusJSON `json:"base_radius"`
	ForeRadius  *radiusJSON `json:"fore_radius"`
	AftRadius   *radiusJSON `json:"aft_radius"`
	Shape       string      `json:"shape"`
	ShapeParam  float64     `json:"shape_param"`
	Count       int         `json:"count"`
	RootChord   float64     `json:"root_chord"`
	TipChord    float64     `json:"tip_chord"`
	Span        float64     `json:"span"`
	SweepLength float64     `json:"sweep_length"`
	MotorMount  bool        `json:"motor_mount"`
	PackedLen   float64     `json:"packed_length"`
	PackedRad   float64     `json:"packed_radius"`
}

// radiusJSON accepts either a number or the string "auto".
type radiusJSON struct {
	r Radius
}

func (r *radiusJSON) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != "auto" {
			return fmt.Errorf("radius: expected number or \"auto\", got %q", s)
		}
		r.r = AutoRadius()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("radius: expected number or \"auto\": %w", err)
	}
	r.r = FixedRadius(v)
	return nil
}

type configJSON struct {
	ID            string  `json:"id"`
	Mount         string  `json:"mount"` // component name of the housing inner tube
	Default       bool    `json:"default"`
	IgnitionDelay float64 `json:"ignition_delay"`
	Motor         *struct {
		Designation string  `json:"designation"`
		Diameter    float64 `json:"diameter"`
		Length      float64 `json:"length"`
		TotalMass   float64 `json:"total_mass"`
		ThrustCurve string  `json:"thrust_curve"`
	} `json:"motor"`
}

type sensorJSON struct {
	Kind             string     `json:"kind"`
	Name             string     `json:"name"`
	Position         float64    `json:"position"`
	Orientation      [3]float64 `json:"orientation"`
	Noise            NoiseModel `json:"noise"`
	ConsiderGravity  bool       `json:"consider_gravity"`
	PositionAccuracy float64    `json:"position_accuracy"`
	AltitudeAccuracy float64    `json:"altitude_accuracy"`
}

// LoadDesign reads a JSON rocket description from r and builds a Design.
// Components must be listed parent-before-child. The result is structurally
// validated; callers still run full resolution to surface geometric
// problems.
func LoadDesign(r io.Reader) (*Design, error) {
	var dj designJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&dj); err != nil {
		return nil, fmt.Errorf("decode rocket description: %w", err)
	}

	d := NewDesign(dj.Name)
	for i, cj := range dj.Components {
		c, err := componentFromJSON(cj)
		if err != nil {
			return nil, fmt.Errorf("component %d (%q): %w", i, cj.Name, err)
		}
		parent := NoParent
		if cj.Parent != "" {
			idx, ok := d.Lookup(cj.Parent)
			if !ok {
				return nil, fmt.Errorf("component %d (%q): parent %q not defined before its child", i, cj.Name, cj.Parent)
			}
			parent = idx
		}
		if _, err := d.AddComponent(parent, c); err != nil {
			return nil, fmt.Errorf("component %d (%q): %w", i, cj.Name, err)
		}
	}

	for _, kj := range dj.Configurations {
		idx, ok := d.Lookup(kj.Mount)
		if !ok {
			return nil, fmt.Errorf("motor configuration %q: unknown mount %q", kj.ID, kj.Mount)
		}
		cfg := &MotorConfiguration{
			ID:            kj.ID,
			MountIndex:    idx,
			Default:       kj.Default,
			IgnitionDelay: kj.IgnitionDelay,
		}
		if kj.Motor != nil {
			cfg.Motor = &MotorSpec{
				Designation: kj.Motor.Designation,
				Diameter:    kj.Motor.Diameter,
				Length:      kj.Motor.Length,
				TotalMass:   kj.Motor.TotalMass,
				ThrustCurve: kj.Motor.ThrustCurve,
			}
		}
		if err := d.AddConfiguration(cfg); err != nil {
			return nil, err
		}
	}

	for _, sj := range dj.Sensors {
		kind, err := parseSensorKind(sj.Kind)
		if err != nil {
			return nil, fmt.Errorf("sensor %q: %w", sj.Name, err)
		}
		d.AddSensor(SensorMount{
			Sensor: Sensor{
				Kind:             kind,
				Name:             sj.Name,
				Noise:            sj.Noise,
				ConsiderGravity:  sj.ConsiderGravity,
				PositionAccuracy: sj.PositionAccuracy,
				AltitudeAccuracy: sj.AltitudeAccuracy,
			},
			Position:    sj.Position,
			Orientation: mgl64.Vec3{sj.Orientation[0], sj.Orientation[1], sj.Orientation[2]},
		})
	}

	if errs := Validate(d); len(errs) > 0 {
		return nil, fmt.Errorf("invalid rocket description: %s", errs[0].Error())
	}
	return d, nil
}

func componentFromJSON(cj componentJSON) (*Component, error) {
	anchor, err := parseAnchor(cj.Anchor)
	if err != nil {
		return nil, err
	}

	radius := func(rj *radiusJSON) Radius {
		if rj == nil {
			return AutoRadius()
		}
		return rj.r
	}

	var data ComponentData
	var kind ComponentKind
	switch cj.Kind {
	case "nose_cone", "nose-cone":
		shape, err := ParseNoseShape(cj.Shape)
		if err != nil {
			return nil, err
		}
		kind = KindNoseCone
		data = NoseConeData{
			Length:     cj.Length,
			Shape:      shape,
			ShapeParam: cj.ShapeParam,
			BaseRadius: radius(cj.BaseRadius),
			Thickness:  cj.Thickness,
		}
	case "body_tube", "body-tube":
		kind = KindBodyTube
		data = BodyTubeData{Length: cj.Length, OuterRadius: radius(cj.OuterRadius), Thickness: cj.Thickness}
	case "transition":
		kind = KindTransition
		data = TransitionData{
			Length:     cj.Length,
			ForeRadius: radius(cj.ForeRadius),
			AftRadius:  radius(cj.AftRadius),
			Thickness:  cj.Thickness,
		}
	case "inner_tube", "inner-tube":
		kind = KindInnerTube
		data = InnerTubeData{Length: cj.Length, OuterRadius: radius(cj.OuterRadius), Thickness: cj.Thickness, MotorMount: cj.MotorMount}
	case "fin_set", "fin-set":
		kind = KindFinSet
		data = FinSetData{
			Count:       cj.Count,
			RootChord:   cj.RootChord,
			TipChord:    cj.TipChord,
			Span:        cj.Span,
			SweepLength: cj.SweepLength,
			Thickness:   cj.Thickness,
		}
	case "bulkhead":
		kind = KindBulkhead
		data = BulkheadData{OuterRadius: radius(cj.OuterRadius), Thickness: cj.Thickness}
	case "coupler":
		kind = KindCoupler
		data = CouplerData{Length: cj.Length, OuterRadius: radius(cj.OuterRadius), Thickness: cj.Thickness}
	case "launch_lug", "launch-lug":
		kind = KindLaunchLug
		data = LaunchLugData{Length: cj.Length, OuterRadius: radius(cj.OuterRadius), Thickness: cj.Thickness}
	case "mass":
		kind = KindMass
		data = MassComponentData{PackedLength: cj.PackedLen, PackedRadius: cj.PackedRad}
	default:
		return nil, fmt.Errorf("unknown component kind %q", cj.Kind)
	}

	c := &Component{
		Kind:      kind,
		Name:      cj.Name,
		Placement: Placement{Anchor: anchor, Offset: cj.Offset},
		Material:  MaterialSpec{Name: cj.Material.Name, Density: cj.Material.Density},
		Data:      data,
	}
	if cj.MassOverride != nil {
		c.Mass = MassOverride(*cj.MassOverride)
	}
	return c, nil
}

func parseAnchor(s string) (Anchor, error) {
	switch s {
	case "", "top":
		return AnchorTop, nil
	case "middle":
		return AnchorMiddle, nil
	case "bottom":
		return AnchorBottom, nil
	}
	return 0, fmt.Errorf("unknown anchor %q", s)
}

func parseSensorKind(s string) (SensorKind, error) {
	switch s {
	case "accelerometer":
		return SensorAccelerometer, nil
	case "gyroscope":
		return SensorGyroscope, nil
	case "barometer":
		return SensorBarometer, nil
	case "gnss", "gps":
		return SensorGnss, nil
	}
	return 0, fmt.Errorf("unknown sensor kind %q", s)
}
