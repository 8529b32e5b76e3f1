package rocket

// ---------------------------------------------------------------------------
// Nose cone
// ---------------------------------------------------------------------------

// NoseConeData represents a hollow nose cone. BaseRadius may be automatic,
// in which case it is inferred from the adjoining body tube at resolution
// time. ShapeParam is the Haack C or parabolic K parameter; it is ignored
// for the other shape families.
type NoseConeData struct {
	Length     float64   `json:"length"` // m, tip to base
	Shape      NoseShape `json:"shape"`
	ShapeParam float64   `json:"shape_param,omitempty"`
	BaseRadius Radius    `json:"base_radius"`
	Thickness  float64   `json:"thickness"` // m, shell wall
}

func (NoseConeData) componentData() {}

func (d NoseConeData) AxialLength() float64 { return d.Length }

// ---------------------------------------------------------------------------
// Tubes
// ---------------------------------------------------------------------------

// BodyTubeData represents an airframe tube (cylindrical shell).
type BodyTubeData struct {
	Length      float64 `json:"length"`
	OuterRadius Radius  `json:"outer_radius"`
	Thickness   float64 `json:"thickness"`
}

func (BodyTubeData) componentData() {}

func (d BodyTubeData) AxialLength() float64 { return d.Length }

// InnerTubeData represents a tube mounted inside another component,
// typically a motor mount.
type InnerTubeData struct {
	Length      float64 `json:"length"`
	OuterRadius Radius  `json:"outer_radius"`
	Thickness   float64 `json:"thickness"`
	MotorMount  bool    `json:"motor_mount,omitempty"`
}

func (InnerTubeData) componentData() {}

func (d InnerTubeData) AxialLength() float64 { return d.Length }

// InnerRadius returns the bore radius when the outer radius is concrete.
func (d InnerTubeData) InnerRadius() (float64, bool) {
	if d.OuterRadius.Auto {
		return 0, false
	}
	return d.OuterRadius.Value - d.Thickness, true
}

// CouplerData represents a joining sleeve. Zero-length couplers are legal
// and resolve to a single point.
type CouplerData struct {
	Length      float64 `json:"length"`
	OuterRadius Radius  `json:"outer_radius"`
	Thickness   float64 `json:"thickness"`
}

func (CouplerData) componentData() {}

func (d CouplerData) AxialLength() float64 { return d.Length }

// LaunchLugData represents a launch lug or rail guide tube on the airframe.
type LaunchLugData struct {
	Length      float64 `json:"length"`
	OuterRadius Radius  `json:"outer_radius"`
	Thickness   float64 `json:"thickness"`
}

func (LaunchLugData) componentData() {}

func (d LaunchLugData) AxialLength() float64 { return d.Length }

// ---------------------------------------------------------------------------
// Transition
// ---------------------------------------------------------------------------

// TransitionData represents a conical frustum shell between two radii,
// such as a boat tail. Either radius may be automatic.
type TransitionData struct {
	Length     float64 `json:"length"`
	ForeRadius Radius  `json:"fore_radius"`
	AftRadius  Radius  `json:"aft_radius"`
	Thickness  float64 `json:"thickness"`
}

func (TransitionData) componentData() {}

func (d TransitionData) AxialLength() float64 { return d.Length }

// ---------------------------------------------------------------------------
// Fin set
// ---------------------------------------------------------------------------

// FinSetData represents a set of identical trapezoidal fins spaced evenly
// around the parent tube.
type FinSetData struct {
	Count       int     `json:"count"`
	RootChord   float64 `json:"root_chord"`
	TipChord    float64 `json:"tip_chord"`
	Span        float64 `json:"span"`
	SweepLength float64 `json:"sweep_length"`
	Thickness   float64 `json:"thickness"`
}

func (FinSetData) componentData() {}

func (d FinSetData) AxialLength() float64 { return d.RootChord }

// Planform returns the fin cross-section as a closed point sequence in the
// axial/span plane: root leading edge, root trailing edge, tip trailing
// edge, tip leading edge. Mass resolution derives the per-fin area from
// this polygon.
func (d FinSetData) Planform() []Point2 {
	return []Point2{
		{X: 0, Y: 0},
		{X: d.RootChord, Y: 0},
		{X: d.SweepLength + d.TipChord, Y: d.Span},
		{X: d.SweepLength, Y: d.Span},
	}
}

// ---------------------------------------------------------------------------
// Bulkhead
// ---------------------------------------------------------------------------

// BulkheadData represents a solid disc closing a tube section.
type BulkheadData struct {
	OuterRadius Radius  `json:"outer_radius"`
	Thickness   float64 `json:"thickness"` // axial extent
}

func (BulkheadData) componentData() {}

func (d BulkheadData) AxialLength() float64 { return d.Thickness }

// ---------------------------------------------------------------------------
// Discrete mass
// ---------------------------------------------------------------------------

// MassComponentData represents payload, avionics, or recovery hardware:
// items that occupy a packed volume but have no shape from which a mass
// could be derived. Components of this kind must carry a mass override;
// they contribute mass but no structural volume.
type MassComponentData struct {
	PackedLength float64 `json:"packed_length,omitempty"`
	PackedRadius float64 `json:"packed_radius,omitempty"`
}

func (MassComponentData) componentData() {}

func (d MassComponentData) AxialLength() float64 { return d.PackedLength }
