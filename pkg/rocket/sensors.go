package rocket

import "github.com/go-gl/mathgl/mgl64"

// SensorKind enumerates the supported sensor types.
type SensorKind int

const (
	SensorAccelerometer SensorKind = iota
	SensorGyroscope
	SensorBarometer
	SensorGnss
)

func (k SensorKind) String() string {
	switch k {
	case SensorAccelerometer:
		return "accelerometer"
	case SensorGyroscope:
		return "gyroscope"
	case SensorBarometer:
		return "barometer"
	case SensorGnss:
		return "gnss"
	default:
		return "unknown"
	}
}

// NoiseModel is the standard stochastic error description attached to a
// sampled sensor. Units follow the measured quantity; densities are per
// √Hz. This is static configuration consumed by the external simulation
// library; nothing here is computed.
type NoiseModel struct {
	SamplingRate       float64 `json:"sampling_rate"` // Hz
	MeasurementRange   float64 `json:"measurement_range"`
	NoiseDensity       float64 `json:"noise_density"`
	NoiseVariance      float64 `json:"noise_variance"`
	RandomWalkDensity  float64 `json:"random_walk_density"`
	RandomWalkVariance float64 `json:"random_walk_variance"`
	ConstantBias       float64 `json:"constant_bias"`
}

// Sensor describes one sensor in the avionics suite. PositionAccuracy and
// AltitudeAccuracy apply to GNSS receivers only; ConsiderGravity applies to
// accelerometers only.
type Sensor struct {
	Kind             SensorKind `json:"kind"`
	Name             string     `json:"name,omitempty"`
	Noise            NoiseModel `json:"noise"`
	ConsiderGravity  bool       `json:"consider_gravity,omitempty"`
	PositionAccuracy float64    `json:"position_accuracy,omitempty"` // m
	AltitudeAccuracy float64    `json:"altitude_accuracy,omitempty"` // m
}

// SensorMount attaches a sensor at an axial position in the rocket frame.
// Orientation is Euler angles in degrees relative to the body axes;
// (0,0,0) is aligned with the rocket.
type SensorMount struct {
	Sensor      Sensor     `json:"sensor"`
	Position    float64    `json:"position"` // m from the nose tip, tail-positive
	Orientation mgl64.Vec3 `json:"orientation"`
}

// AddSensor mounts a sensor on the design.
func (d *Design) AddSensor(m SensorMount) {
	d.Sensors = append(d.Sensors, m)
}

// ReferenceAvionicsSuite returns a sensor table with MEMS-typical noise
// parameters: 100 Hz IMU, 50 Hz barometer, 10 Hz GNSS. Useful as a starting
// point for flight-computer simulation when no measured sensor
// characterization is available.
func ReferenceAvionicsSuite() []Sensor {
	return []Sensor{
		{
			Kind: SensorAccelerometer,
			Name: "accelerometer",
			Noise: NoiseModel{
				SamplingRate:       100,
				MeasurementRange:   160, // m/s², ~16g
				NoiseDensity:       0.0003,
				NoiseVariance:      1,
				RandomWalkDensity:  0.00001,
				RandomWalkVariance: 1,
			},
			ConsiderGravity: true,
		},
		{
			Kind: SensorGyroscope,
			Name: "gyroscope",
			Noise: NoiseModel{
				SamplingRate:       100,
				MeasurementRange:   8.727, // rad/s, ~500 deg/s
				NoiseDensity:       0.0001,
				NoiseVariance:      1,
				RandomWalkDensity:  0.000001,
				RandomWalkVariance: 1,
			},
		},
		{
			Kind: SensorBarometer,
			Name: "barometer",
			Noise: NoiseModel{
				SamplingRate:       50,
				MeasurementRange:   120000, // Pa, sea level to ~10 km
				NoiseDensity:       0.1,
				NoiseVariance:      1,
				RandomWalkDensity:  0.01,
				RandomWalkVariance: 1,
			},
		},
		{
			Kind:             SensorGnss,
			Name:             "gnss",
			Noise:            NoiseModel{SamplingRate: 10},
			PositionAccuracy: 3.0,
			AltitudeAccuracy: 5.0,
		},
	}
}
