package rocket

import "fmt"

// MotorSpec identifies a motor selection. Thrust-curve data lives in an
// external file this package does not parse; only the identity binding and
// the dimensions needed for fit checks are tracked here.
type MotorSpec struct {
	Designation string  `json:"designation"` // e.g. "M2500T"
	Diameter    float64 `json:"diameter"`    // m
	Length      float64 `json:"length"`      // m
	TotalMass   float64 `json:"total_mass"`  // kg, loaded
	ThrustCurve string  `json:"thrust_curve,omitempty"` // external file reference
}

// MotorConfiguration is a named slot within a motor-mount inner tube,
// holding zero or one motor selection. Exactly one configuration per design
// is marked default.
type MotorConfiguration struct {
	ID            string     `json:"id"`
	MountIndex    int        `json:"mount_index"` // arena index of the housing inner tube
	Motor         *MotorSpec `json:"motor,omitempty"` // nil = empty slot
	Default       bool       `json:"default,omitempty"`
	IgnitionDelay float64    `json:"ignition_delay,omitempty"` // s
}

// AddConfiguration registers a motor configuration. The mount must be an
// inner tube flagged as a motor mount.
func (d *Design) AddConfiguration(cfg *MotorConfiguration) error {
	c := d.Get(cfg.MountIndex)
	if c == nil {
		return fmt.Errorf("motor configuration %q: mount index %d out of range", cfg.ID, cfg.MountIndex)
	}
	it, ok := c.Data.(InnerTubeData)
	if !ok || !it.MotorMount {
		return fmt.Errorf("motor configuration %q: component %q is not a motor mount", cfg.ID, d.Path(cfg.MountIndex))
	}
	d.Configurations = append(d.Configurations, cfg)
	return nil
}

// DefaultConfiguration resolves the single active motor configuration.
// It fails with NoDefaultConfigurationError when zero or more than one
// configuration is marked default.
func (d *Design) DefaultConfiguration() (*MotorConfiguration, error) {
	var marked []string
	var active *MotorConfiguration
	for _, cfg := range d.Configurations {
		if cfg.Default {
			marked = append(marked, cfg.ID)
			active = cfg
		}
	}
	if len(marked) != 1 {
		return nil, &NoDefaultConfigurationError{Marked: marked}
	}
	return active, nil
}

// CheckMotorFit verifies that the configured motor physically fits its
// housing inner tube: diameter against the bore, length against the tube.
// Automatic mount radii cannot be checked here and are skipped; resolution
// repeats the check with concrete geometry.
func (d *Design) CheckMotorFit(cfg *MotorConfiguration) error {
	if cfg.Motor == nil {
		return nil
	}
	c := d.Get(cfg.MountIndex)
	if c == nil {
		return fmt.Errorf("motor configuration %q: mount index %d out of range", cfg.ID, cfg.MountIndex)
	}
	it, ok := c.Data.(InnerTubeData)
	if !ok {
		return fmt.Errorf("motor configuration %q: component %q is not an inner tube", cfg.ID, d.Path(cfg.MountIndex))
	}
	path := d.Path(cfg.MountIndex)
	if bore, ok := it.InnerRadius(); ok && cfg.Motor.Diameter > 2*bore {
		return &InvalidGeometryError{
			Path: path,
			Reason: fmt.Sprintf("motor %s diameter %.4f m exceeds mount bore %.4f m",
				cfg.Motor.Designation, cfg.Motor.Diameter, 2*bore),
		}
	}
	if cfg.Motor.Length > it.Length {
		return &InvalidGeometryError{
			Path: path,
			Reason: fmt.Sprintf("motor %s length %.4f m exceeds mount length %.4f m",
				cfg.Motor.Designation, cfg.Motor.Length, it.Length),
		}
	}
	return nil
}
