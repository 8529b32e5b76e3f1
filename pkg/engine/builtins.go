package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/jmalven/phenolic/pkg/rocket"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms design Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: nose-cone -> nose_cone
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMaterial wraps a rocket.MaterialSpec so it can be passed between builtins.
type sexpMaterial struct {
	spec rocket.MaterialSpec
}

func (m *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(material :name %q :density %g)", m.spec.Name, m.spec.Density)
}
func (m *sexpMaterial) Type() *zygo.RegisteredType { return nil }

// sexpComponent is an unattached component subtree built by the component
// builtins. The (rocket ...) form materializes the tree into a Design.
type sexpComponent struct {
	kind      rocket.ComponentKind
	name      string
	placement rocket.Placement
	material  rocket.MaterialSpec
	mass      rocket.MassSpec
	data      rocket.ComponentData
	children  []*sexpComponent
}

func (c *sexpComponent) SexpString(ps *zygo.PrintState) string {
	if c.name != "" {
		return fmt.Sprintf("(%s %q)", c.kind, c.name)
	}
	return fmt.Sprintf("(%s)", c.kind)
}
func (c *sexpComponent) Type() *zygo.RegisteredType { return nil }

// sexpMotor wraps a motor selection.
type sexpMotor struct {
	spec rocket.MotorSpec
}

func (m *sexpMotor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(motor %q)", m.spec.Designation)
}
func (m *sexpMotor) Type() *zygo.RegisteredType { return nil }

// sexpMotorConfig wraps a motor configuration; the mount is referenced by
// component name and bound when the rocket is materialized.
type sexpMotorConfig struct {
	id        string
	mount     string
	isDefault bool
	delay     float64
	motor     *rocket.MotorSpec
}

func (c *sexpMotorConfig) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(motor-config %q)", c.id)
}
func (c *sexpMotorConfig) Type() *zygo.RegisteredType { return nil }

// sexpSensors wraps one or more sensor mounts.
type sexpSensors struct {
	mounts []rocket.SensorMount
}

func (s *sexpSensors) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(sensors %d)", len(s.mounts))
}
func (s *sexpSensors) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value is treated as a flag.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_top) and plain strings ("top").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toRadius converts :auto or a number to a rocket.Radius.
func toRadius(s zygo.Sexp) (rocket.Radius, error) {
	if name, ok := isKW(s); ok {
		if name == "auto" {
			return rocket.AutoRadius(), nil
		}
		return rocket.Radius{}, fmt.Errorf("expected number or :auto, got :%s", name)
	}
	v, err := toFloat64(s)
	if err != nil {
		return rocket.Radius{}, err
	}
	return rocket.FixedRadius(v), nil
}

// toAnchor converts a keyword or string to a rocket.Anchor.
func toAnchor(s zygo.Sexp) (rocket.Anchor, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected anchor keyword (:top, :middle, :bottom): %w", err)
	}
	switch name {
	case "top":
		return rocket.AnchorTop, nil
	case "middle":
		return rocket.AnchorMiddle, nil
	case "bottom":
		return rocket.AnchorBottom, nil
	}
	return 0, fmt.Errorf("invalid anchor %q, expected top, middle, or bottom", name)
}

// toMaterial extracts a MaterialSpec from a sexpMaterial.
func toMaterial(s zygo.Sexp) (rocket.MaterialSpec, error) {
	if m, ok := s.(*sexpMaterial); ok {
		return m.spec, nil
	}
	return rocket.MaterialSpec{}, fmt.Errorf("expected material, got %T (%s)", s, s.SexpString(nil))
}

// argReader cuts down the per-builtin boilerplate of pulling typed keyword
// arguments. The first extraction error wins and is reported with the
// builtin and keyword names.
type argReader struct {
	builtin string
	pa      kwArgs
	err     error
}

func (r *argReader) float(name string, dst *float64) {
	if r.err != nil {
		return
	}
	if v, ok := r.pa.kw[name]; ok {
		f, err := toFloat64(v)
		if err != nil {
			r.err = fmt.Errorf("%s: %s: %w", r.builtin, name, err)
			return
		}
		*dst = f
	}
}

func (r *argReader) integer(name string, dst *int) {
	if r.err != nil {
		return
	}
	if v, ok := r.pa.kw[name]; ok {
		n, err := toInt(v)
		if err != nil {
			r.err = fmt.Errorf("%s: %s: %w", r.builtin, name, err)
			return
		}
		*dst = n
	}
}

func (r *argReader) str(name string, dst *string) {
	if r.err != nil {
		return
	}
	if v, ok := r.pa.kw[name]; ok {
		s, err := toString(v)
		if err != nil {
			r.err = fmt.Errorf("%s: %s: %w", r.builtin, name, err)
			return
		}
		*dst = s
	}
}

func (r *argReader) boolean(name string, dst *bool) {
	if r.err != nil {
		return
	}
	if v, ok := r.pa.kw[name]; ok {
		b, err := toBool(v)
		if err != nil {
			r.err = fmt.Errorf("%s: %s: %w", r.builtin, name, err)
			return
		}
		*dst = b
	}
}

func (r *argReader) radius(name string, dst *rocket.Radius) {
	if r.err != nil {
		return
	}
	if v, ok := r.pa.kw[name]; ok {
		rad, err := toRadius(v)
		if err != nil {
			r.err = fmt.Errorf("%s: %s: %w", r.builtin, name, err)
			return
		}
		*dst = rad
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builder collects the design produced by the (rocket ...) form.
type builder struct {
	design *rocket.Design
}

// componentCommon parses the attributes shared by every component builtin:
// :name, :anchor, :offset, :material, :mass. Positional arguments are child
// component forms.
func componentCommon(builtin string, r *argReader, sc *sexpComponent) error {
	r.str("name", &sc.name)
	r.float("offset", &sc.placement.Offset)
	if v, ok := r.pa.kw["anchor"]; ok && r.err == nil {
		a, err := toAnchor(v)
		if err != nil {
			r.err = fmt.Errorf("%s: anchor: %w", builtin, err)
		} else {
			sc.placement.Anchor = a
		}
	}
	if v, ok := r.pa.kw["material"]; ok && r.err == nil {
		m, err := toMaterial(v)
		if err != nil {
			r.err = fmt.Errorf("%s: material: %w", builtin, err)
		} else {
			sc.material = m
		}
	}
	if v, ok := r.pa.kw["mass"]; ok && r.err == nil {
		kg, err := toFloat64(v)
		if err != nil {
			r.err = fmt.Errorf("%s: mass: %w", builtin, err)
		} else {
			sc.mass = rocket.MassOverride(kg)
		}
	}
	if r.err != nil {
		return r.err
	}
	for i, p := range r.pa.positional {
		child, ok := p.(*sexpComponent)
		if !ok {
			return fmt.Errorf("%s: child %d: expected component form, got %T (%s)",
				builtin, i, p, p.SexpString(nil))
		}
		sc.children = append(sc.children, child)
	}
	return nil
}

// componentBuiltin wraps the shared parse-then-build shape of every
// component constructor. build fills the kind-specific payload.
func componentBuiltin(env *zygo.Zlisp, lispName string, kind rocket.ComponentKind,
	build func(r *argReader) (rocket.ComponentData, error)) {
	// zygomys identifiers cannot contain hyphens; the preprocessor converts
	// nose-cone to nose_cone in the source.
	goName := strings.ReplaceAll(lispName, "-", "_")
	env.AddFunction(goName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := &argReader{builtin: lispName, pa: parseArgs(args)}
		sc := &sexpComponent{kind: kind}
		data, err := build(r)
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := componentCommon(lispName, r, sc); err != nil {
			return zygo.SexpNull, err
		}
		sc.data = data
		return sc, nil
	})
}

// registerBuiltins installs all rocket DSL builtins into a zygomys
// environment. The builtins construct component subtrees; the (rocket ...)
// form assembles them into a Design on the builder.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (material :name "fiberglass" :density 1650)
	// -----------------------------------------------------------------------
	env.AddFunction("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := &argReader{builtin: "material", pa: parseArgs(args)}
		spec := rocket.MaterialSpec{}
		r.str("name", &spec.Name)
		r.float("density", &spec.Density)
		if r.err != nil {
			return zygo.SexpNull, r.err
		}
		return &sexpMaterial{spec: spec}, nil
	})

	// -----------------------------------------------------------------------
	// (nose-cone :length 0.381 :shape :von-karman :base-radius :auto
	//            :thickness 0.003 :material fg :anchor :top :offset -0.381)
	// -----------------------------------------------------------------------
	componentBuiltin(env, "nose-cone", rocket.KindNoseCone, func(r *argReader) (rocket.ComponentData, error) {
		data := rocket.NoseConeData{BaseRadius: rocket.AutoRadius()}
		r.float("length", &data.Length)
		r.float("shape-param", &data.ShapeParam)
		r.radius("base-radius", &data.BaseRadius)
		r.float("thickness", &data.Thickness)
		if v, ok := r.pa.kw["shape"]; ok && r.err == nil {
			name, err := toKeywordString(v)
			if err != nil {
				return nil, fmt.Errorf("nose-cone: shape: %w", err)
			}
			shape, err := rocket.ParseNoseShape(name)
			if err != nil {
				return nil, fmt.Errorf("nose-cone: %w", err)
			}
			data.Shape = shape
		}
		return data, r.err
	})

	// -----------------------------------------------------------------------
	// (body-tube :length 2.0 :outer-radius 0.0778 :thickness 0.0016 ...)
	// -----------------------------------------------------------------------
	componentBuiltin(env, "body-tube", rocket.KindBodyTube, func(r *argReader) (rocket.ComponentData, error) {
		data := rocket.BodyTubeData{OuterRadius: rocket.AutoRadius()}
		r.float("length", &data.Length)
		r.radius("outer-radius", &data.OuterRadius)
		r.float("thickness", &data.Thickness)
		return data, r.err
	})

	// -----------------------------------------------------------------------
	// (transition :length 0.0508 :fore-radius :auto :aft-radius 0.0635 ...)
	// -----------------------------------------------------------------------
	componentBuiltin(env, "transition", rocket.KindTransition, func(r *argReader) (rocket.ComponentData, error) {
		data := rocket.TransitionData{
			ForeRadius: rocket.AutoRadius(),
			AftRadius:  rocket.AutoRadius(),
		}
		r.float("length", &data.Length)
		r.radius("fore-radius", &data.ForeRadius)
		r.radius("aft-radius", &data.AftRadius)
		r.float("thickness", &data.Thickness)
		return data, r.err
	})

	// -----------------------------------------------------------------------
	// (inner-tube :length 0.6 :outer-radius 0.0385 :thickness 0.002
	//             :motor-mount true ...)
	// -----------------------------------------------------------------------
	componentBuiltin(env, "inner-tube", rocket.KindInnerTube, func(r *argReader) (rocket.ComponentData, error) {
		data := rocket.InnerTubeData{OuterRadius: rocket.AutoRadius()}
		r.float("length", &data.Length)
		r.radius("outer-radius", &data.OuterRadius)
		r.float("thickness", &data.Thickness)
		r.boolean("motor-mount", &data.MotorMount)
		return data, r.err
	})

	// -----------------------------------------------------------------------
	// (fin-set :count 4 :root-chord 0.3048 :tip-chord 0.019 :span 0.152
	//          :sweep 0.254 :thickness 0.003 ...)
	// -----------------------------------------------------------------------
	componentBuiltin(env, "fin-set", rocket.KindFinSet, func(r *argReader) (rocket.ComponentData, error) {
		data := rocket.FinSetData{}
		r.integer("count", &data.Count)
		r.float("root-chord", &data.RootChord)
		r.float("tip-chord", &data.TipChord)
		r.float("span", &data.Span)
		r.float("sweep", &data.SweepLength)
		r.float("thickness", &data.Thickness)
		return data, r.err
	})

	// -----------------------------------------------------------------------
	// (bulkhead :outer-radius :auto :thickness 0.006 ...)
	// -----------------------------------------------------------------------
	componentBuiltin(env, "bulkhead", rocket.KindBulkhead, func(r *argReader) (rocket.ComponentData, error) {
		data := rocket.BulkheadData{OuterRadius: rocket.AutoRadius()}
		r.radius("outer-radius", &data.OuterRadius)
		r.float("thickness", &data.Thickness)
		return data, r.err
	})

	// -----------------------------------------------------------------------
	// (coupler :length 0.1 :outer-radius :auto :thickness 0.002 ...)
	// -----------------------------------------------------------------------
	componentBuiltin(env, "coupler", rocket.KindCoupler, func(r *argReader) (rocket.ComponentData, error) {
		data := rocket.CouplerData{OuterRadius: rocket.AutoRadius()}
		r.float("length", &data.Length)
		r.radius("outer-radius", &data.OuterRadius)
		r.float("thickness", &data.Thickness)
		return data, r.err
	})

	// -----------------------------------------------------------------------
	// (launch-lug :length 0.1 :outer-radius 0.006 :thickness 0.001 ...)
	// -----------------------------------------------------------------------
	componentBuiltin(env, "launch-lug", rocket.KindLaunchLug, func(r *argReader) (rocket.ComponentData, error) {
		data := rocket.LaunchLugData{OuterRadius: rocket.AutoRadius()}
		r.float("length", &data.Length)
		r.radius("outer-radius", &data.OuterRadius)
		r.float("thickness", &data.Thickness)
		return data, r.err
	})

	// -----------------------------------------------------------------------
	// (mass :name "payload" :mass 0.5 :packed-length 0.1 :packed-radius 0.03)
	// -----------------------------------------------------------------------
	componentBuiltin(env, "mass", rocket.KindMass, func(r *argReader) (rocket.ComponentData, error) {
		data := rocket.MassComponentData{}
		r.float("packed-length", &data.PackedLength)
		r.float("packed-radius", &data.PackedRadius)
		return data, r.err
	})

	// -----------------------------------------------------------------------
	// (motor :designation "M2500T" :diameter 0.075 :length 0.579 :mass 4.766)
	// -----------------------------------------------------------------------
	env.AddFunction("motor", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := &argReader{builtin: "motor", pa: parseArgs(args)}
		spec := rocket.MotorSpec{}
		r.str("designation", &spec.Designation)
		r.float("diameter", &spec.Diameter)
		r.float("length", &spec.Length)
		r.float("mass", &spec.TotalMass)
		r.str("thrust-curve", &spec.ThrustCurve)
		if r.err != nil {
			return zygo.SexpNull, r.err
		}
		return &sexpMotor{spec: spec}, nil
	})

	// -----------------------------------------------------------------------
	// (motor-config :id "flight" :mount "mount" :default true
	//               :ignition-delay 0 :motor (motor ...))
	// -----------------------------------------------------------------------
	env.AddFunction("motor_config", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := &argReader{builtin: "motor-config", pa: parseArgs(args)}
		cfg := &sexpMotorConfig{}
		r.str("id", &cfg.id)
		r.str("mount", &cfg.mount)
		r.boolean("default", &cfg.isDefault)
		r.float("ignition-delay", &cfg.delay)
		if v, ok := r.pa.kw["motor"]; ok && r.err == nil {
			m, ok := v.(*sexpMotor)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("motor-config: motor: expected motor form, got %T", v)
			}
			spec := m.spec
			cfg.motor = &spec
		}
		if r.err != nil {
			return zygo.SexpNull, r.err
		}
		return cfg, nil
	})

	// -----------------------------------------------------------------------
	// (sensor :kind :barometer :name "baro" :position 0.2 :sampling-rate 50
	//         :range 120000 :noise-density 0.1 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("sensor", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := &argReader{builtin: "sensor", pa: parseArgs(args)}
		mount := rocket.SensorMount{}
		s := &mount.Sensor

		if v, ok := r.pa.kw["kind"]; ok {
			kindName, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sensor: kind: %w", err)
			}
			switch kindName {
			case "accelerometer":
				s.Kind = rocket.SensorAccelerometer
			case "gyroscope":
				s.Kind = rocket.SensorGyroscope
			case "barometer":
				s.Kind = rocket.SensorBarometer
			case "gnss", "gps":
				s.Kind = rocket.SensorGnss
			default:
				return zygo.SexpNull, fmt.Errorf("sensor: unknown kind %q", kindName)
			}
		}
		r.str("name", &s.Name)
		r.float("position", &mount.Position)
		r.float("sampling-rate", &s.Noise.SamplingRate)
		r.float("range", &s.Noise.MeasurementRange)
		r.float("noise-density", &s.Noise.NoiseDensity)
		r.float("noise-variance", &s.Noise.NoiseVariance)
		r.float("walk-density", &s.Noise.RandomWalkDensity)
		r.float("walk-variance", &s.Noise.RandomWalkVariance)
		r.float("bias", &s.Noise.ConstantBias)
		r.boolean("consider-gravity", &s.ConsiderGravity)
		r.float("position-accuracy", &s.PositionAccuracy)
		r.float("altitude-accuracy", &s.AltitudeAccuracy)
		if r.err != nil {
			return zygo.SexpNull, r.err
		}
		return &sexpSensors{mounts: []rocket.SensorMount{mount}}, nil
	})

	// -----------------------------------------------------------------------
	// (avionics-suite :position 1.1)
	//
	// Mounts the reference MEMS sensor suite at one station.
	// -----------------------------------------------------------------------
	env.AddFunction("avionics_suite", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := &argReader{builtin: "avionics-suite", pa: parseArgs(args)}
		var position float64
		r.float("position", &position)
		if r.err != nil {
			return zygo.SexpNull, r.err
		}
		suite := rocket.ReferenceAvionicsSuite()
		mounts := make([]rocket.SensorMount, len(suite))
		for i, s := range suite {
			mounts[i] = rocket.SensorMount{Sensor: s, Position: position}
		}
		return &sexpSensors{mounts: mounts}, nil
	})

	// -----------------------------------------------------------------------
	// (rocket "v10" (body-tube ...) (motor-config ...) (sensor ...) ...)
	//
	// The first component form is the root of the tree; motor configs and
	// sensors may appear in any order after the name.
	// -----------------------------------------------------------------------
	env.AddFunction("rocket", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("rocket requires a name argument")
		}
		rocketName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rocket: name: %w", err)
		}

		d := rocket.NewDesign(rocketName)
		var configs []*sexpMotorConfig

		for i := 1; i < len(args); i++ {
			switch arg := args[i].(type) {
			case *sexpComponent:
				if d.ComponentCount() > 0 {
					return zygo.SexpNull, fmt.Errorf("rocket: multiple root components (argument %d)", i)
				}
				if err := materialize(d, rocket.NoParent, arg); err != nil {
					return zygo.SexpNull, fmt.Errorf("rocket: %w", err)
				}
			case *sexpMotorConfig:
				configs = append(configs, arg)
			case *sexpSensors:
				for _, m := range arg.mounts {
					d.AddSensor(m)
				}
			default:
				return zygo.SexpNull, fmt.Errorf("rocket: argument %d: expected component, motor-config, or sensor, got %T (%s)",
					i, args[i], args[i].SexpString(nil))
			}
		}

		// Mount names only bind once the whole tree exists.
		for _, cfg := range configs {
			idx, ok := d.Lookup(cfg.mount)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("rocket: motor-config %q: no component named %q", cfg.id, cfg.mount)
			}
			if err := d.AddConfiguration(&rocket.MotorConfiguration{
				ID:            cfg.id,
				MountIndex:    idx,
				Motor:         cfg.motor,
				Default:       cfg.isDefault,
				IgnitionDelay: cfg.delay,
			}); err != nil {
				return zygo.SexpNull, fmt.Errorf("rocket: %w", err)
			}
		}

		b.design = d
		return &zygo.SexpStr{S: rocketName}, nil
	})
}

// materialize adds a component subtree to the design, parents before
// children.
func materialize(d *rocket.Design, parent int, sc *sexpComponent) error {
	idx, err := d.AddComponent(parent, &rocket.Component{
		Kind:      sc.kind,
		Name:      sc.name,
		Placement: sc.placement,
		Material:  sc.material,
		Mass:      sc.mass,
		Data:      sc.data,
	})
	if err != nil {
		return err
	}
	for _, child := range sc.children {
		if err := materialize(d, idx, child); err != nil {
			return err
		}
	}
	return nil
}
