package resolve

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/jmalven/phenolic/pkg/rocket"
)

// Revolved shells (nose cones, transitions) are integrated numerically with
// Gauss-Legendre quadrature. 64 nodes is far beyond what the smooth profile
// families need, and quad.Fixed with a fixed node count keeps the pass
// deterministic.
const quadNodes = 64

// NoseProfile returns the outer radius of a nose cone at axial station
// x ∈ [0, length], with x = 0 at the tip. The mesher samples the same
// profile the mass integrals use, so rendered geometry and mass properties
// always agree.
func NoseProfile(shape rocket.NoseShape, param, base, length float64) func(float64) float64 {
	switch shape {
	case rocket.ShapeConical:
		return func(x float64) float64 { return base * x / length }
	case rocket.ShapeOgive:
		// Tangent ogive: circular arc through tip and base, tangent at
		// the base.
		rho := (base*base + length*length) / (2 * base)
		return func(x float64) float64 {
			d := length - x
			return math.Sqrt(rho*rho-d*d) + base - rho
		}
	case rocket.ShapeElliptical:
		return func(x float64) float64 {
			d := (length - x) / length
			s := 1 - d*d
			if s < 0 {
				s = 0
			}
			return base * math.Sqrt(s)
		}
	case rocket.ShapeParabolic:
		// param is K ∈ [0, 1]: 0 is a cone, 1 a full parabola.
		k := param
		return func(x float64) float64 {
			xi := x / length
			return base * (2*xi - k*xi*xi) / (2 - k)
		}
	case rocket.ShapeHaack:
		// param is the Haack series constant C: 0 is Von Karman (LD-Haack),
		// 1/3 is LV-Haack.
		c := param
		return func(x float64) float64 {
			theta := math.Acos(1 - 2*x/length)
			s := theta - math.Sin(2*theta)/2 + c*math.Pow(math.Sin(theta), 3)
			if s < 0 {
				s = 0
			}
			return base / math.SqrtPi * math.Sqrt(s)
		}
	default:
		return func(x float64) float64 { return base * x / length }
	}
}

// transitionProfile returns the outer radius of a linear frustum at axial
// station x ∈ [0, length].
func transitionProfile(fore, aft, length float64) func(float64) float64 {
	return func(x float64) float64 {
		return fore + (aft-fore)*x/length
	}
}

// shellSection returns the annular section function ro² − ri² of a shell of
// wall thickness t around the given outer profile. The inner surface is
// clamped at the axis, which closes the shell near a sharp tip.
func shellSection(outer func(float64) float64, t float64) func(float64) float64 {
	return func(x float64) float64 {
		ro := outer(x)
		ri := ro - t
		if ri < 0 {
			ri = 0
		}
		return ro*ro - ri*ri
	}
}

// shellQuartic returns ro⁴ − ri⁴, the section function of the axial second
// moment of a revolved shell.
func shellQuartic(outer func(float64) float64, t float64) func(float64) float64 {
	return func(x float64) float64 {
		ro := outer(x)
		ri := ro - t
		if ri < 0 {
			ri = 0
		}
		return ro*ro*ro*ro - ri*ri*ri*ri
	}
}

// revolvedShell integrates the volume, axial centroid (relative to the
// component top), and the section integrals needed for inertia of a revolved
// shell with the given outer profile and wall thickness.
type revolvedShell struct {
	volume   float64 // π ∫ (ro² − ri²) dx
	centroid float64 // ∫ x (ro² − ri²) dx / ∫ (ro² − ri²) dx
	quartic  float64 // π ∫ (ro⁴ − ri⁴) dx
	second   float64 // π ∫ (x − centroid)² (ro² − ri²) dx
}

func integrateShell(outer func(float64) float64, t, length float64) revolvedShell {
	section := shellSection(outer, t)

	a := quad.Fixed(section, 0, length, quadNodes, nil, 0)
	if a <= 0 {
		return revolvedShell{}
	}
	moment := quad.Fixed(func(x float64) float64 { return x * section(x) }, 0, length, quadNodes, nil, 0)
	centroid := moment / a

	quartic := quad.Fixed(shellQuartic(outer, t), 0, length, quadNodes, nil, 0)
	second := quad.Fixed(func(x float64) float64 {
		d := x - centroid
		return d * d * section(x)
	}, 0, length, quadNodes, nil, 0)

	return revolvedShell{
		volume:   math.Pi * a,
		centroid: centroid,
		quartic:  math.Pi * quartic,
		second:   math.Pi * second,
	}
}

// tubeShell is the closed form of integrateShell for a constant-radius tube.
func tubeShell(outer, t, length float64) revolvedShell {
	ri := outer - t
	if ri < 0 {
		ri = 0
	}
	section := outer*outer - ri*ri
	quartic := outer*outer*outer*outer - ri*ri*ri*ri
	return revolvedShell{
		volume:   math.Pi * section * length,
		centroid: length / 2,
		quartic:  math.Pi * quartic * length,
		second:   math.Pi * section * length * length * length / 12,
	}
}

// discSolid is a solid disc of the given radius and axial thickness.
func discSolid(radius, thickness float64) revolvedShell {
	return revolvedShell{
		volume:   math.Pi * radius * radius * thickness,
		centroid: thickness / 2,
		quartic:  math.Pi * radius * radius * radius * radius * thickness,
		second:   math.Pi * radius * radius * thickness * thickness * thickness / 12,
	}
}

// planformArea computes the area of a closed polygon by the shoelace
// formula, and its centroid along the first coordinate.
func planformArea(pts []rocket.Point2) (area, centroidX float64) {
	var a2, cx float64
	n := len(pts)
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		a2 += cross
		cx += (p.X + q.X) * cross
	}
	area = math.Abs(a2) / 2
	if a2 != 0 {
		centroidX = cx / (3 * a2)
	}
	return area, centroidX
}
