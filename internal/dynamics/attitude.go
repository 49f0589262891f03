package dynamics

import (
	"math"

	"github.com/san-kum/landersim/internal/lander"
)

// Orientation is xyz Euler angles in degrees. The rotation convention
// matches the scenario catalogue: the world-frame body axes are the
// columns of Rz(x)*Ry(y)*Rx(z).

// BodyUp returns the lander's body up axis (thrust direction) in world
// coordinates for the given orientation.
func BodyUp(o lander.Vec3) lander.Vec3 {
	sa, ca := math.Sincos(o.X * math.Pi / 180)
	sb, cb := math.Sincos(o.Y * math.Pi / 180)
	sg, cg := math.Sincos(o.Z * math.Pi / 180)
	return lander.Vec3{
		X: ca*sb*cg + sa*sg,
		Y: sa*sb*cg - ca*sg,
		Z: cb * cg,
	}
}

// Stabilize reorients the lander so that the body up axis points along
// the outward radial direction. It builds an orthonormal frame from the
// position unit vector and decomposes it back into Euler angles;
// position, velocity and throttle are untouched.
func Stabilize(s *lander.State) {
	up := s.Position.Unit()
	if up == (lander.Vec3{}) {
		return
	}

	left := lander.Vec3{X: -up.Y, Y: up.X}
	if left.Norm2() < 1e-12 {
		left = lander.Vec3{X: -up.Z, Z: up.X}
	}
	left = left.Unit()
	out := left.Cross(up)

	s.Orientation = frameToEuler(out, left, up)
}

// frameToEuler decomposes the rotation with columns (out, left, up)
// into the xyz Euler angles BodyUp expects, in degrees.
func frameToEuler(out, left, up lander.Vec3) lander.Vec3 {
	b := math.Asin(-clampUnit(out.Z))
	var a, g float64
	if math.Abs(math.Cos(b)) > 1e-9 {
		a = math.Atan2(out.Y, out.X)
		g = math.Atan2(left.Z, up.Z)
	} else {
		// Gimbal lock: fold the whole rotation into the first angle.
		g = 0
		a = math.Atan2(-left.X, left.Y)
	}
	const deg = 180 / math.Pi
	return lander.Vec3{X: a * deg, Y: b * deg, Z: g * deg}
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
