package main

import "math"

// Vec3 is a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Neg() Vec3         { return Vec3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LenSq() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) Len() float64   { return math.Sqrt(v.LenSq()) }

// Normalized returns a unit vector, or zero for a zero vector
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// DistanceTo returns the distance between two points
func (v Vec3) DistanceTo(o Vec3) float64 { return o.Sub(v).Len() }

// AngleBetween returns the angle in radians between two vectors [0, PI]
func AngleBetween(a, b Vec3) float64 {
	la := a.Len()
	lb := b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := Clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(cos)
}

// RotateAround rotates v around the unit axis by angle radians (Rodrigues)
func RotateAround(v, axis Vec3, angle float64) Vec3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return v.Scale(cos).
		Add(axis.Cross(v).Scale(sin)).
		Add(axis.Scale(axis.Dot(v) * (1 - cos)))
}

// Basis is an orthonormal craft orientation: Forward is the nose direction,
// Up the canopy direction, Right = Forward x Up.
type Basis struct {
	Forward, Up, Right Vec3
}

// IdentityBasis faces +Z with +Y up
func IdentityBasis() Basis {
	return Basis{
		Forward: Vec3{0, 0, 1},
		Up:      Vec3{0, 1, 0},
		Right:   Vec3{1, 0, 0},
	}
}

// Yaw rotates the basis around Up (positive = nose toward Right)
func (b *Basis) Yaw(angle float64) {
	b.Forward = RotateAround(b.Forward, b.Up, angle)
	b.Right = RotateAround(b.Right, b.Up, angle)
	b.renormalize()
}

// Pitch rotates the basis around Right (positive = nose toward Up)
func (b *Basis) Pitch(angle float64) {
	b.Forward = RotateAround(b.Forward, b.Right, -angle)
	b.Up = RotateAround(b.Up, b.Right, -angle)
	b.renormalize()
}

// Roll rotates the basis around Forward (positive = Up toward Right)
func (b *Basis) Roll(angle float64) {
	b.Up = RotateAround(b.Up, b.Forward, -angle)
	b.Right = RotateAround(b.Right, b.Forward, -angle)
	b.renormalize()
}

// renormalize fights drift from accumulated small rotations
func (b *Basis) renormalize() {
	b.Forward = b.Forward.Normalized()
	b.Right = b.Up.Cross(b.Forward).Normalized()
	b.Up = b.Forward.Cross(b.Right).Normalized()
}

// ToLocal expresses a world direction in basis coordinates
// (X along Right, Y along Up, Z along Forward)
func (b Basis) ToLocal(dir Vec3) Vec3 {
	return Vec3{dir.Dot(b.Right), dir.Dot(b.Up), dir.Dot(b.Forward)}
}

// SolveQuadratic solves a*x^2 + b*x + c = 0, returning roots with r1 <= r2.
// real is false when the discriminant is negative; in that case both roots
// hold the real part -b/2a as a best-effort value.
func SolveQuadratic(a, b, c float64) (r1, r2 float64, real bool) {
	if a == 0 {
		if b == 0 {
			return 0, 0, false
		}
		r := -c / b
		return r, r, true
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		r := -b / (2 * a)
		return r, r, false
	}
	sq := math.Sqrt(disc)
	r1 = (-b - sq) / (2 * a)
	r2 = (-b + sq) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return r1, r2, true
}

// SegmentSphereIntersect checks if the segment p1-p2 passes through the
// sphere at center with radius r.
func SegmentSphereIntersect(p1, p2, center Vec3, r float64) bool {
	d := p2.Sub(p1)
	f := p1.Sub(center)
	a := d.LenSq()
	if a == 0 {
		return f.LenSq() <= r*r
	}
	b := 2 * f.Dot(d)
	c := f.LenSq() - r*r
	t1, t2, real := SolveQuadratic(a, b, c)
	if !real {
		return false
	}
	return (t1 >= 0 && t1 <= 1) || (t2 >= 0 && t2 <= 1) || (t1 <= 0 && t2 >= 1)
}
