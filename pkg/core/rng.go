package core

import "math"

// RNG is a deterministic xorshift32 pseudo-random generator. Every pixel-frame
// invocation owns its own instance, seeded from the pixel coordinates and the
// frame index, so the sample sequence for a given (pixel, frame) pair is
// reproducible and independent of scheduling order.
//
// The zero state is a fixed point of xorshift: the seeding formula keeps the
// state nonzero structurally, and a nonzero state stays nonzero forever.
type RNG struct {
	state uint32
}

// NewRNG creates a generator from a raw seed. The seed must be nonzero.
func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// PixelSeed computes the seed for a pixel-frame invocation:
// x*1973 + y*9277 + frame*2699 | 1, in uint32 arithmetic.
// The OR with 1 guarantees a nonzero odd seed. Wraparound at extreme
// coordinate values aliases some seeds; at realistic resolutions seeds
// stay pairwise distinct.
func PixelSeed(x, y, frame int) uint32 {
	return uint32(x)*1973 + uint32(y)*9277 + uint32(frame)*2699 | 1
}

// NewPixelRNG seeds a generator for a single pixel-frame invocation
func NewPixelRNG(x, y, frame int) *RNG {
	return &RNG{state: PixelSeed(x, y, frame)}
}

// Uint32 advances the state with the 13/17/15 xorshift triple and returns it
func (r *RNG) Uint32() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 15
	r.state = x
	return x
}

// Float64 returns a uniform value in [0, 1)
func (r *RNG) Float64() float64 {
	return float64(r.Uint32()) / (1 << 32)
}

// InUnitSphere returns a point uniformly distributed inside the unit ball.
// Draw order: z uniform in [-1,1], azimuth uniform in [0,2π), then a fresh
// uniform whose cube root scales the surface point inward. The cube root
// accounts for volume growing with r³, giving a volume-uniform distribution
// rather than one clustered at the center.
func (r *RNG) InUnitSphere() Vec3 {
	z := 2*r.Float64() - 1
	phi := 2 * math.Pi * r.Float64()
	rad := math.Sqrt(1 - z*z)
	onSurface := NewVec3(rad*math.Cos(phi), rad*math.Sin(phi), z)
	return onSurface.Multiply(math.Cbrt(r.Float64()))
}

// UnitVector returns a direction uniformly distributed on the unit sphere surface
func (r *RNG) UnitVector() Vec3 {
	z := 2*r.Float64() - 1
	phi := 2 * math.Pi * r.Float64()
	rad := math.Sqrt(1 - z*z)
	return NewVec3(rad*math.Cos(phi), rad*math.Sin(phi), z)
}
