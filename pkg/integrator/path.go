// Package integrator traces rays through a scene and resolves their color.
package integrator

import (
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
)

// Termination records how a ray's walk through the scene ended.
type Termination int

const (
	// TerminatedMiss means the ray escaped into the sky.
	TerminatedMiss Termination = iota

	// TerminatedBudget means the bounce budget ran out before escape.
	TerminatedBudget
)

// String returns a human-readable name for the termination reason.
func (t Termination) String() string {
	switch t {
	case TerminatedMiss:
		return "miss"
	case TerminatedBudget:
		return "budget"
	default:
		return "unknown"
	}
}

// DefaultMaxBounces is the bounce budget used when none is configured.
const DefaultMaxBounces = 8

// Intersection interval shared by every bounce. The lower bound keeps
// secondary rays from re-hitting the surface that spawned them.
const (
	rayEpsilon = 0.001
	rayFar     = 1000.0
)

var (
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
)

// SkyColor returns the background gradient for a ray direction, blending
// from white at the horizon to blue overhead.
func SkyColor(direction core.Vec3) core.Vec3 {
	unit := direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return skyBottom.Lerp(skyTop, t)
}

// PathTracer walks rays through diffuse bounces until they escape to the
// sky or exhaust their bounce budget.
type PathTracer struct {
	maxBounces int
}

// NewPathTracer creates a path tracer with the given bounce budget.
// Budgets below 1 fall back to DefaultMaxBounces.
func NewPathTracer(maxBounces int) *PathTracer {
	if maxBounces < 1 {
		maxBounces = DefaultMaxBounces
	}
	return &PathTracer{maxBounces: maxBounces}
}

// MaxBounces returns the configured bounce budget.
func (pt *PathTracer) MaxBounces() int {
	return pt.maxBounces
}

// RayColor traces a single ray through the scene and returns its color along
// with the reason tracing stopped. Each surface hit halves the carried
// energy and scatters the ray diffusely off the surface normal.
func (pt *PathTracer) RayColor(ray core.Ray, world *geometry.Scene, rng *core.RNG) (core.Vec3, Termination) {
	color := core.NewVec3(0, 0, 0)
	attenuation := 1.0

	for bounce := 0; bounce < pt.maxBounces; bounce++ {
		record, hit := world.Hit(ray, rayEpsilon, rayFar)
		if !hit {
			return SkyColor(ray.Direction).Multiply(attenuation), TerminatedMiss
		}

		color = record.Color
		attenuation *= 0.5

		scatter := record.Normal.Add(rng.InUnitSphere()).Normalize()
		ray = core.NewRay(record.Point, scatter)
	}

	return color.Multiply(attenuation), TerminatedBudget
}
