package geometry

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Sphere is the sole primitive: a center, a radius, and a flat surface color.
// Hit assumes a positive radius; Scene.Add is the validation boundary.
type Sphere struct {
	Center core.Vec3
	Radius float64
	Albedo core.Vec3
}

// NewSphere creates a sphere with the given center, radius, and albedo.
func NewSphere(center core.Vec3, radius float64, albedo core.Vec3) Sphere {
	return Sphere{Center: center, Radius: radius, Albedo: albedo}
}

// HitRecord captures one ray-surface intersection.
type HitRecord struct {
	T      float64   // Ray parameter at the hit point
	Point  core.Vec3 // World-space hit position
	Normal core.Vec3 // Unit outward surface normal
	Color  core.Vec3 // Surface albedo at the hit point
}

// Hit tests the ray against the sphere over the open interval (tMin, tMax).
// Rays that merely graze the surface count as misses, and so do hits exactly
// at either interval endpoint.
func (s Sphere) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the near root first, then the far one.
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	return &HitRecord{
		T:      root,
		Point:  point,
		Normal: point.Subtract(s.Center).Multiply(1.0 / s.Radius),
		Color:  s.Albedo,
	}, true
}
