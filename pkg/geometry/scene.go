package geometry

import (
	"errors"

	"github.com/lumen-render/lumen/pkg/core"
)

// MaxSpheres bounds scene size so a frame's working set stays predictable.
const MaxSpheres = 32

var (
	// ErrSceneFull is returned when adding a sphere would exceed MaxSpheres.
	ErrSceneFull = errors.New("geometry: scene is full")

	// ErrInvalidRadius is returned for spheres with a non-positive radius.
	ErrInvalidRadius = errors.New("geometry: sphere radius must be positive")
)

// Scene holds the spheres a ray can intersect.
type Scene struct {
	spheres []Sphere
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{spheres: make([]Sphere, 0, MaxSpheres)}
}

// Add appends a sphere to the scene.
func (s *Scene) Add(sphere Sphere) error {
	if sphere.Radius <= 0 {
		return ErrInvalidRadius
	}
	if len(s.spheres) >= MaxSpheres {
		return ErrSceneFull
	}
	s.spheres = append(s.spheres, sphere)
	return nil
}

// Count returns the number of spheres in the scene.
func (s *Scene) Count() int {
	return len(s.spheres)
}

// Hit finds the closest intersection along the ray within (tMin, tMax).
// Each accepted hit narrows the interval, so the record returned is always
// the nearest surface regardless of insertion order.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closest *HitRecord
	closestT := tMax

	for _, sphere := range s.spheres {
		if record, ok := sphere.Hit(ray, tMin, closestT); ok {
			closest = record
			closestT = record.T
		}
	}

	return closest, closest != nil
}
