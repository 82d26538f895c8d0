package scene

import (
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/renderer"
)

// NewTwoSpheresScene creates the canonical test world: a red unit sphere
// five units down the view axis, resting on a large gray ground sphere.
func NewTwoSpheresScene() (*Scene, error) {
	world := geometry.NewScene()

	red := geometry.NewSphere(core.NewVec3(0, 0, -5), 1.0, core.NewVec3(1, 0, 0))
	if err := world.Add(red); err != nil {
		return nil, err
	}

	// The ground is a sphere so large its top reads as a flat floor.
	ground := geometry.NewSphere(core.NewVec3(0, -101, -5), 100.0, core.NewVec3(0.5, 0.5, 0.5))
	if err := world.Add(ground); err != nil {
		return nil, err
	}

	cameraConfig := renderer.CameraConfig{
		Position: core.NewVec3(0, 0, 0),  // Eye at the origin
		LookAt:   core.NewVec3(0, 0, -5), // Straight at the red sphere
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60.0,
		Width:    800,
		Height:   450,
	}

	return &Scene{
		Name:   "two-spheres",
		World:  world,
		Camera: cameraConfig,
		Render: renderer.DefaultRenderConfig(),
	}, nil
}
