package scene

import (
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/renderer"
)

// rowSpheres is chosen to land just under the scene capacity once the
// ground sphere is added.
const rowSpheres = 30

// NewSphereRowScene creates a wide row of tinted spheres on a ground plane,
// filling the scene list almost to capacity.
func NewSphereRowScene() (*Scene, error) {
	world := geometry.NewScene()

	ground := geometry.NewSphere(core.NewVec3(0, -101, -12), 100.0, core.NewVec3(0.6, 0.6, 0.6))
	if err := world.Add(ground); err != nil {
		return nil, err
	}

	warm := core.NewVec3(0.9, 0.25, 0.2)
	cool := core.NewVec3(0.2, 0.35, 0.9)
	for i := 0; i < rowSpheres; i++ {
		t := float64(i) / float64(rowSpheres-1)
		x := float64(i) - float64(rowSpheres-1)/2
		sphere := geometry.NewSphere(core.NewVec3(x, -0.55, -12), 0.45, warm.Lerp(cool, t))
		if err := world.Add(sphere); err != nil {
			return nil, err
		}
	}

	cameraConfig := renderer.CameraConfig{
		Position: core.NewVec3(0, 1.5, 0),
		LookAt:   core.NewVec3(0, -0.5, -12),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     70.0, // Wide enough to catch both ends of the row
		Width:    800,
		Height:   450,
	}

	return &Scene{
		Name:   "sphere-row",
		World:  world,
		Camera: cameraConfig,
		Render: renderer.DefaultRenderConfig(),
	}, nil
}
