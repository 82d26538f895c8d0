// Package scene provides the built-in worlds the renderer can draw.
package scene

import (
	"fmt"

	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/renderer"
)

// Scene bundles a world with the camera placement and render settings it was
// designed for. Callers may override the render settings before use.
type Scene struct {
	Name   string
	World  *geometry.Scene
	Camera renderer.CameraConfig
	Render renderer.RenderConfig
}

// SceneInfo describes a built-in scene for discovery endpoints.
type SceneInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateScene builds a built-in scene by ID.
func CreateScene(name string) (*Scene, error) {
	switch name {
	case "two-spheres":
		return NewTwoSpheresScene()
	case "sphere-row":
		return NewSphereRowScene()
	default:
		return nil, fmt.Errorf("scene: unknown scene %q", name)
	}
}

// ListScenes returns metadata for every built-in scene.
func ListScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "two-spheres",
			Name:        "Two Spheres",
			Description: "A red sphere resting on a gray ground sphere",
		},
		{
			ID:          "sphere-row",
			Name:        "Sphere Row",
			Description: "A row of tinted spheres near the scene capacity limit",
		},
	}
}
