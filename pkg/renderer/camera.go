package renderer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen-render/lumen/pkg/core"
)

// CameraConfig describes a perspective camera by its world placement and
// the image it projects onto.
type CameraConfig struct {
	Position core.Vec3 // Eye position in world space
	LookAt   core.Vec3 // Point the camera faces
	Up       core.Vec3 // World up hint for the view basis
	VFov     float64   // Vertical field of view in degrees
	Width    int       // Image width in pixels
	Height   int       // Image height in pixels
}

// DefaultCameraConfig returns a camera at the origin looking down -Z with a
// 60 degree vertical field of view at 800x450.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60.0,
		Width:    800,
		Height:   450,
	}
}

// Camera generates primary rays by unprojecting pixel coordinates through
// inverted view and projection matrices. Working from the inverses keeps
// ray generation a pair of matrix multiplies per sample and lets callers
// supply matrices from any source that can produce a view and a projection.
type Camera struct {
	invView mgl64.Mat4
	invProj mgl64.Mat4
	origin  core.Vec3
	width   int
	height  int
}

// Near and far planes for the projection matrix. Ray directions come from
// unprojecting a near-plane point, so the specific values only need to
// bracket a sensible frustum.
const (
	cameraNear = 0.1
	cameraFar  = 100.0
)

// NewCamera builds a camera from a placement description.
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, ErrBadDimensions
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, ErrBadFov
	}

	aspect := float64(config.Width) / float64(config.Height)
	proj := mgl64.Perspective(mgl64.DegToRad(config.VFov), aspect, cameraNear, cameraFar)
	view := mgl64.LookAtV(
		mgl64.Vec3{config.Position.X, config.Position.Y, config.Position.Z},
		mgl64.Vec3{config.LookAt.X, config.LookAt.Y, config.LookAt.Z},
		mgl64.Vec3{config.Up.X, config.Up.Y, config.Up.Z},
	)

	return NewCameraFromMatrices(view.Inv(), proj.Inv(), config.Width, config.Height), nil
}

// NewCameraFromMatrices builds a camera directly from inverted view and
// projection matrices. The eye position is recovered by pushing the
// view-space origin through the inverse view transform, including the
// perspective divide.
func NewCameraFromMatrices(invView, invProj mgl64.Mat4, width, height int) *Camera {
	eye := invView.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	origin := core.NewVec3(eye.X()/eye.W(), eye.Y()/eye.W(), eye.Z()/eye.W())

	return &Camera{
		invView: invView,
		invProj: invProj,
		origin:  origin,
		width:   width,
		height:  height,
	}
}

// Width returns the image width in pixels.
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels.
func (c *Camera) Height() int { return c.height }

// Origin returns the eye position in world space.
func (c *Camera) Origin() core.Vec3 { return c.origin }

// RayThrough returns the camera ray through normalized image coordinates.
// u runs left to right and v top to bottom, both in [0, 1].
func (c *Camera) RayThrough(u, v float64) core.Ray {
	// Unproject a near-plane point in clip space. The result is scaled by a
	// positive factor of w, which normalization removes, so no perspective
	// divide is needed for the direction.
	clip := mgl64.Vec4{2*u - 1, 1 - 2*v, -1, 1}
	viewDir := c.invProj.Mul4x1(clip)
	worldDir := c.invView.Mul4x1(mgl64.Vec4{viewDir.X(), viewDir.Y(), viewDir.Z(), 0})

	return core.NewRay(c.origin, core.NewVec3(worldDir.X(), worldDir.Y(), worldDir.Z()))
}

// RayForPixel returns a ray through pixel (px, py), jittered inside the
// pixel footprint. The horizontal offset is drawn before the vertical one.
func (c *Camera) RayForPixel(px, py int, rng *core.RNG) core.Ray {
	u := (float64(px) + rng.Float64()) / float64(c.width)
	v := (float64(py) + rng.Float64()) / float64(c.height)
	return c.RayThrough(u, v)
}
