package renderer

import "errors"

var (
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrBadDimensions    = errors.New("renderer: image dimensions must be positive")
	ErrBadFov           = errors.New("renderer: vertical field of view must be in (0, 180)")
	ErrBadBlendWeight   = errors.New("renderer: blend weight must not exceed 1")
	ErrBadCheckpoint    = errors.New("renderer: malformed checkpoint data")
)
