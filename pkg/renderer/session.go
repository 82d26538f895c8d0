package renderer

import (
	"context"
	"fmt"
	"image"

	"github.com/lumen-render/lumen/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout.
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger.
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// SessionConfig contains configuration for a progressive render session.
type SessionConfig struct {
	MaxFrames  int // Number of frames to render
	StartFrame int // First frame index, nonzero when resuming a checkpoint
}

// DefaultSessionConfig returns sensible default values.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxFrames:  16,
		StartFrame: 0,
	}
}

// FrameResult contains the result of a single accumulated frame.
type FrameResult struct {
	Frame  int
	Stats  FrameStats
	Image  *image.RGBA
	IsLast bool
}

// Session drives a raytracer through a contiguous frame range, emitting one
// result per frame as the accumulation sharpens.
type Session struct {
	raytracer *Raytracer
	config    SessionConfig
	logger    core.Logger
}

// NewSession creates a render session. A nil logger falls back to stdout,
// and a non-positive frame count falls back to the default.
func NewSession(raytracer *Raytracer, config SessionConfig, logger core.Logger) (*Session, error) {
	if raytracer == nil {
		return nil, ErrSceneNotDefined
	}
	if config.MaxFrames < 1 {
		config.MaxFrames = DefaultSessionConfig().MaxFrames
	}
	if config.StartFrame < 0 {
		config.StartFrame = 0
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Session{
		raytracer: raytracer,
		config:    config,
		logger:    logger,
	}, nil
}

// NextFrame returns the frame index a follow-up session should start at
// once this session has run to completion.
func (s *Session) NextFrame() int {
	return s.config.StartFrame + s.config.MaxFrames
}

// Run renders the configured frame range with channel-based communication.
// The caller reads results until the channel closes. Cancellation is honored
// between frames; a frame in flight runs to completion.
func (s *Session) Run(ctx context.Context) (<-chan FrameResult, <-chan error) {
	resultChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(resultChan)
		defer close(errChan)

		last := s.config.StartFrame + s.config.MaxFrames - 1
		s.logger.Printf("Rendering frames %d..%d...\n", s.config.StartFrame, last)

		for frame := s.config.StartFrame; frame <= last; frame++ {
			select {
			case <-ctx.Done():
				s.logger.Printf("Rendering cancelled before frame %d\n", frame)
				errChan <- ctx.Err()
				return
			default:
			}

			stats := s.raytracer.RenderFrame(frame)

			s.logger.Printf("Frame %d completed in %v (mean luminance %.4f, variance %.6f)\n",
				frame, stats.RenderTime, stats.MeanLuminance, stats.LuminanceVariance)

			result := FrameResult{
				Frame:  frame,
				Stats:  stats,
				Image:  s.raytracer.Framebuffer().Image(),
				IsLast: frame == last,
			}

			select {
			case resultChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return resultChan, errChan
}
