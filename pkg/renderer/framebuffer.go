package renderer

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/tiff"

	"github.com/lumen-render/lumen/pkg/core"
)

// displayGamma is applied when converting linear radiance to display pixels.
const displayGamma = 2.0

// Framebuffer accumulates linear RGB radiance across frames. Pixels are
// stored row-major as float64 vectors so repeated blending never loses
// precision to quantization; conversion to 8-bit happens only at encode time.
type Framebuffer struct {
	width  int
	height int
	pixels []core.Vec3
}

// NewFramebuffer creates a zeroed framebuffer.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrBadDimensions
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}, nil
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// At returns the linear color stored at (x, y).
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.pixels[y*fb.width+x]
}

// Set stores a linear color at (x, y).
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.pixels[y*fb.width+x] = c
}

// Pixels exposes the backing pixel slice in row-major order. Checkpointing
// reads and restores it directly.
func (fb *Framebuffer) Pixels() []core.Vec3 {
	return fb.pixels
}

// Image converts the linear accumulation to a display-ready image: gamma
// correction, a clamp to [0, 1], and full alpha.
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(fb.At(x, y)))
		}
	}
	return img
}

// EncodePNG writes the tone-mapped framebuffer as a PNG stream.
func (fb *Framebuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, fb.Image())
}

// EncodeTIFF writes the tone-mapped framebuffer as a deflate-compressed TIFF
// stream with horizontal differencing.
func (fb *Framebuffer) EncodeTIFF(w io.Writer) error {
	return tiff.Encode(w, fb.Image(), &tiff.Options{
		Compression: tiff.Deflate,
		Predictor:   true,
	})
}

// vec3ToColor converts a linear color to an 8-bit display pixel with gamma
// correction and clamping.
func vec3ToColor(c core.Vec3) color.RGBA {
	corrected := c.GammaCorrect(displayGamma).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * corrected.X),
		G: uint8(255 * corrected.Y),
		B: uint8(255 * corrected.Z),
		A: 255,
	}
}
