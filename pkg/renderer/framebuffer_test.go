package renderer

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/lumen-render/lumen/pkg/core"
)

func TestNewFramebuffer_Validation(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative width", -5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFramebuffer(tt.width, tt.height); !errors.Is(err, ErrBadDimensions) {
				t.Errorf("Expected ErrBadDimensions, got %v", err)
			}
		})
	}
}

func TestFramebuffer_SetAt(t *testing.T) {
	fb, err := NewFramebuffer(4, 3)
	if err != nil {
		t.Fatalf("NewFramebuffer failed: %v", err)
	}

	a := core.NewVec3(0.1, 0.2, 0.3)
	b := core.NewVec3(0.4, 0.5, 0.6)
	fb.Set(0, 0, a)
	fb.Set(3, 2, b)

	if fb.At(0, 0) != a {
		t.Errorf("Expected %v at (0,0), got %v", a, fb.At(0, 0))
	}
	if fb.At(3, 2) != b {
		t.Errorf("Expected %v at (3,2), got %v", b, fb.At(3, 2))
	}
	if fb.At(1, 0) != (core.Vec3{}) {
		t.Errorf("Untouched pixel must stay zero, got %v", fb.At(1, 0))
	}
}

func TestFramebuffer_ImageToneMapping(t *testing.T) {
	fb, err := NewFramebuffer(3, 1)
	if err != nil {
		t.Fatalf("NewFramebuffer failed: %v", err)
	}

	fb.Set(0, 0, core.NewVec3(0.25, 0.25, 0.25)) // sqrt(0.25) = 0.5
	fb.Set(1, 0, core.NewVec3(4.0, 4.0, 4.0))    // above 1, must clamp
	fb.Set(2, 0, core.NewVec3(0, 0, 0))

	img := fb.Image()

	mid := img.RGBAAt(0, 0)
	if mid.R != 127 || mid.G != 127 || mid.B != 127 {
		t.Errorf("Expected gray 127 after gamma, got (%d,%d,%d)", mid.R, mid.G, mid.B)
	}
	bright := img.RGBAAt(1, 0)
	if bright.R != 255 || bright.G != 255 || bright.B != 255 {
		t.Errorf("Expected clamped white, got (%d,%d,%d)", bright.R, bright.G, bright.B)
	}
	dark := img.RGBAAt(2, 0)
	if dark.R != 0 || dark.G != 0 || dark.B != 0 {
		t.Errorf("Expected black, got (%d,%d,%d)", dark.R, dark.G, dark.B)
	}

	for i := 0; i < 3; i++ {
		if a := img.RGBAAt(i, 0).A; a != 255 {
			t.Errorf("Pixel %d: expected opaque alpha, got %d", i, a)
		}
	}
}

func TestFramebuffer_EncodePNG(t *testing.T) {
	fb, err := NewFramebuffer(8, 5)
	if err != nil {
		t.Fatalf("NewFramebuffer failed: %v", err)
	}
	fb.Set(2, 3, core.NewVec3(1, 1, 1))

	var buf bytes.Buffer
	if err := fb.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decoding written PNG failed: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 5 {
		t.Errorf("Expected 8x5 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	r, g, b, _ := decoded.At(2, 3).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected white at (2,3), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestFramebuffer_EncodeTIFF(t *testing.T) {
	fb, err := NewFramebuffer(6, 4)
	if err != nil {
		t.Fatalf("NewFramebuffer failed: %v", err)
	}
	fb.Set(5, 0, core.NewVec3(1, 0, 0))

	var buf bytes.Buffer
	if err := fb.EncodeTIFF(&buf); err != nil {
		t.Fatalf("EncodeTIFF failed: %v", err)
	}

	decoded, err := tiff.Decode(&buf)
	if err != nil {
		t.Fatalf("Decoding written TIFF failed: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 6 || bounds.Dy() != 4 {
		t.Errorf("Expected 6x4 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	r, g, b, _ := decoded.At(5, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("Expected red at (5,0), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}
