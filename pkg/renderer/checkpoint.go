package renderer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/lumen-render/lumen/pkg/core"
)

// Checkpoint file layout: a plain magic-and-version header followed by a
// zstd stream of little-endian dimensions, the next frame index, and the
// raw float64 pixel data.
var checkpointMagic = [4]byte{'L', 'U', 'C', 'P'}

const checkpointVersion uint8 = 1

// maxCheckpointPixels caps the pixel count a header may claim before the
// reader allocates. The bound comfortably covers an 8K frame.
const maxCheckpointPixels = 1 << 26

// Checkpoint captures the accumulation state of a render session so a later
// session can resume blending where the previous one stopped.
type Checkpoint struct {
	Width     int
	Height    int
	NextFrame int
	Pixels    []core.Vec3
}

// WriteCheckpoint saves the framebuffer and the next frame index to w.
func WriteCheckpoint(w io.Writer, fb *Framebuffer, nextFrame int) error {
	if _, err := w.Write(checkpointMagic[:]); err != nil {
		return fmt.Errorf("renderer: writing checkpoint header: %w", err)
	}
	if _, err := w.Write([]byte{checkpointVersion}); err != nil {
		return fmt.Errorf("renderer: writing checkpoint header: %w", err)
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("renderer: creating checkpoint compressor: %w", err)
	}

	header := []uint32{uint32(fb.Width()), uint32(fb.Height()), uint32(nextFrame)}
	if err := binary.Write(enc, binary.LittleEndian, header); err != nil {
		enc.Close()
		return fmt.Errorf("renderer: writing checkpoint state: %w", err)
	}
	if err := binary.Write(enc, binary.LittleEndian, fb.Pixels()); err != nil {
		enc.Close()
		return fmt.Errorf("renderer: writing checkpoint pixels: %w", err)
	}

	return enc.Close()
}

// ReadCheckpoint parses a checkpoint stream written by WriteCheckpoint.
func ReadCheckpoint(r io.Reader) (*Checkpoint, error) {
	var header [5]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCheckpoint, err)
	}
	if !bytes.Equal(header[:4], checkpointMagic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrBadCheckpoint)
	}
	if header[4] != checkpointVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadCheckpoint, header[4])
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCheckpoint, err)
	}
	defer dec.Close()

	var state [3]uint32
	if err := binary.Read(dec, binary.LittleEndian, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCheckpoint, err)
	}
	// Bound the claimed dimensions before converting or allocating. The
	// pixel count is taken in uint64, where no pair of uint32 dimensions
	// can overflow it.
	if state[0] == 0 || state[1] == 0 ||
		uint64(state[0])*uint64(state[1]) > maxCheckpointPixels {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrBadCheckpoint, state[0], state[1])
	}
	width, height, nextFrame := int(state[0]), int(state[1]), int(state[2])

	pixels := make([]core.Vec3, width*height)
	if err := binary.Read(dec, binary.LittleEndian, pixels); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCheckpoint, err)
	}

	return &Checkpoint{
		Width:     width,
		Height:    height,
		NextFrame: nextFrame,
		Pixels:    pixels,
	}, nil
}

// Restore copies the checkpoint pixels into the framebuffer. The dimensions
// must match the checkpoint exactly.
func (c *Checkpoint) Restore(fb *Framebuffer) error {
	if c.Width != fb.Width() || c.Height != fb.Height() {
		return fmt.Errorf("%w: checkpoint is %dx%d, framebuffer is %dx%d",
			ErrBadCheckpoint, c.Width, c.Height, fb.Width(), fb.Height())
	}
	copy(fb.Pixels(), c.Pixels)
	return nil
}

// WriteCheckpointFile saves a checkpoint to the named file.
func WriteCheckpointFile(path string, fb *Framebuffer, nextFrame int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCheckpoint(f, fb, nextFrame); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCheckpointFile loads a checkpoint from the named file.
func ReadCheckpointFile(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCheckpoint(f)
}
