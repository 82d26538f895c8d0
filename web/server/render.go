package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"golang.org/x/image/draw"

	"github.com/lumen-render/lumen/pkg/renderer"
	"github.com/lumen-render/lumen/pkg/scene"
)

// RenderRequest represents a render request from the client.
type RenderRequest struct {
	Scene           string  `json:"scene"`           // Built-in scene ID
	Width           int     `json:"width"`           // Image width
	Height          int     `json:"height"`          // Image height
	SamplesPerPixel int     `json:"samplesPerPixel"` // Rays per pixel per frame
	Frames          int     `json:"frames"`          // Frames to accumulate
	Weight          float64 `json:"weight"`          // Blend weight; negative = running average
	Scale           int     `json:"scale"`           // Preview upscale factor
}

// FrameUpdate represents a single accumulated frame sent via SSE.
type FrameUpdate struct {
	Frame       int    `json:"frame"`
	TotalFrames int    `json:"totalFrames"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Stats represents render statistics for one frame.
type Stats struct {
	Pixels            int     `json:"pixels"`
	Samples           int     `json:"samples"`
	MeanLuminance     float64 `json:"meanLuminance"`
	LuminanceVariance float64 `json:"luminanceVariance"`
	RenderTimeMs      int64   `json:"renderTimeMs"`
}

// handleRender streams accumulated frames to the client with SSE.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	session, err := buildSession(req)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Setup failed: %v", err))
		return
	}

	logger.Infof("rendering %s at %dx%d, %d frames for %s",
		req.Scene, req.Width, req.Height, req.Frames, r.RemoteAddr)

	// The request context cancels the session when the client disconnects.
	startTime := time.Now()
	results, errs := session.Run(r.Context())

	for result := range results {
		imageData, err := imageToBase64PNG(upscale(result.Image, req.Scale))
		if err != nil {
			s.sendSSEError(w, fmt.Sprintf("Failed to encode image: %v", err))
			return
		}

		update := FrameUpdate{
			Frame:       result.Frame,
			TotalFrames: req.Frames,
			ImageData:   imageData,
			Stats: Stats{
				Pixels:            result.Stats.Pixels,
				Samples:           result.Stats.Samples,
				MeanLuminance:     result.Stats.MeanLuminance,
				LuminanceVariance: result.Stats.LuminanceVariance,
				RenderTimeMs:      result.Stats.RenderTime.Milliseconds(),
			},
			IsComplete: result.IsLast,
			ElapsedMs:  time.Since(startTime).Milliseconds(),
		}

		if err := s.sendSSEUpdate(w, update); err != nil {
			return
		}
	}

	if err := <-errs; err != nil {
		logger.Infof("render for %s stopped: %v", r.RemoteAddr, err)
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}

	s.sendSSEEvent(w, "complete", "Rendering completed")
}

// parseRenderRequest parses and validates request parameters.
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	query := r.URL.Query()

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	} else {
		req.Scene = "two-spheres"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 1920); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 16, 1080); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 2, 1, 64); err != nil {
		return nil, err
	}
	if req.Frames, err = parseIntParam(query, "frames", 16, 1, 256); err != nil {
		return nil, err
	}
	if req.Weight, err = parseFloatParam(query, "weight", -1, -1, 1); err != nil {
		return nil, err
	}
	if req.Scale, err = parseIntParam(query, "scale", 1, 1, 4); err != nil {
		return nil, err
	}

	return req, nil
}

// buildSession assembles the full render pipeline for a request.
func buildSession(req *RenderRequest) (*renderer.Session, error) {
	sceneObj, err := scene.CreateScene(req.Scene)
	if err != nil {
		return nil, err
	}

	cameraConfig := sceneObj.Camera
	cameraConfig.Width = req.Width
	cameraConfig.Height = req.Height
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}

	renderConfig := sceneObj.Render
	renderConfig.SamplesPerPixel = req.SamplesPerPixel
	renderConfig.BlendWeight = req.Weight

	raytracer, err := renderer.NewRaytracer(sceneObj.World, camera, renderConfig)
	if err != nil {
		return nil, err
	}

	return renderer.NewSession(raytracer, renderer.SessionConfig{MaxFrames: req.Frames}, sessionLogger{})
}

// upscale enlarges a preview image by an integer factor using nearest
// neighbor sampling, preserving hard pixel edges.
func upscale(img *image.RGBA, scale int) *image.RGBA {
	if scale <= 1 {
		return img
	}
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// imageToBase64PNG converts an image to base64-encoded PNG.
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEUpdate sends a frame update via SSE.
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update FrameUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "frame", string(data))
}

// sendSSEError sends an error via SSE.
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event.
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
