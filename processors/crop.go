package processors

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Bound for the optional post-crop rescale. Crops larger than this are
// scaled down to fit; smaller crops are left alone.
const (
	cropFitWidth  = 650
	cropFitHeight = 650
)

// CropProcessor extracts the rectangle between two corner coordinates.
// Coordinates are clamped into the frame; a degenerate rectangle (end at
// or before start on either axis) passes the input through unchanged.
// With rescale_output enabled, the cropped region is additionally run
// through the shared fit-to-bounds rescale as a separate step.
type CropProcessor struct {
	mu            sync.RWMutex
	x1, y1        int
	x2, y2        int
	rescaleOutput bool
}

func NewCropProcessor() *CropProcessor {
	return &CropProcessor{}
}

func (p *CropProcessor) Name() string {
	return "Crop"
}

func (p *CropProcessor) Parameters() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"x1":             p.x1,
		"y1":             p.y1,
		"x2":             p.x2,
		"y2":             p.y2,
		"rescale_output": p.rescaleOutput,
	}
}

func (p *CropProcessor) SetParameters(params map[string]interface{}) error {
	x1, y1, x2, y2 := p.x1, p.y1, p.x2, p.y2
	rescale := p.rescaleOutput

	coords := []struct {
		key    string
		target *int
	}{
		{"x1", &x1},
		{"y1", &y1},
		{"x2", &x2},
		{"y2", &y2},
	}

	for _, coord := range coords {
		value, ok := params[coord.key]
		if !ok {
			continue
		}
		i, err := toInt(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: coord.key, Reason: err.Error()}
		}
		if i < 0 {
			return &ParameterError{Processor: p.Name(), Key: coord.key, Reason: "must be non-negative"}
		}
		*coord.target = i
	}

	if value, ok := params["rescale_output"]; ok {
		b, err := toBool(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "rescale_output", Reason: err.Error()}
		}
		rescale = b
	}

	p.mu.Lock()
	p.x1, p.y1, p.x2, p.y2 = x1, y1, x2, y2
	p.rescaleOutput = rescale
	p.mu.Unlock()
	return nil
}

func (p *CropProcessor) Process(src gocv.Mat) (gocv.Mat, error) {
	if !ValidateMat(src) {
		return passThrough(src)
	}

	p.mu.RLock()
	x1, y1, x2, y2 := p.x1, p.y1, p.x2, p.y2
	rescale := p.rescaleOutput
	p.mu.RUnlock()

	rows := src.Rows()
	cols := src.Cols()

	startX := clampInt(x1, 0, cols-1)
	startY := clampInt(y1, 0, rows-1)
	endX := clampInt(x2, 0, cols)
	endY := clampInt(y2, 0, rows)

	// Degenerate rectangle is a defined pass-through, not an error.
	if endX <= startX || endY <= startY {
		return passThrough(src)
	}

	region := src.Region(image.Rect(startX, startY, endX, endY))
	defer region.Close()
	cropped := region.Clone()

	if !rescale {
		return cropped, nil
	}

	fitted := ScaleToFit(cropped, cropFitWidth, cropFitHeight)
	if fitted.Ptr() != cropped.Ptr() {
		cropped.Close()
	}
	return fitted, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
