package processors

import (
	"sync"

	"gocv.io/x/gocv"
)

// Flip type codes, matching the OpenCV flip-code convention.
const (
	FlipVertical   = 0 // reflect about the horizontal axis
	FlipHorizontal = 1 // reflect about the vertical axis
)

// FlipProcessor reflects an image about one of its axes. Output
// dimensions match the input and flipping twice with the same type is an
// exact identity.
type FlipProcessor struct {
	mu       sync.RWMutex
	flipType int
}

func NewFlipProcessor() *FlipProcessor {
	return &FlipProcessor{flipType: FlipVertical}
}

func (p *FlipProcessor) Name() string {
	return "Flip"
}

func (p *FlipProcessor) Parameters() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"flip_type": p.flipType,
	}
}

func (p *FlipProcessor) SetParameters(params map[string]interface{}) error {
	if value, ok := params["flip_type"]; ok {
		i, err := toInt(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "flip_type", Reason: err.Error()}
		}
		if i != FlipVertical && i != FlipHorizontal {
			return &ParameterError{Processor: p.Name(), Key: "flip_type", Reason: "must be 0 (vertical) or 1 (horizontal)"}
		}
		p.mu.Lock()
		p.flipType = i
		p.mu.Unlock()
	}
	return nil
}

func (p *FlipProcessor) Process(src gocv.Mat) (gocv.Mat, error) {
	if !ValidateMat(src) {
		return passThrough(src)
	}

	p.mu.RLock()
	flipType := p.flipType
	p.mu.RUnlock()

	dst := gocv.NewMat()
	gocv.Flip(src, &dst, flipType)
	return dst, nil
}
