package processors

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// LowpassProcessor smooths an image with one of five sliding-window
// filters: gaussian, average, median, min, or max.
//
// The window runs over interior pixels only; the border band of width
// kernel/2 stays zero in the output. That reproduces the reference
// formulation of the naive loop and is a boundary policy, not a defect.
type LowpassProcessor struct {
	mu         sync.RWMutex
	filterType string
	kernelSize int
}

var lowpassFilterTypes = map[string]bool{
	"gaussian": true,
	"average":  true,
	"median":   true,
	"min":      true,
	"max":      true,
}

func NewLowpassProcessor() *LowpassProcessor {
	return &LowpassProcessor{
		filterType: "gaussian",
		kernelSize: 3,
	}
}

func (p *LowpassProcessor) Name() string {
	return "Lowpass Filter"
}

func (p *LowpassProcessor) Parameters() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"filter_type": p.filterType,
		"kernel_size": p.kernelSize,
	}
}

func (p *LowpassProcessor) SetParameters(params map[string]interface{}) error {
	filterType := p.filterType
	kernelSize := p.kernelSize

	if value, ok := params["filter_type"]; ok {
		s, err := toString(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "filter_type", Reason: err.Error()}
		}
		if !lowpassFilterTypes[s] {
			return &ParameterError{Processor: p.Name(), Key: "filter_type", Reason: fmt.Sprintf("unsupported filter type %q", s)}
		}
		filterType = s
	}

	if value, ok := params["kernel_size"]; ok {
		i, err := toInt(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "kernel_size", Reason: err.Error()}
		}
		if i < 3 {
			return &ParameterError{Processor: p.Name(), Key: "kernel_size", Reason: "must be at least 3"}
		}
		if i > 15 {
			return &ParameterError{Processor: p.Name(), Key: "kernel_size", Reason: "must be at most 15"}
		}
		kernelSize = i
	}

	p.mu.Lock()
	p.filterType = filterType
	p.kernelSize = kernelSize
	p.mu.Unlock()
	return nil
}

func (p *LowpassProcessor) Process(src gocv.Mat) (gocv.Mat, error) {
	if !ValidateMat(src) {
		return passThrough(src)
	}

	p.mu.RLock()
	filterType := p.filterType
	kernelSize := p.kernelSize
	p.mu.RUnlock()

	// Normalize the kernel at process time as well: even sizes are bumped
	// to the next odd value, anything below 3 is clamped up.
	if kernelSize < 3 {
		kernelSize = 3
	}
	if kernelSize%2 == 0 {
		kernelSize++
	}

	reduce, err := windowReducer(filterType, kernelSize)
	if err != nil {
		return gocv.NewMat(), &ProcessingError{Processor: p.Name(), Err: err}
	}

	rows := src.Rows()
	cols := src.Cols()
	channels := src.Channels()
	offset := kernelSize / 2

	dst := gocv.Zeros(rows, cols, src.Type())
	window := make([]float64, kernelSize*kernelSize)

	for c := 0; c < channels; c++ {
		for i := offset; i < rows-offset; i++ {
			for j := offset; j < cols-offset; j++ {
				idx := 0
				for wy := i - offset; wy <= i+offset; wy++ {
					for wx := j - offset; wx <= j+offset; wx++ {
						if channels == 1 {
							window[idx] = float64(src.GetUCharAt(wy, wx))
						} else {
							window[idx] = float64(src.GetUCharAt3(wy, wx, c))
						}
						idx++
					}
				}
				value := clampToByte(reduce(window))
				if channels == 1 {
					dst.SetUCharAt(i, j, value)
				} else {
					dst.SetUCharAt3(i, j, c, value)
				}
			}
		}
	}

	return dst, nil
}
