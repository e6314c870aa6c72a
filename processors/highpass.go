package processors

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// HighpassProcessor sharpens an image with one of four techniques:
// a Laplacian edge add-back, unsharp masking, high-boost filtering, or a
// fixed custom sharpening kernel interpolated toward identity by
// strength. Channels are processed independently; intermediate math runs
// in float64 and the result is clipped back to 8 bit.
type HighpassProcessor struct {
	mu            sync.RWMutex
	filterType    string
	strength      float64
	gaussianSigma float64
	boostFactor   float64
	kernelSize    int

	// preserve_brightness is recognized and round-tripped for parity
	// with the other toggles but does not alter the filter math.
	preserveBrightness bool
}

var highpassFilterTypes = map[string]bool{
	"laplacian":    true,
	"unsharp_mask": true,
	"high_boost":   true,
	"custom":       true,
}

func NewHighpassProcessor() *HighpassProcessor {
	return &HighpassProcessor{
		filterType:         "unsharp_mask",
		strength:           1.0,
		gaussianSigma:      1.0,
		boostFactor:        1.5,
		kernelSize:         3,
		preserveBrightness: true,
	}
}

func (p *HighpassProcessor) Name() string {
	return "Highpass Filter"
}

func (p *HighpassProcessor) Parameters() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"filter_type":         p.filterType,
		"strength":            p.strength,
		"gaussian_sigma":      p.gaussianSigma,
		"boost_factor":        p.boostFactor,
		"kernel_size":         p.kernelSize,
		"preserve_brightness": p.preserveBrightness,
	}
}

func (p *HighpassProcessor) SetParameters(params map[string]interface{}) error {
	filterType := p.filterType
	strength := p.strength
	gaussianSigma := p.gaussianSigma
	boostFactor := p.boostFactor
	kernelSize := p.kernelSize
	preserveBrightness := p.preserveBrightness

	if value, ok := params["filter_type"]; ok {
		s, err := toString(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "filter_type", Reason: err.Error()}
		}
		if !highpassFilterTypes[s] {
			return &ParameterError{Processor: p.Name(), Key: "filter_type", Reason: fmt.Sprintf("unsupported filter type %q", s)}
		}
		filterType = s
	}

	if value, ok := params["strength"]; ok {
		f, err := toFloat(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "strength", Reason: err.Error()}
		}
		if f < 0 || f > 5 {
			return &ParameterError{Processor: p.Name(), Key: "strength", Reason: "must be between 0 and 5"}
		}
		strength = f
	}

	if value, ok := params["gaussian_sigma"]; ok {
		f, err := toFloat(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "gaussian_sigma", Reason: err.Error()}
		}
		if f < 0.1 || f > 10 {
			return &ParameterError{Processor: p.Name(), Key: "gaussian_sigma", Reason: "must be between 0.1 and 10"}
		}
		gaussianSigma = f
	}

	if value, ok := params["boost_factor"]; ok {
		f, err := toFloat(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "boost_factor", Reason: err.Error()}
		}
		if f < 1 || f > 5 {
			return &ParameterError{Processor: p.Name(), Key: "boost_factor", Reason: "must be between 1 and 5"}
		}
		boostFactor = f
	}

	if value, ok := params["kernel_size"]; ok {
		i, err := toInt(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "kernel_size", Reason: err.Error()}
		}
		if i != 3 && i != 5 {
			return &ParameterError{Processor: p.Name(), Key: "kernel_size", Reason: "must be 3 or 5"}
		}
		kernelSize = i
	}

	if value, ok := params["preserve_brightness"]; ok {
		b, err := toBool(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "preserve_brightness", Reason: err.Error()}
		}
		preserveBrightness = b
	}

	p.mu.Lock()
	p.filterType = filterType
	p.strength = strength
	p.gaussianSigma = gaussianSigma
	p.boostFactor = boostFactor
	p.kernelSize = kernelSize
	p.preserveBrightness = preserveBrightness
	p.mu.Unlock()
	return nil
}

func (p *HighpassProcessor) Process(src gocv.Mat) (gocv.Mat, error) {
	if !ValidateMat(src) {
		return passThrough(src)
	}

	p.mu.RLock()
	filterType := p.filterType
	strength := p.strength
	gaussianSigma := p.gaussianSigma
	boostFactor := p.boostFactor
	kernelSize := p.kernelSize
	p.mu.RUnlock()

	channels := src.Channels()
	dst := gocv.Zeros(src.Rows(), src.Cols(), src.Type())

	for c := 0; c < channels; c++ {
		plane := matPlane(src, c)

		var sharpened [][]float64
		switch filterType {
		case "laplacian":
			sharpened = applyLaplacian(plane, strength)
		case "unsharp_mask":
			sharpened = applyUnsharpMask(plane, strength, gaussianSigma)
		case "high_boost":
			sharpened = applyHighBoost(plane, strength, boostFactor, gaussianSigma)
		case "custom":
			sharpened = applyCustomKernel(plane, strength, kernelSize)
		default:
			dst.Close()
			return gocv.NewMat(), &ProcessingError{Processor: p.Name(), Err: fmt.Errorf("no implementation for filter type %q", filterType)}
		}

		writePlane(&dst, c, sharpened)
	}

	return dst, nil
}

// applyLaplacian convolves with the fixed 3x3 Laplacian and adds the
// scaled response back to the original.
func applyLaplacian(plane [][]float64, strength float64) [][]float64 {
	laplacian := []float64{
		0, -1, 0,
		-1, 4, -1,
		0, -1, 0,
	}
	filtered := convolvePlane(plane, laplacian, 3)
	out := make([][]float64, len(plane))
	for y := range plane {
		row := make([]float64, len(plane[y]))
		for x := range plane[y] {
			row[x] = plane[y][x] + strength*filtered[y][x]
		}
		out[y] = row
	}
	return out
}

// applyUnsharpMask computes original + strength*(original - blurred).
func applyUnsharpMask(plane [][]float64, strength, sigma float64) [][]float64 {
	blurred := gaussianBlurPlane(plane, sigma)
	out := make([][]float64, len(plane))
	for y := range plane {
		row := make([]float64, len(plane[y]))
		for x := range plane[y] {
			row[x] = plane[y][x] + strength*(plane[y][x]-blurred[y][x])
		}
		out[y] = row
	}
	return out
}

// applyHighBoost computes boost*original - blurred, then blends the
// boosted result with the original by strength.
func applyHighBoost(plane [][]float64, strength, boost, sigma float64) [][]float64 {
	blurred := gaussianBlurPlane(plane, sigma)
	out := make([][]float64, len(plane))
	for y := range plane {
		row := make([]float64, len(plane[y]))
		for x := range plane[y] {
			boosted := boost*plane[y][x] - blurred[y][x]
			row[x] = plane[y][x] + strength*(boosted-plane[y][x])
		}
		out[y] = row
	}
	return out
}

// applyCustomKernel convolves with a fixed sharpening kernel whose center
// weight and overall weights are interpolated by strength toward the
// identity kernel.
func applyCustomKernel(plane [][]float64, strength float64, kernelSize int) [][]float64 {
	var kernel []float64
	if kernelSize == 5 {
		kernel = []float64{
			-1, -1, -1, -1, -1,
			-1, 2, 2, 2, -1,
			-1, 2, 8, 2, -1,
			-1, 2, 2, 2, -1,
			-1, -1, -1, -1, -1,
		}
		for i := range kernel {
			kernel[i] /= 8
		}
	} else {
		kernelSize = 3
		kernel = []float64{
			0, -1, 0,
			-1, 5, -1,
			0, -1, 0,
		}
	}

	center := kernelSize / 2
	kernel[center*kernelSize+center] = 1 + strength*(kernel[center*kernelSize+center]-1)
	for i := range kernel {
		kernel[i] *= strength
	}
	for i := 0; i < kernelSize; i++ {
		kernel[i*kernelSize+i] += 1 - strength
	}

	return convolvePlane(plane, kernel, kernelSize)
}
