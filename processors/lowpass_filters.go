package processors

import (
	"fmt"
	"math"
	"sort"
)

// windowReducer returns the per-window reduction for a lowpass filter
// type. The window is handed over row-major, one channel at a time.
func windowReducer(filterType string, kernelSize int) (func([]float64) float64, error) {
	switch filterType {
	case "gaussian":
		kernel := gaussianKernel2D(kernelSize)
		return func(window []float64) float64 {
			sum := 0.0
			for i, v := range window {
				sum += v * kernel[i]
			}
			return sum
		}, nil
	case "average":
		normalization := 1.0 / float64(kernelSize*kernelSize)
		return func(window []float64) float64 {
			sum := 0.0
			for _, v := range window {
				sum += v
			}
			return sum * normalization
		}, nil
	case "median":
		scratch := make([]float64, kernelSize*kernelSize)
		return func(window []float64) float64 {
			copy(scratch, window)
			sort.Float64s(scratch)
			return scratch[len(scratch)/2]
		}, nil
	case "min":
		return func(window []float64) float64 {
			min := window[0]
			for _, v := range window[1:] {
				if v < min {
					min = v
				}
			}
			return min
		}, nil
	case "max":
		return func(window []float64) float64 {
			max := window[0]
			for _, v := range window[1:] {
				if v > max {
					max = v
				}
			}
			return max
		}, nil
	default:
		return nil, fmt.Errorf("no reducer for filter type %q", filterType)
	}
}

// gaussianKernel2D builds a normalized 2-D Gaussian kernel, row-major.
// Sigma is derived from the kernel size with the same formula OpenCV uses
// for an unspecified sigma: 0.3*((k-1)*0.5 - 1) + 0.8.
func gaussianKernel2D(kernelSize int) []float64 {
	sigma := 0.3*((float64(kernelSize)-1)*0.5-1) + 0.8
	half := (float64(kernelSize) - 1) / 2

	kernel := make([]float64, kernelSize*kernelSize)
	sum := 0.0
	for y := 0; y < kernelSize; y++ {
		for x := 0; x < kernelSize; x++ {
			dx := float64(x) - half
			dy := float64(y) - half
			v := math.Exp(-0.5 * (dx*dx + dy*dy) / (sigma * sigma))
			kernel[y*kernelSize+x] = v
			sum += v
		}
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
