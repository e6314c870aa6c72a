package processors

import (
	"math"

	"gocv.io/x/gocv"
)

// Float-plane helpers. The highpass and Fourier paths compute on float64
// planes extracted per channel from the 8-bit Mat boundary and cast back
// with clipping at the very end.

// matPlane extracts one channel of a Mat as a rows x cols float64 plane.
func matPlane(src gocv.Mat, channel int) [][]float64 {
	rows := src.Rows()
	cols := src.Cols()
	channels := src.Channels()

	plane := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		row := make([]float64, cols)
		for x := 0; x < cols; x++ {
			if channels == 1 {
				row[x] = float64(src.GetUCharAt(y, x))
			} else {
				row[x] = float64(src.GetUCharAt3(y, x, channel))
			}
		}
		plane[y] = row
	}
	return plane
}

// writePlane clips a float64 plane into one channel of an 8-bit Mat.
func writePlane(dst *gocv.Mat, channel int, plane [][]float64) {
	channels := dst.Channels()
	for y, row := range plane {
		for x, v := range row {
			if channels == 1 {
				dst.SetUCharAt(y, x, clampToByte(v))
			} else {
				dst.SetUCharAt3(y, x, channel, clampToByte(v))
			}
		}
	}
}

// reflectIndex maps an out-of-range coordinate back into [0,n) with
// reflect-101 borders (the OpenCV default: edge pixel not duplicated).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

// convolvePlane applies a square kernel to a plane with reflect-101
// border handling. The kernel is row-major with odd side length.
func convolvePlane(plane [][]float64, kernel []float64, kernelSize int) [][]float64 {
	rows := len(plane)
	cols := len(plane[0])
	offset := kernelSize / 2

	out := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		row := make([]float64, cols)
		for x := 0; x < cols; x++ {
			sum := 0.0
			for ky := 0; ky < kernelSize; ky++ {
				sy := reflectIndex(y+ky-offset, rows)
				for kx := 0; kx < kernelSize; kx++ {
					sx := reflectIndex(x+kx-offset, cols)
					sum += plane[sy][sx] * kernel[ky*kernelSize+kx]
				}
			}
			row[x] = sum
		}
		out[y] = row
	}
	return out
}

// gaussianBlurPlane applies a separable Gaussian blur with the given
// sigma. Kernel size follows the reference convention max(3, int(6*sigma)|1)
// so the window spans roughly +-3 sigma.
func gaussianBlurPlane(plane [][]float64, sigma float64) [][]float64 {
	kernelSize := int(6 * sigma)
	kernelSize |= 1
	if kernelSize < 3 {
		kernelSize = 3
	}
	kernel := gaussianKernel1D(kernelSize, sigma)
	offset := kernelSize / 2

	rows := len(plane)
	cols := len(plane[0])

	// Horizontal pass.
	tmp := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		row := make([]float64, cols)
		for x := 0; x < cols; x++ {
			sum := 0.0
			for k := 0; k < kernelSize; k++ {
				sx := reflectIndex(x+k-offset, cols)
				sum += plane[y][sx] * kernel[k]
			}
			row[x] = sum
		}
		tmp[y] = row
	}

	// Vertical pass.
	out := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		row := make([]float64, cols)
		for x := 0; x < cols; x++ {
			sum := 0.0
			for k := 0; k < kernelSize; k++ {
				sy := reflectIndex(y+k-offset, rows)
				sum += tmp[sy][x] * kernel[k]
			}
			row[x] = sum
		}
		out[y] = row
	}
	return out
}

func gaussianKernel1D(kernelSize int, sigma float64) []float64 {
	half := (float64(kernelSize) - 1) / 2
	kernel := make([]float64, kernelSize)
	sum := 0.0
	for i := 0; i < kernelSize; i++ {
		d := float64(i) - half
		v := math.Exp(-0.5 * d * d / (sigma * sigma))
		kernel[i] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
