package processors

import "math"

// Frequency-plane mask construction. Distances are Euclidean in pixel
// units on the padded grid; cutoff percentages map onto radii relative to
// min(rows,cols)/2, never the padded diagonal. Changing that base would
// change every mask, so it is fixed here.

func buildFrequencyMask(rows, cols int, settings fourierSettings) [][]float64 {
	switch settings.filterType {
	case "lowpass":
		return lowpassMask(rows, cols, settings)
	case "highpass":
		return invertMask(lowpassMask(rows, cols, settings))
	case "bandpass":
		return bandpassMask(rows, cols, settings)
	case "notch":
		return invertMask(bandpassMask(rows, cols, settings))
	default:
		return onesMask(rows, cols)
	}
}

// cutoffRadius converts a 0-100 percentage into a pixel radius.
func cutoffRadius(percent float64, rows, cols int) float64 {
	return percent / 100.0 * float64(minInt(rows, cols)) / 2
}

func lowpassMask(rows, cols int, settings fourierSettings) [][]float64 {
	centerRow := rows / 2
	centerCol := cols / 2
	cutoff := cutoffRadius(settings.cutoffFrequency, rows, cols)

	mask := zerosMask(rows, cols)
	// A zero cutoff blocks everything; skip the loop rather than divide
	// by zero in the Butterworth and Gaussian shapes.
	if cutoff == 0 && settings.filterShape != "ideal" {
		return mask
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			distance := pixelDistance(i, j, centerRow, centerCol)
			switch settings.filterShape {
			case "ideal":
				if distance <= cutoff {
					mask[i][j] = 1.0
				}
			case "butterworth":
				mask[i][j] = 1.0 / (1.0 + math.Pow(distance/cutoff, 2*float64(settings.butterworthOrder)))
			case "gaussian":
				sigma := cutoff / 2
				mask[i][j] = math.Exp(-(distance * distance) / (2 * sigma * sigma))
			}
		}
	}
	return mask
}

func bandpassMask(rows, cols int, settings fourierSettings) [][]float64 {
	centerRow := rows / 2
	centerCol := cols / 2
	cutoffLow := cutoffRadius(settings.cutoffFrequency, rows, cols)
	cutoffHigh := cutoffRadius(settings.cutoffHigh, rows, cols)

	mask := zerosMask(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			distance := pixelDistance(i, j, centerRow, centerCol)
			switch settings.filterShape {
			case "ideal":
				if distance >= cutoffLow && distance <= cutoffHigh {
					mask[i][j] = 1.0
				}
			case "butterworth":
				// Product of a highpass term at the low cutoff and a
				// lowpass term at the high cutoff. The DC point stays 0.
				if distance > 0 {
					order := 2 * float64(settings.butterworthOrder)
					high := 1.0 / (1.0 + math.Pow(cutoffLow/distance, order))
					low := 1.0 / (1.0 + math.Pow(distance/cutoffHigh, order))
					mask[i][j] = high * low
				}
			case "gaussian":
				centerFreq := (cutoffLow + cutoffHigh) / 2
				bandwidth := cutoffHigh - cutoffLow
				if bandwidth > 0 {
					sigma := bandwidth / 4
					d := distance - centerFreq
					mask[i][j] = math.Exp(-(d * d) / (2 * sigma * sigma))
				}
			}
		}
	}
	return mask
}

func invertMask(mask [][]float64) [][]float64 {
	for i := range mask {
		for j := range mask[i] {
			mask[i][j] = 1.0 - mask[i][j]
		}
	}
	return mask
}

func pixelDistance(i, j, centerRow, centerCol int) float64 {
	dy := float64(i - centerRow)
	dx := float64(j - centerCol)
	return math.Sqrt(dy*dy + dx*dx)
}

func zerosMask(rows, cols int) [][]float64 {
	mask := make([][]float64, rows)
	for i := range mask {
		mask[i] = make([]float64, cols)
	}
	return mask
}

func onesMask(rows, cols int) [][]float64 {
	mask := zerosMask(rows, cols)
	for i := range mask {
		for j := range mask[i] {
			mask[i][j] = 1.0
		}
	}
	return mask
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
