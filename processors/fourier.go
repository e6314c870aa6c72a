package processors

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"gocv.io/x/gocv"
)

// FourierProcessor transforms an image into the frequency domain and
// either filters it there (lowpass/highpass/bandpass/notch masks in
// ideal, Butterworth, or Gaussian shapes), visualizes the magnitude or
// phase spectrum, or reconstructs the image through the inverse
// transform.
//
// The transform, its magnitude, and its phase are derived fresh on every
// Process call and live only as locals inside it; nothing is cached
// between calls.
type FourierProcessor struct {
	mu               sync.RWMutex
	operationType    string
	filterType       string
	filterShape      string
	cutoffFrequency  float64
	cutoffHigh       float64
	butterworthOrder int
	gaussianSigma    float64
	showSpectrum     bool
	logTransform     bool
}

var (
	fourierOperationTypes = map[string]bool{
		"filter":    true,
		"magnitude": true,
		"phase":     true,
		"inverse":   true,
	}
	fourierFilterTypes = map[string]bool{
		"lowpass":  true,
		"highpass": true,
		"bandpass": true,
		"notch":    true,
	}
	fourierFilterShapes = map[string]bool{
		"ideal":       true,
		"butterworth": true,
		"gaussian":    true,
	}
)

func NewFourierProcessor() *FourierProcessor {
	return &FourierProcessor{
		operationType:    "filter",
		filterType:       "lowpass",
		filterShape:      "gaussian",
		cutoffFrequency:  50.0,
		cutoffHigh:       80.0,
		butterworthOrder: 2,
		gaussianSigma:    20.0,
		showSpectrum:     true,
		logTransform:     true,
	}
}

func (p *FourierProcessor) Name() string {
	return "Fourier Transform"
}

func (p *FourierProcessor) Parameters() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"operation_type":    p.operationType,
		"filter_type":       p.filterType,
		"filter_shape":      p.filterShape,
		"cutoff_frequency":  p.cutoffFrequency,
		"cutoff_high":       p.cutoffHigh,
		"butterworth_order": p.butterworthOrder,
		"gaussian_sigma":    p.gaussianSigma,
		"show_spectrum":     p.showSpectrum,
		"log_transform":     p.logTransform,
	}
}

func (p *FourierProcessor) SetParameters(params map[string]interface{}) error {
	p.mu.RLock()
	staged := fourierState{
		operationType:    p.operationType,
		filterType:       p.filterType,
		filterShape:      p.filterShape,
		cutoffFrequency:  p.cutoffFrequency,
		cutoffHigh:       p.cutoffHigh,
		butterworthOrder: p.butterworthOrder,
		gaussianSigma:    p.gaussianSigma,
		showSpectrum:     p.showSpectrum,
		logTransform:     p.logTransform,
	}
	p.mu.RUnlock()

	if value, ok := params["operation_type"]; ok {
		s, err := toString(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "operation_type", Reason: err.Error()}
		}
		if !fourierOperationTypes[s] {
			return &ParameterError{Processor: p.Name(), Key: "operation_type", Reason: fmt.Sprintf("unsupported operation %q", s)}
		}
		staged.operationType = s
	}

	if value, ok := params["filter_type"]; ok {
		s, err := toString(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "filter_type", Reason: err.Error()}
		}
		if !fourierFilterTypes[s] {
			return &ParameterError{Processor: p.Name(), Key: "filter_type", Reason: fmt.Sprintf("unsupported filter type %q", s)}
		}
		staged.filterType = s
	}

	if value, ok := params["filter_shape"]; ok {
		s, err := toString(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "filter_shape", Reason: err.Error()}
		}
		if !fourierFilterShapes[s] {
			return &ParameterError{Processor: p.Name(), Key: "filter_shape", Reason: fmt.Sprintf("unsupported filter shape %q", s)}
		}
		staged.filterShape = s
	}

	if value, ok := params["cutoff_frequency"]; ok {
		f, err := toFloat(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "cutoff_frequency", Reason: err.Error()}
		}
		if f < 0 || f > 100 {
			return &ParameterError{Processor: p.Name(), Key: "cutoff_frequency", Reason: "must be between 0 and 100"}
		}
		staged.cutoffFrequency = f
	}

	if value, ok := params["cutoff_high"]; ok {
		f, err := toFloat(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "cutoff_high", Reason: err.Error()}
		}
		if f < 0 || f > 100 {
			return &ParameterError{Processor: p.Name(), Key: "cutoff_high", Reason: "must be between 0 and 100"}
		}
		staged.cutoffHigh = f
	}

	if value, ok := params["butterworth_order"]; ok {
		i, err := toInt(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "butterworth_order", Reason: err.Error()}
		}
		if i < 1 || i > 10 {
			return &ParameterError{Processor: p.Name(), Key: "butterworth_order", Reason: "must be between 1 and 10"}
		}
		staged.butterworthOrder = i
	}

	if value, ok := params["gaussian_sigma"]; ok {
		f, err := toFloat(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "gaussian_sigma", Reason: err.Error()}
		}
		if f < 1 || f > 100 {
			return &ParameterError{Processor: p.Name(), Key: "gaussian_sigma", Reason: "must be between 1 and 100"}
		}
		staged.gaussianSigma = f
	}

	if value, ok := params["show_spectrum"]; ok {
		b, err := toBool(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "show_spectrum", Reason: err.Error()}
		}
		staged.showSpectrum = b
	}

	if value, ok := params["log_transform"]; ok {
		b, err := toBool(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "log_transform", Reason: err.Error()}
		}
		staged.logTransform = b
	}

	p.mu.Lock()
	p.operationType = staged.operationType
	p.filterType = staged.filterType
	p.filterShape = staged.filterShape
	p.cutoffFrequency = staged.cutoffFrequency
	p.cutoffHigh = staged.cutoffHigh
	p.butterworthOrder = staged.butterworthOrder
	p.gaussianSigma = staged.gaussianSigma
	p.showSpectrum = staged.showSpectrum
	p.logTransform = staged.logTransform
	p.mu.Unlock()
	return nil
}

func (p *FourierProcessor) Process(src gocv.Mat) (gocv.Mat, error) {
	if !ValidateMat(src) {
		return passThrough(src)
	}

	p.mu.RLock()
	settings := fourierSettings{
		operationType:    p.operationType,
		filterType:       p.filterType,
		filterShape:      p.filterShape,
		cutoffFrequency:  p.cutoffFrequency,
		cutoffHigh:       p.cutoffHigh,
		butterworthOrder: p.butterworthOrder,
		logTransform:     p.logTransform,
	}
	p.mu.RUnlock()

	channels := src.Channels()
	if channels != 1 && channels != 3 {
		return gocv.NewMat(), &ProcessingError{Processor: p.Name(), Err: fmt.Errorf("unsupported channel count %d", channels)}
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if channels == 3 {
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	} else {
		src.CopyTo(&gray)
	}

	rows := gray.Rows()
	cols := gray.Cols()

	// Zero-pad to an FFT-efficient size, then center the zero-frequency
	// component. Transform state stays local to this call.
	padded := padToOptimalSize(matPlane(gray, 0))
	spectrum := fftShift(fft.FFT2Real(padded))

	var result [][]float64
	switch settings.operationType {
	case "filter":
		mask := buildFrequencyMask(len(spectrum), len(spectrum[0]), settings)
		filtered := applyMask(spectrum, mask)
		result = cropPlane(inverseTransform(filtered), rows, cols)
	case "magnitude":
		result = magnitudeSpectrum(spectrum, settings.logTransform)
	case "phase":
		result = phaseSpectrum(spectrum)
	case "inverse":
		result = inverseTransform(spectrum)
	default:
		return gocv.NewMat(), &ProcessingError{Processor: p.Name(), Err: fmt.Errorf("no implementation for operation %q", settings.operationType)}
	}

	out := gocv.Zeros(len(result), len(result[0]), gocv.MatTypeCV8UC1)
	writePlane(&out, 0, result)

	if channels == 3 {
		colored := gocv.NewMat()
		gocv.CvtColor(out, &colored, gocv.ColorGrayToBGR)
		out.Close()
		return colored, nil
	}
	return out, nil
}

// fourierState mirrors the processor's full parameter set for atomic
// staging in SetParameters.
type fourierState struct {
	operationType    string
	filterType       string
	filterShape      string
	cutoffFrequency  float64
	cutoffHigh       float64
	butterworthOrder int
	gaussianSigma    float64
	showSpectrum     bool
	logTransform     bool
}

// fourierSettings is the per-call snapshot of the parameters Process
// reads. show_spectrum is recognized and retained but does not alter
// processing; filtering always reconstructs the spatial image.
type fourierSettings struct {
	operationType    string
	filterType       string
	filterShape      string
	cutoffFrequency  float64
	cutoffHigh       float64
	butterworthOrder int
	logTransform     bool
}

// padToOptimalSize zero-pads a plane so both dimensions hit an
// FFT-efficient size at least as large as the original.
func padToOptimalSize(plane [][]float64) [][]float64 {
	rows := len(plane)
	cols := len(plane[0])
	optimalRows := gocv.GetOptimalDFTSize(rows)
	optimalCols := gocv.GetOptimalDFTSize(cols)

	if optimalRows == rows && optimalCols == cols {
		return plane
	}

	padded := make([][]float64, optimalRows)
	for y := 0; y < optimalRows; y++ {
		padded[y] = make([]float64, optimalCols)
		if y < rows {
			copy(padded[y], plane[y])
		}
	}
	return padded
}

// fftShift rotates the spectrum so the zero-frequency component sits at
// the center of the grid.
func fftShift(data [][]complex128) [][]complex128 {
	return circularShift(data, len(data)/2, len(data[0])/2)
}

// ifftShift undoes fftShift; the offsets differ for odd dimensions.
func ifftShift(data [][]complex128) [][]complex128 {
	return circularShift(data, (len(data)+1)/2, (len(data[0])+1)/2)
}

func circularShift(data [][]complex128, shiftY, shiftX int) [][]complex128 {
	rows := len(data)
	cols := len(data[0])
	out := make([][]complex128, rows)
	for y := 0; y < rows; y++ {
		row := make([]complex128, cols)
		srcRow := data[(y+rows-shiftY)%rows]
		for x := 0; x < cols; x++ {
			row[x] = srcRow[(x+cols-shiftX)%cols]
		}
		out[y] = row
	}
	return out
}

func applyMask(spectrum [][]complex128, mask [][]float64) [][]complex128 {
	out := make([][]complex128, len(spectrum))
	for y := range spectrum {
		row := make([]complex128, len(spectrum[y]))
		for x := range spectrum[y] {
			row[x] = spectrum[y][x] * complex(mask[y][x], 0)
		}
		out[y] = row
	}
	return out
}

// inverseTransform brings a centered spectrum back to the spatial domain
// and takes the clipped magnitude.
func inverseTransform(spectrum [][]complex128) [][]float64 {
	reconstructed := fft.IFFT2(ifftShift(spectrum))
	out := make([][]float64, len(reconstructed))
	for y := range reconstructed {
		row := make([]float64, len(reconstructed[y]))
		for x := range reconstructed[y] {
			v := cmplx.Abs(reconstructed[y][x])
			if v > 255 {
				v = 255
			}
			row[x] = v
		}
		out[y] = row
	}
	return out
}

// magnitudeSpectrum renders the optionally log-scaled magnitude,
// min-subtracted and normalized to the full 8-bit range.
func magnitudeSpectrum(spectrum [][]complex128, logTransform bool) [][]float64 {
	rows := len(spectrum)
	cols := len(spectrum[0])

	out := make([][]float64, rows)
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for y := 0; y < rows; y++ {
		row := make([]float64, cols)
		for x := 0; x < cols; x++ {
			v := cmplx.Abs(spectrum[y][x])
			if logTransform {
				v = math.Log(v + 1)
			}
			row[x] = v
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
		out[y] = row
	}

	scale := maxVal - minVal
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out[y][x] -= minVal
			if scale > 0 {
				out[y][x] = out[y][x] / scale * 255
			}
		}
	}
	return out
}

// phaseSpectrum maps phase angles from [-pi,pi] onto [0,255].
func phaseSpectrum(spectrum [][]complex128) [][]float64 {
	out := make([][]float64, len(spectrum))
	for y := range spectrum {
		row := make([]float64, len(spectrum[y]))
		for x := range spectrum[y] {
			angle := cmplx.Phase(spectrum[y][x])
			row[x] = (angle + math.Pi) / (2 * math.Pi) * 255
		}
		out[y] = row
	}
	return out
}

func cropPlane(plane [][]float64, rows, cols int) [][]float64 {
	if len(plane) == rows && len(plane[0]) == cols {
		return plane
	}
	out := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		out[y] = plane[y][:cols]
	}
	return out
}
