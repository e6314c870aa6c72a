package processors

import (
	"errors"
	"math"
	"testing"

	"gocv.io/x/gocv"
)

func TestFourierWideOpenLowpassReconstructs(t *testing.T) {
	p := NewFourierProcessor()
	err := p.SetParameters(map[string]interface{}{
		"operation_type":   "filter",
		"filter_type":      "lowpass",
		"filter_shape":     "ideal",
		"cutoff_frequency": 100.0,
	})
	if err != nil {
		t.Fatalf("SetParameters failed: %v", err)
	}

	src := grayMat(t, 32, 32, 128)
	defer src.Close()

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	if dst.Rows() != 32 || dst.Cols() != 32 {
		t.Fatalf("output is %dx%d, want 32x32", dst.Cols(), dst.Rows())
	}

	// An ideal lowpass at 100% keeps every frequency inside the Nyquist
	// radius; a constant image lives entirely at DC and survives up to
	// rounding in the transform pair.
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			got := float64(dst.GetUCharAt(y, x))
			if math.Abs(got-128) > 1 {
				t.Fatalf("pixel (%d,%d) = %v, want 128 +/- 1", x, y, got)
			}
		}
	}
}

func TestFourierZeroCutoffLowpassBlocksEverything(t *testing.T) {
	p := NewFourierProcessor()
	err := p.SetParameters(map[string]interface{}{
		"operation_type":   "filter",
		"filter_type":      "lowpass",
		"filter_shape":     "gaussian",
		"cutoff_frequency": 0.0,
	})
	if err != nil {
		t.Fatalf("SetParameters failed: %v", err)
	}

	src := grayMat(t, 16, 16, 200)
	defer src.Close()

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := dst.GetUCharAt(y, x); got != 0 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 for a fully closed filter", x, y, got)
			}
		}
	}
}

func TestFourierFilterAtDefaultsReconstructs(t *testing.T) {
	// The constructor defaults (gaussian lowpass at 50%, show_spectrum
	// on) must still produce a spatial image: show_spectrum is a stored
	// display preference and never reroutes filtering.
	p := NewFourierProcessor()

	src := grayMat(t, 32, 32, 128)
	defer src.Close()

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	if dst.Rows() != 32 || dst.Cols() != 32 {
		t.Fatalf("output is %dx%d, want the input's 32x32", dst.Cols(), dst.Rows())
	}

	// A constant image is pure DC; every lowpass keeps DC at unit gain,
	// so the default filter pass returns the constant, not a near-black
	// spectrum rendering.
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			got := float64(dst.GetUCharAt(y, x))
			if math.Abs(got-128) > 1 {
				t.Fatalf("pixel (%d,%d) = %v, want 128 +/- 1", x, y, got)
			}
		}
	}
}

func TestFourierShowSpectrumDoesNotBranchFiltering(t *testing.T) {
	run := func(showSpectrum bool) gocv.Mat {
		p := NewFourierProcessor()
		err := p.SetParameters(map[string]interface{}{
			"operation_type": "filter",
			"show_spectrum":  showSpectrum,
		})
		if err != nil {
			t.Fatalf("SetParameters failed: %v", err)
		}

		src := grayMat(t, 16, 16, 0)
		defer src.Close()
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				src.SetUCharAt(y, x, uint8(16*x+y))
			}
		}

		dst, err := p.Process(src)
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		return dst
	}

	on := run(true)
	defer on.Close()
	off := run(false)
	defer off.Close()

	if !matsEqual(on, off) {
		t.Error("show_spectrum must not change the filter output")
	}
	if got := NewFourierProcessor().Parameters()["show_spectrum"]; got != true {
		t.Errorf("show_spectrum default = %v, want true", got)
	}
}

func TestFourierColorInputYieldsColorOutput(t *testing.T) {
	p := NewFourierProcessor()
	if err := p.SetParameters(map[string]interface{}{"operation_type": "magnitude"}); err != nil {
		t.Fatalf("SetParameters failed: %v", err)
	}

	src := bgrMat(t, 16, 16, 10, 60, 110)
	defer src.Close()

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	if dst.Channels() != 3 {
		t.Errorf("color input should produce a 3-channel result, got %d channels", dst.Channels())
	}
}

func TestFourierRejectsUnsupportedChannelCount(t *testing.T) {
	p := NewFourierProcessor()

	src := gocv.NewMatWithSize(8, 8, gocv.MatTypeCV8UC4)
	defer src.Close()

	_, err := p.Process(src)
	if err == nil {
		t.Fatal("4-channel input should be rejected")
	}
	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("error %T is not a ProcessingError", err)
	}
}

func TestFourierParameterErrors(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
	}{
		{"unknown operation", map[string]interface{}{"operation_type": "wavelet"}},
		{"unknown filter type", map[string]interface{}{"filter_type": "comb"}},
		{"unknown shape", map[string]interface{}{"filter_shape": "triangular"}},
		{"cutoff above range", map[string]interface{}{"cutoff_frequency": 150.0}},
		{"cutoff below range", map[string]interface{}{"cutoff_high": -5.0}},
		{"order out of range", map[string]interface{}{"butterworth_order": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewFourierProcessor()
			before := p.Parameters()

			err := p.SetParameters(tt.params)
			if err == nil {
				t.Fatal("SetParameters should fail")
			}
			var paramErr *ParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("error %T is not a ParameterError", err)
			}

			after := p.Parameters()
			for key, value := range before {
				if after[key] != value {
					t.Errorf("parameter %s changed from %v to %v on failed update", key, value, after[key])
				}
			}
		})
	}
}

func TestFourierAtomicUpdateOnPartialFailure(t *testing.T) {
	p := NewFourierProcessor()

	err := p.SetParameters(map[string]interface{}{
		"operation_type":   "phase",
		"cutoff_frequency": 400.0,
	})
	if err == nil {
		t.Fatal("SetParameters should fail")
	}
	if got := p.Parameters()["operation_type"]; got != "filter" {
		t.Errorf("operation_type = %v after rejected update, want filter", got)
	}
}

func TestFrequencyMaskShapes(t *testing.T) {
	settings := fourierSettings{
		filterType:       "lowpass",
		filterShape:      "ideal",
		cutoffFrequency:  50,
		cutoffHigh:       80,
		butterworthOrder: 2,
	}

	mask := buildFrequencyMask(32, 32, settings)
	if mask[16][16] != 1 {
		t.Errorf("ideal lowpass center = %v, want 1", mask[16][16])
	}
	if mask[0][0] != 0 {
		t.Errorf("ideal lowpass corner = %v, want 0", mask[0][0])
	}

	settings.filterType = "highpass"
	mask = buildFrequencyMask(32, 32, settings)
	if mask[16][16] != 0 {
		t.Errorf("highpass center = %v, want 0", mask[16][16])
	}
	if mask[0][0] != 1 {
		t.Errorf("highpass corner = %v, want 1", mask[0][0])
	}

	settings.filterType = "lowpass"
	settings.filterShape = "butterworth"
	mask = buildFrequencyMask(32, 32, settings)
	if mask[16][16] != 1 {
		t.Errorf("butterworth DC gain = %v, want 1", mask[16][16])
	}
	for i := 1; i < 16; i++ {
		if mask[16][16+i] > mask[16][16+i-1] {
			t.Fatalf("butterworth lowpass must fall off monotonically from center")
		}
	}
}

func TestCutoffRadius(t *testing.T) {
	if got := cutoffRadius(100, 64, 128); got != 32 {
		t.Errorf("cutoffRadius(100%%, 64x128) = %v, want 32", got)
	}
	if got := cutoffRadius(50, 64, 64); got != 16 {
		t.Errorf("cutoffRadius(50%%, 64x64) = %v, want 16", got)
	}
	if got := cutoffRadius(0, 64, 64); got != 0 {
		t.Errorf("cutoffRadius(0%%) = %v, want 0", got)
	}
}
