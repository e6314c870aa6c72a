package processors

import (
	"errors"
	"testing"
)

func TestCropExtractsRegion(t *testing.T) {
	p := NewCropProcessor()
	if err := p.SetParameters(map[string]interface{}{"x1": 2, "y1": 3, "x2": 7, "y2": 8}); err != nil {
		t.Fatalf("SetParameters failed: %v", err)
	}

	src := grayMat(t, 10, 10, 0)
	defer src.Close()
	src.SetUCharAt(3, 2, 201) // top-left corner of the region
	src.SetUCharAt(7, 6, 202) // bottom-right interior

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	if dst.Cols() != 5 || dst.Rows() != 5 {
		t.Fatalf("crop produced %dx%d, want 5x5", dst.Cols(), dst.Rows())
	}
	if got := dst.GetUCharAt(0, 0); got != 201 {
		t.Errorf("region origin = %d, want 201", got)
	}
	if got := dst.GetUCharAt(4, 4); got != 202 {
		t.Errorf("region corner = %d, want 202", got)
	}
}

func TestCropClampsToImageBounds(t *testing.T) {
	p := NewCropProcessor()
	if err := p.SetParameters(map[string]interface{}{"x1": 5, "y1": 5, "x2": 100, "y2": 100}); err != nil {
		t.Fatalf("SetParameters failed: %v", err)
	}

	src := grayMat(t, 10, 10, 7)
	defer src.Close()

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	if dst.Cols() != 5 || dst.Rows() != 5 {
		t.Errorf("clamped crop produced %dx%d, want 5x5", dst.Cols(), dst.Rows())
	}
}

func TestCropDegenerateRectanglePassesThrough(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
	}{
		{"zero width", map[string]interface{}{"x1": 4, "y1": 0, "x2": 4, "y2": 8}},
		{"inverted", map[string]interface{}{"x1": 6, "y1": 6, "x2": 2, "y2": 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewCropProcessor()
			if err := p.SetParameters(tt.params); err != nil {
				t.Fatalf("SetParameters failed: %v", err)
			}

			src := bgrMat(t, 8, 8, 1, 2, 3)
			defer src.Close()

			dst, err := p.Process(src)
			if err != nil {
				t.Fatalf("Process failed: %v", err)
			}
			defer dst.Close()

			if !matsEqual(src, dst) {
				t.Error("degenerate crop should return the input unchanged")
			}
			if dst.Ptr() == src.Ptr() {
				t.Error("pass-through must be a clone, not the source Mat")
			}
		})
	}
}

func TestCropRejectsNegativeCoordinates(t *testing.T) {
	p := NewCropProcessor()

	err := p.SetParameters(map[string]interface{}{"x1": -1})
	if err == nil {
		t.Fatal("negative coordinate should be rejected")
	}
	var paramErr *ParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("error %T is not a ParameterError", err)
	}
}

func TestCropRescaleOutputCapsDimensions(t *testing.T) {
	p := NewCropProcessor()
	err := p.SetParameters(map[string]interface{}{
		"x1": 0, "y1": 0, "x2": 1300, "y2": 700,
		"rescale_output": true,
	})
	if err != nil {
		t.Fatalf("SetParameters failed: %v", err)
	}

	src := grayMat(t, 700, 1300, 90)
	defer src.Close()

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	if dst.Cols() > cropFitWidth || dst.Rows() > cropFitHeight {
		t.Errorf("rescaled crop is %dx%d, want within %dx%d",
			dst.Cols(), dst.Rows(), cropFitWidth, cropFitHeight)
	}
}
