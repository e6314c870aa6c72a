package processors

import (
	"errors"
	"image"
	"testing"
)

func TestPolygonMomentsSquareCentroid(t *testing.T) {
	square := []image.Point{
		image.Pt(0, 0),
		image.Pt(4, 0),
		image.Pt(4, 4),
		image.Pt(0, 4),
	}

	m00, m10, m01 := polygonMoments(square)
	if m00 != 16 {
		t.Errorf("m00 = %v, want 16", m00)
	}
	if got := m10 / m00; got != 2 {
		t.Errorf("centroid x = %v, want 2", got)
	}
	if got := m01 / m00; got != 2 {
		t.Errorf("centroid y = %v, want 2", got)
	}
}

func TestContourCentroidFallsBackToBoundingBox(t *testing.T) {
	// Two collinear points have no area; the bounding-box center anchors
	// the labels instead.
	line := []image.Point{image.Pt(2, 2), image.Pt(10, 2)}
	bounds := image.Rect(2, 2, 11, 3)

	got := contourCentroid(line, bounds)
	want := image.Pt(2+9/2, 2+1/2)
	if got != want {
		t.Errorf("fallback centroid = %v, want %v", got, want)
	}
}

func TestObjectDetectionDrawsOnCopy(t *testing.T) {
	p := NewObjectDetectionProcessor()

	// Black frame with one bright square large enough to pass the default
	// minimum contour area.
	src := bgrMat(t, 64, 64, 0, 0, 0)
	defer src.Close()
	for y := 16; y < 48; y++ {
		for x := 16; x < 48; x++ {
			src.SetUCharAt3(y, x, 0, 255)
			src.SetUCharAt3(y, x, 1, 255)
			src.SetUCharAt3(y, x, 2, 255)
		}
	}

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	if dst.Rows() != 64 || dst.Cols() != 64 {
		t.Fatalf("output is %dx%d, want 64x64", dst.Cols(), dst.Rows())
	}

	// The bounding box and labels are painted onto a copy; the background
	// outside the square must have changed somewhere and the source not
	// at all.
	changed := false
	for y := 0; y < 64 && !changed; y++ {
		for x := 0; x < 64; x++ {
			if dst.GetUCharAt3(y, x, 1) != src.GetUCharAt3(y, x, 1) {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("detection found no contour to annotate")
	}
	if got := src.GetUCharAt3(0, 0, 1); got != 0 {
		t.Errorf("source image was modified, corner = %d", got)
	}
}

func TestObjectDetectionMinAreaFiltersSmallContours(t *testing.T) {
	p := NewObjectDetectionProcessor()
	err := p.SetParameters(map[string]interface{}{
		"min_contour_area": 5000.0,
		"show_numbering":   false,
		"show_area":        false,
	})
	if err != nil {
		t.Fatalf("SetParameters failed: %v", err)
	}

	src := bgrMat(t, 64, 64, 0, 0, 0)
	defer src.Close()
	for y := 28; y < 36; y++ {
		for x := 28; x < 36; x++ {
			src.SetUCharAt3(y, x, 0, 255)
			src.SetUCharAt3(y, x, 1, 255)
			src.SetUCharAt3(y, x, 2, 255)
		}
	}

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	if !matsEqual(src, dst) {
		t.Error("contours below the area threshold should leave the image untouched")
	}
}

func TestObjectDetectionParameterErrors(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
	}{
		{"threshold above range", map[string]interface{}{"threshold1": 300}},
		{"threshold below range", map[string]interface{}{"threshold2": -1}},
		{"even gaussian kernel", map[string]interface{}{"gaussian_kernel": 4}},
		{"kernel above range", map[string]interface{}{"gaussian_kernel": 17}},
		{"negative area", map[string]interface{}{"min_contour_area": -2.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewObjectDetectionProcessor()
			err := p.SetParameters(tt.params)
			if err == nil {
				t.Fatal("SetParameters should fail")
			}
			var paramErr *ParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("error %T is not a ParameterError", err)
			}
		})
	}
}
