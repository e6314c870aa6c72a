package processors

import (
	"testing"

	"gocv.io/x/gocv"
)

// grayMat creates a single-channel Mat filled with a uniform value.
func grayMat(t *testing.T, rows, cols int, fill uint8) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			mat.SetUCharAt(y, x, fill)
		}
	}
	return mat
}

// bgrMat creates a three-channel Mat filled with a uniform BGR triple.
func bgrMat(t *testing.T, rows, cols int, b, g, r uint8) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC3)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			mat.SetUCharAt3(y, x, 0, b)
			mat.SetUCharAt3(y, x, 1, g)
			mat.SetUCharAt3(y, x, 2, r)
		}
	}
	return mat
}

func matsEqual(a, b gocv.Mat) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() || a.Channels() != b.Channels() {
		return false
	}
	for y := 0; y < a.Rows(); y++ {
		for x := 0; x < a.Cols(); x++ {
			for c := 0; c < a.Channels(); c++ {
				if a.Channels() == 1 {
					if a.GetUCharAt(y, x) != b.GetUCharAt(y, x) {
						return false
					}
				} else if a.GetUCharAt3(y, x, c) != b.GetUCharAt3(y, x, c) {
					return false
				}
			}
		}
	}
	return true
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    float64
		wantErr bool
	}{
		{"float64", 1.5, 1.5, false},
		{"int", 3, 3, false},
		{"numeric string", "2.25", 2.25, false},
		{"garbage string", "abc", 0, true},
		{"bool", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toFloat(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("toFloat(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("toFloat(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    int
		wantErr bool
	}{
		{"int", 7, 7, false},
		{"float truncates", 3.9, 3, false},
		{"numeric string", "12", 12, false},
		{"float string rejected", "3.5", 0, true},
		{"garbage string", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toInt(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("toInt(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("toInt(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestToBool(t *testing.T) {
	if got, err := toBool(true); err != nil || !got {
		t.Errorf("toBool(true) = %v, %v", got, err)
	}
	if got, err := toBool("true"); err != nil || !got {
		t.Errorf("toBool(\"true\") = %v, %v", got, err)
	}
	if _, err := toBool("maybe"); err == nil {
		t.Error("toBool(\"maybe\") should fail")
	}
	if _, err := toBool(1.0); err == nil {
		t.Error("toBool(1.0) should fail")
	}
}

func TestToString(t *testing.T) {
	if got, err := toString("gaussian"); err != nil || got != "gaussian" {
		t.Errorf("toString(\"gaussian\") = %q, %v", got, err)
	}
	if _, err := toString(5); err == nil {
		t.Error("toString(5) should fail")
	}
}

func TestClampToByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{127.7, 127},
		{255, 255},
		{300, 255},
	}

	for _, tt := range tests {
		if got := clampToByte(tt.in); got != tt.want {
			t.Errorf("clampToByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidateMat(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	if ValidateMat(empty) {
		t.Error("empty Mat should not validate")
	}

	mat := grayMat(t, 4, 4, 10)
	defer mat.Close()
	if !ValidateMat(mat) {
		t.Error("4x4 Mat should validate")
	}
}
