package processors

import (
	"fmt"
	"math"
	"strconv"

	"gocv.io/x/gocv"
)

// Processor is the uniform contract every transform exposes to the shell.
// Parameters are applied atomically: SetParameters either applies every
// recognized key it was given or none of them. Process never fails on an
// input that passes ValidateMat; it returns a newly allocated Mat and
// leaves the source untouched.
type Processor interface {
	Name() string
	Parameters() map[string]interface{}
	SetParameters(params map[string]interface{}) error
	Process(src gocv.Mat) (gocv.Mat, error)
}

// ValidateMat reports whether a Mat is usable as transform input.
// Empty or zero-dimension Mats are rejected; processors respond to an
// invalid input by returning an untouched clone, never an error.
func ValidateMat(mat gocv.Mat) bool {
	if mat.Empty() {
		return false
	}
	if mat.Rows() < 1 || mat.Cols() < 1 {
		return false
	}
	return true
}

// passThrough is the defined no-op result for invalid inputs and
// degenerate parameter combinations.
func passThrough(src gocv.Mat) (gocv.Mat, error) {
	return src.Clone(), nil
}

// toFloat coerces a GUI-supplied parameter value to float64. Slider
// widgets deliver float64, spinners int, and entry fields strings, so all
// three are accepted. Anything else is a parameter error at the caller.
func toFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as number", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to number", value)
	}
}

// toInt coerces a parameter value to int, truncating floats the way the
// reference parameter layer does.
func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("cannot convert %v to integer", v)
		}
		return int(v), nil
	case float32:
		return int(v), nil
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as integer", v)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to integer", value)
	}
}

func toBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("cannot parse %q as bool", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot convert %T to bool", value)
	}
}

func toString(value interface{}) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("cannot convert %T to string", value)
}

// clampToByte clips an intermediate float result into the 8-bit range.
func clampToByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
