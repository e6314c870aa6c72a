package processors

import (
	"math"
	"sync"

	"gocv.io/x/gocv"
)

// RotationProcessor rotates an image by an arbitrary signed angle, either
// around the image center or around the coordinate origin. The output has
// the same dimensions as the input; pixels mapping outside the frame are
// dropped and the uncovered background stays zero.
type RotationProcessor struct {
	mu           sync.RWMutex
	degree       float64
	rotationType string // "center" or "origin"
}

func NewRotationProcessor() *RotationProcessor {
	return &RotationProcessor{
		degree:       0,
		rotationType: "center",
	}
}

func (p *RotationProcessor) Name() string {
	return "Rotation"
}

func (p *RotationProcessor) Parameters() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"degree":        p.degree,
		"rotation_type": p.rotationType,
	}
}

func (p *RotationProcessor) SetParameters(params map[string]interface{}) error {
	degree := p.degree
	rotationType := p.rotationType

	if value, ok := params["degree"]; ok {
		d, err := toFloat(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "degree", Reason: err.Error()}
		}
		degree = d
	}

	if value, ok := params["rotation_type"]; ok {
		s, err := toString(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "rotation_type", Reason: err.Error()}
		}
		if s != "center" && s != "origin" {
			return &ParameterError{Processor: p.Name(), Key: "rotation_type", Reason: "must be \"center\" or \"origin\""}
		}
		rotationType = s
	}

	p.mu.Lock()
	p.degree = degree
	p.rotationType = rotationType
	p.mu.Unlock()
	return nil
}

// Process applies a forward-mapped affine warp. theta is negated so that
// positive degrees rotate clockwise in image coordinates, where Y grows
// downward. The centering translation truncates W/2 and H/2 to integers;
// that floor division is the defined tie-break for even and odd sizes.
func (p *RotationProcessor) Process(src gocv.Mat) (gocv.Mat, error) {
	if !ValidateMat(src) {
		return passThrough(src)
	}

	p.mu.RLock()
	degree := p.degree
	rotationType := p.rotationType
	p.mu.RUnlock()

	theta := -degree * math.Pi / 180
	cos := math.Cos(theta)
	sin := math.Sin(theta)

	rows := src.Rows()
	cols := src.Cols()
	channels := src.Channels()

	// 2x3 affine matrix: for "center", translate(+W/2,+H/2) x rotate x
	// translate(-W/2,-H/2) composed by hand; for "origin" the rotation
	// matrix alone.
	var m [2][3]float64
	m[0][0], m[0][1] = cos, -sin
	m[1][0], m[1][1] = sin, cos
	if rotationType == "center" {
		cx := float64(cols / 2)
		cy := float64(rows / 2)
		m[0][2] = cx - cos*cx + sin*cy
		m[1][2] = cy - sin*cx - cos*cy
	}

	dst := gocv.Zeros(rows, cols, src.Type())

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			newX := int(m[0][0]*float64(x) + m[0][1]*float64(y) + m[0][2])
			newY := int(m[1][0]*float64(x) + m[1][1]*float64(y) + m[1][2])
			if newX < 0 || newX >= cols || newY < 0 || newY >= rows {
				continue
			}
			if channels == 1 {
				dst.SetUCharAt(newY, newX, src.GetUCharAt(y, x))
				continue
			}
			for c := 0; c < channels; c++ {
				dst.SetUCharAt3(newY, newX, c, src.GetUCharAt3(y, x, c))
			}
		}
	}

	return dst, nil
}
