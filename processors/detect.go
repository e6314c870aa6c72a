package processors

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"sync"

	"gocv.io/x/gocv"
)

// ObjectDetectionProcessor finds objects through edge analysis: Gaussian
// blur, Canny edge detection, external contour extraction, then an
// axis-aligned bounding box per contour that survives the minimum-area
// filter. Numbering and area overlays are anchored at each contour's
// centroid. Contours keep the extraction order, which is deterministic
// for a given input.
type ObjectDetectionProcessor struct {
	mu             sync.RWMutex
	threshold1     int
	threshold2     int
	gaussianKernel int
	minContourArea float64
	showNumbering  bool
	showArea       bool

	boxColor  color.RGBA
	textColor color.RGBA
}

func NewObjectDetectionProcessor() *ObjectDetectionProcessor {
	green := color.RGBA{G: 255}
	return &ObjectDetectionProcessor{
		threshold1:     30,
		threshold2:     150,
		gaussianKernel: 5,
		minContourArea: 100.0,
		showNumbering:  true,
		showArea:       true,
		boxColor:       green,
		textColor:      green,
	}
}

func (p *ObjectDetectionProcessor) Name() string {
	return "Object Detection"
}

func (p *ObjectDetectionProcessor) Parameters() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"threshold1":       p.threshold1,
		"threshold2":       p.threshold2,
		"gaussian_kernel":  p.gaussianKernel,
		"min_contour_area": p.minContourArea,
		"show_numbering":   p.showNumbering,
		"show_area":        p.showArea,
	}
}

func (p *ObjectDetectionProcessor) SetParameters(params map[string]interface{}) error {
	threshold1 := p.threshold1
	threshold2 := p.threshold2
	gaussianKernel := p.gaussianKernel
	minContourArea := p.minContourArea
	showNumbering := p.showNumbering
	showArea := p.showArea

	for _, threshold := range []struct {
		key    string
		target *int
	}{
		{"threshold1", &threshold1},
		{"threshold2", &threshold2},
	} {
		value, ok := params[threshold.key]
		if !ok {
			continue
		}
		i, err := toInt(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: threshold.key, Reason: err.Error()}
		}
		if i < 0 || i > 255 {
			return &ParameterError{Processor: p.Name(), Key: threshold.key, Reason: "must be between 0 and 255"}
		}
		*threshold.target = i
	}

	if value, ok := params["gaussian_kernel"]; ok {
		i, err := toInt(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "gaussian_kernel", Reason: err.Error()}
		}
		if i < 1 || i > 15 || i%2 == 0 {
			return &ParameterError{Processor: p.Name(), Key: "gaussian_kernel", Reason: "must be an odd number between 1 and 15"}
		}
		gaussianKernel = i
	}

	if value, ok := params["min_contour_area"]; ok {
		f, err := toFloat(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "min_contour_area", Reason: err.Error()}
		}
		if f < 0 {
			return &ParameterError{Processor: p.Name(), Key: "min_contour_area", Reason: "must be non-negative"}
		}
		minContourArea = f
	}

	if value, ok := params["show_numbering"]; ok {
		b, err := toBool(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "show_numbering", Reason: err.Error()}
		}
		showNumbering = b
	}

	if value, ok := params["show_area"]; ok {
		b, err := toBool(value)
		if err != nil {
			return &ParameterError{Processor: p.Name(), Key: "show_area", Reason: err.Error()}
		}
		showArea = b
	}

	p.mu.Lock()
	p.threshold1 = threshold1
	p.threshold2 = threshold2
	p.gaussianKernel = gaussianKernel
	p.minContourArea = minContourArea
	p.showNumbering = showNumbering
	p.showArea = showArea
	p.mu.Unlock()
	return nil
}

func (p *ObjectDetectionProcessor) Process(src gocv.Mat) (gocv.Mat, error) {
	if !ValidateMat(src) {
		return passThrough(src)
	}

	p.mu.RLock()
	threshold1 := p.threshold1
	threshold2 := p.threshold2
	gaussianKernel := p.gaussianKernel
	minContourArea := p.minContourArea
	showNumbering := p.showNumbering
	showArea := p.showArea
	boxColor := p.boxColor
	textColor := p.textColor
	p.mu.RUnlock()

	result := src.Clone()

	gray := gocv.NewMat()
	defer gray.Close()
	switch src.Channels() {
	case 1:
		src.CopyTo(&gray)
	case 3:
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	default:
		result.Close()
		return gocv.NewMat(), &ProcessingError{Processor: p.Name(), Err: fmt.Errorf("unsupported channel count %d", src.Channels())}
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(gaussianKernel, gaussianKernel), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, float32(threshold1), float32(threshold2))

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	index := 0
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area <= minContourArea {
			continue
		}
		index++

		rect := gocv.BoundingRect(contour)
		gocv.Rectangle(&result, rect, boxColor, 2)

		if !showNumbering && !showArea {
			continue
		}

		centroid := contourCentroid(contour.ToPoints(), rect)
		if showNumbering {
			gocv.PutText(&result, strconv.Itoa(index), centroid,
				gocv.FontHersheySimplex, 0.7, textColor, 2)
		}
		if showArea {
			position := image.Pt(centroid.X-20, centroid.Y+20)
			gocv.PutText(&result, strconv.Itoa(int(area)), position,
				gocv.FontHersheySimplex, 0.5, textColor, 2)
		}
	}

	return result, nil
}

// contourCentroid computes the centroid from the polygon's image moments
// (Green's theorem over the contour vertices). When the zeroth moment
// vanishes, e.g. for a collinear contour, the bounding-box center is the
// fallback anchor.
func contourCentroid(points []image.Point, bounds image.Rectangle) image.Point {
	m00, m10, m01 := polygonMoments(points)
	if m00 != 0 {
		return image.Pt(int(m10/m00), int(m01/m00))
	}
	return image.Pt(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2)
}

// polygonMoments returns the zeroth and first moments of the closed
// polygon through the given vertices.
func polygonMoments(points []image.Point) (m00, m10, m01 float64) {
	n := len(points)
	if n < 3 {
		return 0, 0, 0
	}
	for i := 0; i < n; i++ {
		x0 := float64(points[i].X)
		y0 := float64(points[i].Y)
		x1 := float64(points[(i+1)%n].X)
		y1 := float64(points[(i+1)%n].Y)
		cross := x0*y1 - x1*y0
		m00 += cross
		m10 += (x0 + x1) * cross
		m01 += (y0 + y1) * cross
	}
	m00 /= 2
	m10 /= 6
	m01 /= 6
	return m00, m10, m01
}
