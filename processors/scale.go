package processors

import (
	"image"

	"gocv.io/x/gocv"
)

// ScaleToFit shrinks an image uniformly so it fits within maxWidth x
// maxHeight. The scale factor never exceeds 1, so an image that already
// fits is returned as-is (the very same Mat — callers that need ownership
// separation must check for the fast path). Aspect ratio is preserved and
// the result never exceeds the requested bounds.
//
// Shared by the display preview and the crop processor's optional
// post-crop rescale.
func ScaleToFit(src gocv.Mat, maxWidth, maxHeight int) gocv.Mat {
	if !ValidateMat(src) || maxWidth < 1 || maxHeight < 1 {
		return src
	}

	rows := src.Rows()
	cols := src.Cols()

	scaleX := minFloat(1, float64(maxWidth)/float64(cols))
	scaleY := minFloat(1, float64(maxHeight)/float64(rows))
	scale := minFloat(scaleX, scaleY)

	if scale == 1 {
		return src
	}

	newWidth := int(float64(cols) * scale)
	newHeight := int(float64(rows) * scale)

	dst := gocv.NewMat()
	gocv.Resize(src, &dst, image.Pt(newWidth, newHeight), 0, 0, gocv.InterpolationLinear)
	return dst
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
