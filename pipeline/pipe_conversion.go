package pipeline

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"image-studio/processors"
)

// MatToImage converts a Mat back to a standard image for display and
// encoding. Mats are BGR ordered; the conversion swaps to RGBA for the
// display collaborator.
func MatToImage(mat gocv.Mat) (image.Image, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("Mat is empty")
	}

	rows := mat.Rows()
	cols := mat.Cols()

	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("Mat has invalid dimensions: %dx%d", cols, rows)
	}

	switch channels := mat.Channels(); channels {
	case 1:
		gray := image.NewGray(image.Rect(0, 0, cols, rows))
		copyMatToGray(mat, gray)
		return gray, nil
	case 3:
		rgba := image.NewRGBA(image.Rect(0, 0, cols, rows))
		copyMatBGRToRGBA(mat, rgba)
		return rgba, nil
	case 4:
		rgba := image.NewRGBA(image.Rect(0, 0, cols, rows))
		copyMatBGRAToRGBA(mat, rgba)
		return rgba, nil
	default:
		return nil, fmt.Errorf("unsupported number of channels: %d", channels)
	}
}

func copyMatToGray(mat gocv.Mat, img *image.Gray) {
	for y := 0; y < mat.Rows(); y++ {
		for x := 0; x < mat.Cols(); x++ {
			img.SetGray(x, y, color.Gray{Y: mat.GetUCharAt(y, x)})
		}
	}
}

func copyMatBGRToRGBA(mat gocv.Mat, img *image.RGBA) {
	for y := 0; y < mat.Rows(); y++ {
		for x := 0; x < mat.Cols(); x++ {
			b := mat.GetUCharAt3(y, x, 0)
			g := mat.GetUCharAt3(y, x, 1)
			r := mat.GetUCharAt3(y, x, 2)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
}

func copyMatBGRAToRGBA(mat gocv.Mat, img *image.RGBA) {
	for y := 0; y < mat.Rows(); y++ {
		for x := 0; x < mat.Cols(); x++ {
			b := mat.GetUCharAt3(y, x, 0)
			g := mat.GetUCharAt3(y, x, 1)
			r := mat.GetUCharAt3(y, x, 2)
			a := mat.GetUCharAt3(y, x, 3)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}
}

// ImageToMat converts a standard image into a Mat for the processors,
// the inverse of MatToImage. Grayscale images stay single-channel;
// everything else lands as 3-channel BGR, alpha dropped.
func ImageToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	cols := bounds.Dx()
	rows := bounds.Dy()

	if rows <= 0 || cols <= 0 {
		return gocv.NewMat(), fmt.Errorf("image has invalid dimensions: %dx%d", cols, rows)
	}

	if gray, ok := img.(*image.Gray); ok {
		mat := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				mat.SetUCharAt(y, x, gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return mat, nil
	}

	mat := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC3)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			mat.SetUCharAt3(y, x, 0, c.B)
			mat.SetUCharAt3(y, x, 1, c.G)
			mat.SetUCharAt3(y, x, 2, c.R)
		}
	}
	return mat, nil
}

// ScaledForDisplay fits an image into the given display bounds using the
// shared fit-to-bounds rescale. Images that already fit come back as-is.
func ScaledForDisplay(data *ImageData, maxWidth, maxHeight int) image.Image {
	if data == nil || data.Image == nil {
		return nil
	}

	scaled := processors.ScaleToFit(data.Mat, maxWidth, maxHeight)
	if scaled.Ptr() == data.Mat.Ptr() {
		return data.Image
	}
	defer scaled.Close()

	img, err := MatToImage(scaled)
	if err != nil {
		return data.Image
	}
	return img
}
