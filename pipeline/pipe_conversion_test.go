package pipeline

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

func TestMatToImageGray(t *testing.T) {
	mat := gocv.NewMatWithSize(4, 6, gocv.MatTypeCV8UC1)
	defer mat.Close()
	mat.SetUCharAt(1, 2, 200)

	img, err := MatToImage(mat)
	if err != nil {
		t.Fatalf("MatToImage failed: %v", err)
	}

	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("single-channel Mat should convert to *image.Gray, got %T", img)
	}
	if gray.Bounds().Dx() != 6 || gray.Bounds().Dy() != 4 {
		t.Errorf("converted image is %v, want 6x4", gray.Bounds())
	}
	if got := gray.GrayAt(2, 1).Y; got != 200 {
		t.Errorf("pixel (2,1) = %d, want 200", got)
	}
}

func TestMatToImageSwapsBGRToRGBA(t *testing.T) {
	mat := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC3)
	defer mat.Close()
	// BGR ordering in the Mat
	mat.SetUCharAt3(0, 0, 0, 10)  // blue
	mat.SetUCharAt3(0, 0, 1, 20)  // green
	mat.SetUCharAt3(0, 0, 2, 30)  // red

	img, err := MatToImage(mat)
	if err != nil {
		t.Fatalf("MatToImage failed: %v", err)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("three-channel Mat should convert to *image.RGBA, got %T", img)
	}
	c := rgba.RGBAAt(0, 0)
	if c.R != 30 || c.G != 20 || c.B != 10 || c.A != 255 {
		t.Errorf("pixel = %+v, want R=30 G=20 B=10 A=255", c)
	}
}

func TestImageToMatGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 6, 4))
	img.SetGray(2, 1, color.Gray{Y: 200})

	mat, err := ImageToMat(img)
	if err != nil {
		t.Fatalf("ImageToMat failed: %v", err)
	}
	defer mat.Close()

	if mat.Channels() != 1 {
		t.Fatalf("grayscale image should convert to 1 channel, got %d", mat.Channels())
	}
	if mat.Rows() != 4 || mat.Cols() != 6 {
		t.Errorf("converted Mat is %dx%d, want 6x4", mat.Cols(), mat.Rows())
	}
	if got := mat.GetUCharAt(1, 2); got != 200 {
		t.Errorf("pixel (2,1) = %d, want 200", got)
	}
}

func TestImageToMatSwapsRGBAToBGR(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 30, G: 20, B: 10, A: 255})

	mat, err := ImageToMat(img)
	if err != nil {
		t.Fatalf("ImageToMat failed: %v", err)
	}
	defer mat.Close()

	if mat.Channels() != 3 {
		t.Fatalf("color image should convert to 3 channels, got %d", mat.Channels())
	}
	if b := mat.GetUCharAt3(0, 0, 0); b != 10 {
		t.Errorf("blue channel = %d, want 10", b)
	}
	if g := mat.GetUCharAt3(0, 0, 1); g != 20 {
		t.Errorf("green channel = %d, want 20", g)
	}
	if r := mat.GetUCharAt3(0, 0, 2); r != 30 {
		t.Errorf("red channel = %d, want 30", r)
	}
}

func TestImageToMatRoundTripsWithMatToImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	src.SetRGBA(1, 1, color.RGBA{R: 99, G: 150, B: 201, A: 255})
	src.SetRGBA(2, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	mat, err := ImageToMat(src)
	if err != nil {
		t.Fatalf("ImageToMat failed: %v", err)
	}
	defer mat.Close()

	back, err := MatToImage(mat)
	if err != nil {
		t.Fatalf("MatToImage failed: %v", err)
	}
	rgba := back.(*image.RGBA)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got, want := rgba.RGBAAt(x, y), src.RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestMatToImageRejectsEmptyMat(t *testing.T) {
	mat := gocv.NewMat()
	defer mat.Close()

	if _, err := MatToImage(mat); err == nil {
		t.Error("empty Mat should not convert")
	}
}

func TestScaledForDisplayFitsBounds(t *testing.T) {
	mat := gocv.NewMatWithSize(400, 800, gocv.MatTypeCV8UC3)
	defer mat.Close()

	img, err := MatToImage(mat)
	if err != nil {
		t.Fatalf("MatToImage failed: %v", err)
	}
	data := &ImageData{Image: img, Mat: mat, Width: 800, Height: 400, Channels: 3}

	scaled := ScaledForDisplay(data, 200, 200)
	if scaled == nil {
		t.Fatal("ScaledForDisplay returned nil")
	}
	bounds := scaled.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 100 {
		t.Errorf("scaled to %dx%d, want 200x100", bounds.Dx(), bounds.Dy())
	}
}

func TestScaledForDisplayNoOpReturnsOriginal(t *testing.T) {
	mat := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC3)
	defer mat.Close()

	img, err := MatToImage(mat)
	if err != nil {
		t.Fatalf("MatToImage failed: %v", err)
	}
	data := &ImageData{Image: img, Mat: mat, Width: 100, Height: 100, Channels: 3}

	scaled := ScaledForDisplay(data, 650, 650)
	if scaled != img {
		t.Error("image already within bounds should come back untouched")
	}
}
