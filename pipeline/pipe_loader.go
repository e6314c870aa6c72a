package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"fyne.io/fyne/v2"
	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
)

// Extensions the load dialog and the loader accept.
var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
}

// SupportedExtensions lists the accepted file extensions for the shell's
// open dialog filter.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}
}

// ExtensionSupported reports whether a path extension is loadable.
func ExtensionSupported(ext string) bool {
	return supportedExtensions[strings.ToLower(ext)]
}

// LoadImage reads and decodes an image into the pipeline. A decode or
// extension failure surfaces as an error and leaves any previously
// loaded image untouched.
func (pipeline *ImagePipeline) LoadImage(reader fyne.URIReadCloser) error {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()

	startTime := pipeline.debugManager.StartTiming("image_load")
	defer pipeline.debugManager.EndTiming("image_load", startTime)

	originalURI := reader.URI()
	uriExtension := strings.ToLower(originalURI.Extension())

	if !ExtensionSupported(uriExtension) {
		return fmt.Errorf("unsupported file extension %q", uriExtension)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}

	pipeline.updateProgress(0.2)

	// Decode with the standard library first; it reports the actual
	// format regardless of the file extension.
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	pipeline.updateProgress(0.5)

	// Convert to an OpenCV Mat for the processors. IMDecode always
	// yields BGR for color input. OpenCV has no codec for some formats
	// the standard library handles (GIF in particular), so fall back to
	// converting the already decoded image.
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil || mat.Empty() {
		if err == nil {
			mat.Close()
		}
		mat, err = ImageToMat(img)
		if err != nil {
			return fmt.Errorf("failed to convert decoded %s image: %w", format, err)
		}
	}

	pipeline.updateProgress(0.8)

	if pipeline.originalImage != nil {
		pipeline.originalImage.Mat.Close()
	}

	bounds := img.Bounds()
	pipeline.originalImage = &ImageData{
		Image:       img,
		Mat:         mat,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Channels:    mat.Channels(),
		Format:      format,
		OriginalURI: originalURI,
	}

	pipeline.updateProgress(1.0)

	pipeline.debugManager.LogInfo("Pipeline", fmt.Sprintf("Loaded %s image %dx%d (%d channels)",
		format, bounds.Dx(), bounds.Dy(), mat.Channels()))

	return nil
}
