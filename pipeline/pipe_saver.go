package pipeline

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"strings"

	"fyne.io/fyne/v2"
)

// SaveImage encodes the processed image to the chosen URI. The encoder
// only ever writes through the supplied writer, so a failed save never
// removes a pre-existing file at that path.
func (pipeline *ImagePipeline) SaveImage(writer fyne.URIWriteCloser) error {
	pipeline.mu.RLock()
	defer pipeline.mu.RUnlock()

	if pipeline.processedImage == nil {
		return fmt.Errorf("no processed image to save")
	}

	startTime := pipeline.debugManager.StartTiming("image_save")
	defer pipeline.debugManager.EndTiming("image_save", startTime)

	ext := strings.ToLower(writer.URI().Extension())

	var saveFormat string
	switch ext {
	case ".jpg", ".jpeg":
		saveFormat = "jpeg"
	case ".png":
		saveFormat = "png"
	default:
		// Use original format if available
		if pipeline.originalImage != nil {
			saveFormat = pipeline.originalImage.Format
		} else {
			saveFormat = "png"
		}
	}

	switch saveFormat {
	case "jpeg":
		return jpeg.Encode(writer, pipeline.processedImage.Image, &jpeg.Options{Quality: 95})
	case "png":
		return png.Encode(writer, pipeline.processedImage.Image)
	default:
		// No encoder for GIF/BMP output; fall back to PNG.
		pipeline.debugManager.LogWarning("Pipeline",
			fmt.Sprintf("%s encoding not supported, saving as PNG", strings.ToUpper(saveFormat)))
		return png.Encode(writer, pipeline.processedImage.Image)
	}
}
