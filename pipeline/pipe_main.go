package pipeline

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"gocv.io/x/gocv"

	"image-studio/debug"
	"image-studio/processors"
)

// ImageData bundles the decoded image with its OpenCV Mat and the
// metadata the shell needs for display and saving.
type ImageData struct {
	Image       image.Image
	Mat         gocv.Mat
	Width       int
	Height      int
	Channels    int
	Format      string   // Track original format
	OriginalURI fyne.URI // Track original file URI
}

// ImagePipeline owns the loaded and processed images and runs registry
// processors against them on behalf of the GUI.
type ImagePipeline struct {
	mu               sync.RWMutex
	originalImage    *ImageData
	processedImage   *ImageData
	registry         *processors.Registry
	debugManager     *debug.Manager
	progressCallback func(float64)
	statusCallback   func(string)
}

func NewImagePipeline(debugManager *debug.Manager, registry *processors.Registry) *ImagePipeline {
	return &ImagePipeline{
		registry:     registry,
		debugManager: debugManager,
	}
}

func (pipeline *ImagePipeline) SetProgressCallback(callback func(float64)) {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()
	pipeline.progressCallback = callback
}

func (pipeline *ImagePipeline) SetStatusCallback(callback func(string)) {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()
	pipeline.statusCallback = callback
}

func (pipeline *ImagePipeline) updateProgress(progress float64) {
	if pipeline.progressCallback != nil {
		fyne.Do(func() {
			pipeline.progressCallback(progress)
		})
	}
}

func (pipeline *ImagePipeline) updateStatus(status string) {
	if pipeline.statusCallback != nil {
		fyne.Do(func() {
			pipeline.statusCallback(status)
		})
	}
}

func (pipeline *ImagePipeline) GetOriginalImage() *ImageData {
	pipeline.mu.RLock()
	defer pipeline.mu.RUnlock()
	return pipeline.originalImage
}

func (pipeline *ImagePipeline) GetProcessedImage() *ImageData {
	pipeline.mu.RLock()
	defer pipeline.mu.RUnlock()
	return pipeline.processedImage
}

func (pipeline *ImagePipeline) Cleanup() {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()

	if pipeline.originalImage != nil {
		pipeline.originalImage.Mat.Close()
		pipeline.originalImage = nil
	}

	if pipeline.processedImage != nil {
		pipeline.processedImage.Mat.Close()
		pipeline.processedImage = nil
	}
}
