package pipeline

import (
	"fmt"
)

// ProcessorNames exposes the registry's stable name list to the GUI.
func (pipeline *ImagePipeline) ProcessorNames() []string {
	return pipeline.registry.Names()
}

// ProcessorParameters returns the named processor's current parameters
// so the GUI can repopulate its controls on reselection.
func (pipeline *ImagePipeline) ProcessorParameters(name string) (map[string]interface{}, error) {
	processor, err := pipeline.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return processor.Parameters(), nil
}

// SetProcessorParameters applies a parameter update to the named
// processor. On error the processor keeps its prior state.
func (pipeline *ImagePipeline) SetProcessorParameters(name string, params map[string]interface{}) error {
	processor, err := pipeline.registry.Get(name)
	if err != nil {
		return err
	}
	return processor.SetParameters(params)
}

// ResetProcessorParameters restores the named processor to its factory
// defaults by discarding the session instance.
func (pipeline *ImagePipeline) ResetProcessorParameters(name string) error {
	return pipeline.registry.Reset(name)
}

// ProcessorDisplayName resolves the human-readable label for a
// registered processor name.
func (pipeline *ImagePipeline) ProcessorDisplayName(name string) (string, error) {
	processor, err := pipeline.registry.Get(name)
	if err != nil {
		return "", err
	}
	return processor.Name(), nil
}

// ProcessImage runs the named processor against the loaded image and
// stores the result as the processed image.
func (pipeline *ImagePipeline) ProcessImage(name string, params map[string]interface{}) (*ImageData, error) {
	pipeline.mu.Lock()
	defer pipeline.mu.Unlock()

	if pipeline.originalImage == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	processor, err := pipeline.registry.Get(name)
	if err != nil {
		return nil, err
	}

	startTime := pipeline.debugManager.StartTiming(name + "_process")
	defer pipeline.debugManager.EndTiming(name+"_process", startTime)

	pipeline.updateProgress(0.1)

	if params != nil {
		if err := processor.SetParameters(params); err != nil {
			return nil, err
		}
	}

	pipeline.updateProgress(0.3)

	srcMat := pipeline.originalImage.Mat.Clone()
	resultMat, err := processor.Process(srcMat)
	srcMat.Close()
	if err != nil {
		return nil, fmt.Errorf("%s processing failed: %w", processor.Name(), err)
	}

	pipeline.updateProgress(0.8)

	resultImage, err := MatToImage(resultMat)
	if err != nil {
		resultMat.Close()
		return nil, fmt.Errorf("failed to convert result to image: %w", err)
	}

	pipeline.updateProgress(0.9)

	if pipeline.processedImage != nil {
		pipeline.processedImage.Mat.Close()
	}

	bounds := resultImage.Bounds()
	pipeline.processedImage = &ImageData{
		Image:       resultImage,
		Mat:         resultMat,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Channels:    resultMat.Channels(),
		Format:      pipeline.originalImage.Format,
		OriginalURI: pipeline.originalImage.OriginalURI,
	}

	pipeline.updateProgress(1.0)

	pipeline.debugManager.LogInfo("Pipeline", fmt.Sprintf("%s produced %dx%d image",
		processor.Name(), bounds.Dx(), bounds.Dy()))

	return pipeline.processedImage, nil
}
