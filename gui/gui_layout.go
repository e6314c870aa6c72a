package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"image-studio/pipeline"
)

// LayoutManager coordinates the main application layout
type LayoutManager struct {
	mainContainer *fyne.Container
	imageDisplay  *ImageDisplay
	controlsPanel *ControlsPanel
	statusBar     *StatusBar
}

func NewLayoutManager(
	onImageLoad, onImageSave func(),
	onProcessorChange func(string),
	onParameterChange func(string, interface{}),
	onProcess func(),
	processorNames []string) *LayoutManager {

	// Top row: Original | Preview
	imageDisplay := NewImageDisplay()

	// Center: processor selection, parameters, apply button
	controlsPanel := NewControlsPanel(onProcessorChange, onParameterChange, onProcess, processorNames)

	statusBar := NewStatusBar()

	mainContainer := container.NewBorder(
		imageDisplay.GetContainer(),  // top
		statusBar.GetContainer(),     // bottom
		nil,                          // left
		nil,                          // right
		controlsPanel.GetContainer(), // center
	)

	return &LayoutManager{
		mainContainer: mainContainer,
		imageDisplay:  imageDisplay,
		controlsPanel: controlsPanel,
		statusBar:     statusBar,
	}
}

func (lm *LayoutManager) GetMainContainer() *fyne.Container {
	return lm.mainContainer
}

func (lm *LayoutManager) Initialize() {
	lm.controlsPanel.Initialize()
}

func (lm *LayoutManager) SetOriginalImage(imageData *pipeline.ImageData) {
	lm.imageDisplay.SetOriginalImage(imageData)
}

func (lm *LayoutManager) SetPreviewImage(imageData *pipeline.ImageData) {
	lm.imageDisplay.SetPreviewImage(imageData)
}

func (lm *LayoutManager) UpdateParameterPanel(processor string, params map[string]interface{}) {
	lm.controlsPanel.UpdateParameters(processor, params)
}

func (lm *LayoutManager) UpdateStatus(status string) {
	lm.statusBar.SetStatus(status)
}

func (lm *LayoutManager) UpdateProgress(progress float64) {
	lm.controlsPanel.UpdateProgress(progress)
}

func (lm *LayoutManager) UpdateImageInfo(info string) {
	lm.statusBar.SetImageInfo(info)
}
