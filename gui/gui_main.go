package gui

import (
	"fyne.io/fyne/v2"

	"image-studio/pipeline"
)

// MainInterface is the GUI facade the application shell talks to. All
// state flows through explicit callbacks; the GUI never reaches into the
// pipeline or the processors directly.
type MainInterface struct {
	window        fyne.Window
	layoutManager *LayoutManager

	// Callbacks
	onImageLoad       func()
	onImageSave       func()
	onProcessorChange func(string)
	onParameterChange func(string, interface{})
	onProcess         func()
}

func NewMainInterface(window fyne.Window,
	onImageLoad, onImageSave func(),
	onProcessorChange func(string),
	onParameterChange func(string, interface{}),
	onProcess func(),
	processorNames []string) *MainInterface {

	gui := &MainInterface{
		window:            window,
		onImageLoad:       onImageLoad,
		onImageSave:       onImageSave,
		onProcessorChange: onProcessorChange,
		onParameterChange: onParameterChange,
		onProcess:         onProcess,
	}

	gui.layoutManager = NewLayoutManager(
		onImageLoad,
		onImageSave,
		onProcessorChange,
		onParameterChange,
		onProcess,
		processorNames,
	)

	return gui
}

func (gui *MainInterface) Initialize() {
	gui.layoutManager.Initialize()
}

func (gui *MainInterface) GetMainContainer() *fyne.Container {
	return gui.layoutManager.GetMainContainer()
}

func (gui *MainInterface) SetOriginalImage(imageData *pipeline.ImageData) {
	gui.layoutManager.SetOriginalImage(imageData)
}

func (gui *MainInterface) SetPreviewImage(imageData *pipeline.ImageData) {
	gui.layoutManager.SetPreviewImage(imageData)
}

func (gui *MainInterface) UpdateParameterPanel(processor string, params map[string]interface{}) {
	gui.layoutManager.UpdateParameterPanel(processor, params)
}

func (gui *MainInterface) UpdateStatus(status string) {
	gui.layoutManager.UpdateStatus(status)
}

func (gui *MainInterface) UpdateProgress(progress float64) {
	gui.layoutManager.UpdateProgress(progress)
}

func (gui *MainInterface) UpdateImageInfo(info string) {
	gui.layoutManager.UpdateImageInfo(info)
}
