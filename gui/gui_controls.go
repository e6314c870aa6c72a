package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// processorLabels maps registry names to the labels shown in the
// transform selector. Unregistered names fall back to the raw name.
var processorLabels = map[string]string{
	"rotation":         "Rotation",
	"crop":             "Crop",
	"flip":             "Flip",
	"lowpass":          "Lowpass Filter",
	"highpass":         "Highpass Filter",
	"fourier":          "Fourier Transform",
	"object_detection": "Object Detection",
}

// ControlsPanel handles transform selection, parameters, and processing
type ControlsPanel struct {
	container       *fyne.Container
	processorSelect *widget.Select
	parameterPanel  *ParameterPanel
	processButton   *widget.Button
	progressBar     *widget.ProgressBar

	labelToName map[string]string

	onProcessorChange func(string)
	onParameterChange func(string, interface{})
	onProcess         func()
}

func NewControlsPanel(
	onProcessorChange func(string),
	onParameterChange func(string, interface{}),
	onProcess func(),
	processorNames []string) *ControlsPanel {

	panel := &ControlsPanel{
		labelToName:       make(map[string]string),
		onProcessorChange: onProcessorChange,
		onParameterChange: onParameterChange,
		onProcess:         onProcess,
	}

	panel.setupControls(processorNames)
	return panel
}

func (cp *ControlsPanel) setupControls(processorNames []string) {
	// Transform selection
	labels := make([]string, 0, len(processorNames))
	for _, name := range processorNames {
		label := processorLabels[name]
		if label == "" {
			label = name
		}
		cp.labelToName[label] = name
		labels = append(labels, label)
	}

	transformLabel := widget.NewLabel("Transform")
	cp.processorSelect = widget.NewSelect(labels, nil)

	transformContainer := container.NewVBox(
		transformLabel,
		cp.processorSelect,
	)

	// Parameter panel
	cp.parameterPanel = NewParameterPanel(cp.onParameterChange)

	// Process button and progress
	cp.processButton = widget.NewButton("Apply Transform", cp.onProcess)
	cp.processButton.Importance = widget.HighImportance

	cp.progressBar = widget.NewProgressBar()
	cp.progressBar.Hide()

	buttonContainer := container.NewVBox(
		cp.processButton,
		cp.progressBar,
	)

	// Create horizontal layout: Transform | Parameters | Apply
	controlsLayout := container.NewHBox(
		transformContainer,
		widget.NewSeparator(),
		cp.parameterPanel.GetContainer(),
		widget.NewSeparator(),
		buttonContainer,
	)

	// Wrap in container with padding
	cp.container = container.NewPadded(controlsLayout)
}

func (cp *ControlsPanel) GetContainer() *fyne.Container {
	return cp.container
}

func (cp *ControlsPanel) Initialize() {
	// Set callback and default selection after setup
	cp.processorSelect.OnChanged = cp.onProcessorSelected
	if len(cp.processorSelect.Options) > 0 {
		cp.processorSelect.SetSelected(cp.processorSelect.Options[0])
	}
	cp.parameterPanel.Initialize()
}

func (cp *ControlsPanel) onProcessorSelected(label string) {
	if name, ok := cp.labelToName[label]; ok {
		cp.onProcessorChange(name)
	}
}

func (cp *ControlsPanel) UpdateParameters(processor string, params map[string]interface{}) {
	fyne.Do(func() {
		cp.parameterPanel.UpdateParameters(processor, params)
	})
}

func (cp *ControlsPanel) UpdateProgress(progress float64) {
	fyne.Do(func() {
		if progress > 0 && progress < 1 {
			cp.progressBar.Show()
			cp.progressBar.SetValue(progress)
		} else {
			cp.progressBar.Hide()
		}
	})
}
