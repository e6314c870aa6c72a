package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type ParameterPanel struct {
	container           *fyne.Container
	parametersContainer *fyne.Container

	onParameterChange func(string, interface{})

	currentWidgets map[string]fyne.CanvasObject
}

func NewParameterPanel(onParameterChange func(string, interface{})) *ParameterPanel {
	panel := &ParameterPanel{
		onParameterChange: onParameterChange,
		currentWidgets:    make(map[string]fyne.CanvasObject),
	}

	panel.setupPanel()
	return panel
}

func (panel *ParameterPanel) setupPanel() {
	parametersLabel := widget.NewLabel("Parameters")
	panel.parametersContainer = container.NewVBox()

	panel.container = container.NewVBox(
		parametersLabel,
		panel.parametersContainer,
	)
}

func (panel *ParameterPanel) Initialize() {
	// Ready for parameter updates
}

func (panel *ParameterPanel) UpdateParameters(processor string, params map[string]interface{}) {
	panel.parametersContainer.RemoveAll()
	panel.currentWidgets = make(map[string]fyne.CanvasObject)

	switch processor {
	case "rotation":
		panel.createRotationParameters(params)
	case "crop":
		panel.createCropParameters(params)
	case "flip":
		panel.createFlipParameters(params)
	case "lowpass":
		panel.createLowpassParameters(params)
	case "highpass":
		panel.createHighpassParameters(params)
	case "fourier":
		panel.createFourierParameters(params)
	case "object_detection":
		panel.createObjectDetectionParameters(params)
	}

	panel.parametersContainer.Refresh()
}

func (panel *ParameterPanel) createRotationParameters(params map[string]interface{}) {
	// Degree (-360 to 360)
	degree := panel.getFloatParam(params, "degree", 0)
	degreeSlider := widget.NewSlider(-360, 360)
	degreeSlider.SetValue(degree)
	degreeLabel := widget.NewLabel("Degree: " + strconv.FormatFloat(degree, 'f', 1, 64))
	degreeSlider.OnChanged = func(value float64) {
		degreeLabel.SetText("Degree: " + strconv.FormatFloat(value, 'f', 1, 64))
		panel.onParameterChange("degree", value)
	}
	panel.addParameterWithLabel("Degree", degreeSlider, degreeLabel)

	// Rotation center
	rotationType := widget.NewSelect([]string{"center", "origin"}, func(value string) {
		panel.onParameterChange("rotation_type", value)
	})
	if rt, ok := params["rotation_type"].(string); ok {
		rotationType.SetSelected(rt)
	} else {
		rotationType.SetSelected("center")
	}
	panel.addParameter("Rotation Type", rotationType)
}

func (panel *ParameterPanel) createCropParameters(params map[string]interface{}) {
	coords := []struct {
		key   string
		label string
	}{
		{"x1", "X1"},
		{"y1", "Y1"},
		{"x2", "X2"},
		{"y2", "Y2"},
	}

	for _, coord := range coords {
		key := coord.key
		entry := widget.NewEntry()
		entry.SetText(strconv.Itoa(panel.getIntParam(params, key, 0)))
		entry.OnChanged = func(value string) {
			if intValue, err := strconv.Atoi(value); err == nil {
				panel.onParameterChange(key, intValue)
			}
		}
		panel.addParameter(coord.label, entry)
	}

	panel.addCheckbox("Rescale Output", "rescale_output", params)
}

func (panel *ParameterPanel) createFlipParameters(params map[string]interface{}) {
	flipType := widget.NewSelect([]string{"vertical", "horizontal"}, func(value string) {
		if value == "horizontal" {
			panel.onParameterChange("flip_type", 1)
		} else {
			panel.onParameterChange("flip_type", 0)
		}
	})
	if ft, ok := params["flip_type"].(int); ok && ft == 1 {
		flipType.SetSelected("horizontal")
	} else {
		flipType.SetSelected("vertical")
	}
	panel.addParameter("Flip Type", flipType)
}

func (panel *ParameterPanel) createLowpassParameters(params map[string]interface{}) {
	// Filter type
	filterType := widget.NewSelect([]string{"gaussian", "average", "median", "min", "max"}, func(value string) {
		panel.onParameterChange("filter_type", value)
	})
	if ft, ok := params["filter_type"].(string); ok {
		filterType.SetSelected(ft)
	} else {
		filterType.SetSelected("gaussian")
	}
	panel.addParameter("Filter Type", filterType)

	// Kernel size (3-15, odd only)
	kernelSize := panel.getIntParam(params, "kernel_size", 3)
	kernelSlider := widget.NewSlider(3, 15)
	kernelSlider.Step = 2
	kernelSlider.SetValue(float64(kernelSize))
	kernelLabel := widget.NewLabel("Kernel Size: " + strconv.Itoa(kernelSize))
	kernelSlider.OnChanged = func(value float64) {
		intValue := int(value)
		if intValue%2 == 0 {
			intValue++
		}
		kernelLabel.SetText("Kernel Size: " + strconv.Itoa(intValue))
		panel.onParameterChange("kernel_size", intValue)
	}
	panel.addParameterWithLabel("Kernel Size", kernelSlider, kernelLabel)
}

func (panel *ParameterPanel) createHighpassParameters(params map[string]interface{}) {
	// Filter type
	filterType := widget.NewSelect([]string{"laplacian", "unsharp_mask", "high_boost", "custom"}, func(value string) {
		panel.onParameterChange("filter_type", value)
	})
	if ft, ok := params["filter_type"].(string); ok {
		filterType.SetSelected(ft)
	} else {
		filterType.SetSelected("unsharp_mask")
	}
	panel.addParameter("Filter Type", filterType)

	// Strength (0-5)
	strength := panel.getFloatParam(params, "strength", 1.0)
	strengthSlider := widget.NewSlider(0, 5)
	strengthSlider.SetValue(strength)
	strengthLabel := widget.NewLabel("Strength: " + strconv.FormatFloat(strength, 'f', 2, 64))
	strengthSlider.OnChanged = func(value float64) {
		strengthLabel.SetText("Strength: " + strconv.FormatFloat(value, 'f', 2, 64))
		panel.onParameterChange("strength", value)
	}
	panel.addParameterWithLabel("Strength", strengthSlider, strengthLabel)

	// Gaussian sigma (0.1-10)
	sigma := panel.getFloatParam(params, "gaussian_sigma", 1.0)
	sigmaSlider := widget.NewSlider(0.1, 10)
	sigmaSlider.SetValue(sigma)
	sigmaLabel := widget.NewLabel("Gaussian Sigma: " + strconv.FormatFloat(sigma, 'f', 1, 64))
	sigmaSlider.OnChanged = func(value float64) {
		sigmaLabel.SetText("Gaussian Sigma: " + strconv.FormatFloat(value, 'f', 1, 64))
		panel.onParameterChange("gaussian_sigma", value)
	}
	panel.addParameterWithLabel("Gaussian Sigma", sigmaSlider, sigmaLabel)

	// Boost factor (1-5)
	boost := panel.getFloatParam(params, "boost_factor", 1.5)
	boostSlider := widget.NewSlider(1, 5)
	boostSlider.SetValue(boost)
	boostLabel := widget.NewLabel("Boost Factor: " + strconv.FormatFloat(boost, 'f', 2, 64))
	boostSlider.OnChanged = func(value float64) {
		boostLabel.SetText("Boost Factor: " + strconv.FormatFloat(value, 'f', 2, 64))
		panel.onParameterChange("boost_factor", value)
	}
	panel.addParameterWithLabel("Boost Factor", boostSlider, boostLabel)

	// Kernel size (3 or 5)
	kernel := widget.NewSelect([]string{"3", "5"}, func(value string) {
		if intValue, err := strconv.Atoi(value); err == nil {
			panel.onParameterChange("kernel_size", intValue)
		}
	})
	kernel.SetSelected(strconv.Itoa(panel.getIntParam(params, "kernel_size", 3)))
	panel.addParameter("Kernel Size", kernel)

	panel.addCheckbox("Preserve Brightness", "preserve_brightness", params)
}

func (panel *ParameterPanel) createFourierParameters(params map[string]interface{}) {
	// Operation
	operation := widget.NewSelect([]string{"filter", "magnitude", "phase", "inverse"}, func(value string) {
		panel.onParameterChange("operation_type", value)
	})
	if op, ok := params["operation_type"].(string); ok {
		operation.SetSelected(op)
	} else {
		operation.SetSelected("filter")
	}
	panel.addParameter("Operation", operation)

	// Filter type
	filterType := widget.NewSelect([]string{"lowpass", "highpass", "bandpass", "notch"}, func(value string) {
		panel.onParameterChange("filter_type", value)
	})
	if ft, ok := params["filter_type"].(string); ok {
		filterType.SetSelected(ft)
	} else {
		filterType.SetSelected("lowpass")
	}
	panel.addParameter("Filter Type", filterType)

	// Filter shape
	filterShape := widget.NewSelect([]string{"ideal", "butterworth", "gaussian"}, func(value string) {
		panel.onParameterChange("filter_shape", value)
	})
	if fs, ok := params["filter_shape"].(string); ok {
		filterShape.SetSelected(fs)
	} else {
		filterShape.SetSelected("gaussian")
	}
	panel.addParameter("Filter Shape", filterShape)

	// Cutoff frequency (0-100, percent of Nyquist radius)
	cutoff := panel.getFloatParam(params, "cutoff_frequency", 50)
	cutoffSlider := widget.NewSlider(0, 100)
	cutoffSlider.SetValue(cutoff)
	cutoffLabel := widget.NewLabel("Cutoff: " + strconv.FormatFloat(cutoff, 'f', 0, 64) + "%")
	cutoffSlider.OnChanged = func(value float64) {
		cutoffLabel.SetText("Cutoff: " + strconv.FormatFloat(value, 'f', 0, 64) + "%")
		panel.onParameterChange("cutoff_frequency", value)
	}
	panel.addParameterWithLabel("Cutoff Frequency", cutoffSlider, cutoffLabel)

	// High cutoff for bandpass/notch (0-100)
	cutoffHigh := panel.getFloatParam(params, "cutoff_high", 80)
	cutoffHighSlider := widget.NewSlider(0, 100)
	cutoffHighSlider.SetValue(cutoffHigh)
	cutoffHighLabel := widget.NewLabel("High Cutoff: " + strconv.FormatFloat(cutoffHigh, 'f', 0, 64) + "%")
	cutoffHighSlider.OnChanged = func(value float64) {
		cutoffHighLabel.SetText("High Cutoff: " + strconv.FormatFloat(value, 'f', 0, 64) + "%")
		panel.onParameterChange("cutoff_high", value)
	}
	panel.addParameterWithLabel("High Cutoff", cutoffHighSlider, cutoffHighLabel)

	// Butterworth order (1-10)
	order := panel.getIntParam(params, "butterworth_order", 2)
	orderSlider := widget.NewSlider(1, 10)
	orderSlider.SetValue(float64(order))
	orderLabel := widget.NewLabel("Butterworth Order: " + strconv.Itoa(order))
	orderSlider.OnChanged = func(value float64) {
		intValue := int(value)
		orderLabel.SetText("Butterworth Order: " + strconv.Itoa(intValue))
		panel.onParameterChange("butterworth_order", intValue)
	}
	panel.addParameterWithLabel("Butterworth Order", orderSlider, orderLabel)

	// Checkboxes
	panel.addCheckbox("Show Spectrum", "show_spectrum", params)
	panel.addCheckbox("Log Transform", "log_transform", params)
}

func (panel *ParameterPanel) createObjectDetectionParameters(params map[string]interface{}) {
	// Canny thresholds (0-255)
	thresholds := []struct {
		key   string
		label string
		value int
	}{
		{"threshold1", "Threshold 1", panel.getIntParam(params, "threshold1", 30)},
		{"threshold2", "Threshold 2", panel.getIntParam(params, "threshold2", 150)},
	}

	for _, threshold := range thresholds {
		key := threshold.key
		slider := widget.NewSlider(0, 255)
		slider.SetValue(float64(threshold.value))
		label := widget.NewLabel(threshold.label + ": " + strconv.Itoa(threshold.value))
		labelText := threshold.label
		slider.OnChanged = func(value float64) {
			intValue := int(value)
			label.SetText(labelText + ": " + strconv.Itoa(intValue))
			panel.onParameterChange(key, intValue)
		}
		panel.addParameterWithLabel(threshold.label, slider, label)
	}

	// Gaussian kernel (1-15, odd only)
	kernel := panel.getIntParam(params, "gaussian_kernel", 5)
	kernelSlider := widget.NewSlider(1, 15)
	kernelSlider.Step = 2
	kernelSlider.SetValue(float64(kernel))
	kernelLabel := widget.NewLabel("Gaussian Kernel: " + strconv.Itoa(kernel))
	kernelSlider.OnChanged = func(value float64) {
		intValue := int(value)
		if intValue%2 == 0 {
			intValue++
		}
		kernelLabel.SetText("Gaussian Kernel: " + strconv.Itoa(intValue))
		panel.onParameterChange("gaussian_kernel", intValue)
	}
	panel.addParameterWithLabel("Gaussian Kernel", kernelSlider, kernelLabel)

	// Minimum contour area (0-5000)
	minArea := panel.getFloatParam(params, "min_contour_area", 100)
	minAreaSlider := widget.NewSlider(0, 5000)
	minAreaSlider.SetValue(minArea)
	minAreaLabel := widget.NewLabel("Min Area: " + strconv.FormatFloat(minArea, 'f', 0, 64))
	minAreaSlider.OnChanged = func(value float64) {
		minAreaLabel.SetText("Min Area: " + strconv.FormatFloat(value, 'f', 0, 64))
		panel.onParameterChange("min_contour_area", value)
	}
	panel.addParameterWithLabel("Min Contour Area", minAreaSlider, minAreaLabel)

	// Checkboxes
	panel.addCheckbox("Show Numbering", "show_numbering", params)
	panel.addCheckbox("Show Area", "show_area", params)
}

func (panel *ParameterPanel) addParameter(label string, obj fyne.CanvasObject) {
	paramLabel := widget.NewLabel(label)
	paramContainer := container.NewVBox(paramLabel, obj)
	panel.parametersContainer.Add(paramContainer)
	panel.currentWidgets[label] = obj
}

func (panel *ParameterPanel) addParameterWithLabel(label string, slider *widget.Slider, valueLabel *widget.Label) {
	paramLabel := widget.NewLabel(label)
	paramContainer := container.NewVBox(paramLabel, valueLabel, slider)
	panel.parametersContainer.Add(paramContainer)
	panel.currentWidgets[label] = slider
}

func (panel *ParameterPanel) addCheckbox(label, paramName string, params map[string]interface{}) {
	checkbox := widget.NewCheck(label, func(checked bool) {
		panel.onParameterChange(paramName, checked)
	})

	if value, ok := params[paramName].(bool); ok {
		checkbox.SetChecked(value)
	}

	panel.parametersContainer.Add(checkbox)
	panel.currentWidgets[label] = checkbox
}

func (panel *ParameterPanel) getIntParam(params map[string]interface{}, key string, defaultValue int) int {
	if value, ok := params[key].(int); ok {
		return value
	}
	return defaultValue
}

func (panel *ParameterPanel) getFloatParam(params map[string]interface{}, key string, defaultValue float64) float64 {
	if value, ok := params[key].(float64); ok {
		return value
	}
	return defaultValue
}

func (panel *ParameterPanel) GetContainer() *fyne.Container {
	return panel.container
}
