package main

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"image-studio/pipeline"
)

func (app *ImageStudioApp) handleImageLoad() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			app.showError("File Load Error", err)
			return
		}
		if reader == nil {
			return
		}

		// Use fyne.Do for thread safety in v2.6+
		fyne.Do(func() {
			app.mainGUI.UpdateStatus("Loading image...")
		})

		go func() {
			// Read all data before closing
			data, readErr := io.ReadAll(reader)
			originalURI := reader.URI() // Capture URI before closing
			reader.Close()              // Close immediately after reading

			if readErr != nil {
				fyne.Do(func() {
					app.showError("Image Read Error", readErr)
					app.mainGUI.UpdateStatus("Ready")
				})
				return
			}

			// Create a new reader from the data with original URI
			dataReader := &DataReader{data: data, uri: originalURI}
			err := app.pipeline.LoadImage(dataReader)

			fyne.Do(func() {
				if err != nil {
					app.showError("Image Load Error", err)
					app.mainGUI.UpdateStatus("Ready")
					return
				}

				// Update GUI with loaded image using thread-safe calls
				originalImg := app.pipeline.GetOriginalImage()
				if originalImg != nil {
					app.mainGUI.SetOriginalImage(originalImg)
					app.mainGUI.UpdateImageInfo(imageInfo(originalImg))
					app.mainGUI.UpdateStatus("Image loaded successfully")
				}
			})
		}()
	}, app.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(pipeline.SupportedExtensions()))
	fileDialog.Show()
}

func (app *ImageStudioApp) handleImageSave() {
	processedImg := app.pipeline.GetProcessedImage()
	if processedImg == nil {
		app.showError("Save Error", fmt.Errorf("no processed image to save"))
		return
	}

	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			app.showError("File Save Error", err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		// Use fyne.Do for thread safety in v2.6+
		fyne.Do(func() {
			app.mainGUI.UpdateStatus("Saving image...")
		})

		go func() {
			err := app.pipeline.SaveImage(writer)
			fyne.Do(func() {
				if err != nil {
					app.showError("Image Save Error", err)
				} else {
					app.mainGUI.UpdateStatus("Image saved successfully")
				}
			})
		}()
	}, app.window)
}

func (app *ImageStudioApp) handleProcessorChange(name string) {
	// Use fyne.Do for thread safety when updating GUI components
	fyne.Do(func() {
		app.currentProcessor = name

		params, err := app.pipeline.ProcessorParameters(name)
		if err != nil {
			app.showError("Transform Error", err)
			return
		}

		displayName, err := app.pipeline.ProcessorDisplayName(name)
		if err != nil {
			displayName = name
		}

		app.mainGUI.UpdateParameterPanel(name, params)
		app.mainGUI.UpdateStatus(fmt.Sprintf("Switched to %s", displayName))
	})
}

func (app *ImageStudioApp) handleParameterChange(name string, value interface{}) {
	processor := app.currentProcessor
	if processor == "" {
		return
	}

	// Use fyne.Do for thread safety when updating parameters
	fyne.Do(func() {
		err := app.pipeline.SetProcessorParameters(processor, map[string]interface{}{name: value})
		if err != nil {
			app.showError("Parameter Error", err)
			return
		}
		app.mainGUI.UpdateStatus(fmt.Sprintf("Updated %s parameter", name))
	})
}

func (app *ImageStudioApp) handleResetParameters() {
	processor := app.currentProcessor
	if processor == "" {
		app.showError("Transform Error", fmt.Errorf("no transform selected"))
		return
	}

	// Use fyne.Do for thread safety when updating GUI components
	fyne.Do(func() {
		if err := app.pipeline.ResetProcessorParameters(processor); err != nil {
			app.showError("Transform Error", err)
			return
		}

		params, err := app.pipeline.ProcessorParameters(processor)
		if err != nil {
			app.showError("Transform Error", err)
			return
		}

		displayName, err := app.pipeline.ProcessorDisplayName(processor)
		if err != nil {
			displayName = processor
		}

		app.mainGUI.UpdateParameterPanel(processor, params)
		app.mainGUI.UpdateStatus(fmt.Sprintf("Restored %s defaults", displayName))
	})
}

func (app *ImageStudioApp) handleProcess() {
	originalImg := app.pipeline.GetOriginalImage()
	if originalImg == nil {
		app.showError("Processing Error", fmt.Errorf("no image loaded"))
		return
	}

	processor := app.currentProcessor
	if processor == "" {
		app.showError("Processing Error", fmt.Errorf("no transform selected"))
		return
	}

	// Use fyne.Do for thread safety when updating GUI
	fyne.Do(func() {
		app.mainGUI.UpdateStatus("Applying transform...")
		app.mainGUI.UpdateProgress(0.0)
	})

	go func() {
		// Parameters were already applied incrementally through
		// handleParameterChange; run with the processor's current state.
		processedImg, err := app.pipeline.ProcessImage(processor, nil)

		// All GUI updates must be wrapped in fyne.Do for v2.6+ thread safety
		fyne.Do(func() {
			app.mainGUI.UpdateProgress(1.0)
			if err != nil {
				app.showError("Processing Error", err)
				app.mainGUI.UpdateStatus("Processing failed")
				return
			}

			if processedImg != nil {
				app.mainGUI.SetPreviewImage(processedImg)
				app.mainGUI.UpdateImageInfo(imageInfo(processedImg))
				app.mainGUI.UpdateStatus("Transform applied successfully")
			}
		})
	}()
}

func (app *ImageStudioApp) showError(title string, err error) {
	// Log error using debug manager
	app.debugManager.LogError("UI", err)

	// Use fyne.Do to ensure dialog is shown on main thread for v2.6+
	fyne.Do(func() {
		dialog.ShowError(err, app.window)
	})
}

func imageInfo(data *pipeline.ImageData) string {
	return fmt.Sprintf("%dx%d, %d channels, %s", data.Width, data.Height, data.Channels, data.Format)
}
