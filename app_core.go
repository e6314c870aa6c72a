package main

import (
	"io"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"image-studio/debug"
	"image-studio/gui"
	"image-studio/pipeline"
	"image-studio/processors"
)

// DataReader implements fyne.URIReadCloser for in-memory data
type DataReader struct {
	data []byte
	pos  int
	uri  fyne.URI
}

func (dr *DataReader) Read(p []byte) (n int, err error) {
	if dr.pos >= len(dr.data) {
		return 0, io.EOF
	}
	n = copy(p, dr.data[dr.pos:])
	dr.pos += n
	return n, nil
}

func (dr *DataReader) Close() error {
	return nil
}

func (dr *DataReader) URI() fyne.URI {
	return dr.uri
}

const (
	AppName      = "Image Studio"
	AppID        = "com.imageprocessing.imagestudio"
	AppVersion   = "1.0.0"
	WindowWidth  = 1200
	WindowHeight = 800
)

type ImageStudioApp struct {
	fyneApp      fyne.App
	window       fyne.Window
	mainGUI      *gui.MainInterface
	pipeline     *pipeline.ImagePipeline
	registry     *processors.Registry
	debugManager *debug.Manager

	// Registry name of the transform currently selected in the GUI.
	// Only mutated from the Fyne event thread.
	currentProcessor string
}

func NewImageStudioApp() *ImageStudioApp {
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.SetFixedSize(true)

	// Set debug component toggles
	debug.EnablePerformanceDebug = DebugPerformance
	debug.EnableGUIDebug = DebugGUI

	// Initialize managers
	debugManager := debug.NewManager()
	registry := processors.NewRegistry()
	pipelineManager := pipeline.NewImagePipeline(debugManager, registry)

	app := &ImageStudioApp{
		fyneApp:      fyneApp,
		window:       window,
		debugManager: debugManager,
		registry:     registry,
		pipeline:     pipelineManager,
	}

	// Initialize GUI
	mainGUI := gui.NewMainInterface(window, app.handleImageLoad, app.handleImageSave,
		app.handleProcessorChange, app.handleParameterChange, app.handleProcess,
		pipelineManager.ProcessorNames())
	app.mainGUI = mainGUI

	// Connect pipeline to GUI updates
	app.pipeline.SetProgressCallback(app.mainGUI.UpdateProgress)
	app.pipeline.SetStatusCallback(app.mainGUI.UpdateStatus)

	// Initialize GUI components after everything is set up
	app.mainGUI.Initialize()

	return app
}

func (app *ImageStudioApp) Run() {
	app.setupMenus()

	// Set main content
	content := app.mainGUI.GetMainContainer()
	app.window.SetContent(content)

	// Handle window close
	app.window.SetCloseIntercept(func() {
		app.cleanup()
		app.window.Close()
	})

	app.window.ShowAndRun()
}

func (app *ImageStudioApp) cleanup() {
	if app.pipeline != nil {
		app.pipeline.Cleanup()
	}

	if app.debugManager != nil {
		app.debugManager.Cleanup()
	}
}

func main() {
	// Start profiling server if enabled
	if os.Getenv("IMAGE_STUDIO_PPROF") == "1" {
		go func() {
			log.Println("Starting profiling server on :6060")
			log.Println(http.ListenAndServe("localhost:6060", nil))
		}()
	}

	// Create and run app
	app := NewImageStudioApp()
	app.Run()
}
