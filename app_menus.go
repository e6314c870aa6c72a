package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

func (app *ImageStudioApp) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", func() {
			app.handleImageLoad()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Processed Image...", func() {
			app.handleImageSave()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			app.fyneApp.Quit()
		}),
	)

	transformMenu := fyne.NewMenu("Transform",
		fyne.NewMenuItem("Apply", func() {
			app.handleProcess()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Parameters", func() {
			app.handleResetParameters()
		}),
	)

	debugMenu := fyne.NewMenu("Debug",
		fyne.NewMenuItem("Memory Stats", func() {
			stats := app.debugManager.GetMemoryStats()
			dialog.ShowInformation("Memory Statistics", stats, app.window)
		}),
		fyne.NewMenuItem("Performance Report", func() {
			report := app.debugManager.GetPerformanceReport()
			dialog.ShowInformation("Performance Report", report, app.window)
		}),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, transformMenu, debugMenu)
	app.window.SetMainMenu(mainMenu)
}
