package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container      *fyne.Container
	statusLabel    *widget.Label
	imageInfoLabel *widget.Label
}

func NewStatusBar() *StatusBar {
	statusBar := &StatusBar{}
	statusBar.setupStatusBar()
	return statusBar
}

func (sb *StatusBar) setupStatusBar() {
	// Status label
	sb.statusLabel = widget.NewLabel("Ready")

	// Image info label
	sb.imageInfoLabel = widget.NewLabel("No image loaded")

	// Main container with status on left, image info on right
	sb.container = container.NewBorder(
		nil, nil,
		sb.statusLabel,
		sb.imageInfoLabel,
	)
}

func (sb *StatusBar) SetStatus(status string) {
	fyne.Do(func() {
		sb.statusLabel.SetText(status)
	})
}

func (sb *StatusBar) SetImageInfo(info string) {
	fyne.Do(func() {
		sb.imageInfoLabel.SetText(info)
	})
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
