package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"image-studio/pipeline"
)

// ImageDisplay handles the top section with Original and Preview images
type ImageDisplay struct {
	container     *fyne.Container
	originalImage *canvas.Image
	previewImage  *canvas.Image
}

const (
	ImageDisplayWidth  = 650
	ImageDisplayHeight = 650
)

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.setupImages()
	return display
}

func (id *ImageDisplay) setupImages() {
	id.originalImage = canvas.NewImageFromImage(nil)
	id.originalImage.FillMode = canvas.ImageFillContain
	id.originalImage.SetMinSize(fyne.NewSize(ImageDisplayWidth/2, ImageDisplayHeight/2))

	id.previewImage = canvas.NewImageFromImage(nil)
	id.previewImage.FillMode = canvas.ImageFillContain
	id.previewImage.SetMinSize(fyne.NewSize(ImageDisplayWidth/2, ImageDisplayHeight/2))

	originalContainer := container.NewVBox(
		widget.NewRichTextFromMarkdown("**Original**"),
		id.originalImage,
	)

	previewContainer := container.NewVBox(
		widget.NewRichTextFromMarkdown("**Preview**"),
		id.previewImage,
	)

	imageSplit := container.NewHSplit(originalContainer, previewContainer)
	imageSplit.SetOffset(0.5)

	id.container = container.NewBorder(nil, nil, nil, nil, imageSplit)
}

func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}

func (id *ImageDisplay) SetOriginalImage(imageData *pipeline.ImageData) {
	id.setImage(id.originalImage, imageData)
}

func (id *ImageDisplay) SetPreviewImage(imageData *pipeline.ImageData) {
	id.setImage(id.previewImage, imageData)
}

// setImage downscales oversized images through the shared fit-to-bounds
// rescale before handing them to the canvas.
func (id *ImageDisplay) setImage(target *canvas.Image, imageData *pipeline.ImageData) {
	if imageData == nil || imageData.Image == nil {
		return
	}

	img := pipeline.ScaledForDisplay(imageData, ImageDisplayWidth, ImageDisplayHeight)
	if img == nil {
		return
	}

	fyne.Do(func() {
		target.Image = img
		target.Refresh()
	})
}
