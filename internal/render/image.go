package render

import (
	"image"
	"image/color"

	"github.com/ironsheep/fondo/internal/growth"
)

// ToImage copies the canvas into a new opaque NRGBA image of the same size.
func ToImage(c *growth.Canvas) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for i, px := range c.Pix {
		o := i * 4
		img.Pix[o] = px.R
		img.Pix[o+1] = px.G
		img.Pix[o+2] = px.B
		img.Pix[o+3] = 0xff
	}
	return img
}

// rgbAt reads the 8-bit colour of any image at (x, y).
func rgbAt(img image.Image, x, y int) growth.RGB {
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return growth.RGB{R: c.R, G: c.G, B: c.B}
}
