package render

import (
	"fmt"
	"image/color"
)

// Style controls the visual defaults for a figure. A zero Style is not
// usable; start from DefaultStyle and override fields as needed.
type Style struct {
	Palette    []color.RGBA // series colour cycle
	BarWidth   float64      // default bar width in x data units
	MarkerSize float64      // scatter marker size in px
	LineWidth  float64      // px
	CapSize    float64      // error bar cap half-width in px
	Background color.RGBA
	Axis       color.RGBA // frame and tick colour
	Text       color.RGBA
	Subtle     color.RGBA // tick labels, offset text
	ErrorBar   color.RGBA
}

// DefaultStyle returns the stock style: a ten-colour cycle on a white
// background with dark grey error bars.
func DefaultStyle() Style {
	return Style{
		Palette: []color.RGBA{
			{0x1f, 0x77, 0xb4, 0xff},
			{0xff, 0x7f, 0x0e, 0xff},
			{0x2c, 0xa0, 0x2c, 0xff},
			{0xd6, 0x27, 0x28, 0xff},
			{0x94, 0x67, 0xbd, 0xff},
			{0x8c, 0x56, 0x4b, 0xff},
			{0xe3, 0x77, 0xc2, 0xff},
			{0x7f, 0x7f, 0x7f, 0xff},
			{0xbc, 0xbd, 0x22, 0xff},
			{0x17, 0xbe, 0xcf, 0xff},
		},
		BarWidth:   0.2,
		MarkerSize: 7,
		LineWidth:  1.5,
		CapSize:    5,
		Background: color.RGBA{0xff, 0xff, 0xff, 0xff},
		Axis:       color.RGBA{0x22, 0x22, 0x22, 0xff},
		Text:       color.RGBA{0x11, 0x11, 0x11, 0xff},
		Subtle:     color.RGBA{0x55, 0x55, 0x55, 0xff},
		ErrorBar:   color.RGBA{0xa9, 0xa9, 0xa9, 0xff}, // darkgrey
	}
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
