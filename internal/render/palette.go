package render

import (
	"image"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/fondo/internal/growth"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string     `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64    `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        growth.RGB `json:"rgb"`        // RGB components (quantized)
	HSL        HSLColor   `json:"hsl"`        // HSL representation
}

// Palette contains the most frequently occurring colors in an image, sorted
// by frequency in descending order.
type Palette struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors extracts the count most common colors of img.
//
// Each channel is quantized to a multiple of 16 before counting, so colors
// within 16 units per channel fall in the same bucket:
//
//	quantized = (original / 16) * 16
//
// Ties are broken by hex value so the result is stable.
func DominantColors(img image.Image, count int) *Palette {
	bounds := img.Bounds()
	counts := make(map[growth.RGB]int)
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := rgbAt(img, x, y)
			c.R = c.R / 16 * 16
			c.G = c.G / 16 * 16
			c.B = c.B / 16 * 16
			counts[c]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, frequency(c, float64(n)/float64(total)*100))
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count >= 0 && len(colors) > count {
		colors = colors[:count]
	}
	return &Palette{Colors: colors}
}

func frequency(c growth.RGB, pct float64) ColorFrequency {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := cf.Hsl()
	return ColorFrequency{
		Hex:        strings.ToUpper(cf.Hex()),
		Percentage: pct,
		RGB:        c,
		HSL:        HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}
