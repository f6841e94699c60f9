package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const overlayLineHeight = 15

// toDrawable copies an image into a mutable RGBA canvas for text overlays.
func toDrawable(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

func measureString(text string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(text).Ceil()
}

// drawString draws one line of text at (x, y baseline) in the given color.
func drawString(dst *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// drawStatsBlock draws a multi-line annotation right-aligned in the top-right
// corner, the way the overall statistic block sits on both plots.
func drawStatsBlock(dst *image.RGBA, text string, col color.Color) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b := dst.Bounds()
	y := b.Min.Y + 24
	for _, line := range strings.Split(text, "\n") {
		w := measureString(line)
		drawString(dst, b.Max.X-w-12, y, line, col)
		y += overlayLineHeight
	}
}

// drawCenteredString draws text horizontally centered on cx.
func drawCenteredString(dst *image.RGBA, cx, y int, text string, col color.Color) {
	w := measureString(text)
	drawString(dst, cx-w/2, y, text, col)
}
