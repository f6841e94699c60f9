package render

import (
	"image/color"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// groupPalette mirrors the seaborn colorway so a group keeps one identity
// across the trend and distribution plots.
var groupPalette = []drawing.Color{
	drawing.ColorFromHex("4C72B0"),
	drawing.ColorFromHex("DD8452"),
	drawing.ColorFromHex("55A868"),
	drawing.ColorFromHex("C44E52"),
	drawing.ColorFromHex("8172B3"),
	drawing.ColorFromHex("937860"),
	drawing.ColorFromHex("DA8BC3"),
	drawing.ColorFromHex("8C8C8C"),
	drawing.ColorFromHex("CCB974"),
	drawing.ColorFromHex("64B5CD"),
}

// groupColor returns the palette entry for a color index (wrapping).
func groupColor(idx int) drawing.Color {
	if idx < 0 {
		idx = 0
	}
	return groupPalette[idx%len(groupPalette)]
}

var (
	significantColor = color.RGBA{R: 204, G: 32, B: 32, A: 255}
	neutralColor     = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	statsTextColor   = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)
