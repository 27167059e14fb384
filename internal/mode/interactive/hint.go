// ABOUTME: Balance-scale hint drawn into an RGBA image and shown as ANSI art
// ABOUTME: Tilts with the hovered ratio; shows the scale curve before any grade

package interactive

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/mauromedda/prefscale-go/internal/engine"
	"github.com/mauromedda/prefscale-go/internal/layout"
	"github.com/mauromedda/prefscale-go/internal/scale"
)

// Hint canvas size in pixels. Half-block rendering halves the height, so the
// drawn hint is about hintCols x hintRows/2 terminal cells before scaling.
const (
	hintW = 120
	hintH = 56
)

var (
	hintBG    = color.RGBA{R: 24, G: 24, B: 37, A: 255}
	beamColor = color.RGBA{R: 186, G: 194, B: 222, A: 255}
	panAColor = color.RGBA{R: 243, G: 139, B: 168, A: 255}
	panBColor = color.RGBA{R: 137, G: 180, B: 250, A: 255}
	curveCol  = color.RGBA{R: 166, G: 227, B: 161, A: 255}
)

// renderHint draws the balance (or scale curve) for the hovered box.
func renderHint(snap engine.Snapshot, boxes []layout.Box, hover int, width int) string {
	var b layout.Balance
	if hover >= 0 && hover < len(boxes) {
		b = layout.BalanceFor(layout.HoverRatio(snap, boxes[hover]))
	} else {
		b = layout.BalanceFor(layout.PendingRatio(snap))
	}
	if snap.Level == engine.LevelInitial && snap.Selected == engine.ObjectNone && hover < 0 {
		b = layout.FormulaFor(snap.Scale)
	}

	img := drawHint(b, snap.Scale)
	maxCols := width / 2
	if maxCols > hintW {
		maxCols = hintW
	}
	if maxCols < 16 {
		maxCols = 16
	}
	return strings.Join(renderHalfBlock(img, maxCols), "\n")
}

// drawHint paints the hint picture for a balance description.
func drawHint(b layout.Balance, t scale.Type) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, hintW, hintH))
	fill(img, img.Bounds(), hintBG)

	if b.Kind == layout.BalanceFormula {
		drawCurve(img, t)
		return img
	}
	drawBalance(img, b)
	return img
}

// drawBalance paints a two-pan balance tilted toward the heavier side.
func drawBalance(img *image.RGBA, b layout.Balance) {
	const (
		pivotX = hintW / 2
		pivotY = 14
		armLen = 44
	)

	// Tilt in pixels from the cube-root compressed load difference.
	tilt := (b.LoadA - b.LoadB) * 5
	if tilt > 11 {
		tilt = 11
	}
	if tilt < -11 {
		tilt = -11
	}

	leftY := pivotY + int(math.Round(tilt))
	rightY := pivotY - int(math.Round(tilt))
	leftX := pivotX - armLen
	rightX := pivotX + armLen

	// Post and base.
	fill(img, image.Rect(pivotX-1, pivotY, pivotX+2, hintH-6), beamColor)
	fill(img, image.Rect(pivotX-16, hintH-6, pivotX+17, hintH-3), beamColor)

	drawLine(img, leftX, leftY, rightX, rightY, beamColor)

	drawPan(img, leftX, leftY, b.LoadA, panAColor)
	drawPan(img, rightX, rightY, b.LoadB, panBColor)
}

// drawPan hangs a load-sized pan under a beam end.
func drawPan(img *image.RGBA, x, y int, load float64, c color.RGBA) {
	drawLine(img, x, y, x-5, y+8, c)
	drawLine(img, x, y, x+5, y+8, c)

	halfW := 5 + int(math.Round(load*3))
	h := 3 + int(math.Round(load*2))
	fill(img, image.Rect(x-halfW, y+8, x+halfW+1, y+8+h), c)
}

// drawCurve plots the transformation over the grade domain.
func drawCurve(img *image.RGBA, t scale.Type) {
	const margin = 6
	maxVal, err := scale.Transform(scale.GradeMax, t)
	if err != nil || maxVal <= 1 {
		maxVal = 9
	}

	plotW := hintW - 2*margin
	plotH := hintH - 2*margin
	prevX, prevY := -1, -1
	for px := range plotW {
		g := scale.GradeMin + (scale.GradeMax-scale.GradeMin)*float64(px)/float64(plotW-1)
		v, err := scale.Transform(g, t)
		if err != nil {
			continue
		}
		x := margin + px
		y := hintH - margin - int(math.Round((v-1)/(maxVal-1)*float64(plotH-1)))
		if prevX >= 0 {
			drawLine(img, prevX, prevY, x, y, curveCol)
		}
		prevX, prevY = x, y
	}

	// Axes.
	drawLine(img, margin, hintH-margin, hintW-margin, hintH-margin, beamColor)
	drawLine(img, margin, margin, margin, hintH-margin, beamColor)
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawLine is a minimal Bresenham segment painter.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
