package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Logical coordinates are scaled to the actual terminal size,
// so the scene keeps its aspect regardless of window dimensions.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat: [y*termWidth + x]
	prev           []bool // Pixels as of the last Render, for cell diffing
	textDirty      []bool // Cells overwritten by HUD text since the last Render
	forceRedraw    bool

	logicalWidth  float64
	logicalHeight float64 // In sub-pixels
	scaleX        float64
	scaleY        float64

	// Centering offset (0-based terminal cells to skip) when the
	// terminal exceeds the max render resolution.
	offsetCol int
	offsetRow int

	// Reusable buffers to keep the per-frame hot path allocation free.
	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas mapping the given logical coordinate
// space onto termWidth x termHeight terminal cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]bool, subPixelHeight*termWidth),
		prev:           make([]bool, subPixelHeight*termWidth),
		textDirty:      make([]bool, termHeight*termWidth),
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
	}
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.prev = make([]bool, subPixelHeight*termWidth)
		c.textDirty = make([]bool, termHeight*termWidth)
		c.forceRedraw = true
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the centering offset. The canvas starts at terminal cell
// (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// pixelAt reports a pixel in raw sub-pixel coordinates; used by tests.
func (c *Canvas) pixelAt(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel at float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py)
}

// DrawLine draws a line in logical space using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawDashedLine draws a line leaving gaps, for beam effects. dashLen and
// gapLen are in logical units.
func (c *Canvas) DrawDashedLine(p1, p2 Point, dashLen, gapLen float64) {
	total := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
	if total == 0 {
		c.SetFloat(p1.X, p1.Y)
		return
	}
	ux := (p2.X - p1.X) / total
	uy := (p2.Y - p1.Y) / total
	for pos := 0.0; pos < total; pos += dashLen + gapLen {
		end := pos + dashLen
		if end > total {
			end = total
		}
		c.DrawLine(
			Point{X: p1.X + ux*pos, Y: p1.Y + uy*pos},
			Point{X: p1.X + ux*end, Y: p1.Y + uy*end},
		)
	}
}

// DrawPolygon draws a polygon; if filled is true the interior is filled
// with a scanline pass.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// DrawCircle draws a circle approximated by a polygon.
func (c *Canvas) DrawCircle(center Point, radius float64, filled bool) {
	const segments = 24
	points := c.BorrowPoints(segments)
	for i := 0; i < segments; i++ {
		angle := float64(i) * 2 * math.Pi / segments
		points[i] = Point{
			X: center.X + math.Cos(angle)*radius,
			Y: center.Y + math.Sin(angle)*radius,
		}
	}
	c.DrawPolygon(points, filled)
}

// fillPolygon fills a polygon with a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections
		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// ForceRedraw marks every cell dirty so the next Render repaints the
// whole canvas. Call after clearing the terminal or resizing.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// MarkTextDirty records that HUD text was written over width cells
// starting at the 1-based canvas position (col, row), so the next Render
// repaints them even when the underlying pixels did not change.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for i := 0; i < width; i++ {
		x := col - 1 + i
		if x >= 0 && x < c.termWidth {
			c.textDirty[y*c.termWidth+x] = true
		}
	}
}

// cellRune picks the half-block character for a cell; 0 means empty.
func cellRune(top, bottom bool) rune {
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	}
	return 0
}

// Render writes the canvas to w using half-block characters. Only cells
// that changed since the last Render are emitted; cells that became empty
// are erased with a space.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight / 4 * 12)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		for col := 0; col < c.termWidth; col++ {
			idx := topOffset + col
			dirty := c.textDirty[row*c.termWidth+col]
			ch := cellRune(c.pixels[idx], c.pixels[bottomOffset+col])
			if !c.forceRedraw && !dirty && ch == cellRune(c.prev[idx], c.prev[bottomOffset+col]) {
				continue
			}
			if ch == 0 {
				if c.forceRedraw && !dirty {
					continue
				}
				ch = ' '
			}
			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1+c.offsetRow, col+1+c.offsetCol, ch)
		}
	}

	copy(c.prev, c.pixels)
	clear(c.textDirty)
	c.forceRedraw = false
	io.WriteString(w, c.renderBuf.String())
}

// RenderBorder draws a box around the canvas area when the terminal is
// larger than the render resolution.
func (c *Canvas) RenderBorder(w io.Writer) {
	if c.offsetCol < 1 && c.offsetRow < 1 {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	var buf strings.Builder
	if hasV {
		bar := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, bar)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, bar)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, bar)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, bar)
		}
	}
	if hasH {
		startRow := c.offsetRow + 1
		endRow := c.offsetRow + c.termHeight + 1
		if hasV {
			startRow = top + 1
			endRow = bottom
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	io.WriteString(w, buf.String())
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position, for placing text overlays next to canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of n Points, valid until the next
// call. Avoids per-frame allocations for polygon rendering; safe as long
// as each goroutine owns its own Canvas.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
