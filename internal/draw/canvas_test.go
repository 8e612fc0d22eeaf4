package draw

import (
	"strings"
	"testing"
)

func TestCanvasSetFloatScales(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)

	c.SetFloat(50, 50)

	// Logical (50,50) maps to pixel (5,5) at 10x10 sub-pixels.
	if !c.pixelAt(5, 5) {
		t.Fatalf("expected pixel at (5,5) to be set")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.SetFloat(10, 10)

	c.Clear()

	var buf strings.Builder
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("expected empty render after clear, got %q", buf.String())
	}
}

func TestCanvasRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)

	// Top sub-pixel of cell (0,0) only.
	c.setPixel(0, 0)
	// Both sub-pixels of cell (1,0).
	c.setPixel(1, 0)
	c.setPixel(1, 1)

	var buf strings.Builder
	c.Render(&buf)
	out := buf.String()

	if !strings.ContainsRune(out, BlockUpperHalf) {
		t.Errorf("expected upper half block in %q", out)
	}
	if !strings.ContainsRune(out, BlockFull) {
		t.Errorf("expected full block in %q", out)
	}
	if strings.ContainsRune(out, BlockLowerHalf) {
		t.Errorf("unexpected lower half block in %q", out)
	}
}

func TestCanvasRenderErasesStaleCells(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.setPixel(2, 2)

	var first strings.Builder
	c.Render(&first)
	if !strings.ContainsRune(first.String(), BlockUpperHalf) {
		t.Fatalf("expected block in first frame, got %q", first.String())
	}

	c.Clear()
	var second strings.Builder
	c.Render(&second)
	if !strings.Contains(second.String(), " ") {
		t.Fatalf("expected erasing space in second frame, got %q", second.String())
	}
}

func TestCanvasFilledPolygonCoversInterior(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)

	square := []Point{{X: 2, Y: 2}, {X: 18, Y: 2}, {X: 18, Y: 18}, {X: 2, Y: 18}}
	c.DrawPolygon(square, true)

	if !c.pixelAt(10, 10) {
		t.Fatalf("expected interior pixel to be filled")
	}
	if c.pixelAt(0, 0) {
		t.Fatalf("expected exterior pixel to stay empty")
	}
}

func TestChunkWriterFlushesEverything(t *testing.T) {
	var out strings.Builder
	w := NewChunkWriter(&out, 0, 0)

	payload := strings.Repeat("x", maxChunkSize*2+17)
	w.WriteString(payload)
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if out.String() != payload {
		t.Fatalf("flushed output does not match input: %d vs %d bytes", out.Len(), len(payload))
	}
}
