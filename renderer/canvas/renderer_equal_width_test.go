package canvasrenderer

import (
	"testing"

	"github.com/ByLCY/jukestrip/layout"
)

// 文本宽度与可用宽度恰好相等时视为放得下，不应缩小字号或折行。
func TestNoShrinkWhenEqualWidth(t *testing.T) {
	r := NewRenderer()
	f := layout.NewFitter(r)

	text := "SAMPLE-A SAMPLE-B"
	limit, err := r.TextWidth(text, layout.FontBold, 12)
	if err != nil {
		t.Fatalf("measure error: %v", err)
	}
	if limit <= 0 {
		t.Fatalf("invalid measured width: %g", limit)
	}

	size, err := f.FitSize(text, limit, 12, 6, layout.FontBold)
	if err != nil {
		t.Fatalf("FitSize error: %v", err)
	}
	if size != 12 {
		t.Fatalf("expected 12pt to be kept, got %g", size)
	}

	block, err := f.WrapAndFit(text, limit, 12, 6, layout.FontBold)
	if err != nil {
		t.Fatalf("WrapAndFit error: %v", err)
	}
	if got := len(block.Lines); got != 1 {
		t.Fatalf("expected 1 line without wrapping, got %d: %q", got, block.Lines)
	}
	if block.Lines[0] != text {
		t.Fatalf("line mismatch: got=%q want=%q", block.Lines[0], text)
	}
}
