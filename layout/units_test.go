package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 6, 10, 12, 14, 72, 1000}
	for _, pt := range samples {
		back := MMToPt(PtToMM(pt))
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
	for _, mm := range samples {
		back := PtToMM(MMToPt(mm))
		if diff := math.Abs(back - mm); diff > 1e-9 {
			t.Fatalf("mm→pt→mm 往返误差过大: in=%gmm back=%g diff=%g", mm, back, diff)
		}
	}
}

// TestLineHeight 验证行高 = 字号(mm) × 1.2。
func TestLineHeight(t *testing.T) {
	got := LineHeight(10)
	want := 10 * PtToMm * 1.2
	if diff := math.Abs(got - want); diff > 1e-9 {
		t.Fatalf("10pt 行高错误: got=%g want=%g", got, want)
	}
	if LineHeight(14) <= LineHeight(12) {
		t.Fatalf("行高应随字号单调递增")
	}
}
