package canvasrenderer

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ByLCY/jukestrip/catalog"
	"github.com/ByLCY/jukestrip/fonts"
	"github.com/ByLCY/jukestrip/layout"
)

func TestTextWidthPositiveAndGrowing(t *testing.T) {
	r := NewRenderer()
	short, err := r.TextWidth("Abbey Road", layout.FontRegular, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	long, err := r.TextWidth("Abbey Road (Remastered 2019)", layout.FontRegular, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if short <= 0 || long <= short {
		t.Fatalf("expected growing positive widths, got short=%g long=%g", short, long)
	}
	empty, err := r.TextWidth("", layout.FontBold, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty != 0 {
		t.Fatalf("empty text should have zero width, got %g", empty)
	}
}

// TestTextWidthScalesWithSize 验证宽度与字号成正比（单位 mm）。
func TestTextWidthScalesWithSize(t *testing.T) {
	r := NewRenderer()
	w6, err := r.TextWidth("Come Together", layout.FontBold, 6)
	if err != nil {
		t.Fatalf("TextWidth error: %v", err)
	}
	w12, err := r.TextWidth("Come Together", layout.FontBold, 12)
	if err != nil {
		t.Fatalf("TextWidth error: %v", err)
	}
	if diff := math.Abs(w12 - 2*w6); diff > 0.01*w12 {
		t.Fatalf("width should scale linearly: w6=%g w12=%g", w6, w12)
	}
}

func TestCustomFontOverride(t *testing.T) {
	bold, err := fonts.Load(fonts.Bold)
	if err != nil {
		t.Fatalf("load font: %v", err)
	}
	r := NewRendererWithOptions(Options{Fonts: map[layout.Font]Resource{
		layout.FontRegular: {Bytes: bold},
	}})
	got, err := r.TextWidth("Help!", layout.FontRegular, 10)
	if err != nil {
		t.Fatalf("TextWidth error: %v", err)
	}
	want, err := NewRenderer().TextWidth("Help!", layout.FontBold, 10)
	if err != nil {
		t.Fatalf("TextWidth error: %v", err)
	}
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("override should use the provided font: got=%g want=%g", got, want)
	}
}

func TestMissingFontFileReportsError(t *testing.T) {
	r := NewRendererWithOptions(Options{Fonts: map[layout.Font]Resource{
		layout.FontBold: {Path: filepath.Join(t.TempDir(), "missing.ttf")},
	}})
	if _, err := r.TextWidth("x", layout.FontBold, 10); err == nil {
		t.Fatalf("expected error for missing font file")
	}
	if _, err := r.TextWidth("x", layout.FontRegular, 10); err != nil {
		t.Fatalf("regular font should still work: %v", err)
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("expected error for result without pages")
	}
}

// TestRenderProducesPDF 使用真实字体度量完成 布局 → 渲染 全流程。
func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()
	disc := catalog.Disc{
		AlbumTitle: "Blizzard of Ozz (Remastered)",
		ArtistName: "Ozzy Osbourne (2)",
		DiscNumber: 1,
		Tracks: []catalog.Track{
			{Position: "A1", Title: "I Don't Know", DiscNumber: 1, TrackNumber: 1, OverallSequence: 101},
			{Position: "A2", Title: "Crazy Train", DiscNumber: 1, TrackNumber: 2, OverallSequence: 102},
		},
	}
	res, err := layout.Build([]catalog.Disc{disc, disc}, layout.BuildOptions{
		Typesetter: r,
		Options: layout.Options{
			AlternateRowBackgrounds: true,
			ShowTitleBackground:     true,
			StripBracketedText:      true,
			ShowRuler:               true,
		},
	})
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	data, err := r.Render(res)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 8)])
	}
}

func renderDiscs(t *testing.T, r *Renderer, discs []catalog.Disc) []byte {
	t.Helper()
	res, err := layout.Build(discs, layout.BuildOptions{
		Typesetter: r,
		Options: layout.Options{
			AlternateRowBackgrounds: true,
			ShowTitleBackground:     true,
			StripBracketedText:      true,
		},
	})
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	data, err := r.Render(res)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	return data
}

// TestRenderIsByteIdentical 两个独立的渲染器对同一输入必须输出完全相同的字节。
func TestRenderIsByteIdentical(t *testing.T) {
	discs := []catalog.Disc{
		{
			AlbumTitle: "Paranoid",
			ArtistName: "Black Sabbath",
			DiscNumber: 1,
			Tracks: []catalog.Track{
				{Position: "A1", Title: "War Pigs", DiscNumber: 1, TrackNumber: 1, OverallSequence: 1},
				{Position: "A2", Title: "Paranoid", DiscNumber: 1, TrackNumber: 2, OverallSequence: 2},
				{Position: "B1", Title: "Iron Man", DiscNumber: 1, TrackNumber: 3, OverallSequence: 3},
			},
		},
		{
			AlbumTitle: "Motörhead (Deluxe)",
			ArtistName: "Motörhead (2)",
			DiscNumber: 2,
			Tracks: []catalog.Track{
				{Position: "2-1", Title: "Ace of Spades", DiscNumber: 2, TrackNumber: 1, OverallSequence: 101},
			},
		},
	}

	first := renderDiscs(t, NewRenderer(), discs)
	time.Sleep(1100 * time.Millisecond) // 跨过一秒，写入器的时间戳必然不同
	second := renderDiscs(t, NewRenderer(), discs)

	if !bytes.HasPrefix(first, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", first[:min(len(first), 8)])
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("same discs rendered to different bytes (%d vs %d)", len(first), len(second))
	}
	if !bytes.Contains(first, []byte("D:19700101000000")) {
		t.Fatalf("creation date should be pinned to the epoch")
	}
}

func TestRenderUsesConfiguredCreationDate(t *testing.T) {
	at := time.Date(2024, 3, 9, 21, 30, 5, 0, time.UTC)
	r := NewRendererWithOptions(Options{CreationDate: at})
	disc := catalog.Disc{
		AlbumTitle: "Rumours",
		ArtistName: "Fleetwood Mac",
		DiscNumber: 1,
		Tracks:     []catalog.Track{{Position: "1", Title: "Dreams", DiscNumber: 1, TrackNumber: 1, OverallSequence: 1}},
	}
	data := renderDiscs(t, r, []catalog.Disc{disc})
	if !bytes.Contains(data, []byte("D:20240309213005")) {
		t.Fatalf("configured creation date missing from PDF info")
	}
}

func TestPinCreationDateKeepsLength(t *testing.T) {
	for _, raw := range []string{
		"2 0 obj\n<</CreationDate(D:20251016120000Z)/Producer(tdewolff/canvas)>>",
		"2 0 obj\n<</CreationDate (D:20251016120000+0800)/Producer(tdewolff/canvas)>>",
	} {
		got := string(pinCreationDate([]byte(raw), time.Unix(0, 0)))
		if len(got) != len(raw) {
			t.Fatalf("length changed: %q -> %q", raw, got)
		}
		if !strings.Contains(got, "D:19700101000000") {
			t.Fatalf("timestamp not replaced: %q", got)
		}
	}
	if got := string(pinCreationDate([]byte("no info"), time.Unix(0, 0))); got != "no info" {
		t.Fatalf("input without a date should be untouched, got %q", got)
	}
}
