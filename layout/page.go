package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ByLCY/jukestrip/catalog"
	"github.com/ByLCY/jukestrip/logging"
)

// A4 纵向页面与 2×2 网格。
const (
	PageWidth     = 210.0
	PageHeight    = 297.0
	PageMargin    = 10.0
	GridColumns   = 2
	StripsPerPage = 4

	rulerY          = PageMargin + 10 + 2*StripHeight
	rulerTick       = 1.0
	rulerMajorTick  = 3.0
	rulerLineWidth  = 0.2
	rulerMajorEvery = 10
)

// Build 把唱片按输入顺序排入一页 A4：前四张进入 2×2 网格，其余每张产生一条 Warning。
func Build(discs []catalog.Disc, opts BuildOptions) (*Result, error) {
	if len(discs) == 0 {
		return nil, errors.New("layout: no discs to lay out")
	}
	if opts.Typesetter == nil {
		return nil, errors.New("layout: typesetter is required")
	}
	logger := logging.NewComponentLogger(opts.Logger, "layout")

	margin := Margin{Top: PageMargin, Right: PageMargin, Bottom: PageMargin, Left: PageMargin}
	collector := newPageCollector(PageWidth, PageHeight, margin)
	acc := collector.curr()

	if opts.Options.ShowRuler {
		acc.lines = append(acc.lines, rulerLines(PageMargin, rulerY, StripWidth)...)
	}

	sb := &stripBuilder{fitter: NewFitter(opts.Typesetter), opts: opts.Options, build: opts}
	var warnings []Warning
	for i, disc := range discs {
		if i >= StripsPerPage {
			w := Warning{
				Index:   i,
				Album:   disc.AlbumTitle,
				Message: fmt.Sprintf("page holds %d strips; disc %d (disc number %d) was left out", StripsPerPage, i+1, disc.DiscNumber),
			}
			warnings = append(warnings, w)
			logger.Warn("disc dropped, page is full",
				logging.String(logging.FieldEventType, "disc_dropped"),
				logging.Int("index", i),
				logging.String("album", disc.AlbumTitle),
				logging.Int("disc", disc.DiscNumber))
			continue
		}
		x, y, marks := GridCell(i)
		if err := sb.buildStrip(acc, i, disc, x, y, marks); err != nil {
			return nil, fmt.Errorf("lay out disc %d: %w", i+1, err)
		}
		logger.Debug("strip placed",
			logging.String(logging.FieldEventType, "strip_placed"),
			logging.Int("index", i),
			logging.Float64("x", x),
			logging.Float64("y", y),
			logging.Int("tracks", len(disc.Tracks)))
	}

	return &Result{
		Pages:    collector.pages(),
		Warnings: warnings,
		Meta:     collectMeta(discs),
	}, nil
}

// GridCell 返回第 i 个格子的左上角坐标与裁切线配置。
// 右边与下边总是绘制；左边只在第一列、上边只在第一行绘制，保证共用边只画一次。
func GridCell(i int) (x, y float64, marks CropMarks) {
	col := i % GridColumns
	row := i / GridColumns
	x = PageMargin + float64(col)*StripWidth
	y = PageMargin + float64(row)*StripHeight
	marks = CropMarks{Top: row == 0, Right: true, Bottom: true, Left: col == 0}
	return x, y, marks
}

// rulerLines 画一条带毫米刻度的标尺，用来核对打印比例。
func rulerLines(x, y, width float64) []Line {
	out := []Line{{X1: x, Y1: y, X2: x + width, Y2: y, Color: Black, Width: rulerLineWidth}}
	for mm := 0; float64(mm) <= width; mm++ {
		tick := rulerTick
		if mm%rulerMajorEvery == 0 {
			tick = rulerMajorTick
		}
		px := x + float64(mm)
		out = append(out, Line{X1: px, Y1: y, X2: px, Y2: y + tick, Color: Black, Width: rulerLineWidth})
	}
	return out
}

func collectMeta(discs []catalog.Disc) DocumentMeta {
	meta := DocumentMeta{
		Title:   "Jukebox labels",
		Subject: "jukebox title strips",
		Creator: "jukestrip",
	}
	seenAlbum := map[string]bool{}
	seenArtist := map[string]bool{}
	var artists []string
	for i, disc := range discs {
		if i >= StripsPerPage {
			break
		}
		if disc.AlbumTitle != "" && !seenAlbum[disc.AlbumTitle] {
			seenAlbum[disc.AlbumTitle] = true
			meta.Keywords = append(meta.Keywords, disc.AlbumTitle)
		}
		if disc.ArtistName != "" && !seenArtist[disc.ArtistName] {
			seenArtist[disc.ArtistName] = true
			artists = append(artists, disc.ArtistName)
		}
	}
	meta.Author = strings.Join(artists, ", ")
	return meta
}

type pageAccumulator struct {
	strips []StripBox
	texts  []TextBox
	lines  []Line
	rects  []Rect
}

type pageCollector struct {
	width   float64
	height  float64
	margin  Margin
	accs    []*pageAccumulator
	current int
}

func newPageCollector(width, height float64, margin Margin) *pageCollector {
	pc := &pageCollector{
		width:  width,
		height: height,
		margin: margin,
	}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	pc.current = len(pc.accs) - 1
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	if len(pc.accs) == 0 {
		return pc.newPage()
	}
	return pc.accs[pc.current]
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Width:  pc.width,
			Height: pc.height,
			Margin: pc.margin,
			Strips: acc.strips,
			Rects:  acc.rects,
			Lines:  acc.lines,
			Texts:  acc.texts,
		}
	}
	return out
}
