package layout

import (
	"fmt"
	"math"

	"github.com/ByLCY/jukestrip/catalog"
	"github.com/ByLCY/jukestrip/logging"
)

// 标签条几何尺寸（mm）与字号（pt）。
const (
	StripWidth     = 74.0
	StripHeight    = 109.0
	StripMargin    = 2.0
	CropMarkLength = 5.0

	AlbumFontSize  = 14.0
	ArtistFontSize = 12.0
	TrackFontSize  = 10.0
	MinFontSize    = 6.0

	cropMarkWidth         = 0.2
	cellPadding           = 1.0
	titleBackgroundMargin = 2.0
	titleBackgroundHeight = 15.0
)

var (
	titleBackgroundColor = Color{255, 230, 128}
	alternateRowColor    = Color{255, 255, 200}
	cropMarkDash         = []float64{1, 1}
)

// CropMarks 控制四条边的裁切线延长线是否绘制。每条边在两个端点各向外延长 CropMarkLength，
// 相邻标签条共用的边只需一方绘制。
type CropMarks struct {
	Top    bool `json:"top"`
	Right  bool `json:"right"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
}

// AllCropMarks 四边全部绘制。
func AllCropMarks() CropMarks { return CropMarks{Top: true, Right: true, Bottom: true, Left: true} }

// stripBuilder 把一张唱片排进一个固定尺寸的标签条。
type stripBuilder struct {
	fitter *Fitter
	opts   Options
	build  BuildOptions
}

// buildStrip 将 disc 排版到 (x, y) 处，结果追加到 acc。
func (sb *stripBuilder) buildStrip(acc *pageAccumulator, index int, disc catalog.Disc, x, y float64, marks CropMarks) error {
	acc.lines = append(acc.lines, cropMarkLines(x, y, marks)...)

	if sb.opts.ShowTitleBackground {
		fill := titleBackgroundColor
		acc.rects = append(acc.rects, Rect{
			X:         x - titleBackgroundMargin,
			Y:         y + titleBackgroundMargin,
			Width:     titleBackgroundMargin + StripWidth + titleBackgroundMargin,
			Height:    titleBackgroundHeight - 2*titleBackgroundMargin,
			FillColor: &fill,
		})
	}

	contentX := x + StripMargin
	contentWidth := StripWidth - 2*StripMargin
	cursorY := y + StripMargin

	album := AlbumLabel(disc.AlbumTitle, sb.opts)
	albumBlock, err := sb.heading(acc, album, contentX, cursorY, contentWidth, AlbumFontSize)
	if err != nil {
		return fmt.Errorf("album title %q: %w", album, err)
	}
	cursorY += albumBlock.Height

	artist := ArtistLabel(disc.ArtistName)
	artistBlock, err := sb.heading(acc, artist, contentX, cursorY, contentWidth, ArtistFontSize)
	if err != nil {
		return fmt.Errorf("artist %q: %w", artist, err)
	}
	cursorY += artistBlock.Height + StripMargin

	if len(disc.Tracks) == 0 {
		acc.strips = append(acc.strips, stripBox(index, album, x, y, marks, 0))
		return nil
	}

	available := y + StripHeight - StripMargin - cursorY
	rowCap := math.Max(available, 0) / float64(len(disc.Tracks))
	if available <= 0 {
		logging.NewComponentLogger(sb.build.Logger, "layout").Warn("no room left for tracks",
			logging.String(logging.FieldEventType, "strip_overflow"),
			logging.String("album", album),
			logging.Float64("available_mm", available))
	}

	for i, track := range disc.Tracks {
		label := TrackLabel(track.TrackNumber, track.Title, sb.opts)
		size, err := sb.fitter.FitSize(label, contentWidth, TrackFontSize, MinFontSize, FontRegular)
		if err != nil {
			return fmt.Errorf("track %q: %w", label, err)
		}
		rowHeight := math.Min(LineHeight(size), rowCap)

		if sb.opts.AlternateRowBackgrounds {
			fill := White
			if i%2 == 1 {
				fill = alternateRowColor
			}
			acc.rects = append(acc.rects, Rect{X: contentX, Y: cursorY, Width: contentWidth, Height: rowHeight, FillColor: &fill})
		}
		acc.texts = append(acc.texts, TextBox{
			Content:  label,
			X:        contentX,
			Y:        cursorY,
			Width:    contentWidth,
			Height:   rowHeight,
			Font:     FontRegular,
			FontSize: size,
			Color:    Black,
			Align:    "left",
			Padding:  cellPadding,
		})
		cursorY += rowHeight
	}

	acc.strips = append(acc.strips, stripBox(index, album, x, y, marks, len(disc.Tracks)))
	return nil
}

// heading 排版居中的粗体标题：先按整行选字号，再在该字号下折行并统一字号。
func (sb *stripBuilder) heading(acc *pageAccumulator, text string, x, y, width, initial float64) (TextBlock, error) {
	size, err := sb.fitter.FitSize(text, width, initial, MinFontSize, FontBold)
	if err != nil {
		return TextBlock{}, err
	}
	block, err := sb.fitter.WrapAndFit(text, width, size, MinFontSize, FontBold)
	if err != nil {
		return TextBlock{}, err
	}
	for i, line := range block.Lines {
		acc.texts = append(acc.texts, TextBox{
			Content:  line,
			X:        x,
			Y:        y + float64(i)*block.LineHeight,
			Width:    width,
			Height:   block.LineHeight,
			Font:     FontBold,
			FontSize: block.FontSize,
			Color:    Black,
			Align:    "center",
			Padding:  cellPadding,
		})
	}
	return block, nil
}

func stripBox(index int, album string, x, y float64, marks CropMarks, tracks int) StripBox {
	return StripBox{
		Index:     index,
		Album:     album,
		X:         x,
		Y:         y,
		Width:     StripWidth,
		Height:    StripHeight,
		CropMarks: marks,
		Tracks:    tracks,
	}
}

// cropMarkLines 生成虚线裁切标记：每条启用的边沿自身方向在两端各向外延长。
func cropMarkLines(x, y float64, marks CropMarks) []Line {
	left, right := x, x+StripWidth
	top, bottom := y, y+StripHeight
	l := CropMarkLength

	var out []Line
	add := func(x1, y1, x2, y2 float64) {
		out = append(out, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: Black, Width: cropMarkWidth, Dash: cropMarkDash})
	}
	if marks.Top {
		add(left, top, left-l, top)
		add(right, top, right+l, top)
	}
	if marks.Bottom {
		add(left, bottom, left-l, bottom)
		add(right, bottom, right+l, bottom)
	}
	if marks.Left {
		add(left, top, left, top-l)
		add(left, bottom, left, bottom+l)
	}
	if marks.Right {
		add(right, top, right, top-l)
		add(right, bottom, right, bottom+l)
	}
	return out
}
