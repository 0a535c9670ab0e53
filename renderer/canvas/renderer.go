package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/jukestrip/fonts"
	"github.com/ByLCY/jukestrip/layout"
	"github.com/ByLCY/jukestrip/renderer"
)

const (
	defaultStrokeWidth = 0.2
	// 单元格文本基线相对行中线的下移量，按字号（mm）的比例计算。
	baselineShift = 0.3
)

// Renderer draws layout results via github.com/tdewolff/canvas and measures text with the same fonts.
type Renderer struct {
	fontBlobs    map[layout.Font][]byte
	fontErrs     map[layout.Font]error
	creationDate time.Time

	fontMu   sync.Mutex
	families map[layout.Font]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.Engine   = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	// Fonts 覆盖内置字体；未提供的字重使用 Go 字体。
	Fonts map[layout.Font]Resource
	// CreationDate 写入 PDF 信息字典，零值为 Unix 纪元，保证同一输入输出相同字节。
	CreationDate time.Time
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

var builtinFonts = map[layout.Font]string{
	layout.FontRegular: fonts.Regular,
	layout.FontBold:    fonts.Bold,
}

// NewRenderer creates a renderer backed by the embedded Go fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected font resources.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontBlobs:    map[layout.Font][]byte{},
		fontErrs:     map[layout.Font]error{},
		creationDate: opts.CreationDate,
		families:     map[layout.Font]*canvas.FontFamily{},
	}
	if r.creationDate.IsZero() {
		r.creationDate = time.Unix(0, 0)
	}
	for font, res := range opts.Fonts {
		if font == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[font] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, err := os.ReadFile(res.Path)
			if err != nil {
				// 延迟到第一次使用该字体时报告
				r.fontErrs[font] = fmt.Errorf("read font %s: %w", res.Path, err)
				continue
			}
			r.fontBlobs[font] = data
		}
	}
	return r
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, errors.New("render: nil layout result")
	}
	if len(result.Pages) == 0 {
		return nil, errors.New("render: no pages")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	r.applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page); err != nil {
			return nil, fmt.Errorf("draw page %d: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return pinCreationDate(buf.Bytes(), r.creationDate), nil
}

// 写入器总是用 time.Now() 作为 CreationDate。
var creationDateRe = regexp.MustCompile(`/CreationDate ?\(D:(\d{14})(Z|[+-]\d{4})\)`)

// pinCreationDate 原位替换时间戳；长度不变，xref 偏移仍然有效。
func pinCreationDate(data []byte, at time.Time) []byte {
	loc := creationDateRe.FindSubmatchIndex(data)
	if loc == nil {
		return data
	}
	stamp := at.UTC().Format("20060102150405")
	if loc[5]-loc[4] == 1 {
		stamp += "Z"
	} else {
		stamp += "+0000"
	}
	copy(data[loc[2]:loc[5]], stamp)
	return data
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// TextWidth 实现 layout.Typesetter：返回 content 在 sizePt 字号下的宽度（mm）。
func (r *Renderer) TextWidth(content string, font layout.Font, sizePt float64) (float64, error) {
	face, err := r.fontFace(font, sizePt, layout.Black)
	if err != nil {
		return 0, err
	}
	return face.TextWidth(content), nil
}

// drawPage 按 矩形 → 线 → 文本 的顺序绘制，背景色块不会盖住文字。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	r.drawRects(ctx, page.Rects)
	r.drawLines(ctx, page.Lines)
	for _, tb := range page.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return err
		}
	}
	return nil
}

// drawTextBox 绘制单行单元格：文本在 Height 内垂直居中，左/右对齐时留 Padding。
func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	if tb.Content == "" {
		return nil
	}
	face, err := r.fontFace(tb.Font, tb.FontSize, tb.Color)
	if err != nil {
		return err
	}

	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(tb.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = tb.X + tb.Width/2
	case "right", "end":
		textAlign = canvas.Right
		anchorX = tb.X + tb.Width - tb.Padding
	default:
		textAlign = canvas.Left
		anchorX = tb.X + tb.Padding
	}

	baseline := tb.Y + tb.Height/2 + baselineShift*layout.PtToMM(tb.FontSize)
	ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, tb.Content, textAlign))
	return nil
}

// drawLines 绘制直线列表（毫米单位），Dash 非空时画虚线。
func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(w)
		ctx.SetDashes(0, ln.Dash...)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
	}
	ctx.SetDashes(0)
}

// drawRects 绘制矩形；StrokeColor 为空时只填充。
func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		if rc.FillColor != nil {
			ctx.SetFillColor(colorFromLayout(*rc.FillColor))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		if rc.StrokeColor != nil {
			w := rc.StrokeWidth
			if w <= 0 {
				w = defaultStrokeWidth
			}
			ctx.SetStrokeColor(colorFromLayout(*rc.StrokeColor))
			ctx.SetStrokeWidth(w)
		} else {
			ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		}
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
}

func (r *Renderer) fontFace(font layout.Font, sizePt float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, colorFromLayout(col), fontStyle(font), canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.Font) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.families[font]; ok {
		return family, nil
	}
	data, err := r.loadFontBytes(font)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("jukestrip-" + string(font))
	if err := family.LoadFont(data, 0, fontStyle(font)); err != nil {
		return nil, fmt.Errorf("load font %s: %w", font, err)
	}
	r.families[font] = family
	return family, nil
}

func (r *Renderer) loadFontBytes(font layout.Font) ([]byte, error) {
	if err, ok := r.fontErrs[font]; ok {
		return nil, err
	}
	if blob, ok := r.fontBlobs[font]; ok {
		return blob, nil
	}
	name, ok := builtinFonts[font]
	if !ok {
		return nil, fmt.Errorf("unknown font %q", font)
	}
	return fonts.Load(name)
}

func fontStyle(font layout.Font) canvas.FontStyle {
	if font == layout.FontBold {
		return canvas.FontBold
	}
	return canvas.FontRegular
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
