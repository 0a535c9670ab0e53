// Package labels 串联目录查询、分碟、布局与渲染，生成标签条 PDF。
package labels

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/jukestrip/binding"
	"github.com/ByLCY/jukestrip/catalog"
	"github.com/ByLCY/jukestrip/catalog/id3"
	"github.com/ByLCY/jukestrip/layout"
	"github.com/ByLCY/jukestrip/logging"
	"github.com/ByLCY/jukestrip/renderer"
)

// DefaultOutputPath 是未指定输出时的文件名。
const DefaultOutputPath = "jukebox_labels.pdf"

// Generator 持有目录来源与渲染引擎，可重复调用。
type Generator struct {
	source      catalog.Source
	engine      renderer.Engine
	concurrency int
	logger      *slog.Logger
}

// Option 调整 Generator 的可选参数。
type Option func(*Generator)

// WithConcurrency 限制并发查询数。
func WithConcurrency(n int) Option {
	return func(g *Generator) { g.concurrency = n }
}

// WithLogger 设置日志输出。
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// New 创建 Generator；source 与 engine 均不能为空。
func New(source catalog.Source, engine renderer.Engine, opts ...Option) (*Generator, error) {
	if source == nil {
		return nil, errors.New("labels: catalog source is required")
	}
	if engine == nil {
		return nil, errors.New("labels: renderer is required")
	}
	g := &Generator{source: source, engine: engine, concurrency: 1}
	for _, opt := range opts {
		opt(g)
	}
	if g.concurrency < 1 {
		g.concurrency = 1
	}
	g.logger = logging.NewComponentLogger(g.logger, "labels")
	return g, nil
}

// NewRouter 按引用类型分发：远程目录处理 release/master，
// 本地目录读 ID3 标签，清单文件内联条目由 inline 提供。
func NewRouter(remote catalog.Source, inline catalog.Source) catalog.Router {
	router := catalog.Router{catalog.KindDir: id3.Source{}}
	if remote != nil {
		router[catalog.KindRelease] = remote
		router[catalog.KindMaster] = remote
	}
	if inline != nil {
		router[catalog.KindListing] = inline
	}
	return router
}

// Request 描述一次生成。
type Request struct {
	Refs    []catalog.Ref
	Options layout.Options
}

// Result 保存生成结果；PDF 为完整文件内容。
type Result struct {
	PDF             []byte
	Layout          *layout.Result
	Discs           []catalog.Disc
	CatalogWarnings []catalog.Warning
	Options         layout.Options
}

// Warnings 汇总目录与布局阶段的提示，按发生顺序。
func (r *Result) Warnings() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.CatalogWarnings))
	for _, w := range r.CatalogWarnings {
		out = append(out, w.String())
	}
	if r.Layout != nil {
		for _, w := range r.Layout.Warnings {
			out = append(out, fmt.Sprintf("%s: %s", w.Album, w.Message))
		}
	}
	return out
}

// Fields 返回输出路径模板可用的字段，只取实际排入页面的唱片，
// 文本与标签条上打印的一致。
func (r *Result) Fields() binding.Fields {
	if r == nil || r.Layout == nil {
		return binding.NewFields(nil, nil, 0)
	}
	placed := r.Discs
	if len(placed) > layout.StripsPerPage {
		placed = placed[:layout.StripsPerPage]
	}
	albums := make([]string, 0, len(placed))
	artists := make([]string, 0, len(placed))
	for _, d := range placed {
		albums = append(albums, layout.AlbumLabel(d.AlbumTitle, r.Options))
		artists = append(artists, layout.ArtistLabel(d.ArtistName))
	}
	return binding.NewFields(albums, artists, len(placed))
}

// Discs 查询全部引用并拆成唱片，保持请求顺序。
func (g *Generator) Discs(ctx context.Context, refs []catalog.Ref) ([]catalog.Disc, []catalog.Warning, error) {
	if len(refs) == 0 {
		return nil, nil, catalog.Wrap(catalog.ErrNoRenderableData, "labels", "collect", "no catalog items requested", nil)
	}
	releases, warnings, err := catalog.Collect(ctx, g.source, refs, g.concurrency, g.logger)
	if err != nil {
		return nil, warnings, err
	}

	var discs []catalog.Disc
	for _, rel := range releases {
		built := catalog.BuildDiscs(rel)
		if len(built) == 0 {
			warnings = append(warnings, catalog.Warning{Ref: rel.Ref, Message: fmt.Sprintf("%q has no numbered tracks", rel.Title)})
			g.logger.Warn("release skipped",
				logging.String(logging.FieldEventType, "release_without_tracks"),
				logging.String("ref", rel.Ref.String()),
				logging.String("album", rel.Title))
			continue
		}
		discs = append(discs, built...)
	}
	if len(discs) == 0 {
		return nil, warnings, catalog.Wrap(catalog.ErrNoRenderableData, "labels", "discs", "no disc has renderable tracks", nil)
	}
	return discs, warnings, nil
}

// Generate 执行完整流程。布局或渲染失败时不返回任何部分结果。
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	discs, warnings, err := g.Discs(ctx, req.Refs)
	if err != nil {
		return nil, err
	}
	return g.Render(discs, warnings, req.Options)
}

// Render 对已拆好的唱片做布局与渲染。
func (g *Generator) Render(discs []catalog.Disc, warnings []catalog.Warning, opts layout.Options) (*Result, error) {
	res, err := layout.Build(discs, layout.BuildOptions{
		Typesetter: g.engine,
		Options:    opts,
		Logger:     g.logger,
	})
	if err != nil {
		return nil, catalog.Wrap(catalog.ErrLayoutGeneration, "labels", "layout", "", err)
	}
	pdfBytes, err := g.engine.Render(res)
	if err != nil {
		return nil, catalog.Wrap(catalog.ErrLayoutGeneration, "labels", "render", "", err)
	}
	g.logger.Info("labels rendered",
		logging.String(logging.FieldEventType, "labels_rendered"),
		logging.Int("discs", len(discs)),
		logging.Int("strips", countStrips(res)),
		logging.Int("bytes", len(pdfBytes)))
	return &Result{PDF: pdfBytes, Layout: res, Discs: discs, CatalogWarnings: warnings, Options: opts}, nil
}

// WriteFile 把 PDF 写到 template 展开后的路径并返回实际路径。
// 先写临时文件再改名，失败时不留下半个 PDF。
func (r *Result) WriteFile(template string) (string, error) {
	if r == nil || len(r.PDF) == 0 {
		return "", errors.New("labels: no pdf to write")
	}
	if strings.TrimSpace(template) == "" {
		template = DefaultOutputPath
	}
	path := binding.OutputPath(template, r.Fields(), "jukebox_labels")
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jukestrip-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(r.PDF); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write pdf file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("write pdf file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("write pdf file: %w", err)
	}
	return path, nil
}

func countStrips(res *layout.Result) int {
	n := 0
	for _, p := range res.Pages {
		n += len(p.Strips)
	}
	return n
}
