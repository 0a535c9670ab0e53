package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ByLCY/jukestrip/catalog"
	"github.com/ByLCY/jukestrip/catalog/cache"
	"github.com/ByLCY/jukestrip/catalog/discogs"
	"github.com/ByLCY/jukestrip/config"
	"github.com/ByLCY/jukestrip/dsl"
	"github.com/ByLCY/jukestrip/labels"
	"github.com/ByLCY/jukestrip/layout"
	"github.com/ByLCY/jukestrip/logging"
	canvasrenderer "github.com/ByLCY/jukestrip/renderer/canvas"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.flags != nil {
			path = strings.TrimSpace(c.flags.config)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if c.flags != nil {
			if v := strings.TrimSpace(c.flags.logLevel); v != "" {
				cfg.Logging.Level = v
			}
			if v := strings.TrimSpace(c.flags.logFormat); v != "" {
				cfg.Logging.Format = v
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger 写到命令的 stderr，stdout 留给命令输出。
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	var out io.Writer = cmd.ErrOrStderr()
	return logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: out})
}

func (c *commandContext) newEngine() *canvasrenderer.Renderer {
	cfg, _ := c.ensureConfig()
	opts := canvasrenderer.Options{Fonts: map[layout.Font]canvasrenderer.Resource{}}
	if cfg != nil {
		if cfg.Fonts.Regular != "" {
			opts.Fonts[layout.FontRegular] = canvasrenderer.Resource{Path: cfg.Fonts.Regular}
		}
		if cfg.Fonts.Bold != "" {
			opts.Fonts[layout.FontBold] = canvasrenderer.Resource{Path: cfg.Fonts.Bold}
		}
	}
	return canvasrenderer.NewRendererWithOptions(opts)
}

// sourceSet 是一次命令使用的目录来源；close 释放缓存数据库。
type sourceSet struct {
	source catalog.Source
	close  func() error
}

// newSource 组装 Discogs（可选 SQLite 缓存）、ID3 目录与清单内联来源。
// 只有请求里存在远程引用时才打开缓存。
func (c *commandContext) newSource(refs []catalog.Ref, inline *dsl.Inline, logger *slog.Logger) (*sourceSet, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := discogs.New(discogs.Config{
		Token:      cfg.Discogs.Token,
		UserAgent:  cfg.Discogs.UserAgent,
		BaseURL:    cfg.Discogs.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.DiscogsTimeout()},
	})
	if err != nil {
		return nil, err
	}

	set := &sourceSet{close: func() error { return nil }}
	var remote catalog.Source = client
	if cfg.Cache.Enabled && hasRemote(refs) {
		store, err := cache.Open(cfg.Cache.Path)
		if err != nil {
			logger.Warn("cache unavailable, continuing without it",
				logging.String(logging.FieldEventType, "cache_open_failed"),
				logging.String("path", cfg.Cache.Path),
				logging.Error(err))
		} else {
			remote = cache.NewSource(store, client, cfg.CacheMaxAge(), logger)
			set.close = store.Close
		}
	}

	var inlineSource catalog.Source
	if inline != nil && inline.Len() > 0 {
		inlineSource = inline
	}
	set.source = labels.NewRouter(remote, inlineSource)
	return set, nil
}

func (c *commandContext) newGenerator(set *sourceSet, logger *slog.Logger) (*labels.Generator, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return labels.New(set.source, c.newEngine(),
		labels.WithConcurrency(cfg.Catalog.Concurrency),
		labels.WithLogger(logger))
}

func hasRemote(refs []catalog.Ref) bool {
	for _, ref := range refs {
		if ref.Kind == catalog.KindRelease || ref.Kind == catalog.KindMaster {
			return true
		}
	}
	return false
}

// inputFlags 是 render 与 tracks 共用的输入来源。
type inputFlags struct {
	listings []string
	dirs     []string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.listings, "listing", "l", nil, "Listing file (*.jukebox); repeatable")
	cmd.Flags().StringArrayVarP(&f.dirs, "dir", "d", nil, "Directory of tagged MP3 files; repeatable")
}

// collectRefs 依次合并 URL 参数、清单文件与目录，保持出现顺序。
func (f *inputFlags) collectRefs(args []string) ([]catalog.Ref, *dsl.Inline, error) {
	var refs []catalog.Ref
	for _, arg := range args {
		ref, err := catalog.ParseIdentifier(arg)
		if err != nil {
			return nil, nil, err
		}
		refs = append(refs, ref)
	}

	var inline *dsl.Inline
	for _, path := range f.listings {
		listed, in, err := dsl.LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		if inline != nil && in.Len() > 0 {
			return nil, nil, fmt.Errorf("only one listing may contain inline releases: %s", path)
		}
		if in.Len() > 0 {
			inline = in
		}
		refs = append(refs, listed...)
	}

	for _, dir := range f.dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve directory: %w", err)
		}
		refs = append(refs, catalog.Ref{Kind: catalog.KindDir, Path: abs})
	}

	if len(refs) == 0 {
		return nil, nil, errors.New("nothing to render: pass Discogs URLs, --listing or --dir")
	}
	return refs, inline, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
