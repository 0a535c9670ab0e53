package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/jukestrip/logging"
)

// Source resolves one reference into a raw release.
type Source interface {
	Lookup(ctx context.Context, ref Ref) (Release, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, ref Ref) (Release, error)

func (f SourceFunc) Lookup(ctx context.Context, ref Ref) (Release, error) { return f(ctx, ref) }

// Router dispatches lookups to the source registered for the ref kind.
type Router map[Kind]Source

func (r Router) Lookup(ctx context.Context, ref Ref) (Release, error) {
	src, ok := r[ref.Kind]
	if !ok || src == nil {
		return Release{}, Wrap(ErrInvalidIdentifier, "router", "lookup", fmt.Sprintf("no source for kind %q", ref.Kind), nil)
	}
	return src.Lookup(ctx, ref)
}

// Warning records an item that was left out of the render set.
type Warning struct {
	Ref     Ref    `json:"ref"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (w Warning) String() string {
	if Retryable(w.Err) {
		return fmt.Sprintf("%s: %s (temporary, try again later)", w.Ref, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Ref, w.Message)
}

// Collect looks up every ref, at most limit at a time, and returns the
// successful releases in request order. Failed items become warnings; the
// call only fails when nothing could be fetched.
func Collect(ctx context.Context, src Source, refs []Ref, limit int, logger *slog.Logger) ([]Release, []Warning, error) {
	logger = logging.NewComponentLogger(logger, "catalog")
	if len(refs) == 0 {
		return nil, nil, nil
	}
	if src == nil {
		return nil, nil, Wrap(ErrCatalogLookup, "collect", "", "no catalog source configured", nil)
	}
	if limit <= 0 {
		limit = 1
	}

	releases := make([]Release, len(refs))
	failures := make([]error, len(refs))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, ref := range refs {
		g.Go(func() error {
			rel, err := src.Lookup(ctx, ref)
			if err != nil {
				failures[i] = err
				return nil
			}
			if rel.Ref.Kind == "" {
				rel.Ref = ref
			}
			releases[i] = rel
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var (
		ok       []Release
		warnings []Warning
	)
	for i, ref := range refs {
		if failures[i] != nil {
			warnings = append(warnings, Warning{Ref: ref, Message: failures[i].Error(), Err: failures[i]})
			logger.Warn("catalog item skipped",
				logging.String(logging.FieldEventType, "catalog_item_failed"),
				logging.String("ref", ref.String()),
				logging.Bool("retryable", Retryable(failures[i])),
				logging.Error(failures[i]))
			continue
		}
		ok = append(ok, releases[i])
	}
	if len(ok) == 0 {
		return nil, warnings, Wrap(ErrNoRenderableData, "collect", "", fmt.Sprintf("all %d catalog items failed", len(refs)), failures[0])
	}
	logger.Debug("catalog items collected",
		logging.Int("requested", len(refs)),
		logging.Int("fetched", len(ok)))
	return ok, warnings, nil
}
