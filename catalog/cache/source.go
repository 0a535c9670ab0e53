package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/ByLCY/jukestrip/catalog"
	"github.com/ByLCY/jukestrip/logging"
)

// Source is a read-through cache in front of another catalog.Source. Only
// remote kinds (release, master) are cached; local refs always go upstream.
// Cache errors are logged and never fail a lookup.
type Source struct {
	store    *Store
	upstream catalog.Source
	maxAge   time.Duration
	logger   *slog.Logger
}

var _ catalog.Source = (*Source)(nil)

// NewSource wraps upstream with store.
func NewSource(store *Store, upstream catalog.Source, maxAge time.Duration, logger *slog.Logger) *Source {
	return &Source{
		store:    store,
		upstream: upstream,
		maxAge:   maxAge,
		logger:   logging.NewComponentLogger(logger, "cache"),
	}
}

func cacheable(ref catalog.Ref) bool {
	return ref.Kind == catalog.KindRelease || ref.Kind == catalog.KindMaster
}

// Lookup implements catalog.Source.
func (s *Source) Lookup(ctx context.Context, ref catalog.Ref) (catalog.Release, error) {
	if s.store == nil || !cacheable(ref) {
		return s.upstream.Lookup(ctx, ref)
	}

	rel, ok, err := s.store.Get(ctx, ref, s.maxAge)
	switch {
	case err != nil:
		s.logger.Warn("cache read failed",
			logging.String(logging.FieldEventType, "cache_read_failed"),
			logging.String("ref", ref.String()),
			logging.Error(err))
	case ok:
		s.logger.Debug("cache hit",
			logging.String(logging.FieldEventType, "cache_hit"),
			logging.String("ref", ref.String()))
		return rel, nil
	}

	rel, err = s.upstream.Lookup(ctx, ref)
	if err != nil {
		return catalog.Release{}, err
	}
	if err := s.store.Put(ctx, ref, rel); err != nil {
		s.logger.Warn("cache write failed",
			logging.String(logging.FieldEventType, "cache_write_failed"),
			logging.String("ref", ref.String()),
			logging.Error(err))
	}
	return rel, nil
}
