package dsl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/jukestrip/catalog"
)

// Inline serves releases written directly in a listing file. It answers
// refs of kind catalog.KindListing produced by Resolve.
type Inline struct {
	releases map[int64]catalog.Release
}

var _ catalog.Source = (*Inline)(nil)

// Lookup implements catalog.Source.
func (in *Inline) Lookup(_ context.Context, ref catalog.Ref) (catalog.Release, error) {
	if ref.Kind != catalog.KindListing {
		return catalog.Release{}, catalog.Wrap(catalog.ErrInvalidIdentifier, "listing", "lookup", "unexpected kind "+string(ref.Kind), nil)
	}
	rel, ok := in.releases[ref.ID]
	if !ok {
		return catalog.Release{}, catalog.Wrap(catalog.ErrCatalogLookup, "listing", "lookup", fmt.Sprintf("no entry #%d", ref.ID), nil)
	}
	return rel, nil
}

// Len reports how many inline releases the listing holds.
func (in *Inline) Len() int { return len(in.releases) }

// Resolve turns the listing into catalog refs in file order. Relative dir
// paths are resolved against baseDir; name labels inline refs.
func (l *Listing) Resolve(name, baseDir string) ([]catalog.Ref, *Inline, error) {
	inline := &Inline{releases: map[int64]catalog.Release{}}
	if l == nil {
		return nil, inline, nil
	}
	refs := make([]catalog.Ref, 0, len(l.Entries))
	for i, entry := range l.Entries {
		switch entry.Kind() {
		case "lookup":
			ref, err := catalog.ParseIdentifier(string(entry.Lookup.URL))
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", entry.Lookup.Pos, err)
			}
			refs = append(refs, ref)
		case "dir":
			path := strings.TrimSpace(string(entry.Dir.Path))
			if path == "" {
				return nil, nil, fmt.Errorf("%s: %w", entry.Dir.Pos,
					catalog.Wrap(catalog.ErrInvalidIdentifier, "listing", "dir", "empty path", nil))
			}
			if !filepath.IsAbs(path) && baseDir != "" {
				path = filepath.Join(baseDir, path)
			}
			refs = append(refs, catalog.Ref{Kind: catalog.KindDir, Path: filepath.Clean(path)})
		case "release":
			id := int64(i + 1)
			ref := catalog.Ref{Kind: catalog.KindListing, ID: id, Path: fmt.Sprintf("%s#%d", name, id)}
			inline.releases[id] = entry.Release.release(ref)
			refs = append(refs, ref)
		default:
			return nil, nil, catalog.Wrap(catalog.ErrInvalidIdentifier, "listing", "resolve",
				fmt.Sprintf("entry %d: %s entry", i+1, entry.Kind()), nil)
		}
	}
	return refs, inline, nil
}

func (r *ReleaseEntry) release(ref catalog.Ref) catalog.Release {
	rel := catalog.Release{
		Ref:    ref,
		Title:  string(r.Title),
		Artist: string(r.Artist),
	}
	for _, tr := range r.Tracks {
		rel.Tracks = append(rel.Tracks, catalog.RawTrack{Position: string(tr.Position), Title: string(tr.Title)})
	}
	return rel
}

// LoadFile parses the listing at path and resolves it relative to its directory.
func LoadFile(path string) ([]catalog.Ref, *Inline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open listing: %w", err)
	}
	defer f.Close()

	listing, err := Parse(path, f)
	if err != nil {
		return nil, nil, fmt.Errorf("parse listing: %w", err)
	}
	return listing.Resolve(filepath.Base(path), filepath.Dir(path))
}
