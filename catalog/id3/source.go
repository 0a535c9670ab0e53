// Package id3 builds releases from a directory of ID3-tagged mp3 files.
package id3

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/ByLCY/jukestrip/catalog"
)

// Source implements catalog.Source for catalog.KindDir refs.
type Source struct{}

var _ catalog.Source = Source{}

// Lookup reads every *.mp3 in ref.Path in file name order. The position
// token is "TPOS-TRCK" when both frames are present, TRCK alone otherwise.
func (Source) Lookup(ctx context.Context, ref catalog.Ref) (catalog.Release, error) {
	if ref.Kind != catalog.KindDir || strings.TrimSpace(ref.Path) == "" {
		return catalog.Release{}, catalog.Wrap(catalog.ErrInvalidIdentifier, "id3", "lookup", "expected a directory ref", nil)
	}
	entries, err := os.ReadDir(ref.Path)
	if err != nil {
		return catalog.Release{}, catalog.Wrap(catalog.ErrCatalogLookup, "id3", "read dir", ref.Path, err)
	}

	rel := catalog.Release{Ref: ref}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return catalog.Release{}, err
		}
		path := filepath.Join(ref.Path, entry.Name())
		row, album, artist, err := readTrack(path)
		if err != nil {
			return catalog.Release{}, catalog.Wrap(catalog.ErrCatalogLookup, "id3", "read tags", entry.Name(), err)
		}
		if rel.Title == "" {
			rel.Title = album
		}
		if rel.Artist == "" {
			rel.Artist = artist
		}
		rel.Tracks = append(rel.Tracks, row)
	}
	if len(rel.Tracks) == 0 {
		return catalog.Release{}, catalog.Wrap(catalog.ErrCatalogLookup, "id3", "lookup", "no mp3 files in "+ref.Path, nil)
	}
	if rel.Title == "" {
		rel.Title = filepath.Base(ref.Path)
	}
	return rel, nil
}

func readTrack(path string) (catalog.RawTrack, string, string, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return catalog.RawTrack{}, "", "", err
	}
	defer tag.Close()

	title := strings.TrimSpace(tag.Title())
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	row := catalog.RawTrack{
		Position: PositionToken(tag.GetTextFrame("TPOS").Text, tag.GetTextFrame("TRCK").Text),
		Title:    title,
	}
	return row, strings.TrimSpace(tag.Album()), strings.TrimSpace(tag.Artist()), nil
}

// PositionToken joins the set and track frames into a token the position
// parser understands: ("1/2", "3/12") → "1-3", ("", "7") → "7".
func PositionToken(tpos, trck string) string {
	track := leadingNumber(trck)
	if track == "" {
		return ""
	}
	if disc := leadingNumber(tpos); disc != "" {
		return disc + "-" + track
	}
	return track
}

func leadingNumber(frame string) string {
	head, _, _ := strings.Cut(strings.TrimSpace(frame), "/")
	return strings.TrimSpace(head)
}
