package id3

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/jukestrip/catalog"
)

type fixture struct {
	file, album, artist, title, tpos, trck string
}

func writeTagged(t *testing.T, dir string, f fixture) {
	t.Helper()
	path := filepath.Join(dir, f.file)
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))

	tag, err := id3v2.Open(path, id3v2.Options{Parse: false})
	require.NoError(t, err)
	defer tag.Close()
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if f.album != "" {
		tag.SetAlbum(f.album)
	}
	if f.artist != "" {
		tag.SetArtist(f.artist)
	}
	if f.title != "" {
		tag.SetTitle(f.title)
	}
	if f.tpos != "" {
		tag.AddTextFrame("TPOS", id3v2.EncodingUTF8, f.tpos)
	}
	if f.trck != "" {
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, f.trck)
	}
	require.NoError(t, tag.Save())
}

func TestLookupReadsDirectoryInNameOrder(t *testing.T) {
	dir := t.TempDir()
	writeTagged(t, dir, fixture{file: "02.mp3", album: "Paranoid", artist: "Black Sabbath", title: "Paranoid", tpos: "1/1", trck: "2/8"})
	writeTagged(t, dir, fixture{file: "01.mp3", album: "Paranoid", artist: "Black Sabbath", title: "War Pigs", tpos: "1/1", trck: "1/8"})
	writeTagged(t, dir, fixture{file: "10 Fairies Wear Boots.MP3", trck: "10"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("jpeg"), 0o644))

	ref := catalog.Ref{Kind: catalog.KindDir, Path: dir}
	rel, err := Source{}.Lookup(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, ref, rel.Ref)
	assert.Equal(t, "Paranoid", rel.Title)
	assert.Equal(t, "Black Sabbath", rel.Artist)
	assert.Equal(t, []catalog.RawTrack{
		{Position: "1-1", Title: "War Pigs"},
		{Position: "1-2", Title: "Paranoid"},
		{Position: "10", Title: "10 Fairies Wear Boots"},
	}, rel.Tracks)

	discs := catalog.BuildDiscs(rel)
	require.Len(t, discs, 1)
	var numbers []int
	for _, tr := range discs[0].Tracks {
		numbers = append(numbers, tr.TrackNumber)
	}
	assert.Equal(t, []int{1, 2, 10}, numbers)
}

func TestLookupFallsBackToDirectoryName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Untagged Rips")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeTagged(t, dir, fixture{file: "a.mp3", trck: "1"})

	rel, err := Source{}.Lookup(context.Background(), catalog.Ref{Kind: catalog.KindDir, Path: dir})
	require.NoError(t, err)
	assert.Equal(t, "Untagged Rips", rel.Title)
	assert.Empty(t, rel.Artist)
}

func TestLookupErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Source{}.Lookup(ctx, catalog.Ref{Kind: catalog.KindRelease, ID: 1})
	assert.True(t, errors.Is(err, catalog.ErrInvalidIdentifier))

	_, err = Source{}.Lookup(ctx, catalog.Ref{Kind: catalog.KindDir, Path: filepath.Join(t.TempDir(), "missing")})
	assert.True(t, errors.Is(err, catalog.ErrCatalogLookup))

	_, err = Source{}.Lookup(ctx, catalog.Ref{Kind: catalog.KindDir, Path: t.TempDir()})
	assert.True(t, errors.Is(err, catalog.ErrCatalogLookup))
}

func TestPositionToken(t *testing.T) {
	cases := []struct{ tpos, trck, want string }{
		{"1/2", "3/12", "1-3"},
		{"", "7", "7"},
		{"2", "", ""},
		{" 2 / 2 ", " 05 ", "2-05"},
		{"", "", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PositionToken(c.tpos, c.trck), "%q %q", c.tpos, c.trck)
	}
}
