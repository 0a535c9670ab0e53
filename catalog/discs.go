package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// BuildDiscs parses every row of the release, drops heading rows and groups
// the remaining tracks into discs. Tracks are ordered by overall sequence and
// discs by disc number. The lettered-side accumulator starts empty for every
// release.
func BuildDiscs(rel Release) []Disc {
	title := NormalizeText(rel.Title)
	artist := NormalizeText(rel.Artist)

	byDisc := map[int]*Disc{}
	var letters Letters
	for _, raw := range rel.Tracks {
		var pos Position
		pos, letters = ParsePosition(strings.TrimSpace(raw.Position), letters)
		if pos.Skip() {
			continue
		}
		disc, ok := byDisc[pos.Disc]
		if !ok {
			disc = &Disc{AlbumTitle: title, ArtistName: artist, DiscNumber: pos.Disc}
			byDisc[pos.Disc] = disc
		}
		disc.Tracks = append(disc.Tracks, Track{
			Position:        raw.Position,
			Title:           NormalizeText(raw.Title),
			DiscNumber:      pos.Disc,
			TrackNumber:     pos.Track,
			OverallSequence: pos.Overall,
		})
	}

	discs := make([]Disc, 0, len(byDisc))
	for _, disc := range byDisc {
		sort.SliceStable(disc.Tracks, func(i, j int) bool {
			return disc.Tracks[i].OverallSequence < disc.Tracks[j].OverallSequence
		})
		discs = append(discs, *disc)
	}
	sort.Slice(discs, func(i, j int) bool { return discs[i].DiscNumber < discs[j].DiscNumber })
	return discs
}

// NormalizeText composes the string to NFC and collapses runs of whitespace.
// Catalog data mixes decomposed accents and stray double spaces, both of
// which change measured widths.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
