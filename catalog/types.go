package catalog

import "fmt"

// Kind identifies what a Ref points at.
type Kind string

const (
	KindRelease Kind = "release"
	KindMaster  Kind = "master"
	KindDir     Kind = "dir"
	KindListing Kind = "listing"
)

// Ref is a reference to one catalog item. Discogs identifiers use ID,
// local sources use Path.
type Ref struct {
	Kind Kind   `json:"kind"`
	ID   int64  `json:"id,omitempty"`
	Path string `json:"path,omitempty"`
}

func (r Ref) String() string {
	if r.Path != "" {
		return fmt.Sprintf("%s:%s", r.Kind, r.Path)
	}
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// RawTrack is one tracklist row as delivered by a source. Position is kept
// verbatim; it may be a heading row without any track number.
type RawTrack struct {
	Position string `json:"position"`
	Title    string `json:"title"`
}

// Release is the raw catalog record for one lookup.
type Release struct {
	Ref    Ref        `json:"ref"`
	Title  string     `json:"title"`
	Artist string     `json:"artist"`
	Tracks []RawTrack `json:"tracks"`
}

// Track is a parsed tracklist row.
type Track struct {
	Position        string `json:"position"`
	Title           string `json:"title"`
	DiscNumber      int    `json:"discNumber"`
	TrackNumber     int    `json:"trackNumber"`
	OverallSequence int    `json:"overallSequence"`
}

// Disc groups the tracks of one physical disc, sorted by OverallSequence.
type Disc struct {
	AlbumTitle string  `json:"albumTitle"`
	ArtistName string  `json:"artistName"`
	DiscNumber int     `json:"discNumber"`
	Tracks     []Track `json:"tracks"`
}
