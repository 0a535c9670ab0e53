package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackNumbers(d Disc) []int {
	out := make([]int, 0, len(d.Tracks))
	for _, t := range d.Tracks {
		out = append(out, t.TrackNumber)
	}
	return out
}

func TestBuildDiscsNumericOrder(t *testing.T) {
	rel := Release{
		Title:  "Blizzard Of Ozz",
		Artist: "Ozzy Osbourne",
		Tracks: []RawTrack{
			{Position: "1-10", Title: "Ten"},
			{Position: "1-1", Title: "One"},
			{Position: "1-2", Title: "Two"},
		},
	}
	discs := BuildDiscs(rel)
	require.Len(t, discs, 1)
	assert.Equal(t, []int{1, 2, 10}, trackNumbers(discs[0]))
	assert.Equal(t, "1-10", discs[0].Tracks[2].Position)
}

func TestBuildDiscsGroupsAndSortsDiscs(t *testing.T) {
	rel := Release{
		Title:  "Live",
		Artist: "Band (3)",
		Tracks: []RawTrack{
			{Position: "2-1", Title: "Second disc opener"},
			{Position: "", Title: "Bonus Tracks"},
			{Position: "1-2", Title: "B"},
			{Position: "1-1", Title: "A"},
			{Position: "2-2", Title: "Second disc closer"},
		},
	}
	discs := BuildDiscs(rel)
	require.Len(t, discs, 2)
	assert.Equal(t, 1, discs[0].DiscNumber)
	assert.Equal(t, 2, discs[1].DiscNumber)
	assert.Equal(t, []int{1, 2}, trackNumbers(discs[0]))
	assert.Equal(t, []int{1, 2}, trackNumbers(discs[1]))
	assert.Equal(t, "Band (3)", discs[1].ArtistName)
	assert.Equal(t, 101, discs[1].Tracks[0].OverallSequence)
}

func TestBuildDiscsVinylSides(t *testing.T) {
	rel := Release{
		Title:  "LP",
		Artist: "Artist",
		Tracks: []RawTrack{
			{Position: "A1", Title: "a1"},
			{Position: "A2", Title: "a2"},
			{Position: "B1", Title: "b1"},
			{Position: "B2", Title: "b2"},
		},
	}
	discs := BuildDiscs(rel)
	require.Len(t, discs, 1)
	assert.Equal(t, []int{1, 2, 3, 4}, trackNumbers(discs[0]))
	assert.Equal(t, "b2", discs[0].Tracks[3].Title)
}

func TestBuildDiscsLetterCountersResetPerRelease(t *testing.T) {
	lp := func(title string) Release {
		return Release{Title: title, Artist: "Artist", Tracks: []RawTrack{
			{Position: "A1", Title: title + " a1"},
			{Position: "A2", Title: title + " a2"},
			{Position: "B1", Title: title + " b1"},
		}}
	}
	first := BuildDiscs(lp("First"))
	second := BuildDiscs(lp("Second"))
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, []int{1, 2, 3}, trackNumbers(first[0]))
	assert.Equal(t, []int{1, 2, 3}, trackNumbers(second[0]))
	assert.Equal(t, 1, second[0].Tracks[0].OverallSequence)
	assert.Equal(t, "Second b1", second[0].Tracks[2].Title)
}

func TestBuildDiscsSkipsHeadingOnlyRelease(t *testing.T) {
	discs := BuildDiscs(Release{Title: "x", Tracks: []RawTrack{{Position: "", Title: "Heading"}}})
	assert.Empty(t, discs)
}

func TestBuildDiscsStableForEqualSequence(t *testing.T) {
	rel := Release{Tracks: []RawTrack{
		{Position: "3", Title: "first"},
		{Position: "03", Title: "second"},
	}}
	discs := BuildDiscs(rel)
	require.Len(t, discs, 1)
	assert.Equal(t, "first", discs[0].Tracks[0].Title)
	assert.Equal(t, "second", discs[0].Tracks[1].Title)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Mot\u00f6rhead", NormalizeText("Moto\u0308rhead"))
	assert.Equal(t, "Crazy Train", NormalizeText("  Crazy \t Train "))
}
