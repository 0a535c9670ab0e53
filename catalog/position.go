package catalog

import (
	"strconv"
	"strings"
	"unicode"
)

// discSlot reserves this many overall-sequence slots per disc for "d-t"
// positions. Discs with more than 99 tracks would overlap the next disc.
const discSlot = 100

// Position is the ordering key parsed from a raw position token.
type Position struct {
	Disc    int
	Track   int
	Overall int
}

// Skip reports whether the row carries no usable track number and must be
// left out of the rendered listing (e.g. "Bonus Tracks" headings).
func (p Position) Skip() bool { return p.Track == 0 && p.Overall == 0 }

// Letters accumulates the side counters for lettered vinyl positions
// ("A1", "B2"). All letters share one continuous numbering. The zero value
// is ready to use and values are never modified in place.
type Letters struct {
	counters map[rune]int
}

// Count returns the current counter of a side letter.
func (l Letters) Count(letter rune) int { return l.counters[unicode.ToUpper(letter)] }

func (l Letters) max() int {
	m := 0
	for _, v := range l.counters {
		if v > m {
			m = v
		}
	}
	return m
}

// next bumps the counter for letter and returns the new value together with
// the updated accumulator.
func (l Letters) next(letter rune) (int, Letters) {
	counters := make(map[rune]int, len(l.counters)+1)
	for k, v := range l.counters {
		counters[k] = v
	}
	value, seen := counters[letter]
	if seen {
		value++
	} else {
		value = l.max() + 1
	}
	counters[letter] = value
	return value, Letters{counters: counters}
}

// ParsePosition converts a raw tracklist position into disc, track and
// overall sequence numbers. The lettered form depends on the previous rows of
// the same disc, so callers thread the returned Letters into the next call.
//
// Recognised forms, first match wins:
//
//	"2-05"  disc 2, track 5, overall 105
//	"B3"    lettered side, continuous numbering, always disc 1
//	"CD1.7" digits only → disc 1, track 17
//	"Bonus" no digits → (1, 0, 0), to be skipped
//
// A digit run too long for int counts as no digits, so such a row also
// comes back as (1, 0, 0) and is skipped.
func ParsePosition(raw string, letters Letters) (Position, Letters) {
	if disc, track, ok := parseDiscTrack(raw); ok {
		return Position{Disc: disc, Track: track, Overall: (disc-1)*discSlot + track}, letters
	}

	if first, ok := firstRune(raw); ok && unicode.IsLetter(first) {
		value, next := letters.next(unicode.ToUpper(first))
		return Position{Disc: 1, Track: value, Overall: value}, next
	}

	if n, ok := digitsOnly(raw); ok {
		return Position{Disc: 1, Track: n, Overall: n}, letters
	}
	return Position{Disc: 1}, letters
}

func parseDiscTrack(raw string) (int, int, bool) {
	left, right, found := strings.Cut(raw, "-")
	if !found {
		return 0, 0, false
	}
	disc, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, false
	}
	track, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, false
	}
	return disc, track, true
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// digitsOnly joins every ASCII digit of raw. It reports false when there are
// none or when the joined number overflows int.
func digitsOnly(raw string) (int, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
