package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

var discogsURLPattern = regexp.MustCompile(`discogs\.com/(?:[a-z]{2}/)?(release|master)/(\d+)`)

// ParseIdentifier extracts the identifier kind and numeric ID from a Discogs
// release or master URL, e.g. https://www.discogs.com/master/41155-Blizzard-Of-Ozz.
func ParseIdentifier(url string) (Ref, error) {
	match := discogsURLPattern.FindStringSubmatch(strings.TrimSpace(url))
	if match == nil {
		return Ref{}, Wrap(ErrInvalidIdentifier, "identifier", "parse", "expected a discogs release or master url: "+url, nil)
	}
	id, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return Ref{}, Wrap(ErrInvalidIdentifier, "identifier", "parse", match[2], err)
	}
	return Ref{Kind: Kind(match[1]), ID: id}, nil
}
