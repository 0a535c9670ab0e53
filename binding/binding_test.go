package binding

import (
	"path/filepath"
	"testing"
)

func TestInterpolate(t *testing.T) {
	f := NewFields([]string{"Paranoid", "Abbey Road"}, []string{"Black Sabbath", "The Beatles"}, 2)
	cases := map[string]string{
		"${album} - ${artist}":     "Paranoid - Black Sabbath",
		"${albums[1]}":             "Abbey Road",
		"${discs} discs":           "2 discs",
		"${missing}":               "${missing}",
		"${albums[9]}":             "${albums[9]}",
		"${ artists[1] } live":     "The Beatles live",
		"no placeholders":          "no placeholders",
		"${album.title}":           "${album.title}",
		"${albums[x]}":             "${albums[x]}",
		"${}":                      "${}",
		"${artist}/${albums[0]}":   "Black Sabbath/Paranoid",
		"${discs}${discs}${discs}": "222",
	}
	for in, want := range cases {
		if got := Interpolate(in, f); got != want {
			t.Fatalf("Interpolate(%q) = %q, want %q", in, got, want)
		}
	}
	if got := Interpolate("${album}", nil); got != "${album}" {
		t.Fatalf("nil data should keep placeholders, got %q", got)
	}
}

func TestOutputPath(t *testing.T) {
	f := NewFields([]string{"AC/DC: Live"}, []string{"AC/DC"}, 1)
	cases := []struct {
		template string
		want     string
	}{
		{"${album}.pdf", "AC_DC_ Live.pdf"},
		{"out/${artist} (${discs}).pdf", filepath.Join("out", "AC_DC (1).pdf")},
		{"${unknown}.pdf", "jukebox_labels.pdf"},
		{"", "jukebox_labels"},
		{"labels.pdf", "labels.pdf"},
	}
	for _, c := range cases {
		if got := OutputPath(c.template, f, "jukebox_labels"); got != c.want {
			t.Fatalf("OutputPath(%q) = %q, want %q", c.template, got, c.want)
		}
	}
}

func TestOutputPathWithoutAlbums(t *testing.T) {
	f := NewFields(nil, nil, 0)
	if got := OutputPath("${album}.pdf", f, "labels"); got != "labels.pdf" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := SanitizeFileName("  What?  Where*  "); got != "What_ Where_" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
}
