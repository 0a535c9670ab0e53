package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	listingLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	listingParser = participle.MustBuild[Listing](
		participle.Lexer(listingLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Listing is the root AST node for a jukebox listing file.
//
//	lookup "https://www.discogs.com/release/123"
//	dir "music/Blizzard of Ozz"
//	release "Abbey Road" by "The Beatles" {
//	  "A1" "Come Together"
//	  "A2" "Something"
//	}
type Listing struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Entries []*Entry       `parser:"Newline* ( @@ ( ';' | Newline )* )*"`
}

// Entry is one line-level item; exactly one field is set.
type Entry struct {
	Lookup  *LookupEntry  `parser:"  @@"`
	Dir     *DirEntry     `parser:"| @@"`
	Release *ReleaseEntry `parser:"| @@"`
}

// Kind returns the human-readable entry type.
func (e *Entry) Kind() string {
	switch {
	case e == nil:
		return "unknown"
	case e.Lookup != nil:
		return "lookup"
	case e.Dir != nil:
		return "dir"
	case e.Release != nil:
		return "release"
	default:
		return "unknown"
	}
}

// LookupEntry references a Discogs release or master page.
type LookupEntry struct {
	Pos lexer.Position `parser:"" json:"-"`
	URL StringLiteral  `parser:"'lookup' @String"`
}

// DirEntry references a directory of tagged mp3 files.
type DirEntry struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Path StringLiteral  `parser:"'dir' @String"`
}

// ReleaseEntry is a release typed in by hand.
type ReleaseEntry struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Title  StringLiteral  `parser:"'release' @String"`
	Artist StringLiteral  `parser:"'by' @String"`
	Tracks []*TrackEntry  `parser:"Newline* '{' Newline* ( @@ ( ';' | ',' | Newline )* )* '}'"`
}

// TrackEntry is a position token followed by the track title.
type TrackEntry struct {
	Position StringLiteral `parser:"@String"`
	Title    StringLiteral `parser:"@String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses listing content from an io.Reader; name is used in error positions.
func Parse(name string, r io.Reader) (*Listing, error) {
	return listingParser.Parse(name, r)
}

// ParseString parses listing content from a string.
func ParseString(input string) (*Listing, error) {
	return listingParser.ParseString("", input)
}
