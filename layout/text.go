package layout

import (
	"fmt"
	"regexp"
	"strings"
)

var bracketPattern = regexp.MustCompile(`\([^)]*\)`)

// StripBrackets 去掉所有 (...) 片段并合并多余空白，例如
// "Ozzy Osbourne (Remastered)" → "Ozzy Osbourne"。
func StripBrackets(s string) string {
	return strings.Join(strings.Fields(bracketPattern.ReplaceAllString(s, "")), " ")
}

// ArtistLabel 去掉目录服务为同名艺人追加的编号，例如 "Nirvana (2)"。
func ArtistLabel(name string) string {
	return StripBrackets(name)
}

// AlbumLabel 按选项决定是否去括号。
func AlbumLabel(title string, opts Options) string {
	if opts.StripBracketedText {
		return StripBrackets(title)
	}
	return strings.TrimSpace(title)
}

// TrackLabel 生成 "01 标题" 形式的行文本；去括号在拼接之后进行。
func TrackLabel(number int, title string, opts Options) string {
	label := fmt.Sprintf("%02d %s", number, title)
	if opts.StripBracketedText {
		return StripBrackets(label)
	}
	return strings.TrimSpace(label)
}
