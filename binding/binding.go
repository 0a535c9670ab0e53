package binding

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	exprPattern   = regexp.MustCompile(`\$\{([^}]+)\}`)
	unsafePattern = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]+`)
)

// Fields 是输出路径模板可以引用的值。
type Fields map[string]any

// NewFields 由本次渲染的唱片信息构建模板字段：
// ${album}/${artist} 取第一张，${albums[i]}/${artists[i]} 按顺序取，${discs} 为实际排入的唱片数。
func NewFields(albums, artists []string, discs int) Fields {
	f := Fields{
		"discs":   discs,
		"albums":  toAny(albums),
		"artists": toAny(artists),
	}
	if len(albums) > 0 {
		f["album"] = albums[0]
	}
	if len(artists) > 0 {
		f["artist"] = artists[0]
	}
	return f
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则返回原占位符。
func Interpolate(text string, data Fields) string {
	return interpolate(text, data, func(s string) string { return s })
}

// OutputPath 展开输出路径模板；替换进来的值会去掉文件系统不允许的字符，
// 模板本身的目录分隔符保留。未知占位符被删除，空文件名回退为 fallback。
func OutputPath(template string, data Fields, fallback string) string {
	dir, file := filepath.Split(strings.TrimSpace(template))
	file = interpolate(file, data, SanitizeFileName)
	file = exprPattern.ReplaceAllString(file, "")
	file = strings.TrimSpace(file)
	if file == "" || file == filepath.Ext(file) {
		file = fallback + filepath.Ext(file)
	}
	return filepath.Join(dir, file)
}

// SanitizeFileName 把不能出现在文件名里的字符替换为 "_" 并合并空白。
func SanitizeFileName(name string) string {
	name = unsafePattern.ReplaceAllString(name, "_")
	return strings.Join(strings.Fields(name), " ")
}

func interpolate(text string, data Fields, escape func(string) string) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return match
		}
		if val, ok := resolvePath(map[string]any(data), path); ok {
			return escape(fmt.Sprint(val))
		}
		return match
	})
}

func resolvePath(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			list, ok := current.([]any)
			if !ok || idx < 0 || idx >= len(list) {
				return nil, false
			}
			current = list[idx]
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []string) {
	name, rest, found := strings.Cut(segment, "[")
	if !found {
		return name, nil
	}
	var indexes []string
	rest = "[" + rest
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			break
		}
		indexes = append(indexes, rest[1:end])
		rest = rest[end+1:]
	}
	return name, indexes
}
