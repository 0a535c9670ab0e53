package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称。
const (
	Regular = "go-regular"
	Bold    = "go-bold"
)

var builtin = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:go-bold" 或直接 "go-bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "embed:")))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("embedded font %q not found", name)
	}
	return data, nil
}

// Names 列出全部内置字体。
func Names() []string { return []string{Regular, Bold} }
