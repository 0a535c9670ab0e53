package layout

import "log/slog"

// BuildOptions 配置布局阶段所需的依赖，例如排版后端。
type BuildOptions struct {
	Typesetter Typesetter
	Options    Options
	Logger     *slog.Logger
}

// Options 是标签条的可选外观。
type Options struct {
	AlternateRowBackgrounds bool `json:"alternateRowBackgrounds"` // 隔行底色
	ShowTitleBackground     bool `json:"showTitleBackground"`     // 专辑/艺人背景色块
	StripBracketedText      bool `json:"stripBracketedText"`      // 去掉 (...) 内容
	ShowRuler               bool `json:"showRuler"`               // 打印校准标尺
}

// DefaultOptions 与命令行默认值一致：仅开启括号去除。
func DefaultOptions() Options {
	return Options{StripBracketedText: true}
}

// Typesetter 提供字体度量：返回 content 以 font、sizePt 排版后的宽度（mm）。
type Typesetter interface {
	TextWidth(content string, font Font, sizePt float64) (float64, error)
}
