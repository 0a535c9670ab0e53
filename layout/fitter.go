package layout

import (
	"fmt"
	"math"
	"strings"
)

// SizeStep 是字号搜索的步长（pt）。
const SizeStep = 0.5

// Fitter 在固定宽度内为文本选择字号并折行，宽度由 Typesetter 度量。
type Fitter struct {
	ts Typesetter
}

// NewFitter 创建 Fitter；ts 不能为空。
func NewFitter(ts Typesetter) *Fitter { return &Fitter{ts: ts} }

func (f *Fitter) measure(text string, font Font, sizePt float64) (float64, error) {
	w, err := f.ts.TextWidth(text, font, sizePt)
	if err != nil {
		return 0, fmt.Errorf("measure %q: %w", text, err)
	}
	return w, nil
}

// FitSize 从 initial 开始每次减小 0.5pt，直到文本宽度不超过 maxWidth 或到达 floor。
// 字号不会低于 floor；initial 小于 floor 时原样返回。
func (f *Fitter) FitSize(text string, maxWidth, initial, floor float64, font Font) (float64, error) {
	size := initial
	width, err := f.measure(text, font, size)
	if err != nil {
		return 0, err
	}
	for width > maxWidth && size > floor {
		size = math.Max(size-SizeStep, floor)
		if width, err = f.measure(text, font, size); err != nil {
			return 0, err
		}
	}
	return size, nil
}

// WrapAndFit 以 start 字号贪心折行（每行至少一个词），再取能让所有行都放下的统一字号
// （不低于 floor）。单个词在 floor 下仍超宽时独占一行并允许溢出。
func (f *Fitter) WrapAndFit(text string, maxWidth, start, floor float64, font Font) (TextBlock, error) {
	lines, err := f.wrap(text, maxWidth, start, font)
	if err != nil {
		return TextBlock{}, err
	}

	size := start
	for _, line := range lines {
		if size, err = f.FitSize(line, maxWidth, size, floor, font); err != nil {
			return TextBlock{}, err
		}
	}
	size = math.Max(size, floor)

	lh := LineHeight(size)
	return TextBlock{
		Lines:      lines,
		FontSize:   size,
		LineHeight: lh,
		Height:     lh * float64(len(lines)),
	}, nil
}

func (f *Fitter) wrap(text string, maxWidth, sizePt float64, font Font) ([]string, error) {
	var (
		lines   []string
		current []string
	)
	for _, word := range strings.Fields(text) {
		if len(current) == 0 {
			current = append(current, word)
			continue
		}
		candidate := strings.Join(current, " ") + " " + word
		width, err := f.measure(candidate, font, sizePt)
		if err != nil {
			return nil, err
		}
		if width <= maxWidth {
			current = append(current, word)
			continue
		}
		lines = append(lines, strings.Join(current, " "))
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines, nil
}
