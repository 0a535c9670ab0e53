package layout

// 该文件定义布局结果，供布局计算、渲染与调试 JSON 共用。坐标与长度单位均为毫米，字号单位为 pt。

// Result 保存布局后的页面、被丢弃条目的警告与文档元信息。
type Result struct {
	Pages    []Page       `json:"pages"`
	Warnings []Warning    `json:"warnings,omitempty"`
	Meta     DocumentMeta `json:"meta"`
}

// Warning 记录未能放入页面的唱片（不是错误，渲染照常进行）。
type Warning struct {
	Index   int    `json:"index"`
	Album   string `json:"album"`
	Message string `json:"message"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Font 只区分字重，字体文件由渲染器决定。
type Font string

const (
	FontRegular Font = "regular"
	FontBold    Font = "bold"
)

// Page 记录页面尺寸、边距与最终可以直接渲染的元素。
// 渲染顺序：矩形（背景）→ 线 → 文本。
type Page struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Margin Margin     `json:"margin"`
	Strips []StripBox `json:"strips"`
	Rects  []Rect     `json:"rects,omitempty"`
	Lines  []Line     `json:"lines,omitempty"`
	Texts  []TextBox  `json:"texts"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// StripBox 记录一张标签条在页面上的位置，便于调试与测试。
type StripBox struct {
	Index     int       `json:"index"`
	Album     string    `json:"album"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	CropMarks CropMarks `json:"cropMarks"`
	Tracks    int       `json:"tracks"`
}

// TextBox 表示一个单行文本单元格（类似 fpdf 的 cell）：
// 文本在 Height 内垂直居中，按 Align 水平对齐，左/右对齐时两侧留 Padding。
type TextBox struct {
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Font     Font    `json:"font"`
	FontSize float64 `json:"fontSize"` // pt
	Color    Color   `json:"color"`
	Align    string  `json:"align,omitempty"` // left（默认）/center/right
	Padding  float64 `json:"padding,omitempty"`
}

// TextBlock 是 WrapAndFit 的结果：统一字号的多行文本。
type TextBlock struct {
	Lines      []string `json:"lines"`
	FontSize   float64  `json:"fontSize"`   // pt
	LineHeight float64  `json:"lineHeight"` // mm
	Height     float64  `json:"height"`     // mm
}

// Line 表示一条线段；Dash 为空时画实线，否则按 [实, 空, ...] 毫米交替。
type Line struct {
	X1    float64   `json:"x1"`
	Y1    float64   `json:"y1"`
	X2    float64   `json:"x2"`
	Y2    float64   `json:"y2"`
	Color Color     `json:"color"`
	Width float64   `json:"width"` // 线宽（mm），<=0 时由渲染器给默认值
	Dash  []float64 `json:"dash,omitempty"`
}

// Rect 表示一个矩形（不包含圆角）。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor *Color  `json:"strokeColor,omitempty"` // 为空表示不描边
	StrokeWidth float64 `json:"strokeWidth"`           // mm
	FillColor   *Color  `json:"fillColor,omitempty"`   // 为空表示不填充
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
