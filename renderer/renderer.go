package renderer

import "github.com/ByLCY/jukestrip/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Engine 同时提供字体度量与绘制，布局与渲染必须使用同一套字体。
type Engine interface {
	Renderer
	layout.Typesetter
}
