package textinput

import (
	"image/color"

	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/types"
)

var (
	compositionBorderColour     = color.RGBA{R: 0x5b, G: 0x5b, B: 0x5b, A: 0xff}
	compositionBackgroundColour = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	compositionTextColour       = color.RGBA{R: 0x17, G: 0x5f, B: 0x17, A: 0xff}
)

// Bubble 组合文本气泡的几何信息（窗口内坐标，闭区间）
// X、Y 为文本左上角，边框向外扩展 Border 像素
type Bubble struct {
	X, Y          int
	Width, Height int
	Border        int
}

// CompositionOverlay 在光标下方绘制输入法组合文本
// 无状态，只负责绘制
type CompositionOverlay struct {
	metrics GlyphMetrics
	style   config.CompositionStyle
}

// NewCompositionOverlay 创建组合文本绘制器
func NewCompositionOverlay(metrics GlyphMetrics, style config.CompositionStyle) *CompositionOverlay {
	return &CompositionOverlay{metrics: metrics, style: style}
}

// Bubble 计算气泡位置：水平居中于光标，位于光标行下方 OffsetY 像素，高一行
// imeText 为空时返回 false
func (o *CompositionOverlay) Bubble(caretX, caretY int, imeText string) (Bubble, bool) {
	if imeText == "" {
		return Bubble{}, false
	}

	width := o.metrics.StringWidth(imeText)
	return Bubble{
		X:      caretX - width/2,
		Y:      caretY + o.style.OffsetY,
		Width:  width,
		Height: o.metrics.LineHeight(),
		Border: o.style.Border,
	}, true
}

// Render 绘制组合文本气泡，imeText 为空时不做任何事
func (o *CompositionOverlay) Render(canvas types.Canvas, caretX, caretY int, imeText string) {
	b, ok := o.Bubble(caretX, caretY, imeText)
	if !ok {
		return
	}

	canvas.FillRect(b.X-b.Border, b.Y-b.Border, b.X+b.Width+b.Border, b.Y+b.Height+b.Border, compositionBorderColour)
	canvas.FillRect(b.X, b.Y, b.X+b.Width, b.Y+b.Height, compositionBackgroundColour)
	canvas.DrawString(imeText, b.X, b.Y, compositionTextColour)
}
