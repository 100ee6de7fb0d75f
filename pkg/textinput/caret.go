package textinput

import (
	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/utils"
)

// MapWrappedOffsetToOriginal 返回每一行在原文中的起始字节偏移
//
// 折行会省略断行处的一个空格，所以累计偏移时：
// 若某行之后紧跟的原文字符是空格，额外计入 1。
func MapWrappedOffsetToOriginal(text string, lines []string) []int {
	starts := make([]int, len(lines))
	consumed := 0
	for i, line := range lines {
		starts[i] = consumed
		end := consumed + len(line)
		if end < len(text) && text[end] == ' ' {
			consumed++
		}
		consumed += len(line)
	}
	return starts
}

// CaretGeometry 光标在窗口内的位置
type CaretGeometry struct {
	X, Y    int
	Width   int
	Line    int  // 光标所在行，未匹配时为 -1
	Matched bool // false 表示使用了兜底位置
}

// CaretLocator 把光标字节偏移映射为像素坐标
type CaretLocator struct {
	metrics GlyphMetrics
	style   config.CaretStyle
	textX   int // 文本绘制起点
	caretX  int // 光标测量起点
}

// NewCaretLocator 创建光标定位器
func NewCaretLocator(metrics GlyphMetrics, cfg *config.TextInputConfig) *CaretLocator {
	return &CaretLocator{
		metrics: metrics,
		style:   cfg.Caret,
		textX:   cfg.Window.TextX,
		caretX:  cfg.Window.CaretX,
	}
}

// Locate 计算光标位置
//
// 逐行累计已消耗的原文字符数，第一次满足 selectionStart <= 行起点 + 行长 的行即为光标行，
// 之后的行不再检查。光标正好落在断行处时因此显示在上一行末尾。
// top 为文本框顶部，第一行绘制在 top+1。
func (cl *CaretLocator) Locate(layout WrappedLayout, text string, selectionStart, top int) CaretGeometry {
	starts := MapWrappedOffsetToOriginal(text, layout.Lines)
	lineHeight := layout.LineHeight

	geo := CaretGeometry{Line: -1}
	y := top + 1
	lastX := cl.textX
	for i, line := range layout.Lines {
		lastX = cl.textX + cl.metrics.StringWidth(line)

		if !geo.Matched && selectionStart <= starts[i]+layout.LineLength(i) {
			k := selectionStart - starts[i]
			if k < 0 {
				k = 0
			}
			geo.X = cl.caretX + cl.metrics.StringWidth(line[:k])
			geo.Y = y
			geo.Width = cl.Width(text, selectionStart)
			geo.Line = i
			geo.Matched = true
		}

		y += lineHeight
	}

	if !geo.Matched {
		geo.X = lastX
		geo.Y = y - lineHeight
		geo.Width = cl.Width(text, selectionStart)
	}

	return geo
}

// Width 光标宽度
// 在文本末尾时使用固定宽度，否则按将被覆盖的字符宽度绘制块状光标
func (cl *CaretLocator) Width(text string, selectionStart int) int {
	if selectionStart < 0 || selectionStart >= len(text) {
		return cl.style.FallbackWidth
	}
	width := cl.metrics.StringWidth(utils.RuneAt(text, selectionStart)) - cl.style.Shrink
	if width < cl.style.MinWidth {
		width = cl.style.MinWidth
	}
	return width
}
