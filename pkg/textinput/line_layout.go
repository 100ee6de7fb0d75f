package textinput

// WrappedLayout 折行结果
// 每次绘制都重新计算，从不增量维护
type WrappedLayout struct {
	Lines      []string
	Starts     []int // 各行在折行副本中的起始偏移，行与行之间隔一个结束符
	LineCount  int   // 至少为 1
	LineHeight int
}

// LineLayout 计算折行和窗口高度
type LineLayout struct {
	wrapper      StringWrapper
	metrics      GlyphMetrics
	chromeHeight int
}

// NewLineLayout 创建布局计算器
// chromeHeight 为除文本行以外的固定窗口高度
func NewLineLayout(wrapper StringWrapper, metrics GlyphMetrics, chromeHeight int) *LineLayout {
	return &LineLayout{
		wrapper:      wrapper,
		metrics:      metrics,
		chromeHeight: chromeHeight,
	}
}

// Wrap 把文本按 pixelWidth 折行
// 空文本也折成恰好一行
func (l *LineLayout) Wrap(text string, pixelWidth int) WrappedLayout {
	lines := l.wrapper.Wrap(text, pixelWidth)
	if len(lines) == 0 {
		lines = []string{text}
	}

	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line) + 1
	}

	return WrappedLayout{
		Lines:      lines,
		Starts:     starts,
		LineCount:  len(lines),
		LineHeight: l.metrics.LineHeight(),
	}
}

// LineLength 第 i 行绘制的字节长度
// 即相邻两行在折行副本中的起点之差减去行结束符，最后一行取到末尾
func (l WrappedLayout) LineLength(i int) int {
	if i < 0 || i >= len(l.Lines) {
		return 0
	}
	if i+1 < len(l.Starts) {
		return l.Starts[i+1] - l.Starts[i] - 1
	}
	return len(l.Lines[i])
}

// Height 布局所需的窗口高度
func (l *LineLayout) Height(layout WrappedLayout) int {
	count := layout.LineCount
	if count < 1 {
		count = 1
	}
	return count*layout.LineHeight + l.chromeHeight
}

// NeedsResize 判断当前窗口高度是否需要调整
// 返回新高度以及是否与当前高度不同
func (l *LineLayout) NeedsResize(layout WrappedLayout, currentHeight int) (int, bool) {
	height := l.Height(layout)
	return height, height != currentHeight
}
