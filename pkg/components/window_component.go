package components

import "github.com/decker502/textwindow/pkg/types"

// WindowComponent 窗口组件
// 每个打开的窗口对应一个实体，由 WindowSystem 创建和销毁
type WindowComponent struct {
	Ref types.WindowRef

	// 屏幕坐标（左上角）和大小
	X, Y          int
	Width, Height int

	Flags   types.WindowFlags
	Widgets []types.Widget
	Colours types.WindowColours

	// Events 窗口事件接收者，可为 nil
	Events types.WindowEvents

	// Order 创建序号，同一层内序号大的在上
	Order int

	// Dirty 下一帧绘制前需要调用 OnInvalidate
	Dirty bool

	// PressedWidget 鼠标按下时所在的控件，-1 表示无
	PressedWidget int
	// HoveredWidget 鼠标悬停的控件，-1 表示无
	HoveredWidget int
}

// Contains 判断屏幕坐标是否落在窗口内
func (w *WindowComponent) Contains(x, y int) bool {
	return x >= w.X && x < w.X+w.Width && y >= w.Y && y < w.Y+w.Height
}

// WidgetAt 返回窗口内坐标所在的最上层已启用控件，-1 表示无
// 控件按索引顺序绘制，索引大的在上
func (w *WindowComponent) WidgetAt(localX, localY int) int {
	for i := len(w.Widgets) - 1; i >= 0; i-- {
		widget := w.Widgets[i]
		if !widget.Enabled {
			continue
		}
		if localX >= widget.Rect.Min.X && localX < widget.Rect.Max.X &&
			localY >= widget.Rect.Min.Y && localY < widget.Rect.Max.Y {
			return i
		}
	}
	return -1
}

// StickToFront 是否始终位于普通窗口之上
func (w *WindowComponent) StickToFront() bool {
	return w.Flags&types.WindowFlagStickToFront != 0
}
