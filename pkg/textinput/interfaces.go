// Package textinput 实现模态文本输入窗口
//
// 窗口把长文本按像素宽度折行显示，跟踪闪烁的文本光标，
// 在光标下方显示输入法组合文本，并把最终结果交还给发起输入的窗口。
//
// 窗口管理器、字体测量、折行和输入法都是外部协作者，通过本文件中的窄接口注入。
// 所有方法都在游戏主循环中同步调用，不需要加锁。
package textinput

import (
	"image"

	"github.com/decker502/textwindow/pkg/types"
)

// GlyphMetrics 当前字体的像素测量
type GlyphMetrics interface {
	StringWidth(s string) int
	LineHeight() int
}

// StringWrapper 按像素宽度折行
// 约定：在空格处断行时恰好省略该空格；返回值至少包含一行
type StringWrapper interface {
	Wrap(s string, maxWidth int) []string
}

// Capture 输入法捕获句柄
// 文本编辑（插入、删除、移动光标）全部由输入法集成完成，本包只读取
type Capture interface {
	// Text 已提交的文本
	Text() string
	// SelectionStart 光标在已提交文本中的字节偏移
	SelectionStart() int
	// Composition 尚未提交的组合文本，没有时为空
	Composition() string
}

// CaretPositioner 可选接口：告知输入法光标的屏幕矩形（宽为光标宽，高为行高），用于定位候选词窗口
type CaretPositioner interface {
	SetCaretBounds(bounds image.Rectangle)
}

// InputMethod 输入法集成
type InputMethod interface {
	// StartCapture 以 text 为初始内容开始捕获键盘输入，最多 maxLength 个字符
	StartCapture(text string, maxLength int) Capture
	// StopCapture 停止捕获，必须在窗口消失前同步调用
	StopCapture()
}

// WindowManager 窗口管理器
type WindowManager interface {
	CreateCentred(class types.WindowClass, width, height int, flags types.WindowFlags, events types.WindowEvents) types.WindowRef
	Close(ref types.WindowRef)
	CloseByClass(class types.WindowClass)
	Exists(ref types.WindowRef) bool
	Origin(ref types.WindowRef) image.Point
	Size(ref types.WindowRef) (width, height int)
	SetSize(ref types.WindowRef, width, height int)
	SetWidgets(ref types.WindowRef, widgets []types.Widget)
	Invalidate(ref types.WindowRef)
	Colours(ref types.WindowRef) (types.WindowColours, bool)
	SetColours(ref types.WindowRef, colours types.WindowColours)
}

// Formatter 本地化字符串模板展开
type Formatter interface {
	Format(key string, args ...any) string
}
