// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决 textinput、components、systems 之间的循环引用问题
package types

import (
	"fmt"
	"image"
	"image/color"
)

// WindowClass 窗口类别
// 同一类别的窗口可以被 CloseByClass 一次性关闭
type WindowClass int

const (
	// WindowClassNone 无效类别
	WindowClassNone WindowClass = iota
	// WindowClassTextInput 文本输入对话框
	WindowClassTextInput
	// WindowClassRideList 演示用的名称列表窗口（文本输入的调用方）
	WindowClassRideList
)

// String 返回窗口类别的字符串表示
func (c WindowClass) String() string {
	switch c {
	case WindowClassTextInput:
		return "TextInput"
	case WindowClassRideList:
		return "RideList"
	default:
		return "None"
	}
}

// WindowRef 通过 (类别, 编号) 标识一个窗口
// 窗口关闭后引用仍然可以保存，但查找会失败
type WindowRef struct {
	Class  WindowClass
	Number int
}

// String 返回 "类别#编号" 格式，用于日志
func (r WindowRef) String() string {
	return fmt.Sprintf("%s#%d", r.Class, r.Number)
}

// WindowFlags 窗口标志位
type WindowFlags uint32

const (
	// WindowFlagStickToFront 始终位于其它窗口之上
	WindowFlagStickToFront WindowFlags = 1 << iota
)

// WindowColours 窗口的三个配色槽位
type WindowColours [3]color.RGBA

// WidgetType 控件类型
type WidgetType int

const (
	// WidgetFrame 窗口背景框
	WidgetFrame WidgetType = iota
	// WidgetCaption 标题栏
	WidgetCaption
	// WidgetCloseBox 关闭按钮（右上角 ×）
	WidgetCloseBox
	// WidgetButton 普通按钮
	WidgetButton
)

// Widget 窗口内的控件
// Rect 为窗口内坐标，Max 不包含在内
type Widget struct {
	Type    WidgetType
	Colour  int // 使用 WindowColours 的哪个槽位
	Rect    image.Rectangle
	Text    string
	Enabled bool
}

// Contains 判断窗口内坐标是否落在控件上
func (w Widget) Contains(p image.Point) bool {
	return p.In(w.Rect)
}

// Canvas 窗口内坐标系的绘制接口
// 矩形坐标为闭区间 [x0, x1] × [y0, y1]
type Canvas interface {
	FillRect(x0, y0, x1, y1 int, clr color.Color)
	// FillRectInset 绘制带凹陷边框的矩形（文本框背景）
	FillRectInset(x0, y0, x1, y1 int, clr color.Color)
	// DrawString 在 (x, y) 左上角绘制文本，返回绘制结束后的 x 坐标
	DrawString(s string, x, y int, clr color.Color) int
	// DrawStringCentred 以 cx 为水平中心绘制文本
	DrawStringCentred(s string, cx, y int, clr color.Color)
}

// WindowEvents 窗口事件回调
// 由窗口管理器在对应时机调用
type WindowEvents interface {
	// OnMouseUp 在已启用的控件上释放鼠标
	OnMouseUp(widget int)
	// OnUpdate 每帧调用一次
	OnUpdate()
	// OnInvalidate 在绘制前调用，用于重新计算布局
	OnInvalidate()
	// OnPaint 绘制控件之后调用，canvas 使用窗口内坐标
	OnPaint(canvas Canvas)
	// OnClose 窗口被关闭时调用一次（无论是哪种关闭路径）
	OnClose()
}

// KeyHandler 可选接口：接收 Enter / Escape 等按键
type KeyHandler interface {
	OnKeyPress(key rune)
}

// PrePainter 可选接口：绘制边框和控件之前调用，窗口可在此调整大小
type PrePainter interface {
	OnPrePaint()
}

const (
	// KeyReturn 回车键
	KeyReturn rune = '\r'
	// KeyEscape ESC 键
	KeyEscape rune = 0x1b
)
