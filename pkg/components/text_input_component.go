package components

import "image"

// TextInputComponent 键盘文本捕获状态
// 同一时间只有一个实体处于捕获状态，由 InputMethodSystem 维护
type TextInputComponent struct {
	// Text 已提交的文本
	Text string
	// SelectionStart 光标字节偏移
	SelectionStart int
	// Composition 输入法尚未提交的组合文本
	Composition string

	// MaxLength 最大字符数（0 = 无限制）
	MaxLength int

	// IsFocused 是否正在接收键盘输入
	IsFocused bool

	// CaretBounds 光标所在行的屏幕矩形，输入法候选窗口显示在其下方
	CaretBounds image.Rectangle
}
