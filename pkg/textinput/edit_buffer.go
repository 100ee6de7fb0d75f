package textinput

import "github.com/decker502/textwindow/pkg/utils"

// EditBuffer 文本输入窗口的工作缓冲区
// 持有当前文本、光标（选区起点）和输入法组合文本。
// 打开后的所有修改都来自输入法捕获，由 Sync 每帧拉取。
type EditBuffer struct {
	capacity       int // 字节容量（含结束符）
	maxLength      int // 最大字符数
	text           string
	selectionStart int
	composition    string
	capture        Capture
}

// NewEditBuffer 创建指定字节容量的缓冲区
func NewEditBuffer(capacity int) *EditBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &EditBuffer{capacity: capacity}
}

// Open 用已有文本初始化缓冲区
// 去除格式代码，截断到 maxLength 个字符和缓冲区容量，光标置于末尾
func (b *EditBuffer) Open(existing string, maxLength int) {
	text := utils.StripFormatCodes(existing)
	text = utils.TruncateRunes(text, maxLength)
	text = utils.TruncateBytes(text, b.capacity-1)

	b.maxLength = maxLength
	b.text = text
	b.selectionStart = len(text)
	b.composition = ""
	b.capture = nil
}

// Attach 绑定输入法捕获句柄，之后 Sync 从中读取状态
func (b *EditBuffer) Attach(c Capture) {
	b.capture = c
}

// Detach 解除输入法绑定，保留最后一次同步的文本
func (b *EditBuffer) Detach() {
	b.capture = nil
	b.composition = ""
}

// Sync 从输入法捕获拉取文本、光标和组合文本
// 光标被限制在 [0, len(text)] 内并对齐到字符边界
func (b *EditBuffer) Sync() {
	if b.capture == nil {
		return
	}

	b.text = utils.TruncateBytes(b.capture.Text(), b.capacity-1)
	b.selectionStart = utils.FloorToRuneStart(b.text, b.capture.SelectionStart())
	b.composition = b.capture.Composition()
}

// CurrentText 当前文本的快照
func (b *EditBuffer) CurrentText() string {
	return b.text
}

// SelectionStart 光标字节偏移
func (b *EditBuffer) SelectionStart() int {
	return b.selectionStart
}

// Composition 输入法组合文本
func (b *EditBuffer) Composition() string {
	return b.composition
}

// MaxLength 最大字符数
func (b *EditBuffer) MaxLength() int {
	return b.maxLength
}

// AtEnd 光标是否位于文本末尾
func (b *EditBuffer) AtEnd() bool {
	return b.selectionStart >= len(b.text)
}
