package systems

import (
	"image"
	"log"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/decker502/textwindow/pkg/components"
	"github.com/decker502/textwindow/pkg/ecs"
	"github.com/decker502/textwindow/pkg/textinput"
	"github.com/decker502/textwindow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	exptextinput "github.com/hajimehoshi/ebiten/v2/exp/textinput"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Clipboard 剪贴板读写
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// systemClipboard 系统剪贴板
type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// InputMethodSystem 键盘与输入法文本捕获
// 实现 textinput.InputMethod：字符输入和输入法组合由 ebiten 的 textinput.Field 完成，
// 退格、删除、方向键等编辑键在这里处理（按字形簇）。
//
// 捕获状态保存在一个带 TextInputComponent 的实体上，同一时间最多一个。
type InputMethodSystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
	field         exptextinput.Field
	clipboard     Clipboard

	// consumed 本帧的按键已被输入法处理（提交或取消组合文本）
	consumed bool
}

// NewInputMethodSystem 创建输入法系统，使用系统剪贴板
func NewInputMethodSystem(em *ecs.EntityManager) *InputMethodSystem {
	return &InputMethodSystem{entityManager: em, clipboard: systemClipboard{}}
}

// SetClipboard 替换剪贴板实现
func (s *InputMethodSystem) SetClipboard(c Clipboard) {
	s.clipboard = c
}

// StartCapture 开始捕获键盘输入，光标置于文本末尾
func (s *InputMethodSystem) StartCapture(text string, maxLength int) textinput.Capture {
	if s.entity != 0 {
		s.StopCapture()
	}

	s.entity = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.entity, &components.TextInputComponent{
		Text:           text,
		SelectionStart: len(text),
		MaxLength:      maxLength,
		IsFocused:      true,
	})

	s.field.SetTextAndSelection(text, len(text), len(text))
	s.field.Focus()

	log.Printf("[InputMethodSystem] 开始文本捕获 (最大长度 %d)", maxLength)
	return &imeCapture{system: s, entity: s.entity}
}

// StopCapture 停止捕获
func (s *InputMethodSystem) StopCapture() {
	if s.entity == 0 {
		return
	}
	s.field.Blur()
	if comp, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, s.entity); ok {
		comp.IsFocused = false
		comp.Composition = ""
	}
	s.entityManager.DestroyEntity(s.entity)
	s.entity = 0

	log.Printf("[InputMethodSystem] 停止文本捕获")
}

// SetCaretBounds 记录光标所在行的屏幕矩形，输入法候选窗口显示在此处
func (s *InputMethodSystem) SetCaretBounds(bounds image.Rectangle) {
	if comp := s.focused(); comp != nil {
		comp.CaretBounds = bounds
	}
}

// IsCapturing 是否正在捕获
func (s *InputMethodSystem) IsCapturing() bool {
	return s.focused() != nil
}

// IsComposing 输入法是否有尚未提交的组合文本
func (s *InputMethodSystem) IsComposing() bool {
	return s.focused() != nil && s.field.UncommittedTextLengthInBytes() > 0
}

// Consumed 本帧按键是否应当留给输入法
// 输入法在本帧处理了输入，或组合仍在进行时，Enter / ESC 不应再提交或关闭窗口
func (s *InputMethodSystem) Consumed() bool {
	return s.consumed || s.IsComposing()
}

// Type 在光标处插入文本（脚本化输入），组合进行中或超过最大长度时拒绝
func (s *InputMethodSystem) Type(text string) bool {
	comp := s.focused()
	if comp == nil || s.field.UncommittedTextLengthInBytes() > 0 {
		return false
	}
	if !InsertText(comp, text) {
		return false
	}
	s.pushField(comp)
	return true
}

// Paste 把剪贴板文本插入光标处，超出最大长度的部分被丢弃
func (s *InputMethodSystem) Paste() bool {
	comp := s.focused()
	if comp == nil || s.field.UncommittedTextLengthInBytes() > 0 {
		return false
	}
	text, err := s.clipboard.ReadAll()
	if err != nil {
		log.Printf("[InputMethodSystem] 读取剪贴板失败: %v", err)
		return false
	}
	if !PasteText(comp, text) {
		return false
	}
	s.pushField(comp)
	return true
}

// Copy 把当前文本复制到剪贴板
func (s *InputMethodSystem) Copy() bool {
	comp := s.focused()
	if comp == nil {
		return false
	}
	if err := s.clipboard.WriteAll(comp.Text); err != nil {
		log.Printf("[InputMethodSystem] 写入剪贴板失败: %v", err)
		return false
	}
	return true
}

// pushField 把组件状态写回 textinput.Field
func (s *InputMethodSystem) pushField(comp *components.TextInputComponent) {
	s.field.SetTextAndSelection(comp.Text, comp.SelectionStart, comp.SelectionStart)
}

// focused 当前捕获的组件
func (s *InputMethodSystem) focused() *components.TextInputComponent {
	if s.entity == 0 {
		return nil
	}
	comp, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, s.entity)
	if !ok || !comp.IsFocused {
		return nil
	}
	return comp
}

// Update 处理本帧键盘和输入法输入
func (s *InputMethodSystem) Update(deltaTime float64) {
	s.consumed = false
	comp := s.focused()
	if comp == nil {
		return
	}

	// 组合进行中时编辑键交给输入法
	composing := s.field.UncommittedTextLengthInBytes() > 0
	if !composing {
		if s.handleEditingKeys(comp) {
			s.pushField(comp)
		}
		if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta) {
			if inpututil.IsKeyJustPressed(ebiten.KeyV) {
				s.Paste()
			}
			if inpututil.IsKeyJustPressed(ebiten.KeyC) {
				s.Copy()
			}
		}
	}

	handled, err := s.field.HandleInputWithBounds(caretBounds(comp.CaretBounds))
	if err != nil {
		log.Printf("[InputMethodSystem] 输入法处理失败: %v", err)
		return
	}
	s.consumed = handled || composing

	s.pullField(comp)
}

// caretBounds 候选窗口定位矩形，宽高至少为 1
func caretBounds(r image.Rectangle) image.Rectangle {
	if r.Dx() < 1 {
		r.Max.X = r.Min.X + 1
	}
	if r.Dy() < 1 {
		r.Max.Y = r.Min.Y + 1
	}
	return r
}

// handleEditingKeys 处理编辑键，返回文本或光标是否改变
func (s *InputMethodSystem) handleEditingKeys(comp *components.TextInputComponent) bool {
	changed := false
	if utils.IsKeyRepeated(ebiten.KeyBackspace) {
		changed = Backspace(comp) || changed
	}
	if utils.IsKeyRepeated(ebiten.KeyDelete) {
		changed = DeleteForward(comp) || changed
	}
	if utils.IsKeyRepeated(ebiten.KeyArrowLeft) {
		changed = MoveCaretLeft(comp) || changed
	}
	if utils.IsKeyRepeated(ebiten.KeyArrowRight) {
		changed = MoveCaretRight(comp) || changed
	}
	if utils.IsKeyRepeated(ebiten.KeyHome) {
		changed = MoveCaretHome(comp) || changed
	}
	if utils.IsKeyRepeated(ebiten.KeyEnd) {
		changed = MoveCaretEnd(comp) || changed
	}
	return changed
}

// pullField 从 textinput.Field 读取文本、光标和组合文本
// 超过最大长度的输入被撤销
func (s *InputMethodSystem) pullField(comp *components.TextInputComponent) {
	text := s.field.Text()
	start, _ := s.field.Selection()

	if comp.MaxLength > 0 && utf8.RuneCountInString(text) > comp.MaxLength {
		log.Printf("[InputMethodSystem] 达到最大长度限制 (%d 字符)", comp.MaxLength)
		s.field.SetTextAndSelection(comp.Text, comp.SelectionStart, comp.SelectionStart)
		comp.Composition = ""
		return
	}

	comp.Text = text
	comp.SelectionStart = utils.FloorToRuneStart(text, start)
	comp.Composition = ""
	if n := s.field.UncommittedTextLengthInBytes(); n > 0 {
		rendered := s.field.TextForRendering()
		if end := start + n; start >= 0 && end <= len(rendered) {
			comp.Composition = rendered[start:end]
		}
	}
}

// Backspace 删除光标前的一个字形簇
func Backspace(comp *components.TextInputComponent) bool {
	text, cursor := utils.DeleteBefore(comp.Text, comp.SelectionStart)
	if text == comp.Text {
		return false
	}
	comp.Text, comp.SelectionStart = text, cursor
	return true
}

// DeleteForward 删除光标后的一个字形簇
func DeleteForward(comp *components.TextInputComponent) bool {
	text, cursor := utils.DeleteAfter(comp.Text, comp.SelectionStart)
	if text == comp.Text {
		return false
	}
	comp.Text, comp.SelectionStart = text, cursor
	return true
}

// MoveCaretLeft 光标左移一个字形簇
func MoveCaretLeft(comp *components.TextInputComponent) bool {
	prev := utils.PrevGraphemeBoundary(comp.Text, comp.SelectionStart)
	if prev == comp.SelectionStart {
		return false
	}
	comp.SelectionStart = prev
	return true
}

// MoveCaretRight 光标右移一个字形簇
func MoveCaretRight(comp *components.TextInputComponent) bool {
	next := utils.NextGraphemeBoundary(comp.Text, comp.SelectionStart)
	if next == comp.SelectionStart {
		return false
	}
	comp.SelectionStart = next
	return true
}

// MoveCaretHome 光标移到开头
func MoveCaretHome(comp *components.TextInputComponent) bool {
	if comp.SelectionStart == 0 {
		return false
	}
	comp.SelectionStart = 0
	return true
}

// MoveCaretEnd 光标移到结尾
func MoveCaretEnd(comp *components.TextInputComponent) bool {
	if comp.SelectionStart == len(comp.Text) {
		return false
	}
	comp.SelectionStart = len(comp.Text)
	return true
}

// InsertText 在光标处插入文本，超过最大长度时拒绝整次插入
func InsertText(comp *components.TextInputComponent, s string) bool {
	if s == "" {
		return false
	}
	if comp.MaxLength > 0 && utf8.RuneCountInString(comp.Text)+utf8.RuneCountInString(s) > comp.MaxLength {
		return false
	}
	cursor := utils.FloorToRuneStart(comp.Text, comp.SelectionStart)
	comp.Text = comp.Text[:cursor] + s + comp.Text[cursor:]
	comp.SelectionStart = cursor + len(s)
	return true
}

// PasteText 插入粘贴的文本
// 去除格式代码和控制字符（换行等），按剩余可用字符数截断
func PasteText(comp *components.TextInputComponent, s string) bool {
	s = utils.StripFormatCodes(s)
	if comp.MaxLength > 0 {
		remaining := comp.MaxLength - utf8.RuneCountInString(comp.Text)
		if remaining <= 0 {
			return false
		}
		s = utils.TruncateRunes(s, remaining)
	}
	return InsertText(comp, s)
}

// imeCapture 捕获句柄，读取实体上的 TextInputComponent
type imeCapture struct {
	system *InputMethodSystem
	entity ecs.EntityID
}

func (c *imeCapture) component() *components.TextInputComponent {
	comp, _ := ecs.GetComponent[*components.TextInputComponent](c.system.entityManager, c.entity)
	return comp
}

func (c *imeCapture) Text() string {
	if comp := c.component(); comp != nil {
		return comp.Text
	}
	return ""
}

func (c *imeCapture) SelectionStart() int {
	if comp := c.component(); comp != nil {
		return comp.SelectionStart
	}
	return 0
}

func (c *imeCapture) Composition() string {
	if comp := c.component(); comp != nil {
		return comp.Composition
	}
	return ""
}
