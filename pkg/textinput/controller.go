package textinput

import (
	"image"
	"image/color"
	"log"
	"time"

	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/types"
	"github.com/decker502/textwindow/pkg/utils"
)

// Result 文本输入的结果
// OK 为 false 表示取消，此时 Text 无意义（区别于提交空字符串）
type Result struct {
	Widget int
	Text   string
	OK     bool
}

// ResultFunc 接收输入结果的回调
type ResultFunc func(Result)

// Request 打开文本输入窗口的参数
type Request struct {
	Caller          types.WindowRef // 发起输入的窗口，关闭后对话框随之关闭
	Widget          int             // 发起输入的控件，原样带回 Result
	Title           string          // 标题的字符串表键
	Description     string          // 描述文字的字符串表键
	DescriptionArgs []any
	MaxLength       int // 最大字符数
	OnResult        ResultFunc
}

// DialogSession 一次文本输入会话
// 打开时创建，提交、取消或调用方消失时销毁；同一时间最多存在一个
type DialogSession struct {
	Caller      types.WindowRef
	Widget      int
	Title       string
	Description string
	Window      types.WindowRef
	Buffer      *EditBuffer
	Layout      WrappedLayout
	Caret       CaretGeometry
	OpenedAt    time.Time

	onResult ResultFunc
	colours  types.WindowColours
}

// Dependencies 控制器依赖的外部协作者
type Dependencies struct {
	Windows     WindowManager
	InputMethod InputMethod
	Metrics     GlyphMetrics
	Wrapper     StringWrapper
	Strings     Formatter        // 可为 nil，此时键本身即模板
	Clock       func() time.Time // 可为 nil，默认 time.Now
}

// Controller 文本输入窗口控制器
// 负责打开/关闭生命周期、把结果交还调用方、驱动光标闪烁
type Controller struct {
	deps    Dependencies
	cfg     *config.TextInputConfig
	layout  *LineLayout
	caret   *CaretLocator
	overlay *CompositionOverlay
	session *DialogSession

	// OKLabel / CancelLabel 按钮文字
	OKLabel     string
	CancelLabel string
}

// NewController 创建控制器
func NewController(deps Dependencies, cfg *config.TextInputConfig) *Controller {
	if cfg == nil {
		cfg = config.DefaultTextInputConfig()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	return &Controller{
		deps:        deps,
		cfg:         cfg,
		layout:      NewLineLayout(deps.Wrapper, deps.Metrics, cfg.Window.ChromeHeight),
		caret:       NewCaretLocator(deps.Metrics, cfg),
		overlay:     NewCompositionOverlay(deps.Metrics, cfg.Composition),
		OKLabel:     "OK",
		CancelLabel: "Cancel",
	}
}

// Session 当前会话，没有打开的窗口时返回 nil
func (c *Controller) Session() *DialogSession {
	return c.session
}

// IsOpen 是否有打开的文本输入窗口
func (c *Controller) IsOpen() bool {
	return c.session != nil
}

// format 通过字符串表展开模板
func (c *Controller) format(key string, args ...any) string {
	if c.deps.Strings == nil {
		return utils.ExpandTemplate(key, args...)
	}
	return c.deps.Strings.Format(key, args...)
}

// Open 用字符串表模板生成已有文本并打开窗口
// existingKey 为空表示没有已有文本
func (c *Controller) Open(req Request, existingKey string, existingArgs ...any) {
	existing := ""
	if existingKey != "" {
		existing = utils.StripFormatCodes(c.format(existingKey, existingArgs...))
	}
	c.OpenRaw(req, existing)
}

// OpenRaw 以原始文本打开窗口
// 已有的文本输入窗口会被强制关闭，且不会收到任何结果
func (c *Controller) OpenRaw(req Request, existingText string) {
	wm := c.deps.Windows

	// 同一时间只允许一个文本输入窗口
	wm.CloseByClass(types.WindowClassTextInput)
	if c.session != nil {
		c.teardown(c.session)
	}

	buffer := NewEditBuffer(c.cfg.BufferCapacity)
	buffer.Open(existingText, req.MaxLength)

	s := &DialogSession{
		Caller:      req.Caller,
		Widget:      req.Widget,
		Title:       c.format(req.Title),
		Description: c.format(req.Description, req.DescriptionArgs...),
		Buffer:      buffer,
		OpenedAt:    c.deps.Clock(),
		onResult:    req.OnResult,
	}
	s.Layout = c.layout.Wrap(buffer.CurrentText(), c.cfg.WrapWidth())
	height := c.layout.Height(s.Layout)

	c.session = s
	s.Window = wm.CreateCentred(types.WindowClassTextInput, c.cfg.Window.Width, height,
		types.WindowFlagStickToFront, &sessionEvents{c: c, s: s})
	wm.SetWidgets(s.Window, buildWidgets(c.cfg.Window, s.Title, c.OKLabel, c.CancelLabel, height))

	if colours, ok := wm.Colours(req.Caller); ok {
		s.colours = colours
		wm.SetColours(s.Window, colours)
	}

	buffer.Attach(c.deps.InputMethod.StartCapture(buffer.CurrentText(), req.MaxLength))

	log.Printf("[TextInput] 打开文本输入窗口 %s (调用方 %s, 控件 %d, 最大长度 %d)",
		s.Window, s.Caller, s.Widget, req.MaxLength)
}

// Commit 提交当前文本（OK 按钮或回车）
func (c *Controller) Commit() {
	s := c.session
	if s == nil {
		return
	}
	s.Buffer.Sync()
	text := s.Buffer.CurrentText()

	c.finish(s)
	log.Printf("[TextInput] 提交: %q", text)
	c.deliver(s, Result{Widget: s.Widget, Text: text, OK: true})
}

// Cancel 取消输入（CANCEL 按钮或关闭按钮）
// 调用方收到 OK=false 的结果
func (c *Controller) Cancel() {
	s := c.session
	if s == nil {
		return
	}

	c.finish(s)
	log.Printf("[TextInput] 取消输入")
	c.deliver(s, Result{Widget: s.Widget, OK: false})
}

// Close 强制关闭当前窗口，不交付任何结果
func (c *Controller) Close() {
	if s := c.session; s != nil {
		c.finish(s)
	}
}

// OnKeyPress 回车立即提交
func (c *Controller) OnKeyPress(key rune) {
	s := c.session
	if s == nil {
		return
	}
	if key == types.KeyReturn {
		c.Commit()
		return
	}
	c.deps.Windows.Invalidate(s.Window)
}

// Tick 每帧调用一次
// 调用方窗口已不存在时直接关闭，不调用任何回调
func (c *Controller) Tick() {
	s := c.session
	if s == nil {
		return
	}

	if !c.deps.Windows.Exists(s.Caller) {
		log.Printf("[TextInput] 调用方窗口 %s 已关闭，关闭文本输入窗口", s.Caller)
		c.finish(s)
		return
	}

	c.deps.Windows.Invalidate(s.Window)
}

// CaretVisible 当前帧光标是否可见
func (c *Controller) CaretVisible() bool {
	s := c.session
	if s == nil {
		return false
	}
	return CaretVisible(c.deps.Clock().Sub(s.OpenedAt), c.cfg.Caret.BlinkPeriod)
}

// finish 结束会话并关闭窗口
// 先停止输入法捕获，再关闭窗口
func (c *Controller) finish(s *DialogSession) {
	c.teardown(s)
	c.deps.Windows.Close(s.Window)
}

// teardown 停止输入法捕获并清除会话，可重复调用
func (c *Controller) teardown(s *DialogSession) {
	if c.session != s {
		return
	}
	c.deps.InputMethod.StopCapture()
	s.Buffer.Detach()
	c.session = nil
}

// deliver 调用方仍然存在时交付结果
func (c *Controller) deliver(s *DialogSession, r Result) {
	if s.onResult == nil || !c.deps.Windows.Exists(s.Caller) {
		return
	}
	s.onResult(r)
}

// relayout 同步缓冲区并重新折行，高度变化时调整窗口大小
func (c *Controller) relayout(s *DialogSession) {
	s.Buffer.Sync()
	s.Layout = c.layout.Wrap(s.Buffer.CurrentText(), c.cfg.WrapWidth())
	c.applyHeight(s)
}

// ensureLayout 绘制前检查布局是否过期
// 文本在上次布局之后被修改且行数改变时，先调整窗口大小再绘制
func (c *Controller) ensureLayout(s *DialogSession) {
	s.Buffer.Sync()
	s.Layout = c.layout.Wrap(s.Buffer.CurrentText(), c.cfg.WrapWidth())
	_, current := c.deps.Windows.Size(s.Window)
	if _, resize := c.layout.NeedsResize(s.Layout, current); resize {
		c.applyHeight(s)
	}
}

// applyHeight 按 s.Layout 调整窗口高度并重新排列控件
func (c *Controller) applyHeight(s *DialogSession) {
	wm := c.deps.Windows
	_, current := wm.Size(s.Window)
	height, resize := c.layout.NeedsResize(s.Layout, current)
	if resize {
		wm.Invalidate(s.Window)
		wm.SetSize(s.Window, c.cfg.Window.Width, height)
	}
	wm.SetWidgets(s.Window, buildWidgets(c.cfg.Window, s.Title, c.OKLabel, c.CancelLabel, height))
}

// paint 绘制描述、文本框、文本、光标和组合文本
func (c *Controller) paint(s *DialogSession, canvas types.Canvas) {
	win := c.cfg.Window
	textColour := s.colours[2]
	boxColour := s.colours[1]

	canvas.DrawStringCentred(s.Description, win.Width/2, win.DescriptionY, textColour)

	// 文本可能在上一次布局之后被输入法修改
	c.ensureLayout(s)
	text := s.Buffer.CurrentText()

	top := c.cfg.TextBoxTop()
	lineHeight := s.Layout.LineHeight
	canvas.FillRectInset(win.TextBoxInset, top, win.Width-win.TextBoxInset,
		top+lineHeight*s.Layout.LineCount+win.TextBoxPadding, boxColour)

	y := top + 1
	for _, line := range s.Layout.Lines {
		canvas.DrawString(line, win.TextX, y, textColour)
		y += lineHeight
	}

	s.Caret = c.caret.Locate(s.Layout, text, s.Buffer.SelectionStart(), top)
	if s.Caret.Matched && c.CaretVisible() {
		caretY := s.Caret.Y + c.cfg.Caret.UnderlineOffset
		canvas.FillRect(s.Caret.X, caretY, s.Caret.X+s.Caret.Width, caretY, caretColour(textColour))
	}

	if p, ok := c.deps.InputMethod.(CaretPositioner); ok {
		origin := c.deps.Windows.Origin(s.Window)
		x, y := origin.X+s.Caret.X, origin.Y+s.Caret.Y
		p.SetCaretBounds(image.Rect(x, y, x+s.Caret.Width, y+lineHeight))
	}

	c.overlay.Render(canvas, s.Caret.X, s.Caret.Y, s.Buffer.Composition())
}

// caretColour 光标颜色：文本颜色略微提亮
func caretColour(base color.RGBA) color.RGBA {
	lighten := func(v uint8) uint8 {
		if v > 0xff-0x30 {
			return 0xff
		}
		return v + 0x30
	}
	return color.RGBA{R: lighten(base.R), G: lighten(base.G), B: lighten(base.B), A: 0xff}
}

// sessionEvents 把窗口事件转发给所属会话
// 会话结束后收到的事件被忽略
type sessionEvents struct {
	c *Controller
	s *DialogSession
}

func (e *sessionEvents) live() bool {
	return e.c.session == e.s
}

// OnMouseUp 处理按钮点击
func (e *sessionEvents) OnMouseUp(widget int) {
	if !e.live() {
		return
	}
	switch widget {
	case WidgetCancel, WidgetClose:
		e.c.Cancel()
	case WidgetOkay:
		e.c.Commit()
	}
}

// OnKeyPress 回车提交，ESC 等同关闭按钮
func (e *sessionEvents) OnKeyPress(key rune) {
	if !e.live() {
		return
	}
	if key == types.KeyEscape {
		e.c.Cancel()
		return
	}
	e.c.OnKeyPress(key)
}

func (e *sessionEvents) OnUpdate() {
	if e.live() {
		e.c.Tick()
	}
}

func (e *sessionEvents) OnInvalidate() {
	if e.live() {
		e.c.relayout(e.s)
	}
}

// OnPrePaint 在边框和按钮绘制之前调整窗口高度
func (e *sessionEvents) OnPrePaint() {
	if e.live() {
		e.c.ensureLayout(e.s)
	}
}

func (e *sessionEvents) OnPaint(canvas types.Canvas) {
	if e.live() {
		e.c.paint(e.s, canvas)
	}
}

// OnClose 窗口被外部关闭时必须停止输入法捕获
func (e *sessionEvents) OnClose() {
	e.c.teardown(e.s)
}
