package textinput

import (
	"image"
	"testing"
	"time"

	"github.com/decker502/textwindow/pkg/types"
)

// TestOpenCreatesWindow 打开窗口时的初始状态
func TestOpenCreatesWindow(t *testing.T) {
	h := newHarness()
	h.ctrl.Open(h.request(32), "STR_RIDE_FMT", "Stationary Coaster", 1)

	s := h.ctrl.Session()
	if s == nil || !h.ctrl.IsOpen() {
		t.Fatal("expected an open session")
	}
	if got := s.Buffer.CurrentText(); got != "Stationary Coaster 1" {
		t.Errorf("buffer: got %q", got)
	}
	if s.Title != "Ride name" || s.Description != "Enter new name for this ride:" {
		t.Errorf("title/description: got %q / %q", s.Title, s.Description)
	}

	w := h.wm.windows[s.Window]
	if w == nil {
		t.Fatal("window not created")
	}
	if w.class != types.WindowClassTextInput || w.width != 250 || w.height != 90 {
		t.Errorf("window: class %v size %dx%d", w.class, w.width, w.height)
	}
	if w.flags&types.WindowFlagStickToFront == 0 {
		t.Error("window should stick to front")
	}
	if w.colours != testColours {
		t.Errorf("colours not copied from caller: %v", w.colours)
	}
	if len(w.widgets) != 5 || w.widgets[WidgetTitle].Text != "Ride name" {
		t.Errorf("widgets: %+v", w.widgets)
	}

	if h.im.started != 1 || !h.im.active() {
		t.Error("input capture should be started")
	}
	if h.im.capture.text != "Stationary Coaster 1" || h.im.maxLength != 32 {
		t.Errorf("capture: text %q max %d", h.im.capture.text, h.im.maxLength)
	}
}

// TestOpenStripsAndTruncates 已有文本去除格式代码并截断到最大长度
func TestOpenStripsAndTruncates(t *testing.T) {
	h := newHarness()
	h.ctrl.Open(h.request(32), "STR_FORMATTED")
	if got := h.ctrl.Session().Buffer.CurrentText(); got != "Coloured name" {
		t.Errorf("formatted: got %q", got)
	}

	h.ctrl.Open(h.request(5), "STR_LONG_NAME")
	if got := h.ctrl.Session().Buffer.CurrentText(); got != "The q" {
		t.Errorf("truncated: got %q", got)
	}

	h.ctrl.Open(h.request(10), "")
	if got := h.ctrl.Session().Buffer.CurrentText(); got != "" {
		t.Errorf("no existing text: got %q", got)
	}
}

// TestDescriptionArgs 描述文字使用参数展开
func TestDescriptionArgs(t *testing.T) {
	h := newHarness()
	req := h.request(32)
	req.Description = "STR_WITH_ARGS"
	req.DescriptionArgs = []any{"Coaster"}
	h.ctrl.OpenRaw(req, "x")

	if got := h.ctrl.Session().Description; got != "Rename Coaster:" {
		t.Errorf("description: got %q", got)
	}
}

// TestCommitViaOK OK 按钮提交当前文本
func TestCommitViaOK(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "Stationary Coaster 1")
	window := h.ctrl.Session().Window

	h.im.capture.text = "Stationary Coaster"
	h.im.capture.selection = len("Stationary Coaster")
	h.events().OnMouseUp(WidgetOkay)

	if len(h.result) != 1 {
		t.Fatalf("expected one result, got %d", len(h.result))
	}
	want := Result{Widget: 7, Text: "Stationary Coaster", OK: true}
	if h.result[0] != want {
		t.Errorf("result: got %+v, want %+v", h.result[0], want)
	}
	if h.ctrl.IsOpen() || h.wm.Exists(window) {
		t.Error("window should be closed after commit")
	}
	if h.im.active() || h.im.stopped != 1 {
		t.Errorf("capture should be stopped exactly once, stopped=%d", h.im.stopped)
	}
}

// TestCommitEmpty 提交空文本与取消不同
func TestCommitEmpty(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "")
	h.ctrl.Commit()

	if len(h.result) != 1 || !h.result[0].OK || h.result[0].Text != "" {
		t.Errorf("result: %+v", h.result)
	}
}

// TestCancelPaths CANCEL、关闭按钮和 ESC 都交付取消结果
func TestCancelPaths(t *testing.T) {
	tests := []struct {
		name string
		do   func(e types.WindowEvents)
	}{
		{name: "CANCEL 按钮", do: func(e types.WindowEvents) { e.OnMouseUp(WidgetCancel) }},
		{name: "关闭按钮", do: func(e types.WindowEvents) { e.OnMouseUp(WidgetClose) }},
		{name: "ESC", do: func(e types.WindowEvents) { e.(types.KeyHandler).OnKeyPress(types.KeyEscape) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.ctrl.OpenRaw(h.request(32), "Stationary Coaster 1")
			tt.do(h.events())

			if len(h.result) != 1 || h.result[0].OK {
				t.Fatalf("expected one cancelled result, got %+v", h.result)
			}
			if h.result[0].Widget != 7 {
				t.Errorf("widget: got %d", h.result[0].Widget)
			}
			if h.ctrl.IsOpen() || h.wm.countClass(types.WindowClassTextInput) != 0 {
				t.Error("window should be closed")
			}
			if h.im.active() {
				t.Error("capture should be stopped")
			}
		})
	}
}

// TestEnterCommits 回车立即提交
func TestEnterCommits(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "abc")
	h.events().(types.KeyHandler).OnKeyPress(types.KeyReturn)

	if len(h.result) != 1 || !h.result[0].OK || h.result[0].Text != "abc" {
		t.Errorf("result: %+v", h.result)
	}
}

// TestOtherKeysInvalidate 其它按键只触发重绘
func TestOtherKeysInvalidate(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "abc")
	w := h.wm.windows[h.ctrl.Session().Window]
	before := w.invalid

	h.events().(types.KeyHandler).OnKeyPress('x')

	if w.invalid != before+1 || len(h.result) != 0 || !h.ctrl.IsOpen() {
		t.Errorf("invalid=%d results=%d open=%v", w.invalid, len(h.result), h.ctrl.IsOpen())
	}
}

// TestSecondOpenReplacesFirst 第二次打开关闭第一个窗口且不交付结果
func TestSecondOpenReplacesFirst(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "first")
	oldEvents := h.events()
	oldWindow := h.ctrl.Session().Window

	h.ctrl.OpenRaw(h.request(32), "second")

	if len(h.result) != 0 {
		t.Errorf("first session should not deliver, got %+v", h.result)
	}
	if h.wm.Exists(oldWindow) {
		t.Error("first window should be closed")
	}
	if n := h.wm.countClass(types.WindowClassTextInput); n != 1 {
		t.Errorf("expected one text input window, got %d", n)
	}
	if h.im.started != 2 || h.im.stopped != 1 {
		t.Errorf("capture started=%d stopped=%d", h.im.started, h.im.stopped)
	}

	// 旧窗口的事件不再影响新会话
	oldEvents.OnMouseUp(WidgetOkay)
	if len(h.result) != 0 || !h.ctrl.IsOpen() {
		t.Error("stale events must be ignored")
	}
	if got := h.ctrl.Session().Buffer.CurrentText(); got != "second" {
		t.Errorf("buffer: got %q", got)
	}
}

// TestCallerClosed 调用方窗口消失后对话框关闭且不交付结果
func TestCallerClosed(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "abc")
	window := h.ctrl.Session().Window
	events := h.events()

	h.wm.Close(h.caller)
	events.OnUpdate()

	if h.ctrl.IsOpen() || h.wm.Exists(window) {
		t.Error("dialog should close when caller is gone")
	}
	if len(h.result) != 0 {
		t.Errorf("no result expected, got %+v", h.result)
	}
	if h.im.active() {
		t.Error("capture should be stopped")
	}
}

// TestCommitAfterCallerClosed 调用方已消失时提交不调用回调
func TestCommitAfterCallerClosed(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "abc")
	h.wm.Close(h.caller)
	h.ctrl.Commit()

	if len(h.result) != 0 {
		t.Errorf("no result expected, got %+v", h.result)
	}
	if h.ctrl.IsOpen() {
		t.Error("session should end")
	}
}

// TestWindowClosedExternally 窗口被外部关闭时停止捕获
func TestWindowClosedExternally(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "abc")
	h.wm.CloseByClass(types.WindowClassTextInput)

	if h.ctrl.IsOpen() || h.im.active() || len(h.result) != 0 {
		t.Errorf("open=%v active=%v results=%d", h.ctrl.IsOpen(), h.im.active(), len(h.result))
	}

	// 再次关闭不会重复停止捕获
	h.ctrl.Close()
	if h.im.stopped != 1 {
		t.Errorf("stopped=%d, want 1", h.im.stopped)
	}
}

// TestInvalidateResizes 文本变长后窗口高度随行数增加
func TestInvalidateResizes(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(64), "short")
	s := h.ctrl.Session()
	w := h.wm.windows[s.Window]

	h.im.capture.text = "The quick brown fox jumps over the lazy dog"
	h.im.capture.selection = len(h.im.capture.text)
	h.events().OnInvalidate()

	if s.Layout.LineCount != 2 {
		t.Fatalf("line count: got %d, want 2 (%q)", s.Layout.LineCount, s.Layout.Lines)
	}
	if w.height != 100 || h.wm.resized != 1 {
		t.Errorf("height=%d resized=%d", w.height, h.wm.resized)
	}
	if top := w.widgets[WidgetOkay].Rect.Min.Y; top != 79 {
		t.Errorf("OK button top: got %d, want 79", top)
	}

	// 高度不变时不再调整
	h.events().OnInvalidate()
	if h.wm.resized != 1 {
		t.Errorf("unexpected resize, resized=%d", h.wm.resized)
	}
}

// TestPaintResizesStaleLayout 上次布局之后文本变长，绘制前先调整窗口高度
func TestPaintResizesStaleLayout(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(64), "short")
	s := h.ctrl.Session()
	w := h.wm.windows[s.Window]

	// 输入法在窗口更新之后才修改文本，没有经过 OnInvalidate
	h.im.capture.text = "The quick brown fox jumps over the lazy dog"
	h.im.capture.selection = len(h.im.capture.text)

	canvas := &recordingCanvas{}
	h.events().OnPaint(canvas)

	if s.Layout.LineCount != 2 {
		t.Fatalf("line count: got %d, want 2", s.Layout.LineCount)
	}
	if w.height != 100 || h.wm.resized != 1 {
		t.Errorf("height=%d resized=%d, want 100 / 1", w.height, h.wm.resized)
	}
	if top := w.widgets[WidgetOkay].Rect.Min.Y; top != 79 {
		t.Errorf("OK button top: got %d, want 79", top)
	}
	inset := canvas.find("inset")
	if len(inset) != 1 || inset[0].y1 != 50+2*10+3 {
		t.Errorf("text box: %+v", inset)
	}

	// 布局已是最新时不再调整
	h.events().OnPaint(&recordingCanvas{})
	if h.wm.resized != 1 {
		t.Errorf("unexpected resize, resized=%d", h.wm.resized)
	}
}

// TestPrePaintResizes 边框绘制之前的回调同样按最新文本调整高度
func TestPrePaintResizes(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(64), "short")
	s := h.ctrl.Session()
	w := h.wm.windows[s.Window]

	pre, ok := h.events().(types.PrePainter)
	if !ok {
		t.Fatal("text input window should handle pre-paint")
	}

	h.im.capture.text = "The quick brown fox jumps over the lazy dog"
	pre.OnPrePaint()
	if w.height != 100 {
		t.Errorf("height after pre-paint: got %d, want 100", w.height)
	}

	h.im.capture.text = "short"
	pre.OnPrePaint()
	if w.height != 90 || h.wm.resized != 2 {
		t.Errorf("height=%d resized=%d, want 90 / 2", w.height, h.wm.resized)
	}

	// 会话结束后忽略
	h.ctrl.Close()
	pre.OnPrePaint()
	if h.wm.resized != 2 {
		t.Errorf("closed session resized the window")
	}
}

// TestWidgetGeometry 测试默认控件位置
func TestWidgetGeometry(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "")
	widgets := h.wm.windows[h.ctrl.Session().Window].widgets

	tests := []struct {
		index int
		want  image.Rectangle
	}{
		{WidgetBackground, image.Rect(0, 0, 250, 90)},
		{WidgetTitle, image.Rect(1, 1, 249, 15)},
		{WidgetClose, image.Rect(237, 2, 248, 14)},
		{WidgetCancel, image.Rect(170, 69, 241, 81)},
		{WidgetOkay, image.Rect(10, 69, 81, 81)},
	}
	for _, tt := range tests {
		if got := widgets[tt.index].Rect; got != tt.want {
			t.Errorf("widget %d: got %v, want %v", tt.index, got, tt.want)
		}
	}
	if widgets[WidgetOkay].Text != "OK" || widgets[WidgetCancel].Text != "Cancel" {
		t.Errorf("labels: %q / %q", widgets[WidgetOkay].Text, widgets[WidgetCancel].Text)
	}
}

// TestPaint 测试绘制内容和光标闪烁
func TestPaint(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "Hello")

	canvas := &recordingCanvas{}
	h.events().OnPaint(canvas)

	centred := canvas.find("centred")
	if len(centred) != 1 || centred[0].x0 != 125 || centred[0].y0 != 25 {
		t.Errorf("description: %+v", centred)
	}
	inset := canvas.find("inset")
	if len(inset) != 1 || inset[0].x0 != 10 || inset[0].y0 != 50 || inset[0].x1 != 240 || inset[0].y1 != 63 {
		t.Errorf("text box: %+v", inset)
	}
	texts := canvas.find("text")
	if len(texts) != 1 || texts[0].text != "Hello" || texts[0].x0 != 12 || texts[0].y0 != 51 {
		t.Errorf("lines: %+v", texts)
	}
	// 刚打开时处于闪烁周期前半段，不绘制光标
	if fills := canvas.find("fill"); len(fills) != 0 {
		t.Errorf("caret should be hidden, got %+v", fills)
	}

	h.clock.Advance(300 * time.Millisecond)
	canvas = &recordingCanvas{}
	h.events().OnPaint(canvas)

	fills := canvas.find("fill")
	if len(fills) != 1 {
		t.Fatalf("expected caret underline, got %+v", fills)
	}
	caret := fills[0]
	if caret.x0 != 43 || caret.x1 != 49 || caret.y0 != 60 || caret.y1 != 60 {
		t.Errorf("caret: %+v", caret)
	}
	if !h.ctrl.CaretVisible() {
		t.Error("CaretVisible should be true")
	}

	// 光标所在行的屏幕矩形传给输入法
	if want := image.Rect(100+43, 200+51, 100+43+6, 200+51+10); h.im.caretRect != want {
		t.Errorf("caret bounds: got %v, want %v", h.im.caretRect, want)
	}
}

// TestPaintComposition 组合文本显示在光标下方且不修改缓冲区
func TestPaintComposition(t *testing.T) {
	h := newHarness()
	h.ctrl.OpenRaw(h.request(32), "Hello world")
	h.im.capture.selection = 5
	h.im.capture.composition = "ｺ"

	canvas := &recordingCanvas{}
	h.events().OnPaint(canvas)

	s := h.ctrl.Session()
	if s.Buffer.CurrentText() != "Hello world" {
		t.Errorf("buffer changed: %q", s.Buffer.CurrentText())
	}
	if s.Caret.X != 43 || s.Caret.Y != 51 {
		t.Errorf("caret: %+v", s.Caret)
	}

	var found bool
	for _, op := range canvas.find("text") {
		if op.text == "ｺ" {
			found = true
			if op.x0 != 40 || op.y0 != 64 {
				t.Errorf("composition text at (%d,%d), want (40,64)", op.x0, op.y0)
			}
		}
	}
	if !found {
		t.Error("composition text not drawn")
	}
}

// TestClosedControllerIgnoresCalls 没有会话时所有操作都是空操作
func TestClosedControllerIgnoresCalls(t *testing.T) {
	h := newHarness()
	h.ctrl.Commit()
	h.ctrl.Cancel()
	h.ctrl.Close()
	h.ctrl.Tick()
	h.ctrl.OnKeyPress(types.KeyReturn)

	if len(h.result) != 0 || h.im.stopped != 0 || h.ctrl.CaretVisible() {
		t.Error("closed controller should do nothing")
	}
}
