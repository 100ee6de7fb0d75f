package textinput

import (
	"fmt"
	"image"
	"image/color"
	"time"
	"unicode/utf8"

	"github.com/decker502/textwindow/pkg/types"
	"github.com/decker502/textwindow/pkg/utils"
)

// fixedMetrics 每个字符 6 像素，行高 10
type fixedMetrics struct{}

func (fixedMetrics) StringWidth(s string) int { return utf8.RuneCountInString(s) * 6 }
func (fixedMetrics) LineHeight() int          { return 10 }

func fixedWrapper() utils.Wrapper {
	return utils.Wrapper{Measure: fixedMetrics{}.StringWidth}
}

// fakeWindow 测试用窗口
type fakeWindow struct {
	class   types.WindowClass
	width   int
	height  int
	flags   types.WindowFlags
	events  types.WindowEvents
	widgets []types.Widget
	colours types.WindowColours
	hasCol  bool
	invalid int
}

// fakeWindowManager 记录所有调用的窗口管理器
type fakeWindowManager struct {
	windows map[types.WindowRef]*fakeWindow
	next    int
	resized int
}

func newFakeWindowManager() *fakeWindowManager {
	return &fakeWindowManager{windows: make(map[types.WindowRef]*fakeWindow)}
}

// openCaller 打开一个调用方窗口
func (m *fakeWindowManager) openCaller(colours types.WindowColours) types.WindowRef {
	m.next++
	ref := types.WindowRef{Class: types.WindowClassRideList, Number: m.next}
	m.windows[ref] = &fakeWindow{class: ref.Class, colours: colours, hasCol: true}
	return ref
}

func (m *fakeWindowManager) CreateCentred(class types.WindowClass, width, height int, flags types.WindowFlags, events types.WindowEvents) types.WindowRef {
	m.next++
	ref := types.WindowRef{Class: class, Number: m.next}
	m.windows[ref] = &fakeWindow{class: class, width: width, height: height, flags: flags, events: events}
	return ref
}

func (m *fakeWindowManager) Close(ref types.WindowRef) {
	w, ok := m.windows[ref]
	if !ok {
		return
	}
	delete(m.windows, ref)
	if w.events != nil {
		w.events.OnClose()
	}
}

func (m *fakeWindowManager) CloseByClass(class types.WindowClass) {
	for ref, w := range m.windows {
		if w.class == class {
			m.Close(ref)
		}
	}
}

func (m *fakeWindowManager) Exists(ref types.WindowRef) bool {
	_, ok := m.windows[ref]
	return ok
}

func (m *fakeWindowManager) Origin(ref types.WindowRef) image.Point {
	return image.Pt(100, 200)
}

func (m *fakeWindowManager) Size(ref types.WindowRef) (int, int) {
	if w, ok := m.windows[ref]; ok {
		return w.width, w.height
	}
	return 0, 0
}

func (m *fakeWindowManager) SetSize(ref types.WindowRef, width, height int) {
	if w, ok := m.windows[ref]; ok {
		w.width, w.height = width, height
		m.resized++
	}
}

func (m *fakeWindowManager) SetWidgets(ref types.WindowRef, widgets []types.Widget) {
	if w, ok := m.windows[ref]; ok {
		w.widgets = widgets
	}
}

func (m *fakeWindowManager) Invalidate(ref types.WindowRef) {
	if w, ok := m.windows[ref]; ok {
		w.invalid++
	}
}

func (m *fakeWindowManager) Colours(ref types.WindowRef) (types.WindowColours, bool) {
	if w, ok := m.windows[ref]; ok && w.hasCol {
		return w.colours, true
	}
	return types.WindowColours{}, false
}

func (m *fakeWindowManager) SetColours(ref types.WindowRef, colours types.WindowColours) {
	if w, ok := m.windows[ref]; ok {
		w.colours = colours
		w.hasCol = true
	}
}

// countClass 统计某类别的窗口数
func (m *fakeWindowManager) countClass(class types.WindowClass) int {
	n := 0
	for _, w := range m.windows {
		if w.class == class {
			n++
		}
	}
	return n
}

// fakeCapture 测试用输入法捕获，字段可直接修改
type fakeCapture struct {
	text        string
	selection   int
	composition string
}

func (c *fakeCapture) Text() string        { return c.text }
func (c *fakeCapture) SelectionStart() int { return c.selection }
func (c *fakeCapture) Composition() string { return c.composition }

// fakeInputMethod 记录捕获的开始和停止
type fakeInputMethod struct {
	capture   *fakeCapture
	maxLength int
	started   int
	stopped   int
	caretRect image.Rectangle
}

func (im *fakeInputMethod) StartCapture(text string, maxLength int) Capture {
	im.started++
	im.maxLength = maxLength
	im.capture = &fakeCapture{text: text, selection: len(text)}
	return im.capture
}

func (im *fakeInputMethod) StopCapture() {
	im.stopped++
}

func (im *fakeInputMethod) SetCaretBounds(bounds image.Rectangle) {
	im.caretRect = bounds
}

func (im *fakeInputMethod) active() bool {
	return im.started > im.stopped
}

// canvasOp 一次绘制调用
type canvasOp struct {
	kind           string
	x0, y0, x1, y1 int
	text           string
	clr            color.Color
}

// recordingCanvas 记录所有绘制调用
type recordingCanvas struct {
	ops []canvasOp
}

func (c *recordingCanvas) FillRect(x0, y0, x1, y1 int, clr color.Color) {
	c.ops = append(c.ops, canvasOp{kind: "fill", x0: x0, y0: y0, x1: x1, y1: y1, clr: clr})
}

func (c *recordingCanvas) FillRectInset(x0, y0, x1, y1 int, clr color.Color) {
	c.ops = append(c.ops, canvasOp{kind: "inset", x0: x0, y0: y0, x1: x1, y1: y1, clr: clr})
}

func (c *recordingCanvas) DrawString(s string, x, y int, clr color.Color) int {
	c.ops = append(c.ops, canvasOp{kind: "text", x0: x, y0: y, text: s, clr: clr})
	return x + fixedMetrics{}.StringWidth(s)
}

func (c *recordingCanvas) DrawStringCentred(s string, cx, y int, clr color.Color) {
	c.ops = append(c.ops, canvasOp{kind: "centred", x0: cx, y0: y, text: s, clr: clr})
}

// find 返回指定类型的所有绘制调用
func (c *recordingCanvas) find(kind string) []canvasOp {
	var out []canvasOp
	for _, op := range c.ops {
		if op.kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// fakeClock 可手动推进的时钟
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// mapFormatter 测试用字符串表
type mapFormatter map[string]string

func (f mapFormatter) Format(key string, args ...any) string {
	tmpl, ok := f[key]
	if !ok {
		return fmt.Sprintf("[%s]", key)
	}
	return utils.ExpandTemplate(tmpl, args...)
}

// harness 组装控制器和所有假对象
type harness struct {
	wm     *fakeWindowManager
	im     *fakeInputMethod
	clock  *fakeClock
	ctrl   *Controller
	caller types.WindowRef
	result []Result
}

var testColours = types.WindowColours{
	{R: 0x40, G: 0x40, B: 0x80, A: 0xff},
	{R: 0x80, G: 0x80, B: 0xc0, A: 0xff},
	{R: 0x10, G: 0x10, B: 0x10, A: 0xff},
}

func newHarness() *harness {
	h := &harness{
		wm:    newFakeWindowManager(),
		im:    &fakeInputMethod{},
		clock: newFakeClock(),
	}
	h.caller = h.wm.openCaller(testColours)
	h.ctrl = NewController(Dependencies{
		Windows:     h.wm,
		InputMethod: h.im,
		Metrics:     fixedMetrics{},
		Wrapper:     fixedWrapper(),
		Strings: mapFormatter{
			"STR_TITLE":      "Ride name",
			"STR_DESC":       "Enter new name for this ride:",
			"STR_RIDE_FMT":   "{0} {1}",
			"STR_FORMATTED":  "{RED}Coloured{BLACK} name",
			"STR_WITH_ARGS":  "Rename {0}:",
			"STR_LONG_NAME":  "The quick brown fox jumps over the lazy dog",
			"STR_EMPTY_NAME": "",
		},
		Clock: h.clock.Now,
	}, nil)
	return h
}

// request 构造指向 harness 调用方的请求
func (h *harness) request(maxLength int) Request {
	return Request{
		Caller:      h.caller,
		Widget:      7,
		Title:       "STR_TITLE",
		Description: "STR_DESC",
		MaxLength:   maxLength,
		OnResult: func(r Result) {
			h.result = append(h.result, r)
		},
	}
}

// events 当前文本输入窗口的事件接收者
func (h *harness) events() types.WindowEvents {
	s := h.ctrl.Session()
	if s == nil {
		return nil
	}
	return h.wm.windows[s.Window].events
}
