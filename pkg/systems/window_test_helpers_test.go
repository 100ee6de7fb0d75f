package systems

import (
	"image/color"

	"github.com/decker502/textwindow/pkg/types"
)

// recordedEvents 记录窗口事件
type recordedEvents struct {
	mouseUps    []int
	updates     int
	invalidates int
	paints      int
	closes      int

	onUpdate func()
}

func (e *recordedEvents) OnMouseUp(widget int) { e.mouseUps = append(e.mouseUps, widget) }
func (e *recordedEvents) OnUpdate() {
	e.updates++
	if e.onUpdate != nil {
		e.onUpdate()
	}
}
func (e *recordedEvents) OnInvalidate()        { e.invalidates++ }
func (e *recordedEvents) OnPaint(types.Canvas) { e.paints++ }
func (e *recordedEvents) OnClose()             { e.closes++ }

// keyEvents 同时接收按键的窗口
type keyEvents struct {
	recordedEvents
	keys []rune
}

func (e *keyEvents) OnKeyPress(key rune) { e.keys = append(e.keys, key) }

// prePaintEvents 记录绘制前回调
type prePaintEvents struct {
	recordedEvents
	prePaints int
	onPre     func()
}

func (e *prePaintEvents) OnPrePaint() {
	e.prePaints++
	if e.onPre != nil {
		e.onPre()
	}
}

// paintOp 一次绘制调用
type paintOp struct {
	kind           string
	x0, y0, x1, y1 int
	text           string
	clr            color.Color
}

// recordingCanvas 记录绘制调用
type recordingCanvas struct {
	ops []paintOp
}

func (c *recordingCanvas) FillRect(x0, y0, x1, y1 int, clr color.Color) {
	c.ops = append(c.ops, paintOp{kind: "fill", x0: x0, y0: y0, x1: x1, y1: y1, clr: clr})
}

func (c *recordingCanvas) FillRectInset(x0, y0, x1, y1 int, clr color.Color) {
	c.ops = append(c.ops, paintOp{kind: "inset", x0: x0, y0: y0, x1: x1, y1: y1, clr: clr})
}

func (c *recordingCanvas) DrawString(s string, x, y int, clr color.Color) int {
	c.ops = append(c.ops, paintOp{kind: "text", x0: x, y0: y, text: s, clr: clr})
	return x
}

func (c *recordingCanvas) DrawStringCentred(s string, cx, y int, clr color.Color) {
	c.ops = append(c.ops, paintOp{kind: "centred", x0: cx, y0: y, text: s, clr: clr})
}
