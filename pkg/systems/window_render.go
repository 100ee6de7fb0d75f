package systems

import (
	"image/color"

	"github.com/decker502/textwindow/pkg/components"
	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/types"
)

var captionTextColour = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// DrawWidgets 按索引顺序绘制窗口控件
func DrawWidgets(canvas types.Canvas, win *components.WindowComponent) {
	for i, widget := range win.Widgets {
		x0, y0 := widget.Rect.Min.X, widget.Rect.Min.Y
		x1, y1 := widget.Rect.Max.X-1, widget.Rect.Max.Y-1
		if x1 < x0 || y1 < y0 {
			continue
		}

		slot := widget.Colour
		if slot < 0 || slot >= len(win.Colours) {
			slot = 0
		}
		base := win.Colours[slot]
		textColour := win.Colours[2]

		switch widget.Type {
		case types.WidgetFrame:
			canvas.FillRect(x0, y0, x1, y1, win.Colours[0])
			canvas.FillRect(x0+1, y0+1, x1-1, y1-1, base)

		case types.WidgetCaption:
			canvas.FillRect(x0, y0, x1, y1, win.Colours[0])
			canvas.DrawStringCentred(widget.Text, (x0+x1+1)/2, y0+2, captionTextColour)

		case types.WidgetCloseBox, types.WidgetButton:
			pressed := i == win.PressedWidget && i == win.HoveredWidget
			drawButton(canvas, x0, y0, x1, y1, base, pressed)
			canvas.DrawStringCentred(widget.Text, (x0+x1+1)/2, y0+1, textColour)
		}
	}
}

// drawButton 绘制凸起按钮，按下时显示为凹陷
func drawButton(canvas types.Canvas, x0, y0, x1, y1 int, base color.RGBA, pressed bool) {
	if pressed {
		canvas.FillRectInset(x0, y0, x1, y1, base)
		return
	}
	canvas.FillRect(x0, y0, x1, y1, config.Shade(base, 0.5))
	canvas.FillRect(x0, y0, x1-1, y1-1, config.Shade(base, 1.3))
	canvas.FillRect(x0+1, y0+1, x1-1, y1-1, base)
}
