package textinput

import (
	"image"

	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/types"
)

// 文本输入窗口的控件索引
const (
	WidgetBackground = iota
	WidgetTitle
	WidgetClose
	WidgetCancel
	WidgetOkay
)

// buildWidgets 按当前窗口高度生成控件列表
// OK / CANCEL 按钮和背景底边跟随窗口高度
func buildWidgets(layout config.WindowLayout, title, okLabel, cancelLabel string, height int) []types.Widget {
	w := layout.Width
	buttonTop := height - layout.ButtonBottom
	closeLeft := w - 2 - layout.CloseBoxSize

	return []types.Widget{
		WidgetBackground: {
			Type:   types.WidgetFrame,
			Colour: 1,
			Rect:   image.Rect(0, 0, w, height),
		},
		WidgetTitle: {
			Type:   types.WidgetCaption,
			Colour: 1,
			Rect:   image.Rect(1, 1, w-1, layout.CaptionHeight+1),
			Text:   title,
		},
		WidgetClose: {
			Type:    types.WidgetCloseBox,
			Colour:  1,
			Rect:    image.Rect(closeLeft, 2, closeLeft+layout.CloseBoxSize, 2+layout.CloseBoxSize+1),
			Text:    "×",
			Enabled: true,
		},
		WidgetCancel: {
			Type:    types.WidgetButton,
			Colour:  1,
			Rect:    image.Rect(w-layout.ButtonMargin-layout.ButtonWidth+1, buttonTop, w-layout.ButtonMargin+1, buttonTop+layout.ButtonHeight),
			Text:    cancelLabel,
			Enabled: true,
		},
		WidgetOkay: {
			Type:    types.WidgetButton,
			Colour:  1,
			Rect:    image.Rect(layout.ButtonMargin, buttonTop, layout.ButtonMargin+layout.ButtonWidth, buttonTop+layout.ButtonHeight),
			Text:    okLabel,
			Enabled: true,
		},
	}
}
