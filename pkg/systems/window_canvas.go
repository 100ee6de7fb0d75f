package systems

import (
	"image"
	"image/color"

	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// WindowCanvas 以窗口左上角为原点的绘制上下文
// 实现 types.Canvas，矩形坐标为闭区间
type WindowCanvas struct {
	screen  *ebiten.Image
	origin  image.Point
	face    *text.GoTextFace
	metrics utils.FaceMetrics
}

// NewWindowCanvas 创建窗口绘制上下文
func NewWindowCanvas(screen *ebiten.Image, origin image.Point, face *text.GoTextFace) *WindowCanvas {
	return &WindowCanvas{
		screen:  screen,
		origin:  origin,
		face:    face,
		metrics: utils.FaceMetrics{Face: face},
	}
}

// FillRect 填充矩形
func (c *WindowCanvas) FillRect(x0, y0, x1, y1 int, clr color.Color) {
	if x1 < x0 || y1 < y0 {
		return
	}
	vector.DrawFilledRect(c.screen,
		float32(c.origin.X+x0), float32(c.origin.Y+y0),
		float32(x1-x0+1), float32(y1-y0+1),
		clr, false)
}

// FillRectInset 绘制凹陷矩形：左上暗边、右下亮边、中间填充
func (c *WindowCanvas) FillRectInset(x0, y0, x1, y1 int, clr color.Color) {
	base := toRGBA(clr)
	c.FillRect(x0, y0, x1, y1, config.Shade(base, 1.3))
	c.FillRect(x0, y0, x1-1, y1-1, config.Shade(base, 0.5))
	c.FillRect(x0+1, y0+1, x1-1, y1-1, base)
}

// DrawString 在 (x, y) 左上角绘制文本
func (c *WindowCanvas) DrawString(s string, x, y int, clr color.Color) int {
	if s == "" || c.face == nil {
		return x
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignStart
	op.GeoM.Translate(float64(c.origin.X+x), float64(c.origin.Y+y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(c.screen, s, c.face, op)
	return x + c.metrics.StringWidth(s)
}

// DrawStringCentred 以 cx 为水平中心绘制文本
func (c *WindowCanvas) DrawStringCentred(s string, cx, y int, clr color.Color) {
	c.DrawString(s, cx-c.metrics.StringWidth(s)/2, y, clr)
}

// toRGBA 把任意颜色转换为 RGBA
func toRGBA(clr color.Color) color.RGBA {
	if rgba, ok := clr.(color.RGBA); ok {
		return rgba
	}
	return color.RGBAModel.Convert(clr).(color.RGBA)
}
