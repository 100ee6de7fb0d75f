package config

import "image/color"

// UI 全局布局与配色
// 窗口内部几何见 TextInputConfig，这里只放与具体窗口无关的参数

const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 640
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 480

	// FontSize UI 字体大小（像素）
	FontSize = 9.0
	// LineHeight 文本行高（像素）
	LineHeight = 10
)

// ScreenBackgroundColor 屏幕背景色
var ScreenBackgroundColor = color.RGBA{R: 0x2d, G: 0x5a, B: 0x27, A: 0xff}

// WindowPalette 窗口配色槽位
// 索引：0=边框/标题栏, 1=窗口背景/按钮, 2=文本与光标
type WindowPalette [3]color.RGBA

// DefaultWindowPalette 调用方窗口的默认配色
var DefaultWindowPalette = WindowPalette{
	{R: 0x3f, G: 0x56, B: 0x8c, A: 0xff},
	{R: 0x8a, G: 0x9f, B: 0xc2, A: 0xff},
	{R: 0x12, G: 0x12, B: 0x12, A: 0xff},
}

// Shade 按比例调亮（factor > 1）或调暗（factor < 1）颜色，用于绘制立体边框
func Shade(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		f := float64(v) * factor
		if f > 255 {
			return 255
		}
		if f < 0 {
			return 0
		}
		return uint8(f)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
