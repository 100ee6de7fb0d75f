package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// FaceMetrics 基于 ebiten text/v2 字体的像素测量
// 实现 textinput.GlyphMetrics
type FaceMetrics struct {
	Face   *text.GoTextFace
	Height int // 行高（像素），<= 0 时使用字体度量
}

// StringWidth 测量文本宽度（向上取整）
func (m FaceMetrics) StringWidth(s string) int {
	if s == "" || m.Face == nil {
		return 0
	}
	return int(math.Ceil(text.Advance(s, m.Face)))
}

// LineHeight 返回行高
func (m FaceMetrics) LineHeight() int {
	if m.Height > 0 {
		return m.Height
	}
	if m.Face == nil {
		return 0
	}
	fm := m.Face.Metrics()
	return int(math.Ceil(fm.HAscent + fm.HDescent))
}

// Wrapper 返回使用本字体测量的换行器
func (m FaceMetrics) Wrapper() Wrapper {
	return Wrapper{Measure: m.StringWidth}
}
