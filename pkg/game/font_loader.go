package game

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// LoadUIFont 加载 UI 字体（M+ 1p，覆盖拉丁字母和日文假名）
func LoadUIFont(size float64) (*text.GoTextFace, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.MPlus1pRegular_ttf))
	if err != nil {
		return nil, fmt.Errorf("failed to load UI font: %w", err)
	}
	return &text.GoTextFace{Source: src, Size: size}, nil
}
