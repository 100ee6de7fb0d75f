package config

import (
	"fmt"
	"time"

	"github.com/decker502/textwindow/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// TextInputConfigPath 嵌入的文本输入窗口配置文件
const TextInputConfigPath = "data/config/textinput.yaml"

// WindowLayout 文本输入窗口的几何布局
// 所有坐标均为窗口内坐标（像素）
type WindowLayout struct {
	Width          int `yaml:"width"`          // 窗口固定宽度
	ChromeHeight   int `yaml:"chromeHeight"`   // 除文本行以外的固定高度
	DescriptionY   int `yaml:"descriptionY"`   // 描述文字的 y 坐标
	TextBoxGap     int `yaml:"textBoxGap"`     // 描述文字到文本框顶部的距离
	TextBoxInset   int `yaml:"textBoxInset"`   // 文本框左右与窗口边缘的距离
	TextX          int `yaml:"textX"`          // 文本绘制起点 x
	CaretX         int `yaml:"caretX"`         // 光标测量起点 x
	CaretReserve   int `yaml:"caretReserve"`   // 达到最大长度时为光标预留的宽度
	TextBoxPadding int `yaml:"textBoxPadding"` // 文本框底部额外高度
	CaptionHeight  int `yaml:"captionHeight"`  // 标题栏底部 y
	CloseBoxSize   int `yaml:"closeBoxSize"`   // 关闭按钮边长
	ButtonWidth    int `yaml:"buttonWidth"`    // OK / CANCEL 按钮宽度
	ButtonHeight   int `yaml:"buttonHeight"`   // 按钮高度
	ButtonMargin   int `yaml:"buttonMargin"`   // 按钮距窗口左右边缘
	ButtonBottom   int `yaml:"buttonBottom"`   // 按钮顶部距窗口底部
}

// CaretStyle 光标外观
type CaretStyle struct {
	UnderlineOffset int           `yaml:"underlineOffset"` // 光标线相对行顶部的偏移
	FallbackWidth   int           `yaml:"fallbackWidth"`   // 光标在文本末尾时的宽度
	MinWidth        int           `yaml:"minWidth"`        // 块状光标最小宽度
	Shrink          int           `yaml:"shrink"`          // 块状光标比字符窄的像素数
	BlinkPeriod     time.Duration `yaml:"blinkPeriod"`     // 闪烁周期，后半周期可见
}

// CompositionStyle 输入法组合文本气泡
type CompositionStyle struct {
	OffsetY int `yaml:"offsetY"` // 气泡顶部相对光标行顶部的偏移
	Border  int `yaml:"border"`  // 边框宽度
}

// TextInputConfig 文本输入窗口配置
type TextInputConfig struct {
	Window         WindowLayout     `yaml:"window"`
	Caret          CaretStyle       `yaml:"caret"`
	Composition    CompositionStyle `yaml:"composition"`
	BufferCapacity int              `yaml:"bufferCapacity"` // 文本缓冲区字节容量（含结束符）
}

// DefaultTextInputConfig 返回默认配置
// 默认值与经典 250x90 文本输入窗口一致
func DefaultTextInputConfig() *TextInputConfig {
	return &TextInputConfig{
		Window: WindowLayout{
			Width:          250,
			ChromeHeight:   80,
			DescriptionY:   25,
			TextBoxGap:     25,
			TextBoxInset:   10,
			TextX:          12,
			CaretX:         13,
			CaretReserve:   13,
			TextBoxPadding: 3,
			CaptionHeight:  14,
			CloseBoxSize:   11,
			ButtonWidth:    71,
			ButtonHeight:   12,
			ButtonMargin:   10,
			ButtonBottom:   21,
		},
		Caret: CaretStyle{
			UnderlineOffset: 9,
			FallbackWidth:   6,
			MinWidth:        4,
			Shrink:          2,
			BlinkPeriod:     500 * time.Millisecond,
		},
		Composition: CompositionStyle{
			OffsetY: 13,
			Border:  1,
		},
		BufferCapacity: 1024,
	}
}

// WrapWidth 换行可用的像素宽度
// 文本框左右各留 12 像素，再为最大长度时的光标预留 CaretReserve
func (c *TextInputConfig) WrapWidth() int {
	return c.Window.Width - (2*(c.Window.TextBoxInset+2) + c.Window.CaretReserve)
}

// TextBoxTop 文本框顶部 y
func (c *TextInputConfig) TextBoxTop() int {
	return c.Window.DescriptionY + c.Window.TextBoxGap
}

// LoadTextInputConfig 从 YAML 文件加载配置
// 文件中缺失的字段保持默认值
// 参数：
//
//	filepath - 配置文件路径（必须以 data/ 开头）
//
// 返回：
//
//	*TextInputConfig - 解析后的配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadTextInputConfig(filepath string) (*TextInputConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read text input config %s: %w", filepath, err)
	}
	return ParseTextInputConfig(data)
}

// ParseTextInputConfig 解析 YAML 内容并校验
func ParseTextInputConfig(data []byte) (*TextInputConfig, error) {
	cfg := DefaultTextInputConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse text input config YAML: %w", err)
	}

	if err := validateTextInputConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid text input config: %w", err)
	}

	return cfg, nil
}

// validateTextInputConfig 校验配置的合法性
func validateTextInputConfig(cfg *TextInputConfig) error {
	if cfg.WrapWidth() <= 0 {
		return fmt.Errorf("window.width %d leaves no room for text", cfg.Window.Width)
	}

	if cfg.Window.ChromeHeight < 0 {
		return fmt.Errorf("window.chromeHeight cannot be negative, got %d", cfg.Window.ChromeHeight)
	}

	if cfg.Window.ButtonWidth <= 0 || cfg.Window.ButtonHeight <= 0 {
		return fmt.Errorf("button size must be positive, got %dx%d", cfg.Window.ButtonWidth, cfg.Window.ButtonHeight)
	}

	if cfg.Caret.MinWidth < 1 {
		return fmt.Errorf("caret.minWidth must be at least 1, got %d", cfg.Caret.MinWidth)
	}

	if cfg.Caret.FallbackWidth < 1 {
		return fmt.Errorf("caret.fallbackWidth must be at least 1, got %d", cfg.Caret.FallbackWidth)
	}

	if cfg.Caret.BlinkPeriod <= 0 {
		return fmt.Errorf("caret.blinkPeriod must be positive, got %v", cfg.Caret.BlinkPeriod)
	}

	if cfg.Composition.Border < 0 {
		return fmt.Errorf("composition.border cannot be negative, got %d", cfg.Composition.Border)
	}

	if cfg.BufferCapacity < 2 {
		return fmt.Errorf("bufferCapacity must be at least 2, got %d", cfg.BufferCapacity)
	}

	return nil
}
