package systems

import (
	"log"

	"github.com/decker502/textwindow/pkg/types"
	"github.com/decker502/textwindow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowInputSystem 窗口输入系统
// 负责把鼠标和按键分发给窗口
//
// 职责：
//   - 鼠标在控件上按下并在同一控件上释放时触发 OnMouseUp
//   - 更新控件悬停状态（按钮按下效果）
//   - Enter / ESC 发送给最上层窗口，输入法占用本帧按键时除外
type WindowInputSystem struct {
	windows *WindowSystem
	keys    KeyConsumer

	pressedWindow types.WindowRef
}

// KeyConsumer 报告本帧按键是否已被输入法占用
// InputMethodSystem 实现此接口，必须在 WindowInputSystem 之前更新
type KeyConsumer interface {
	Consumed() bool
}

// NewWindowInputSystem 创建窗口输入系统
func NewWindowInputSystem(windows *WindowSystem) *WindowInputSystem {
	return &WindowInputSystem{windows: windows}
}

// SetKeyConsumer 设置输入法，nil 表示按键总是发送给窗口
func (s *WindowInputSystem) SetKeyConsumer(keys KeyConsumer) {
	s.keys = keys
}

// Update 读取本帧输入并分发
func (s *WindowInputSystem) Update(deltaTime float64) {
	utils.UpdateLastTouchPosition()

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		s.HandleKey(types.KeyReturn)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.HandleKey(types.KeyEscape)
	}

	x, y := utils.GetPointerPosition()
	s.HandlePointerMove(x, y)

	if pressed, px, py := utils.IsPointerJustPressed(); pressed {
		s.HandlePointerDown(px, py)
	}
	if released, rx, ry := utils.IsPointerJustReleased(); released {
		s.HandlePointerUp(rx, ry)
	}
}

// HandleKey 把按键发送给最上层窗口
// 输入法正在组合或本帧已处理输入时忽略，确认或放弃组合文本不会提交或关闭窗口
func (s *WindowInputSystem) HandleKey(key rune) {
	if s.keys != nil && s.keys.Consumed() {
		log.Printf("[WindowInputSystem] 按键 %d 已被输入法处理，忽略", key)
		return
	}
	win, ok := s.windows.Front()
	if !ok || win.Events == nil {
		return
	}
	if handler, ok := win.Events.(types.KeyHandler); ok {
		handler.OnKeyPress(key)
	}
}

// HandlePointerMove 更新悬停控件
func (s *WindowInputSystem) HandlePointerMove(x, y int) {
	for _, win := range s.windows.windows() {
		win.HoveredWidget = -1
	}
	if win, ok := s.windows.Topmost(x, y); ok {
		win.HoveredWidget = win.WidgetAt(x-win.X, y-win.Y)
	}
}

// HandlePointerDown 记录按下的窗口和控件
func (s *WindowInputSystem) HandlePointerDown(x, y int) {
	s.clearPressed()

	win, ok := s.windows.Topmost(x, y)
	if !ok {
		return
	}
	win.PressedWidget = win.WidgetAt(x-win.X, y-win.Y)
	win.HoveredWidget = win.PressedWidget
	s.pressedWindow = win.Ref
}

// HandlePointerUp 在按下的同一控件上释放时触发点击
func (s *WindowInputSystem) HandlePointerUp(x, y int) {
	defer s.clearPressed()

	win, ok := s.windows.Topmost(x, y)
	if !ok || win.Ref != s.pressedWindow {
		return
	}
	widget := win.WidgetAt(x-win.X, y-win.Y)
	if widget < 0 || widget != win.PressedWidget {
		return
	}

	log.Printf("[WindowInputSystem] 点击窗口 %s 控件 %d", win.Ref, widget)
	win.PressedWidget = -1
	if win.Events != nil {
		win.Events.OnMouseUp(widget)
	}
}

// clearPressed 清除所有窗口的按下状态
func (s *WindowInputSystem) clearPressed() {
	for _, win := range s.windows.windows() {
		win.PressedWidget = -1
	}
	s.pressedWindow = types.WindowRef{}
}
