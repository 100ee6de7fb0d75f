package systems

import (
	"image"
	"log"
	"sort"

	"github.com/decker502/textwindow/pkg/components"
	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/ecs"
	"github.com/decker502/textwindow/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WindowSystem 窗口管理系统
// 每个窗口是一个带 WindowComponent 的实体
//
// 职责：
//   - 创建、关闭、查找窗口（实现 textinput.WindowManager）
//   - 维护 z 顺序：StickToFront 窗口总在普通窗口之上，同层后创建的在上
//   - 每帧调用窗口的 OnUpdate / OnInvalidate
//   - 绘制窗口控件并调用 OnPaint
type WindowSystem struct {
	entityManager *ecs.EntityManager
	screenWidth   int
	screenHeight  int
	face          *text.GoTextFace

	numbers map[types.WindowClass]int
	order   int
}

// NewWindowSystem 创建窗口管理系统
func NewWindowSystem(em *ecs.EntityManager, screenWidth, screenHeight int, face *text.GoTextFace) *WindowSystem {
	return &WindowSystem{
		entityManager: em,
		screenWidth:   screenWidth,
		screenHeight:  screenHeight,
		face:          face,
		numbers:       make(map[types.WindowClass]int),
	}
}

// Create 在指定位置创建窗口
func (s *WindowSystem) Create(class types.WindowClass, x, y, width, height int, flags types.WindowFlags, events types.WindowEvents) types.WindowRef {
	s.numbers[class]++
	s.order++
	ref := types.WindowRef{Class: class, Number: s.numbers[class]}

	entityID := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, entityID, &components.WindowComponent{
		Ref:           ref,
		X:             x,
		Y:             y,
		Width:         width,
		Height:        height,
		Flags:         flags,
		Colours:       types.WindowColours(config.DefaultWindowPalette),
		Events:        events,
		Order:         s.order,
		Dirty:         true,
		PressedWidget: -1,
		HoveredWidget: -1,
	})

	log.Printf("[WindowSystem] 创建窗口 %s (%d,%d %dx%d)", ref, x, y, width, height)
	return ref
}

// CreateCentred 在屏幕中央创建窗口
func (s *WindowSystem) CreateCentred(class types.WindowClass, width, height int, flags types.WindowFlags, events types.WindowEvents) types.WindowRef {
	x := (s.screenWidth - width) / 2
	y := (s.screenHeight - height) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return s.Create(class, x, y, width, height, flags, events)
}

// find 查找窗口实体
func (s *WindowSystem) find(ref types.WindowRef) (ecs.EntityID, *components.WindowComponent, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.WindowComponent](s.entityManager) {
		win, ok := ecs.GetComponent[*components.WindowComponent](s.entityManager, id)
		if ok && win.Ref == ref {
			return id, win, true
		}
	}
	return 0, nil, false
}

// Close 关闭窗口
// 实体先被标记删除，OnClose 回调中查询该窗口将返回不存在
func (s *WindowSystem) Close(ref types.WindowRef) {
	id, win, ok := s.find(ref)
	if !ok {
		return
	}
	s.entityManager.DestroyEntity(id)
	log.Printf("[WindowSystem] 关闭窗口 %s", ref)

	if win.Events != nil {
		win.Events.OnClose()
	}
}

// CloseByClass 关闭某一类别的所有窗口
func (s *WindowSystem) CloseByClass(class types.WindowClass) {
	for _, win := range s.windows() {
		if win.Ref.Class == class {
			s.Close(win.Ref)
		}
	}
}

// Exists 窗口是否仍然打开
func (s *WindowSystem) Exists(ref types.WindowRef) bool {
	_, _, ok := s.find(ref)
	return ok
}

// Origin 窗口左上角的屏幕坐标
func (s *WindowSystem) Origin(ref types.WindowRef) image.Point {
	if _, win, ok := s.find(ref); ok {
		return image.Pt(win.X, win.Y)
	}
	return image.Point{}
}

// Size 窗口大小
func (s *WindowSystem) Size(ref types.WindowRef) (int, int) {
	if _, win, ok := s.find(ref); ok {
		return win.Width, win.Height
	}
	return 0, 0
}

// SetSize 调整窗口大小，左上角位置不变
func (s *WindowSystem) SetSize(ref types.WindowRef, width, height int) {
	if _, win, ok := s.find(ref); ok {
		win.Width, win.Height = width, height
	}
}

// SetWidgets 替换窗口控件
func (s *WindowSystem) SetWidgets(ref types.WindowRef, widgets []types.Widget) {
	if _, win, ok := s.find(ref); ok {
		win.Widgets = widgets
	}
}

// Invalidate 标记窗口需要重新布局
func (s *WindowSystem) Invalidate(ref types.WindowRef) {
	if _, win, ok := s.find(ref); ok {
		win.Dirty = true
	}
}

// Colours 窗口配色
func (s *WindowSystem) Colours(ref types.WindowRef) (types.WindowColours, bool) {
	if _, win, ok := s.find(ref); ok {
		return win.Colours, true
	}
	return types.WindowColours{}, false
}

// SetColours 设置窗口配色
func (s *WindowSystem) SetColours(ref types.WindowRef, colours types.WindowColours) {
	if _, win, ok := s.find(ref); ok {
		win.Colours = colours
	}
}

// windows 按绘制顺序（从下到上）返回所有窗口
func (s *WindowSystem) windows() []*components.WindowComponent {
	ids := ecs.GetEntitiesWith1[*components.WindowComponent](s.entityManager)
	result := make([]*components.WindowComponent, 0, len(ids))
	for _, id := range ids {
		if win, ok := ecs.GetComponent[*components.WindowComponent](s.entityManager, id); ok {
			result = append(result, win)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.StickToFront() != b.StickToFront() {
			return !a.StickToFront()
		}
		return a.Order < b.Order
	})
	return result
}

// Topmost 返回屏幕坐标处最上层的窗口
func (s *WindowSystem) Topmost(x, y int) (*components.WindowComponent, bool) {
	wins := s.windows()
	for i := len(wins) - 1; i >= 0; i-- {
		if wins[i].Contains(x, y) {
			return wins[i], true
		}
	}
	return nil, false
}

// Front 返回最上层的窗口（接收键盘事件）
func (s *WindowSystem) Front() (*components.WindowComponent, bool) {
	wins := s.windows()
	if len(wins) == 0 {
		return nil, false
	}
	return wins[len(wins)-1], true
}

// Count 打开的窗口数量
func (s *WindowSystem) Count() int {
	return len(s.windows())
}

// Update 每帧调用窗口的 OnUpdate，之后对需要重新布局的窗口调用 OnInvalidate
// 回调中关闭的窗口在本帧剩余部分不再收到事件
func (s *WindowSystem) Update(deltaTime float64) {
	for _, win := range s.windows() {
		if win.Events != nil && s.Exists(win.Ref) {
			win.Events.OnUpdate()
		}
	}

	for _, win := range s.windows() {
		if !win.Dirty {
			continue
		}
		win.Dirty = false
		if win.Events != nil {
			win.Events.OnInvalidate()
		}
	}

	s.entityManager.RemoveMarkedEntities()
}

// Draw 从下到上绘制所有窗口
func (s *WindowSystem) Draw(screen *ebiten.Image) {
	s.prePaint()
	for _, win := range s.windows() {
		canvas := NewWindowCanvas(screen, image.Pt(win.X, win.Y), s.face)
		DrawWidgets(canvas, win)
		if win.Events != nil {
			win.Events.OnPaint(canvas)
		}
	}
}

// prePaint 绘制前让窗口按最新内容调整大小
func (s *WindowSystem) prePaint() {
	for _, win := range s.windows() {
		if p, ok := win.Events.(types.PrePainter); ok {
			p.OnPrePaint()
		}
	}
}
