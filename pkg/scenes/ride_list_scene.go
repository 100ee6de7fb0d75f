package scenes

import (
	"image"
	"log"

	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/ecs"
	"github.com/decker502/textwindow/pkg/game"
	"github.com/decker502/textwindow/pkg/systems"
	"github.com/decker502/textwindow/pkg/textinput"
	"github.com/decker502/textwindow/pkg/types"
	"github.com/decker502/textwindow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 名称列表窗口的控件索引，重命名按钮从 RideListWidgetFirstRename 开始依次排列
const (
	RideListWidgetFrame = iota
	RideListWidgetCaption
	RideListWidgetClose
	RideListWidgetFirstRename
)

// 名称列表窗口布局
const (
	rideListX          = 24
	rideListY          = 24
	rideListWidth      = 260
	rideListCaption    = 14
	rideListRowHeight  = 15
	rideListPadding    = 6
	renameButtonWidth  = 56
	renameButtonHeight = 12

	// MaxRideNameLength 名称最大字符数
	MaxRideNameLength = 32
)

// RideListHeight 名称列表窗口高度
func RideListHeight(rows int) int {
	return rideListCaption + 2 + rideListPadding + rows*rideListRowHeight + rideListPadding
}

// rideRowTop 第 row 行顶部 y（窗口内坐标）
func rideRowTop(row int) int {
	return rideListCaption + 2 + rideListPadding + row*rideListRowHeight
}

// BuildRideListWidgets 生成名称列表窗口的控件
func BuildRideListWidgets(title, renameLabel string, rows int) []types.Widget {
	height := RideListHeight(rows)
	closeLeft := rideListWidth - 13

	widgets := []types.Widget{
		RideListWidgetFrame: {
			Type:   types.WidgetFrame,
			Colour: 1,
			Rect:   image.Rect(0, 0, rideListWidth, height),
		},
		RideListWidgetCaption: {
			Type:   types.WidgetCaption,
			Colour: 0,
			Rect:   image.Rect(1, 1, rideListWidth-1, rideListCaption+1),
			Text:   title,
		},
		RideListWidgetClose: {
			Type:    types.WidgetCloseBox,
			Colour:  1,
			Rect:    image.Rect(closeLeft, 2, closeLeft+11, 14),
			Text:    "×",
			Enabled: true,
		},
	}

	buttonLeft := rideListWidth - rideListPadding - renameButtonWidth
	for row := 0; row < rows; row++ {
		top := rideRowTop(row)
		widgets = append(widgets, types.Widget{
			Type:    types.WidgetButton,
			Colour:  1,
			Rect:    image.Rect(buttonLeft, top, buttonLeft+renameButtonWidth, top+renameButtonHeight),
			Text:    renameLabel,
			Enabled: true,
		})
	}
	return widgets
}

// RideListScene 名称列表演示场景
// 列表窗口为每一项提供重命名按钮，点击后打开文本输入窗口
//
// 每帧顺序：输入法 -> 窗口输入 -> 窗口更新
type RideListScene struct {
	entityManager     *ecs.EntityManager
	windowSystem      *systems.WindowSystem
	windowInputSystem *systems.WindowInputSystem
	inputMethodSystem *systems.InputMethodSystem
	controller        *textinput.Controller

	strings *game.StringTable
	names   *RideNames
	face    *text.GoTextFace

	listWindow types.WindowRef
	listOpen   bool
}

// NewRideListScene 创建名称列表场景并打开列表窗口
//
// 参数：
//   - st: 字符串表
//   - store: 保存自定义名称，长度应与 rides 一致
//   - face: UI 字体，可为 nil（不绘制文字，用于测试）
//   - cfg: 文本输入窗口配置，nil 时使用默认值
func NewRideListScene(st *game.StringTable, store *game.NameStore, rides []Ride, face *text.GoTextFace, cfg *config.TextInputConfig) *RideListScene {
	em := ecs.NewEntityManager()
	windowSystem := systems.NewWindowSystem(em, config.ScreenWidth, config.ScreenHeight, face)
	inputMethodSystem := systems.NewInputMethodSystem(em)

	metrics := utils.FaceMetrics{Face: face, Height: config.LineHeight}
	controller := textinput.NewController(textinput.Dependencies{
		Windows:     windowSystem,
		InputMethod: inputMethodSystem,
		Metrics:     metrics,
		Wrapper:     metrics.Wrapper(),
		Strings:     st,
	}, cfg)
	controller.OKLabel = st.GetString("STR_OK")
	controller.CancelLabel = st.GetString("STR_CANCEL")

	windowInputSystem := systems.NewWindowInputSystem(windowSystem)
	windowInputSystem.SetKeyConsumer(inputMethodSystem)

	scene := &RideListScene{
		entityManager:     em,
		windowSystem:      windowSystem,
		windowInputSystem: windowInputSystem,
		inputMethodSystem: inputMethodSystem,
		controller:        controller,
		strings:           st,
		names:             NewRideNames(st, store, rides),
		face:              face,
	}
	scene.OpenList()
	return scene
}

// Controller 文本输入控制器
func (s *RideListScene) Controller() *textinput.Controller {
	return s.controller
}

// Windows 窗口管理系统
func (s *RideListScene) Windows() *systems.WindowSystem {
	return s.windowSystem
}

// InputMethod 输入法系统
func (s *RideListScene) InputMethod() *systems.InputMethodSystem {
	return s.inputMethodSystem
}

// Names 名称模型
func (s *RideListScene) Names() *RideNames {
	return s.names
}

// ListWindow 列表窗口引用，第二个返回值表示窗口是否打开
func (s *RideListScene) ListWindow() (types.WindowRef, bool) {
	return s.listWindow, s.listOpen
}

// OpenList 打开列表窗口，已打开时什么也不做
func (s *RideListScene) OpenList() {
	if s.listOpen {
		return
	}
	rows := s.names.Len()
	s.listWindow = s.windowSystem.Create(types.WindowClassRideList, rideListX, rideListY,
		rideListWidth, RideListHeight(rows), 0, &rideListEvents{scene: s})
	s.windowSystem.SetWidgets(s.listWindow, BuildRideListWidgets(
		s.strings.GetString("STR_RIDE_LIST_TITLE"), s.strings.GetString("STR_RENAME"), rows))
	s.listOpen = true
}

// CloseList 关闭列表窗口，打开中的文本输入窗口会在下一帧随之关闭
func (s *RideListScene) CloseList() {
	if s.listOpen {
		s.windowSystem.Close(s.listWindow)
	}
}

// BeginRename 为第 index 项打开文本输入窗口
// 没有自定义名称时用默认名称模板生成已有文本
func (s *RideListScene) BeginRename(index int) {
	if !s.listOpen || index < 0 || index >= s.names.Len() {
		return
	}

	req := textinput.Request{
		Caller:      s.listWindow,
		Widget:      RideListWidgetFirstRename + index,
		Title:       "STR_RIDE_NAME_TITLE",
		Description: "STR_RIDE_NAME_PROMPT",
		MaxLength:   MaxRideNameLength,
		OnResult:    s.onRename,
	}

	if s.names.IsCustom(index) {
		s.controller.OpenRaw(req, s.names.DisplayName(index))
		return
	}
	s.controller.Open(req, RideNameFormatKey, s.names.BaseName(index), s.names.Ride(index).Number)
}

// onRename 接收文本输入结果
func (s *RideListScene) onRename(r textinput.Result) {
	if !r.OK {
		return
	}
	index := r.Widget - RideListWidgetFirstRename

	changed, err := s.names.Rename(index, r.Text)
	if err != nil {
		log.Printf("[RideListScene] Warning: 保存名称失败: %v", err)
	}
	if changed {
		log.Printf("[RideListScene] 第 %d 项重命名为 %q", index, s.names.DisplayName(index))
		s.windowSystem.Invalidate(s.listWindow)
	}
}

// Update 更新场景
func (s *RideListScene) Update(deltaTime float64) {
	// R 键重新打开被关闭的列表
	if !s.listOpen && !s.controller.IsOpen() && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.OpenList()
	}

	s.inputMethodSystem.Update(deltaTime)
	s.windowInputSystem.Update(deltaTime)
	s.windowSystem.Update(deltaTime)
}

// Draw 绘制背景、窗口和提示文字
func (s *RideListScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.ScreenBackgroundColor)
	s.windowSystem.Draw(screen)

	if !s.listOpen && s.face != nil {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(rideListX), float64(config.ScreenHeight-2*config.LineHeight))
		op.ColorScale.ScaleWithColor(config.DefaultWindowPalette[1])
		text.Draw(screen, s.strings.GetString("STR_REOPEN_HINT"), s.face, op)
	}
}

// SaveOnExit 退出前保存名称
func (s *RideListScene) SaveOnExit() bool {
	s.controller.Close()
	if err := s.names.store.Save(); err != nil {
		log.Printf("[RideListScene] Warning: 退出时保存失败: %v", err)
		return false
	}
	return true
}

// rideListEvents 列表窗口事件
type rideListEvents struct {
	scene *RideListScene
}

func (e *rideListEvents) OnMouseUp(widget int) {
	switch {
	case widget == RideListWidgetClose:
		e.scene.CloseList()
	case widget >= RideListWidgetFirstRename:
		e.scene.BeginRename(widget - RideListWidgetFirstRename)
	}
}

func (e *rideListEvents) OnUpdate() {}

func (e *rideListEvents) OnInvalidate() {}

// OnPaint 绘制每一行的名称
func (e *rideListEvents) OnPaint(canvas types.Canvas) {
	s := e.scene
	colours, _ := s.windowSystem.Colours(s.listWindow)
	for row := 0; row < s.names.Len(); row++ {
		canvas.DrawString(s.names.DisplayName(row), rideListPadding, rideRowTop(row)+1, colours[2])
	}
}

func (e *rideListEvents) OnClose() {
	e.scene.listOpen = false
	log.Printf("[RideListScene] 列表窗口已关闭")
}
