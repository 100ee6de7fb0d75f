// Package main 提供文本输入窗口测试工具
// 用于单独验证文本输入窗口：折行、光标、输入法组合文本和提交/取消
//
// 用法:
//
//	go run ./cmd/test_textinput -text "Wooden Roller Coaster 1" -max 32
//	go run ./cmd/test_textinput -type " Deluxe" -autocommit
//
// 功能:
//   - 打开一个调用方窗口和文本输入窗口
//   - 支持文本输入（含输入法）、光标移动、退格、删除
//   - 点击 OK 或回车后打印输入的文本并退出
//   - 点击 Cancel、关闭按钮或按 ESC 打印取消并退出
//   - -type 在第一帧把文本插入光标处（脚本化输入）
package main

import (
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/ecs"
	"github.com/decker502/textwindow/pkg/game"
	"github.com/decker502/textwindow/pkg/systems"
	"github.com/decker502/textwindow/pkg/textinput"
	"github.com/decker502/textwindow/pkg/types"
	"github.com/decker502/textwindow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// callerEvents 调用方窗口，没有任何控件行为
type callerEvents struct{}

func (callerEvents) OnMouseUp(int)        {}
func (callerEvents) OnUpdate()            {}
func (callerEvents) OnInvalidate()        {}
func (callerEvents) OnPaint(types.Canvas) {}
func (callerEvents) OnClose()             {}

// TestGame 测试程序
type TestGame struct {
	entityManager     *ecs.EntityManager
	windowSystem      *systems.WindowSystem
	windowInputSystem *systems.WindowInputSystem
	inputMethodSystem *systems.InputMethodSystem
	controller        *textinput.Controller

	typed      string
	autoCommit bool
	frame      int

	result *textinput.Result
}

// NewTestGame 创建测试程序并打开文本输入窗口
func NewTestGame(existing, title, description string, maxLength int, typed string, autoCommit bool) (*TestGame, error) {
	face, err := game.LoadUIFont(config.FontSize)
	if err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}

	em := ecs.NewEntityManager()
	windowSystem := systems.NewWindowSystem(em, config.ScreenWidth, config.ScreenHeight, face)
	inputMethodSystem := systems.NewInputMethodSystem(em)

	windowInputSystem := systems.NewWindowInputSystem(windowSystem)
	windowInputSystem.SetKeyConsumer(inputMethodSystem)

	metrics := utils.FaceMetrics{Face: face, Height: config.LineHeight}
	g := &TestGame{
		entityManager:     em,
		windowSystem:      windowSystem,
		windowInputSystem: windowInputSystem,
		inputMethodSystem: inputMethodSystem,
		controller: textinput.NewController(textinput.Dependencies{
			Windows:     windowSystem,
			InputMethod: inputMethodSystem,
			Metrics:     metrics,
			Wrapper:     metrics.Wrapper(),
		}, nil),
		typed:      typed,
		autoCommit: autoCommit,
	}

	caller := windowSystem.Create(types.WindowClassRideList, 8, 8, 120, 40, 0, callerEvents{})
	g.controller.OpenRaw(textinput.Request{
		Caller:      caller,
		Title:       title,
		Description: description,
		MaxLength:   maxLength,
		OnResult: func(r textinput.Result) {
			g.result = &r
		},
	}, existing)

	return g, nil
}

// Update 更新
func (g *TestGame) Update() error {
	g.frame++
	if g.frame == 1 && g.typed != "" {
		if !g.inputMethodSystem.Type(g.typed) {
			log.Printf("[TestTextInput] 插入 %q 被拒绝", g.typed)
		}
	}
	if g.frame == 2 && g.autoCommit {
		g.controller.Commit()
	}

	g.inputMethodSystem.Update(1.0 / 60.0)
	g.windowInputSystem.Update(1.0 / 60.0)
	g.windowSystem.Update(1.0 / 60.0)

	if g.result != nil || !g.controller.IsOpen() {
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制
func (g *TestGame) Draw(screen *ebiten.Image) {
	screen.Fill(config.ScreenBackgroundColor)
	g.windowSystem.Draw(screen)
}

// Layout 逻辑屏幕尺寸
func (g *TestGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	existing := flag.String("text", "Wooden Roller Coaster 1", "已有文本")
	title := flag.String("title", "Ride/attraction name", "窗口标题")
	description := flag.String("desc", "Enter new name for this ride/attraction:", "描述文字")
	maxLength := flag.Int("max", 32, "最大字符数")
	typed := flag.String("type", "", "第一帧插入的文本")
	autoCommit := flag.Bool("autocommit", false, "第二帧自动提交")
	verbose := flag.Bool("verbose", true, "启用详细日志输出")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	g, err := NewTestGame(*existing, *title, *description, *maxLength, *typed, *autoCommit)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth*2, config.ScreenHeight*2)
	ebiten.SetWindowTitle("Text Input Test")

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}

	switch {
	case g.result == nil:
		fmt.Println("窗口已关闭，没有结果")
	case g.result.OK:
		fmt.Printf("提交: %q\n", g.result.Text)
	default:
		fmt.Println("已取消")
	}
}
