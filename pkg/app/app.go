// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/game"
	"github.com/decker502/textwindow/pkg/scenes"
	"github.com/decker502/textwindow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存档目录名
const AppName = "textwindow"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 文本输入窗口配置文件，为空时使用 config.TextInputConfigPath
	ConfigPath string
	// NoSave 不读写存档（名称只保存在内存中）
	NoSave bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	stringTable, err := game.NewStringTable(game.StringsPath)
	if err != nil {
		return nil, fmt.Errorf("字符串表加载失败: %w", err)
	}
	log.Printf("[App] 加载 %d 条字符串", stringTable.Len())

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.TextInputConfigPath
	}
	textInputConfig, err := config.LoadTextInputConfig(configPath)
	if err != nil {
		// 配置错误不是致命错误，使用默认布局
		log.Printf("[App] Warning: %v (using defaults)", err)
		textInputConfig = config.DefaultTextInputConfig()
	}

	face, err := game.LoadUIFont(config.FontSize)
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	var gdataManager *gdata.Manager
	if !cfg.NoSave {
		if err := utils.EnsureStorageDir(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
		gdataManager, err = gdata.Open(gdata.Config{AppName: AppName})
		if err != nil {
			// 存储不可用时降级为仅内存
			log.Printf("[App] Warning: gdata 不可用: %v (names will not be saved)", err)
			gdataManager = nil
		}
	}
	names := game.NewNameStore(gdataManager, make([]string, len(scenes.DefaultRides)))

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewRideListScene(stringTable, names, scenes.DefaultRides, face, textInputConfig))

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ScreenWidth*2, config.ScreenHeight*2)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.ScreenWidth*2, config.ScreenHeight*2)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 像素风界面使用最近邻缩放，letterbox 填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// GetSceneManager 返回场景管理器
// 用于在关闭时保存名称
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
