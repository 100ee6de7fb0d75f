package main

import (
	"flag"
	"log"

	"github.com/decker502/textwindow/pkg/app"
	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", config.TextInputConfigPath, "文本输入窗口配置（嵌入路径，以 data/ 开头）")
	noSave := flag.Bool("nosave", false, "不读写存档")
	flag.Parse()

	// 初始化嵌入资源，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		NoSave:     *noSave,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth*2, config.ScreenHeight*2)
	ebiten.SetWindowTitle("Text Input Window")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// 窗口关闭时保存名称
	ebiten.SetWindowClosingHandled(true)

	err = ebiten.RunGame(&closeHandler{App: gameApp})
	if err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

// closeHandler 在窗口关闭请求时保存后退出
type closeHandler struct {
	*app.App
}

func (h *closeHandler) Update() error {
	if ebiten.IsWindowBeingClosed() {
		if !h.GetSceneManager().SaveOnExit() {
			log.Printf("[main] Warning: 退出时保存失败")
		}
		return ebiten.Termination
	}
	return h.App.Update()
}
