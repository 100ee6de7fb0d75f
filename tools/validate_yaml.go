// validate_yaml 校验数据文件
//
// 用法:
//
//	go run tools/validate_yaml.go [-config data/config/textinput.yaml] [-strings data/strings/strings.txt]
//
// 检查文本输入窗口配置能否解析并通过校验，以及字符串表是否包含界面需要的所有键。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/textwindow/pkg/config"
	"github.com/decker502/textwindow/pkg/game"
	"gopkg.in/yaml.v3"
)

// requiredStrings 界面使用的字符串键
var requiredStrings = []string{
	"STR_RIDE_LIST_TITLE",
	"STR_RIDE_NAME_TITLE",
	"STR_RIDE_NAME_PROMPT",
	"STR_RIDE_NAME_FORMAT",
	"STR_RENAME",
	"STR_OK",
	"STR_CANCEL",
	"STR_REOPEN_HINT",
}

func main() {
	configPath := flag.String("config", config.TextInputConfigPath, "文本输入窗口配置文件")
	stringsPath := flag.String("strings", game.StringsPath, "字符串表文件")
	flag.Parse()

	failed := false

	data, err := os.ReadFile(*configPath)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	// 缺少的顶层键会静默使用默认值，这里提示出来
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		fmt.Printf("❌ YAML 解析失败: %v\n", err)
		os.Exit(1)
	}
	for _, key := range []string{"window", "caret", "composition", "bufferCapacity"} {
		if _, ok := raw[key]; !ok {
			fmt.Printf("⚠️  缺少 %s，使用默认值\n", key)
		}
	}

	cfg, err := config.ParseTextInputConfig(data)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		failed = true
	} else {
		fmt.Printf("✅ 配置正确: 窗口宽 %d, 换行宽度 %d, 闪烁周期 %v\n",
			cfg.Window.Width, cfg.WrapWidth(), cfg.Caret.BlinkPeriod)
	}

	file, err := os.Open(*stringsPath)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	st, err := game.ParseStringTable(file)
	if err != nil {
		fmt.Printf("❌ 字符串表解析失败: %v\n", err)
		os.Exit(1)
	}

	missing := 0
	for _, key := range requiredStrings {
		if !st.Has(key) {
			fmt.Printf("❌ 缺少字符串 %s\n", key)
			missing++
		}
	}
	if missing == 0 {
		fmt.Printf("✅ 字符串表包含全部 %d 个必需键（共 %d 条）\n", len(requiredStrings), st.Len())
	} else {
		failed = true
	}

	if failed {
		os.Exit(1)
	}
}
