package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/decker502/textwindow/pkg/embedded"
	"github.com/decker502/textwindow/pkg/utils"
)

// StringsPath 默认字符串表路径
const StringsPath = "data/strings/strings.txt"

// StringTable 本地化字符串表
// 实现 textinput.Formatter：按键查找模板并展开 {0}、{1} 参数
type StringTable struct {
	strings map[string]string // 键 -> 模板
}

// NewStringTable 从嵌入文件加载字符串表
// 参数：
//   - filePath: 字符串表路径（必须以 data/ 开头）
//
// 文件格式：
//
//	[KEY]
//	文本内容
//
// 示例：
//
//	[STR_RIDE_NAME_FORMAT]
//	{0} {1}
func NewStringTable(filePath string) (*StringTable, error) {
	file, err := embedded.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open string table %s: %w", filePath, err)
	}
	defer file.Close()

	st, err := ParseStringTable(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read string table %s: %w", filePath, err)
	}
	return st, nil
}

// ParseStringTable 解析字符串表内容
// 值为键之后的第一行非空文本；以 # 开头的行是注释
func ParseStringTable(r io.Reader) (*StringTable, error) {
	st := &StringTable{strings: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			currentKey = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			continue
		}

		if currentKey != "" {
			st.strings[currentKey] = line
			currentKey = ""
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return st, nil
}

// GetString 根据键获取模板，键不存在时返回 "[key]"（用于调试）
func (st *StringTable) GetString(key string) string {
	if text, ok := st.strings[key]; ok {
		return text
	}
	return "[" + key + "]"
}

// Has 键是否存在
func (st *StringTable) Has(key string) bool {
	_, ok := st.strings[key]
	return ok
}

// Format 查找模板并展开参数
func (st *StringTable) Format(key string, args ...any) string {
	return utils.ExpandTemplate(st.GetString(key), args...)
}

// Len 字符串数量
func (st *StringTable) Len() int {
	return len(st.strings)
}
