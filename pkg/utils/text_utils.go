package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MeasureFunc 测量字符串像素宽度
type MeasureFunc func(s string) int

// WordWrap 将文本按指定像素宽度贪心换行
// 参数:
//   - s: 要换行的文本
//   - maxWidth: 每行最大宽度（像素）
//   - measure: 宽度测量函数
//
// 返回:
//   - []string: 换行后的每一行（至少一行，空文本返回 [""]）
//
// 换行规则:
//   - 优先在空格处断行，断行处的那一个空格被省略（不属于任何一行）
//   - 单词本身超过最大宽度时在字符边界强制断行，不省略任何字符
//   - 因此只要某行之后紧跟空格，该空格就一定是被省略的那个
func WordWrap(s string, maxWidth int, measure MeasureFunc) []string {
	if s == "" || measure == nil || maxWidth <= 0 {
		return []string{s}
	}

	// 整体放得下，直接返回
	if measure(s) <= maxWidth {
		return []string{s}
	}

	var lines []string
	lineStart := 0
	lastSpace := -1 // 当前行内最后一个空格的字节偏移

	i := lineStart
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])

		if i > lineStart && measure(s[lineStart:i+size]) > maxWidth {
			switch {
			case r == ' ':
				// 溢出的正好是空格：在此断行并省略它
				lines = append(lines, s[lineStart:i])
				lineStart = i + 1
			case lastSpace > lineStart:
				// 回退到最后一个空格断行
				lines = append(lines, s[lineStart:lastSpace])
				lineStart = lastSpace + 1
			default:
				// 单词过长，强制断行
				lines = append(lines, s[lineStart:i])
				lineStart = i
			}
			lastSpace = -1
			i = lineStart
			continue
		}

		if r == ' ' {
			lastSpace = i
		}
		i += size
	}

	// 添加最后一行（可能为空，例如文本以被省略的空格结尾）
	lines = append(lines, s[lineStart:])
	return lines
}

// Wrapper 基于 MeasureFunc 的换行器
type Wrapper struct {
	Measure MeasureFunc
}

// Wrap 实现 textinput.StringWrapper
func (w Wrapper) Wrap(s string, maxWidth int) []string {
	return WordWrap(s, maxWidth, w.Measure)
}

// formatTokenPattern 匹配内联格式代码，如 {RED}、{WINDOW_COLOUR_2}、{NEWLINE}
var formatTokenPattern = regexp.MustCompile(`\{[A-Z][A-Z0-9_]*\}`)

// StripFormatCodes 去除富文本格式代码
// 包括花括号格式标记和所有控制字符（换行、制表符等）
func StripFormatCodes(s string) string {
	s = formatTokenPattern.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return -1
		}
		return r
	}, s)
}

// TruncateRunes 截断到最多 maxRunes 个字符（maxRunes <= 0 表示不限制）
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == maxRunes {
			return s[:i]
		}
		count++
	}
	return s
}

// TruncateBytes 在字符边界上截断到最多 maxBytes 字节
func TruncateBytes(s string, maxBytes int) string {
	if maxBytes < 0 {
		return ""
	}
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// FloorToRuneStart 把字节偏移向前对齐到字符边界，并限制在 [0, len(s)]
func FloorToRuneStart(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(s) {
		return len(s)
	}
	for offset > 0 && !utf8.RuneStart(s[offset]) {
		offset--
	}
	return offset
}

// RuneAt 返回从字节偏移 offset 开始的单个字符（UTF-8 字符串）
// offset 越界时返回空字符串
func RuneAt(s string, offset int) string {
	if offset < 0 || offset >= len(s) {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s[offset:])
	return s[offset : offset+size]
}

// argPattern 匹配模板参数占位符 {0}、{1} ...
var argPattern = regexp.MustCompile(`\{(\d+)\}`)

// ExpandTemplate 用参数替换模板中的 {N} 占位符
// 没有对应参数的占位符原样保留
func ExpandTemplate(tmpl string, args ...any) string {
	if len(args) == 0 {
		return tmpl
	}
	return argPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		idx, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || idx >= len(args) {
			return m
		}
		return fmt.Sprint(args[idx])
	})
}
