package utils

import "github.com/rivo/uniseg"

// graphemeBoundaries 返回 s 中所有字形簇边界的字节偏移（包含 0 和 len(s)）
func graphemeBoundaries(s string) []int {
	bounds := []int{0}
	rest := s
	state := -1
	offset := 0
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
		bounds = append(bounds, offset)
	}
	return bounds
}

// PrevGraphemeBoundary 返回 offset 之前最近的字形簇边界
// offset 已在开头时返回 0
func PrevGraphemeBoundary(s string, offset int) int {
	prev := 0
	for _, b := range graphemeBoundaries(s) {
		if b >= offset {
			break
		}
		prev = b
	}
	return prev
}

// NextGraphemeBoundary 返回 offset 之后最近的字形簇边界
// offset 已在末尾时返回 len(s)
func NextGraphemeBoundary(s string, offset int) int {
	for _, b := range graphemeBoundaries(s) {
		if b > offset {
			return b
		}
	}
	return len(s)
}

// DeleteBefore 删除光标前的一个字形簇（退格）
// 返回新文本和新的光标位置
func DeleteBefore(s string, cursor int) (string, int) {
	cursor = FloorToRuneStart(s, cursor)
	if cursor == 0 {
		return s, 0
	}
	start := PrevGraphemeBoundary(s, cursor)
	return s[:start] + s[cursor:], start
}

// DeleteAfter 删除光标后的一个字形簇（Delete 键），光标位置不变
func DeleteAfter(s string, cursor int) (string, int) {
	cursor = FloorToRuneStart(s, cursor)
	if cursor >= len(s) {
		return s, cursor
	}
	end := NextGraphemeBoundary(s, cursor)
	return s[:cursor] + s[end:], cursor
}
