package textinput

import "time"

// CaretVisible 光标闪烁状态
// 由单调时钟经过的时间对周期取模得到，每个周期的后半段可见，与帧率无关
func CaretVisible(elapsed, period time.Duration) bool {
	if period <= 0 {
		return true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed%period >= period/2
}
