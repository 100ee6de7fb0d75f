package scenes

import (
	"strings"

	"github.com/decker502/textwindow/pkg/game"
	"github.com/decker502/textwindow/pkg/utils"
)

// RideNameFormatKey 默认名称模板：{0} 基础名称，{1} 编号
const RideNameFormatKey = "STR_RIDE_NAME_FORMAT"

// Ride 名称列表中的一项
// 默认名称由字符串表中的基础名称和编号组成
type Ride struct {
	BaseKey string
	Number  int
}

// DefaultRides 演示用的名称列表
var DefaultRides = []Ride{
	{BaseKey: "STR_RIDE_MERRY_GO_ROUND", Number: 1},
	{BaseKey: "STR_RIDE_WOODEN_COASTER", Number: 1},
	{BaseKey: "STR_RIDE_FERRIS_WHEEL", Number: 1},
	{BaseKey: "STR_RIDE_WOODEN_COASTER", Number: 2},
	{BaseKey: "STR_RIDE_MINIATURE_RAILWAY", Number: 1},
}

// RideNames 把自定义名称和默认名称合在一起
// NameStore 中保存空字符串表示使用默认名称
type RideNames struct {
	strings *game.StringTable
	store   *game.NameStore
	rides   []Ride
}

// NewRideNames 创建名称模型，store 的长度应与 rides 一致
func NewRideNames(st *game.StringTable, store *game.NameStore, rides []Ride) *RideNames {
	return &RideNames{strings: st, store: store, rides: rides}
}

// Len 条目数量
func (n *RideNames) Len() int {
	return len(n.rides)
}

// Ride 返回第 index 项
func (n *RideNames) Ride(index int) Ride {
	return n.rides[index]
}

// IsCustom 第 index 项是否有自定义名称
func (n *RideNames) IsCustom(index int) bool {
	return n.store.Name(index) != ""
}

// BaseName 基础名称模板（可能带格式代码）
func (n *RideNames) BaseName(index int) string {
	return n.strings.GetString(n.rides[index].BaseKey)
}

// DefaultName 第 index 项的默认显示名称
func (n *RideNames) DefaultName(index int) string {
	ride := n.rides[index]
	return utils.StripFormatCodes(n.strings.Format(RideNameFormatKey, n.BaseName(index), ride.Number))
}

// DisplayName 第 index 项当前显示的名称
func (n *RideNames) DisplayName(index int) string {
	if custom := n.store.Name(index); custom != "" {
		return custom
	}
	return n.DefaultName(index)
}

// Rename 应用输入结果并保存
// 空文本或与默认名称相同的文本恢复为默认名称
// 返回名称是否发生变化
func (n *RideNames) Rename(index int, text string) (bool, error) {
	if index < 0 || index >= len(n.rides) {
		return false, nil
	}

	name := strings.TrimSpace(text)
	if name == n.DefaultName(index) {
		name = ""
	}
	if name == n.store.Name(index) {
		return false, nil
	}

	if err := n.store.SetName(index, name); err != nil {
		return false, err
	}
	return true, n.store.Save()
}
