package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SavedNames 持久化的名称列表
type SavedNames struct {
	Names []string `yaml:"names"`
}

// NameStore 名称存储
// 保存通过文本输入窗口修改过的名称，跨会话保留
type NameStore struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	names        []string
}

// 存储路径常量
const (
	namesObject   = "names"
	namesProperty = "rides"
)

// NewNameStore 创建名称存储并加载已保存的名称
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//   - defaults: 没有存档时使用的名称
func NewNameStore(gdataManager *gdata.Manager, defaults []string) *NameStore {
	ns := &NameStore{
		gdataManager: gdataManager,
		names:        append([]string(nil), defaults...),
	}

	if err := ns.Load(defaults); err != nil {
		// 加载失败不是致命错误，使用默认名称
		log.Printf("[NameStore] Warning: Failed to load names: %v (using defaults)", err)
	}

	return ns
}

// Load 从 gdata 加载名称
// 存档比默认列表短时，缺少的部分使用默认名称
func (ns *NameStore) Load(defaults []string) error {
	ns.names = append([]string(nil), defaults...)

	if ns.gdataManager == nil {
		return nil
	}
	if !ns.gdataManager.ObjectPropExists(namesObject, namesProperty) {
		return nil
	}

	data, err := ns.gdataManager.LoadObjectProp(namesObject, namesProperty)
	if err != nil {
		return fmt.Errorf("failed to load names: %w", err)
	}

	var saved SavedNames
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to unmarshal names: %w", err)
	}

	for i, name := range saved.Names {
		if i < len(ns.names) {
			ns.names[i] = name
		} else {
			ns.names = append(ns.names, name)
		}
	}

	log.Printf("[NameStore] Loaded %d names", len(saved.Names))
	return nil
}

// Save 保存到 gdata，降级模式下什么也不做
func (ns *NameStore) Save() error {
	if ns.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&SavedNames{Names: ns.names})
	if err != nil {
		return fmt.Errorf("failed to marshal names: %w", err)
	}

	if err := ns.gdataManager.SaveObjectProp(namesObject, namesProperty, data); err != nil {
		return fmt.Errorf("failed to save names: %w", err)
	}

	log.Printf("[NameStore] Names saved")
	return nil
}

// Names 当前所有名称的副本
func (ns *NameStore) Names() []string {
	return append([]string(nil), ns.names...)
}

// Name 返回第 index 个名称，越界时返回空字符串
func (ns *NameStore) Name(index int) string {
	if index < 0 || index >= len(ns.names) {
		return ""
	}
	return ns.names[index]
}

// SetName 修改第 index 个名称（仅内存，需调用 Save 持久化）
func (ns *NameStore) SetName(index int, name string) error {
	if index < 0 || index >= len(ns.names) {
		return fmt.Errorf("name index %d out of range [0, %d)", index, len(ns.names))
	}
	ns.names[index] = name
	return nil
}

// Len 名称数量
func (ns *NameStore) Len() int {
	return len(ns.names)
}
