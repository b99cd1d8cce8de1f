package game

import (
	"fmt"
	"log"
	"math"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Position 已提交的按钮中心偏移（相对布局锚点的约束常量，不是绝对坐标）
type Position struct {
	X float64
	Y float64
}

// PositionStore 按钮位置持久化接口
//
// Load 返回值的第二项为 false 表示从未保存过，调用方自行使用 (0, 0)。
// 读取失败同样视为"不存在"，不会返回单独的错误类型。
type PositionStore interface {
	Load() (Position, bool)
	Save(x, y float64) error
}

// 存储路径常量
//
// 两个数值分别保存，键名与历史版本保持一致
const (
	positionObject  = "button"
	centerXProperty = "centerX"
	centerYProperty = "centerY"
)

// propStorage gdata 属性读写接口，*gdata.Manager 实现了该接口
// 用于依赖注入，支持测试时 mock 写入失败
type propStorage interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

var _ propStorage = (*gdata.Manager)(nil)

// GdataPositionStore 基于 gdata 的跨平台位置存储
//
// 每个坐标以 YAML 标量（float64）写入一个独立的属性文件。
type GdataPositionStore struct {
	props    propStorage // 可为 nil（降级模式，仅内存）
	fallback *MemoryPositionStore
}

// NewGdataPositionStore 创建位置存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，位置只保存在内存中）
func NewGdataPositionStore(gdataManager *gdata.Manager) *GdataPositionStore {
	s := &GdataPositionStore{fallback: NewMemoryPositionStore()}
	// nil 指针不能直接赋给接口，否则接口本身非 nil
	if gdataManager != nil {
		s.props = gdataManager
	}
	return s
}

// Load 读取上次提交的位置
//
// 任一坐标缺失、无法解析或不是有限数时整个位置视为不存在，
// 不会单独把缺失的坐标当作 0。两个坐标总是一起写入。
func (s *GdataPositionStore) Load() (Position, bool) {
	if s.props == nil {
		return s.fallback.Load()
	}

	x, ok := s.loadScalar(centerXProperty)
	if !ok {
		return Position{}, false
	}
	y, ok := s.loadScalar(centerYProperty)
	if !ok {
		return Position{}, false
	}
	return Position{X: x, Y: y}, true
}

// Save 写入位置
//
// centerY 写入失败时恢复原来的 centerX，避免留下从未提交过的组合。
// 降级模式下只更新内存，不报错
func (s *GdataPositionStore) Save(x, y float64) error {
	if s.props == nil {
		return s.fallback.Save(x, y)
	}

	var prevX []byte
	if s.props.ObjectPropExists(positionObject, centerXProperty) {
		data, err := s.props.LoadObjectProp(positionObject, centerXProperty)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", centerXProperty, err)
		}
		prevX = data
	}

	if err := s.saveScalar(centerXProperty, x); err != nil {
		return err
	}
	if err := s.saveScalar(centerYProperty, y); err != nil {
		if prevX != nil {
			if restoreErr := s.props.SaveObjectProp(positionObject, centerXProperty, prevX); restoreErr != nil {
				log.Printf("[PositionStore] Warning: Failed to restore %s: %v", centerXProperty, restoreErr)
			}
		}
		return err
	}

	log.Printf("[PositionStore] Position saved: (%.2f, %.2f)", x, y)
	return nil
}

func (s *GdataPositionStore) loadScalar(prop string) (float64, bool) {
	if !s.props.ObjectPropExists(positionObject, prop) {
		return 0, false
	}

	data, err := s.props.LoadObjectProp(positionObject, prop)
	if err != nil {
		log.Printf("[PositionStore] Warning: Failed to load %s: %v", prop, err)
		return 0, false
	}

	var v float64
	if err := yaml.Unmarshal(data, &v); err != nil {
		log.Printf("[PositionStore] Warning: Failed to decode %s: %v", prop, err)
		return 0, false
	}
	// YAML 允许 .nan / .inf
	if math.IsNaN(v) || math.IsInf(v, 0) {
		log.Printf("[PositionStore] Warning: Ignoring non-finite %s: %v", prop, v)
		return 0, false
	}
	return v, true
}

func (s *GdataPositionStore) saveScalar(prop string, v float64) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", prop, err)
	}
	if err := s.props.SaveObjectProp(positionObject, prop, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", prop, err)
	}
	return nil
}

// MemoryPositionStore 进程内位置存储，用于测试和降级模式
type MemoryPositionStore struct {
	values map[string]float64
}

// NewMemoryPositionStore 创建空的内存存储
func NewMemoryPositionStore() *MemoryPositionStore {
	return &MemoryPositionStore{values: make(map[string]float64)}
}

// Load 读取位置，与 GdataPositionStore 一样要求两个坐标都存在
func (s *MemoryPositionStore) Load() (Position, bool) {
	x, okX := s.values[centerXProperty]
	y, okY := s.values[centerYProperty]
	if !okX || !okY {
		return Position{}, false
	}
	return Position{X: x, Y: y}, true
}

// Save 写入位置，总是成功
func (s *MemoryPositionStore) Save(x, y float64) error {
	s.values[centerXProperty] = x
	s.values[centerYProperty] = y
	return nil
}

// LoadOrZero 读取位置，不存在时显式替换为 (0, 0)
func LoadOrZero(store PositionStore) Position {
	if store == nil {
		return Position{}
	}
	pos, ok := store.Load()
	if !ok {
		return Position{}
	}
	return pos
}
