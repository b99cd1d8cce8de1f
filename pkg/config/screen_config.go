package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/buttonmove/pkg/geom"
)

// 逻辑屏幕尺寸（竖屏手机比例）
const (
	GameWindowWidth  = 375
	GameWindowHeight = 667
)

// 遮罩控件布局，按屏幕高度比例放置
const (
	InstructionsCenterYRatio = 0.2
	InstructionsWidth        = 280.0
	InstructionsHeight       = 100.0

	DoneButtonCenterYRatio = 0.35
	DoneButtonWidth        = 120.0
	DoneButtonHeight       = 40.0
)

// DefaultScreenConfigPath 嵌入资源中的界面配置路径
const DefaultScreenConfigPath = "data/screen.yaml"

// 取消策略配置值
const (
	CancelPolicyCommit   = "commit"
	CancelPolicyRollback = "rollback"
)

// ScreenConfig 按钮移动界面配置
//
// 配置文件位置（可选）: data/screen.yaml
type ScreenConfig struct {
	// AppName gdata 存储使用的应用名
	AppName string `yaml:"appName"`

	// Opening 容纳矩形（屏幕坐标）
	Opening RectConfig `yaml:"opening"`

	// ButtonDiameter 圆形按钮直径，半径取其一半
	ButtonDiameter float64 `yaml:"buttonDiameter"`

	// CancelPolicy 手势取消时的处理方式: "commit" 或 "rollback"
	CancelPolicy string `yaml:"cancelPolicy"`

	// Instructions 遮罩上的操作说明
	Instructions string `yaml:"instructions"`

	// SlidersButton 打开遮罩的按钮（屏幕坐标）
	SlidersButton RectConfig `yaml:"slidersButton"`
}

// RectConfig 矩形配置
type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect 转换为几何矩形
func (r RectConfig) Rect() geom.Rect {
	return geom.NewRect(r.X, r.Y, r.Width, r.Height)
}

// DefaultScreenConfig 返回默认配置
func DefaultScreenConfig() *ScreenConfig {
	return &ScreenConfig{
		AppName: "button_move_overlay",
		Opening: RectConfig{
			X:      37.5,
			Y:      300,
			Width:  300,
			Height: 240,
		},
		ButtonDiameter: 60,
		CancelPolicy:   CancelPolicyCommit,
		Instructions:   "Drag your finger to change the button location and then click Done",
		SlidersButton: RectConfig{
			X:      295,
			Y:      40,
			Width:  60,
			Height: 36,
		},
	}
}

// Geometry 返回拖拽约束使用的几何参数
func (c *ScreenConfig) Geometry() geom.Geometry {
	return geom.Geometry{
		Bounds: geom.Size{W: c.Opening.Width, H: c.Opening.Height},
		Radius: c.ButtonDiameter / 2,
	}
}

// Validate 验证配置
//
// 开口放不下按钮时返回包装了 geom.ErrOpeningTooSmall 的错误
func (c *ScreenConfig) Validate() error {
	if c.AppName == "" {
		return fmt.Errorf("appName must not be empty")
	}
	switch c.CancelPolicy {
	case CancelPolicyCommit, CancelPolicyRollback:
	default:
		return fmt.Errorf("invalid cancelPolicy %q (want %q or %q)",
			c.CancelPolicy, CancelPolicyCommit, CancelPolicyRollback)
	}
	if c.SlidersButton.Width <= 0 || c.SlidersButton.Height <= 0 {
		return fmt.Errorf("slidersButton size must be positive")
	}
	if err := c.Geometry().Validate(); err != nil {
		return fmt.Errorf("invalid opening: %w", err)
	}
	return nil
}

// LoadScreenConfig 加载界面配置
//
// 文件中缺失的字段保留默认值
//
// 参数:
//   - path: 配置文件路径（如 "data/screen.yaml"）
//
// 返回:
//   - *ScreenConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败
func LoadScreenConfig(path string) (*ScreenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read screen config: %w", err)
	}
	return ParseScreenConfig(data)
}

// ParseScreenConfig 从 YAML 数据解析界面配置
func ParseScreenConfig(data []byte) (*ScreenConfig, error) {
	cfg := DefaultScreenConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse screen config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("screen config validation failed: %w", err)
	}
	return cfg, nil
}
