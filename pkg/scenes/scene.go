package scenes

import (
	"github.com/decker502/buttonmove/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// ButtonMoveScene 需要场景管理器转发布局和退出保存
var (
	_ Scene         = (*ButtonMoveScene)(nil)
	_ game.Layouter = (*ButtonMoveScene)(nil)
	_ game.Saveable = (*ButtonMoveScene)(nil)
)
