// Package utils 提供输入、平台和存储相关的工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/buttonmove/pkg/drag"
	"github.com/decker502/buttonmove/pkg/geom"
)

// PointerInput 指针输入接口
// 用于依赖注入，支持测试时 mock
type PointerInput interface {
	// Pointer 返回指针是否按下及当前位置（屏幕坐标）
	Pointer() (pressed bool, x, y int)
}

// ebitenPointerInput Ebitengine 默认实现，同时支持鼠标和触摸
//
// 按下时锁定第一个触摸点，直到该触摸点抬起
type ebitenPointerInput struct {
	touchID    ebiten.TouchID
	tracking   bool
	lastX      int
	lastY      int
	touchInput bool
}

// NewEbitenPointerInput 创建默认指针输入
func NewEbitenPointerInput() PointerInput {
	return &ebitenPointerInput{touchID: -1}
}

func (e *ebitenPointerInput) Pointer() (bool, int, int) {
	if e.tracking && e.touchInput {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == e.touchID {
				e.lastX, e.lastY = ebiten.TouchPosition(id)
				return true, e.lastX, e.lastY
			}
		}
		// 触摸已释放，使用最后一次的位置
		e.tracking = false
		e.touchID = -1
		return false, e.lastX, e.lastY
	}

	// 优先检测新的触摸
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		e.touchID = ids[0]
		e.tracking = true
		e.touchInput = true
		e.lastX, e.lastY = ebiten.TouchPosition(e.touchID)
		return true, e.lastX, e.lastY
	}

	// 鼠标
	e.touchInput = false
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	e.tracking = pressed
	e.lastX, e.lastY = x, y
	return pressed, x, y
}

// Gesture 一帧内识别出的指针手势事件
type Gesture struct {
	Phase drag.Phase
	// Start 按下位置（屏幕坐标）
	Start geom.Point
	// Position 当前位置（屏幕坐标）
	Position geom.Point
	// Translation 按下以来的累计位移
	Translation geom.Vec2
}

// Event 转换为拖拽会话事件
func (g Gesture) Event() drag.Event {
	return drag.Event{Phase: g.Phase, Translation: g.Translation}
}

// GestureTracker 手势跟踪器
// 把逐帧的指针状态转换为 began / changed / ended / cancelled 序列
type GestureTracker struct {
	input PointerInput

	active    bool
	cancelled bool // 已取消，等待指针抬起
	start     geom.Point
	current   geom.Point
}

// NewGestureTracker 创建手势跟踪器，input 为 nil 时使用 Ebitengine 输入
func NewGestureTracker(input PointerInput) *GestureTracker {
	if input == nil {
		input = NewEbitenPointerInput()
	}
	return &GestureTracker{input: input}
}

// Update 每帧调用一次
//
// 返回：
//   - Gesture: 本帧事件
//   - bool: 本帧是否有事件（指针静止时不产生 changed）
func (gt *GestureTracker) Update() (Gesture, bool) {
	pressed, x, y := gt.input.Pointer()
	pos := geom.Point{X: float64(x), Y: float64(y)}

	if gt.cancelled {
		if !pressed {
			gt.cancelled = false
		}
		return Gesture{}, false
	}

	if !gt.active {
		if !pressed {
			return Gesture{}, false
		}
		gt.active = true
		gt.start = pos
		gt.current = pos
		return gt.gesture(drag.PhaseBegan), true
	}

	if !pressed {
		gt.active = false
		return gt.gesture(drag.PhaseEnded), true
	}

	if pos == gt.current {
		return Gesture{}, false
	}
	gt.current = pos
	return gt.gesture(drag.PhaseChanged), true
}

// Cancel 取消进行中的手势
//
// 返回 cancelled 事件；指针抬起前不再产生新的事件。
// 没有进行中的手势时返回 false。
func (gt *GestureTracker) Cancel() (Gesture, bool) {
	if !gt.active {
		return Gesture{}, false
	}
	gt.active = false
	gt.cancelled = true
	return gt.gesture(drag.PhaseCancelled), true
}

// Active 是否有进行中的手势
func (gt *GestureTracker) Active() bool {
	return gt.active
}

func (gt *GestureTracker) gesture(phase drag.Phase) Gesture {
	return Gesture{
		Phase:       phase,
		Start:       gt.start,
		Position:    gt.current,
		Translation: gt.current.Sub(gt.start),
	}
}
