package drag

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/buttonmove/pkg/game"
	"github.com/decker502/buttonmove/pkg/geom"
)

var (
	// ErrGestureInProgress 表示在拖拽中再次收到开始事件
	ErrGestureInProgress = errors.New("gesture already in progress")

	// ErrNoGesture 表示没有进行中的拖拽却收到了移动/结束事件
	ErrNoGesture = errors.New("no gesture in progress")
)

// Phase 手势生命周期阶段
type Phase int

const (
	// PhaseBegan 手势开始
	PhaseBegan Phase = iota
	// PhaseChanged 手势移动
	PhaseChanged
	// PhaseEnded 手势正常结束
	PhaseEnded
	// PhaseCancelled 手势被取消
	PhaseCancelled
	// PhaseFailed 手势识别失败
	PhaseFailed
)

// String 返回阶段名称，用于日志
func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// terminal 是否为结束类阶段
func (p Phase) terminal() bool {
	return p == PhaseEnded || p == PhaseCancelled || p == PhaseFailed
}

// Event 输入源投递的拖拽事件
type Event struct {
	Phase Phase
	// Translation 手势开始以来的累计位移
	Translation geom.Vec2
}

// CancelPolicy 决定被取消/失败的手势如何处理
type CancelPolicy int

const (
	// CancelCommit 取消与正常结束相同，部分拖拽仍会提交
	CancelCommit CancelPolicy = iota
	// CancelRollback 取消时丢弃本次拖拽，按钮回到起点
	CancelRollback
)

// String 返回策略名称
func (c CancelPolicy) String() string {
	switch c {
	case CancelCommit:
		return "commit"
	case CancelRollback:
		return "rollback"
	default:
		return fmt.Sprintf("CancelPolicy(%d)", int(c))
	}
}

// Snapshot 手势开始时捕获的状态，只在开始和结束之间有效
type Snapshot struct {
	StartCenter geom.Point
}

// Session 拖拽会话状态机
//
// 状态：Idle（snapshot == nil）→ Dragging（snapshot != nil）→ Idle。
// 所有坐标都在容纳矩形的局部坐标系中。
type Session struct {
	store    game.PositionStore
	policy   CancelPolicy
	geometry geom.Geometry
	anchor   geom.Point
	offset   geom.Vec2 // 已提交偏移的累计值
	center   geom.Point
	snapshot *Snapshot
}

// Option 会话配置项
type Option func(*Session)

// WithCancelPolicy 设置取消策略，默认 CancelCommit
func WithCancelPolicy(policy CancelPolicy) Option {
	return func(s *Session) {
		s.policy = policy
	}
}

// NewSession 创建拖拽会话
//
// store 可以为 nil，此时提交的位置只保留在内存中
func NewSession(store game.PositionStore, opts ...Option) *Session {
	s := &Session{
		store:  store,
		policy: CancelCommit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Layout 布局阶段调用，更新几何参数并从存储读取偏移
//
// 参数：
//   - g: 容纳矩形尺寸和按钮半径
//   - anchor: 偏移为 (0, 0) 时按钮中心所在位置
//
// 拖拽中只更新几何参数，不会移动按钮。
// 读取的偏移若使按钮越出开口，会被约束回边界内（不回写存储）。
func (s *Session) Layout(g geom.Geometry, anchor geom.Point) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	s.geometry = g
	s.anchor = anchor

	pos := game.LoadOrZero(s.store)
	// 开口尺寸变化后旧偏移可能越界，按锚点重新约束
	s.offset = ClampGeometry(geom.Vec2{X: pos.X, Y: pos.Y}, anchor, g)

	if s.snapshot == nil {
		s.center = s.anchor.Add(s.offset)
	}
	return nil
}

// Handle 处理一次拖拽事件
//
// 返回：
//   - ErrGestureInProgress: 拖拽中收到 PhaseBegan
//   - ErrNoGesture: 空闲时收到移动或结束事件
//
// 出错时状态不变。
func (s *Session) Handle(ev Event) error {
	switch {
	case ev.Phase == PhaseBegan:
		return s.begin()
	case ev.Phase == PhaseChanged:
		return s.move(ev.Translation)
	case ev.Phase.terminal():
		return s.end(ev.Phase, ev.Translation)
	default:
		return fmt.Errorf("unknown phase %v", ev.Phase)
	}
}

func (s *Session) begin() error {
	if s.snapshot != nil {
		return ErrGestureInProgress
	}
	s.snapshot = &Snapshot{StartCenter: s.center}
	log.Printf("[DragSession] began at (%.2f, %.2f), offset (%.2f, %.2f)",
		s.center.X, s.center.Y, s.offset.X, s.offset.Y)
	return nil
}

func (s *Session) move(translation geom.Vec2) error {
	if s.snapshot == nil {
		return ErrNoGesture
	}
	adjusted := ClampGeometry(translation, s.snapshot.StartCenter, s.geometry)
	s.center = s.snapshot.StartCenter.Add(adjusted)
	return nil
}

func (s *Session) end(phase Phase, translation geom.Vec2) error {
	if s.snapshot == nil {
		return ErrNoGesture
	}
	snap := s.snapshot
	s.snapshot = nil

	if phase != PhaseEnded && s.policy == CancelRollback {
		s.center = snap.StartCenter
		log.Printf("[DragSession] %s, rolled back to (%.2f, %.2f)", phase, s.center.X, s.center.Y)
		return nil
	}

	adjusted := ClampGeometry(translation, snap.StartCenter, s.geometry)
	s.offset = s.offset.Add(adjusted)
	s.center = s.anchor.Add(s.offset)

	if s.store != nil {
		if err := s.store.Save(s.offset.X, s.offset.Y); err != nil {
			log.Printf("[DragSession] Warning: Failed to save position: %v", err)
		}
	}
	log.Printf("[DragSession] %s, committed offset (%.2f, %.2f)", phase, s.offset.X, s.offset.Y)
	return nil
}

// Center 返回按钮当前显示的中心
func (s *Session) Center() geom.Point {
	return s.center
}

// Offset 返回已提交的偏移
func (s *Session) Offset() geom.Vec2 {
	return s.offset
}

// Dragging 是否有进行中的手势
func (s *Session) Dragging() bool {
	return s.snapshot != nil
}

// Snapshot 返回当前手势的快照，空闲时返回 false
func (s *Session) Snapshot() (Snapshot, bool) {
	if s.snapshot == nil {
		return Snapshot{}, false
	}
	return *s.snapshot, true
}

// Geometry 返回最近一次布局的几何参数
func (s *Session) Geometry() geom.Geometry {
	return s.geometry
}

// Policy 返回取消策略
func (s *Session) Policy() CancelPolicy {
	return s.policy
}

// SetPolicy 切换取消策略，对进行中的手势在结束时生效
func (s *Session) SetPolicy(policy CancelPolicy) {
	s.policy = policy
}

// ResetOffset 将按钮放回锚点并保存 (0, 0)
//
// 拖拽中调用返回 ErrGestureInProgress
func (s *Session) ResetOffset() error {
	if s.snapshot != nil {
		return ErrGestureInProgress
	}
	s.offset = geom.Vec2{}
	s.center = s.anchor
	if s.store != nil {
		if err := s.store.Save(0, 0); err != nil {
			log.Printf("[DragSession] Warning: Failed to save position: %v", err)
		}
	}
	return nil
}
