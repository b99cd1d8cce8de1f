package scenes

import (
	"errors"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/buttonmove/pkg/config"
	"github.com/decker502/buttonmove/pkg/drag"
	"github.com/decker502/buttonmove/pkg/game"
	"github.com/decker502/buttonmove/pkg/geom"
	"github.com/decker502/buttonmove/pkg/utils"
)

// KeyInput 键盘输入接口
// 用于依赖注入，支持测试时 mock
type KeyInput interface {
	IsKeyJustPressed(key ebiten.Key) bool
}

type ebitenKeyInput struct{}

func (ebitenKeyInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// pointerRoute 一次按下手势被分派到的目标，按下时确定，直到抬起不变
type pointerRoute int

const (
	routeNone pointerRoute = iota
	routeDrag              // 拖动按钮
	routeTap               // 点击按钮（遮罩隐藏时）
	routeSliders           // 打开遮罩
	routeDone              // 遮罩上的 Done
	routeDialogOK          // 对话框 OK
	routeAbsorbed          // 被遮罩或对话框吞掉
)

// alertDialog 按钮点击后弹出的提示框
type alertDialog struct {
	Title   string
	Message string
	Visible bool
	Bounds  geom.Rect
	OK      geom.Rect
}

// ButtonMoveScene 可拖动按钮界面
//
// 坐标约定：
//   - 指针、遮罩、控件使用屏幕坐标
//   - 拖拽会话使用开口（opening）的局部坐标，两者只差一个平移
type ButtonMoveScene struct {
	cfg     *config.ScreenConfig
	session *drag.Session
	overlay *game.Overlay
	tracker *utils.GestureTracker
	keys    KeyInput

	screenW, screenH float64
	opening          geom.Rect
	slidersButton    geom.Rect
	doneButton       geom.Rect
	instructions     geom.Rect
	dialog           alertDialog

	route     pointerRoute
	layoutErr error

	// OnPolicyChange 用户切换取消策略后回调（可为 nil），用于持久化
	OnPolicyChange func(policy drag.CancelPolicy)
}

// NewButtonMoveScene 创建界面，使用 Ebitengine 的指针和键盘输入
func NewButtonMoveScene(cfg *config.ScreenConfig, store game.PositionStore, queue *game.MainQueue) *ButtonMoveScene {
	return NewButtonMoveSceneWithInput(cfg, store, queue, nil, ebitenKeyInput{})
}

// NewButtonMoveSceneWithInput 创建带自定义输入的界面（用于测试）
func NewButtonMoveSceneWithInput(cfg *config.ScreenConfig, store game.PositionStore, queue *game.MainQueue, pointer utils.PointerInput, keys KeyInput) *ButtonMoveScene {
	s := &ButtonMoveScene{
		cfg:     cfg,
		session: drag.NewSession(store, drag.WithCancelPolicy(ParseCancelPolicy(cfg.CancelPolicy))),
		overlay: game.NewOverlay(cfg.Opening.Rect(), queue),
		tracker: utils.NewGestureTracker(pointer),
		keys:    keys,
		dialog: alertDialog{
			Title:   "Button",
			Message: "You pressed the button!",
		},
	}
	s.overlay.OnClose = s.onOverlayClosed
	s.Layout(config.GameWindowWidth, config.GameWindowHeight)
	return s
}

// Layout 布局阶段：重新计算控件位置，并从存储恢复按钮位置
func (s *ButtonMoveScene) Layout(width, height int) {
	s.screenW, s.screenH = float64(width), float64(height)
	s.opening = s.cfg.Opening.Rect()
	s.slidersButton = s.cfg.SlidersButton.Rect()
	s.overlay.SetOpening(s.opening)

	centerX := s.screenW / 2
	s.doneButton = centeredRect(centerX, s.screenH*config.DoneButtonCenterYRatio,
		config.DoneButtonWidth, config.DoneButtonHeight)
	s.instructions = centeredRect(centerX, s.screenH*config.InstructionsCenterYRatio,
		config.InstructionsWidth, config.InstructionsHeight)
	s.dialog.Bounds = centeredRect(centerX, s.screenH/2, 260, 130)
	s.dialog.OK = centeredRect(centerX, s.dialog.Bounds.Max().Y-28, 100, 36)

	anchor := geom.Point{X: s.opening.Size.W / 2, Y: s.opening.Size.H / 2}
	s.layoutErr = s.session.Layout(s.cfg.Geometry(), anchor)
	if s.layoutErr != nil {
		log.Printf("[ButtonMoveScene] Layout failed: %v", s.layoutErr)
	}
}

// LayoutError 返回最近一次布局的错误
func (s *ButtonMoveScene) LayoutError() error {
	return s.layoutErr
}

// Update 处理输入
func (s *ButtonMoveScene) Update(deltaTime float64) {
	if s.keys != nil {
		if s.keys.IsKeyJustPressed(ebiten.KeyEscape) {
			s.cancelDrag()
		}
		if s.keys.IsKeyJustPressed(ebiten.KeyR) && s.overlay.Visible() {
			if err := s.session.ResetOffset(); err != nil {
				log.Printf("[ButtonMoveScene] Reset ignored: %v", err)
			}
		}
		if s.keys.IsKeyJustPressed(ebiten.KeyC) {
			s.togglePolicy()
		}
	}

	g, ok := s.tracker.Update()
	if !ok {
		return
	}

	switch g.Phase {
	case drag.PhaseBegan:
		s.route = s.routeFor(g.Start)
		if s.route == routeDrag {
			s.forward(g)
		}
	case drag.PhaseChanged:
		if s.route == routeDrag {
			s.forward(g)
		}
	default:
		s.release(g)
		s.route = routeNone
	}
}

// routeFor 根据按下位置决定手势目标
func (s *ButtonMoveScene) routeFor(p geom.Point) pointerRoute {
	if s.dialog.Visible {
		if s.dialog.OK.Contains(p) {
			return routeDialogOK
		}
		return routeAbsorbed
	}

	if s.overlay.Absorbs(p) {
		if s.doneButton.Contains(p) {
			return routeDone
		}
		return routeAbsorbed
	}

	if s.buttonContains(p) {
		// 遮罩隐藏时不允许开始拖拽
		if s.overlay.AllowsDrag() && s.layoutErr == nil {
			return routeDrag
		}
		if s.overlay.Visible() {
			return routeAbsorbed
		}
		return routeTap
	}

	if !s.overlay.Visible() && s.slidersButton.Contains(p) {
		return routeSliders
	}
	return routeNone
}

// release 手势结束：只有抬起位置仍在控件内才触发（touch up inside）
func (s *ButtonMoveScene) release(g utils.Gesture) {
	switch s.route {
	case routeDrag:
		s.forward(g)
	case routeTap:
		if g.Phase == drag.PhaseEnded && s.buttonContains(g.Position) && !s.overlay.Visible() {
			s.dialog.Visible = true
			log.Printf("[ButtonMoveScene] Dialog shown: %s - %s", s.dialog.Title, s.dialog.Message)
		}
	case routeSliders:
		if g.Phase == drag.PhaseEnded && s.slidersButton.Contains(g.Position) {
			s.overlay.Open()
		}
	case routeDone:
		if g.Phase == drag.PhaseEnded && s.doneButton.Contains(g.Position) {
			s.overlay.RequestClose()
		}
	case routeDialogOK:
		if g.Phase == drag.PhaseEnded && s.dialog.OK.Contains(g.Position) {
			s.dialog.Visible = false
		}
	}
}

func (s *ButtonMoveScene) forward(g utils.Gesture) {
	if err := s.session.Handle(g.Event()); err != nil {
		if errors.Is(err, drag.ErrGestureInProgress) || errors.Is(err, drag.ErrNoGesture) {
			log.Printf("[ButtonMoveScene] Ignored %s: %v", g.Phase, err)
			return
		}
		log.Printf("[ButtonMoveScene] Drag event failed: %v", err)
	}
}

// cancelDrag 取消进行中的拖拽，按会话的取消策略提交或回滚
func (s *ButtonMoveScene) cancelDrag() {
	g, ok := s.tracker.Cancel()
	if !ok {
		return
	}
	if s.route == routeDrag {
		s.forward(g)
	}
	s.route = routeNone
}

// togglePolicy 在 commit 与 rollback 之间切换
func (s *ButtonMoveScene) togglePolicy() {
	next := drag.CancelRollback
	if s.session.Policy() == drag.CancelRollback {
		next = drag.CancelCommit
	}
	s.session.SetPolicy(next)
	log.Printf("[ButtonMoveScene] Cancel policy: %s", next)
	if s.OnPolicyChange != nil {
		s.OnPolicyChange(next)
	}
}

func (s *ButtonMoveScene) onOverlayClosed() {
	s.cancelDrag()
}

// SaveOnExit 退出时结束进行中的拖拽，位置已在每次提交时保存
func (s *ButtonMoveScene) SaveOnExit() bool {
	s.cancelDrag()
	return true
}

// buttonContains 点是否落在圆形按钮内
func (s *ButtonMoveScene) buttonContains(p geom.Point) bool {
	c := s.ButtonCenter()
	r := s.cfg.Geometry().Radius
	return math.Hypot(p.X-c.X, p.Y-c.Y) <= r
}

// ButtonCenter 返回按钮中心（屏幕坐标）
func (s *ButtonMoveScene) ButtonCenter() geom.Point {
	return s.opening.ToOuter(s.session.Center())
}

// Session 返回拖拽会话
func (s *ButtonMoveScene) Session() *drag.Session {
	return s.session
}

// Overlay 返回遮罩
func (s *ButtonMoveScene) Overlay() *game.Overlay {
	return s.overlay
}

// DialogVisible 提示框是否显示
func (s *ButtonMoveScene) DialogVisible() bool {
	return s.dialog.Visible
}

// ParseCancelPolicy 将配置值转换为会话策略，未知值按 commit 处理
func ParseCancelPolicy(value string) drag.CancelPolicy {
	if value == config.CancelPolicyRollback {
		return drag.CancelRollback
	}
	return drag.CancelCommit
}

func centeredRect(cx, cy, w, h float64) geom.Rect {
	return geom.NewRect(cx-w/2, cy-h/2, w, h)
}
