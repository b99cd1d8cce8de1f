package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager controls which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	queue        *MainQueue
	width        int
	height       int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
//
// queue 在每次 Update 开始时被清空，可以为 nil
func NewSceneManager(queue *MainQueue) *SceneManager {
	return &SceneManager{
		queue: queue,
	}
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	if l, ok := scene.(Layouter); ok && sm.width > 0 && sm.height > 0 {
		l.Layout(sm.width, sm.height)
	}
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Layout 记录逻辑屏幕尺寸，尺寸变化时通知当前场景
func (sm *SceneManager) Layout(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if l, ok := sm.currentScene.(Layouter); ok {
		l.Layout(width, height)
	}
}

// Update 先执行上一帧投递的延迟任务，再更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.queue != nil {
		if n := sm.queue.Drain(); n > 0 {
			log.Printf("[SceneManager] Ran %d deferred task(s)", n)
		}
	}
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// SaveOnExit 通知当前场景保存状态
func (sm *SceneManager) SaveOnExit() bool {
	if s, ok := sm.currentScene.(Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}
