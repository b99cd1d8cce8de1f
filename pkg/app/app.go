// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/buttonmove/pkg/config"
	"github.com/decker502/buttonmove/pkg/drag"
	"github.com/decker502/buttonmove/pkg/embedded"
	"github.com/decker502/buttonmove/pkg/game"
	"github.com/decker502/buttonmove/pkg/scenes"
	"github.com/decker502/buttonmove/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ScreenConfigPath 界面配置文件路径，为空时使用默认配置
	ScreenConfigPath string
	// CancelPolicy 覆盖配置文件中的取消策略（"commit" / "rollback"），为空则不覆盖
	CancelPolicy string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 未指定配置文件时，若已调用 embedded.Init() 则使用嵌入的 data/screen.yaml，
// 否则使用默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	screenConfig, err := loadScreenConfig(cfg)
	if err != nil {
		return nil, err
	}

	gdataManager := openGdata(screenConfig.AppName)
	store := game.NewGdataPositionStore(gdataManager)
	settings := game.NewSettingsManager(gdataManager)

	// 命令行 > 用户设置 > 配置文件
	if cfg.CancelPolicy == "" {
		screenConfig.CancelPolicy = resolveCancelPolicy(screenConfig.CancelPolicy, settings.GetSettings().CancelPolicy)
	}

	queue := game.NewMainQueue()
	sceneManager := game.NewSceneManager(queue)
	scene := scenes.NewButtonMoveScene(screenConfig, store, queue)
	if err := scene.LayoutError(); err != nil {
		return nil, fmt.Errorf("界面布局失败: %w", err)
	}
	scene.OnPolicyChange = func(policy drag.CancelPolicy) {
		settings.SetCancelPolicy(policy.String())
		if err := settings.Save(); err != nil {
			log.Printf("[App] Warning: Failed to save settings: %v", err)
		}
	}
	sceneManager.SwitchTo(scene)

	if settings.GetSettings().Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Started (cancel policy: %s)", screenConfig.CancelPolicy)

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// resolveCancelPolicy 用户设置有效时覆盖配置文件中的取消策略
func resolveCancelPolicy(configured, stored string) string {
	switch stored {
	case config.CancelPolicyCommit, config.CancelPolicyRollback:
		return stored
	case "":
		return configured
	default:
		log.Printf("[App] Warning: Ignoring stored cancel policy %q", stored)
		return configured
	}
}

func loadScreenConfig(cfg Config) (*config.ScreenConfig, error) {
	screenConfig := config.DefaultScreenConfig()
	switch {
	case cfg.ScreenConfigPath != "":
		loaded, err := config.LoadScreenConfig(cfg.ScreenConfigPath)
		if err != nil {
			return nil, fmt.Errorf("界面配置加载失败: %w", err)
		}
		screenConfig = loaded
		log.Printf("[Config] 加载界面配置: %s", cfg.ScreenConfigPath)
	case embedded.Exists(config.DefaultScreenConfigPath):
		data, err := embedded.ReadFile(config.DefaultScreenConfigPath)
		if err != nil {
			return nil, fmt.Errorf("嵌入界面配置读取失败: %w", err)
		}
		loaded, err := config.ParseScreenConfig(data)
		if err != nil {
			return nil, fmt.Errorf("嵌入界面配置无效: %w", err)
		}
		screenConfig = loaded
		log.Printf("[Config] 使用嵌入界面配置: %s", config.DefaultScreenConfigPath)
	}

	if cfg.CancelPolicy != "" {
		screenConfig.CancelPolicy = cfg.CancelPolicy
	}
	if err := screenConfig.Validate(); err != nil {
		return nil, fmt.Errorf("界面配置无效: %w", err)
	}
	return screenConfig, nil
}

// openGdata 打开跨平台存储，失败时返回 nil（降级为仅内存）
func openGdata(appName string) *gdata.Manager {
	dir, err := utils.EnsureStorageDir()
	if err != nil {
		log.Printf("[App] Warning: %v", err)
	} else if dir != "" {
		log.Printf("[App] Storage dir: %s", dir)
	}

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[App] Warning: Failed to open gdata (%v), positions will not persist", err)
		return nil
	}
	return manager
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.sceneManager.SaveOnExit()
		return ebiten.Termination
	}

	if !utils.IsMobile() {
		a.updateFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// updateFullscreen F11 切换全屏，并记住用户的选择
func (a *App) updateFullscreen() {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}

	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}

	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧留黑边，并用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Layout(config.GameWindowWidth, config.GameWindowHeight)
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
