package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/buttonmove/pkg/app"
	"github.com/decker502/buttonmove/pkg/config"
	"github.com/decker502/buttonmove/pkg/embedded"
)

var (
	verbose      = flag.Bool("verbose", false, "详细日志")
	configPath   = flag.String("config", "", "界面配置文件路径（YAML）")
	cancelPolicy = flag.String("cancel-policy", "", "手势取消策略: commit 或 rollback")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:          *verbose,
		ScreenConfigPath: *configPath,
		CancelPolicy:     *cancelPolicy,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Button Move Overlay")
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
