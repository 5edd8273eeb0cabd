package main

import (
	"embed"
	"os"

	"github.com/charmbracelet/log"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/chazu/casework/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})

	cfg, err := config.Load(os.Getenv("CASEWORK_CONFIG"))
	if err != nil {
		logger.Fatal("load config", "err", err)
	}

	app := NewApp(cfg, logger)

	err = wails.Run(&options.App{
		Title:            "Casework",
		Width:            1280,
		Height:           820,
		BackgroundColour: &options.RGBA{R: 32, G: 32, B: 36, A: 255},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logger.Fatal("run app", "err", err)
	}
}
