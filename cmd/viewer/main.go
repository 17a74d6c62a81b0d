// Command viewer opens a window and renders a single textured, normal-mapped model fetched from an
// asset origin, showing a loading animation until the model is on the GPU.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/fetch"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logger"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/surface"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"go.uber.org/zap"
)

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "oxy-viewer: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := config.ParseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
		fileCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
		fileCfg.MaxBackups = cfg.Logging.MaxBackups
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, cfg.Logging.Console); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	log := logger.Named("viewer")
	log.Info("starting",
		zap.String("origin", cfg.Assets.Origin),
		zap.String("model", cfg.Assets.Model),
		zap.Bool("vsync", cfg.Graphics.VSync),
	)

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	presentMode := surface.PresentModeUncapped
	if cfg.Graphics.VSync {
		presentMode = surface.PresentModeVSync
	}
	ctx, err := surface.New(win,
		surface.WithPresentMode(presentMode),
		surface.WithForceFallbackAdapter(cfg.Graphics.ForceFallbackAdapter),
	)
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	defer ctx.Release()

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, ctx)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	materialLayout, err := r.CreateBindGroupLayout(material.BindGroupLayoutDescriptor())
	if err != nil {
		return fmt.Errorf("create material layout: %w", err)
	}
	defer materialLayout.Release()

	fetcher, err := fetch.NewFetcher(
		fetch.WithOrigin(cfg.Assets.Origin),
		fetch.WithTimeout(cfg.Assets.FetchTimeout),
	)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}

	ld := loader.NewLoader(loader.BackendTypeOBJ,
		loader.WithUploader(r),
		loader.WithFetcher(fetcher),
		loader.WithMaterialLayout(materialLayout),
		loader.WithDefaultTextures(cfg.Assets.DefaultDiffuse, cfg.Assets.DefaultNormal),
		loader.WithSkipDegenerateUVs(cfg.Assets.SkipDegenerateUVs),
		loader.WithDecodeWorkers(cfg.Loading.Workers),
	)
	defer ld.Release()

	// The bundle submits one load task, so a single worker is enough.
	pool := worker.NewDynamicWorkerPool(1, cfg.Loading.QueueSize, cfg.Loading.IdleTimeout)

	s, err := scene.NewScene("wip", r, ld,
		scene.WithModel(cfg.Assets.Model),
		scene.WithMaterialLayout(materialLayout),
		scene.WithWorkerPool(pool),
		scene.WithLoadTimeout(cfg.Assets.FetchTimeout),
	)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer s.Release()

	e := engine.NewEngine(win, s, engine.WithProfiling(cfg.Graphics.Profile))
	if err := e.Run(); err != nil {
		log.Error("viewer stopped", zap.Error(err))
		return err
	}
	log.Info("viewer closed")
	return nil
}
