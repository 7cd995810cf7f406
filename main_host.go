//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"dataviz/app"
	"dataviz/hal"
	"dataviz/internal/buildinfo"
	"dataviz/viz/columns"
	"dataviz/viz/config"
)

func main() {
	var hcfg hal.HeadlessConfig
	var (
		cfgPath  = flag.String("config", "", "YAML configuration file.")
		dataPath = flag.String("file", "", "Data file (overrides data.path).")
		delim    = flag.String("delim", "", "Field delimiter (overrides data.delimiter).")
		mode     = flag.String("mode", "", "plot|play (overrides mode).")
		logLevel = flag.String("log-level", "info", "debug|info|warn|error.")
		version  = flag.Bool("version", false, "Print version and exit.")
	)
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&hcfg.Snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fatal(err)
		}
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *delim != "" {
		cfg.Data.Delimiter = *delim
	}
	if *mode != "" {
		cfg.Mode = config.Mode(*mode)
	}
	if flag.NArg() > 0 && cfg.Data.Path == "" {
		cfg.Data.Path = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	if cfg.Data.Path == "" {
		fatal(errors.New("no data file: pass -file or set data.path"))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fatal(fmt.Errorf("log level: %w", err))
	}

	newApp := func(h hal.HAL) (func() error, error) {
		log := slog.New(slog.NewTextHandler(hal.LogWriter(h.Logger()), &slog.HandlerOptions{Level: level}))
		log.Info("starting", "version", buildinfo.Short(), "mode", cfg.Mode, "file", cfg.Data.Path)
		ds, err := columns.LoadFile(cfg.Data.Path, cfg.Delimiter(), columns.WithLogger(log))
		if err != nil {
			// Plot mode still shows a grid over the empty dataset; play mode
			// fails below because the player needs a time column.
			log.Error("could not load data", "err", err, "mode", cfg.Mode)
		}
		return app.New(h, cfg, ds, log)
	}

	host := hal.HostConfig{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		ViewHeight: cfg.Window.ViewHeight,
		Background: cfg.Window.Background.Geom(),
		TPS:        cfg.Window.TPS,
	}

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, host, newApp, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fatal(err)
		}
		return
	}

	if err := hal.RunWindow(host, newApp); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
