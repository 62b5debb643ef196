// Command lottie2png renders the frames of a Lottie animation to PNG files.
//
// Usage:
//
//	lottie2png [-config render.yaml] [flags] anim.json
//
// Flags override the config file. With -watch the frames are rendered
// again whenever the input changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	lottie "github.com/gogpu/gg-lottie"
	"github.com/gogpu/gg-lottie/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "lottie2png:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}
	lottie.SetLogger(newLogger(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	n, err := r.renderFile(ctx, cfg.Input)
	if err != nil {
		return err
	}
	lottie.Logger().Info("lottie2png: frames written", "count", n)
	if !cfg.Watch {
		return nil
	}
	return watch(ctx, cfg.Input, func() {
		n, err := r.rerender(ctx, cfg.Input)
		if err != nil {
			lottie.Logger().Error("lottie2png: render failed", "err", err)
			return
		}
		lottie.Logger().Info("lottie2png: frames written", "count", n)
	})
}

func parseFlags(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("lottie2png", flag.ContinueOnError)
	def := config.Default()
	var (
		configPath = fs.String("config", "", "YAML or TOML config file")
		output     = fs.String("o", def.Output, "output file pattern")
		width      = fs.Int("width", def.Width, "output width (0: composition width times scale)")
		height     = fs.Int("height", def.Height, "output height (0: composition height times scale)")
		scale      = fs.Float64("scale", def.Scale, "scale factor")
		background = fs.String("bg", def.Background, "background color as hex, empty for transparent")
		start      = fs.Float64("start", def.StartFrame, "first frame (negative: composition start)")
		end        = fs.Float64("end", def.EndFrame, "end frame, exclusive (negative: composition end)")
		step       = fs.Float64("step", def.Step, "frame step")
		workers    = fs.Int("workers", def.Workers, "concurrent frame renderers")
		assetsDir  = fs.String("assets", def.Assets, "image asset directory (default: input directory)")
		merge      = fs.Bool("merge", def.MergePaths, "boolean merge paths")
		clip       = fs.Bool("clip", def.Clip, "clip to the composition bounds")
		strict     = fs.Bool("strict", def.Strict, "fail on document warnings")
		watchFlag  = fs.Bool("watch", def.Watch, "render again when the input changes")
		logLevel   = fs.String("log", def.LogLevel, "log level: debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.Output = *output
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "scale":
			cfg.Scale = *scale
		case "bg":
			cfg.Background = *background
		case "start":
			cfg.StartFrame = *start
		case "end":
			cfg.EndFrame = *end
		case "step":
			cfg.Step = *step
		case "workers":
			cfg.Workers = *workers
		case "assets":
			cfg.Assets = *assetsDir
		case "merge":
			cfg.MergePaths = *merge
		case "clip":
			cfg.Clip = *clip
		case "strict":
			cfg.Strict = *strict
		case "watch":
			cfg.Watch = *watchFlag
		case "log":
			cfg.LogLevel = *logLevel
		}
	})
	if fs.NArg() > 0 {
		cfg.Input = fs.Arg(0)
	}
	return cfg, cfg.Validate()
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
