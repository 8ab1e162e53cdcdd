// Package main is the entry point for scratctl, the helper that registers
// the Scrat backup application with the operating system: a login autostart
// entry and named tasks bound to OS lifecycle events. It writes durable OS
// state and exits; the OS performs the actual launches later.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/umputun/go-flags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nicolettas-muggelbude/Scrat-Backup-sub001/internal/autostart"
	"github.com/nicolettas-muggelbude/Scrat-Backup-sub001/internal/config"
	"github.com/nicolettas-muggelbude/Scrat-Backup-sub001/internal/platform"
	"github.com/nicolettas-muggelbude/Scrat-Backup-sub001/internal/schedtask"
)

// version is set at build time via -ldflags.
var version = "dev"

var opts struct {
	Config   string `short:"f" long:"config" env:"SCRAT_CONFIG" description:"path to configuration file"`
	Platform string `long:"platform" env:"SCRAT_PLATFORM" description:"override detected platform (windows|linux|darwin)"`
	Dbg      bool   `long:"dbg" env:"SCRAT_DEBUG" description:"debug mode"`
	Version  bool   `short:"v" long:"version" description:"show version and exit"`

	Autostart struct {
		Enable  bool   `long:"enable" description:"persist the login autostart entry"`
		Disable bool   `long:"disable" description:"remove the login autostart entry"`
		Status  bool   `long:"status" description:"report whether the login entry exists"`
		Command string `long:"command" description:"launch command override"`
	} `group:"autostart" namespace:"autostart"`

	Task struct {
		Register   string   `long:"register" description:"register the named task"`
		Unregister string   `long:"unregister" description:"remove the named task"`
		Trigger    string   `long:"trigger" default:"startup" description:"lifecycle trigger (startup|shutdown)"`
		Command    string   `long:"command" description:"task command"`
		Arg        []string `long:"arg" description:"task command argument, repeatable"`
	} `group:"task" namespace:"task"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}
	if opts.Version {
		fmt.Printf("scratctl %s\n", version)
		os.Exit(0)
	}

	cfgPath := opts.Config
	if cfgPath == "" {
		cfgPath = config.Locate()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if opts.Dbg {
		cfg.Logging.Level = "debug"
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	kind := platform.Detect()
	if opts.Platform != "" {
		kind, err = platform.ParseKind(opts.Platform)
		if err != nil {
			logger.Fatal("Invalid platform override", zap.Error(err))
		}
	}

	ctx := context.Background()
	if info, err := platform.Describe(ctx); err == nil {
		logger.Debug("Host detected",
			zap.Stringer("platform", kind),
			zap.String("os", info.OS),
			zap.String("distribution", info.Platform),
			zap.String("version", info.PlatformVersion),
			zap.String("kernel", info.KernelVersion))
	}

	if !run(ctx, cfg, kind, logger) {
		os.Exit(1)
	}
}

// run dispatches exactly one requested operation and returns its outcome.
func run(ctx context.Context, cfg *config.Config, kind platform.Kind, logger *zap.Logger) bool {
	switch {
	case opts.Autostart.Enable || opts.Autostart.Disable || opts.Autostart.Status:
		mgr := autostart.NewManager(kind, cfg.App.Name, cfg.App.Command, autostart.Options{
			IconCandidates: cfg.Autostart.IconCandidates,
			LaunchArgs:     cfg.Autostart.LaunchArgs,
		}, logger)
		switch {
		case opts.Autostart.Enable:
			return mgr.Enable(opts.Autostart.Command)
		case opts.Autostart.Disable:
			return mgr.Disable()
		default:
			if mgr.Enabled() {
				fmt.Println("autostart: enabled")
			} else {
				fmt.Println("autostart: disabled")
			}
			return true
		}

	case opts.Task.Register != "":
		trigger, err := schedtask.ParseTrigger(opts.Task.Trigger)
		if err != nil {
			logger.Error("Invalid trigger", zap.Error(err))
			return false
		}
		if opts.Task.Command == "" {
			logger.Error("Task command is required", zap.String("task", opts.Task.Register))
			return false
		}
		mgr := newTaskManager(cfg, kind, logger)
		return mgr.Register(ctx, opts.Task.Register, trigger, opts.Task.Command, opts.Task.Arg)

	case opts.Task.Unregister != "":
		mgr := newTaskManager(cfg, kind, logger)
		return mgr.Unregister(ctx, opts.Task.Unregister)
	}

	logger.Warn("No operation requested")
	return true
}

func newTaskManager(cfg *config.Config, kind platform.Kind, logger *zap.Logger) *schedtask.Manager {
	runner := schedtask.NewRunner(cfg.Tasks.ExecTimeout.Duration)
	return schedtask.NewManager(kind, cfg.App.Name, runner, logger)
}

// initLogger creates a zap logger based on the configuration. It outputs to
// console (human-readable) and optionally a rotated JSON log file.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	if cfg.Logging.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.Logging.File,
			MaxSize:    cfg.Logging.MaxSizeMB,
			MaxBackups: 3,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(rotated),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...))
}
