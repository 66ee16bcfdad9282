// Package logging owns the process-wide zap logger used by the command line
// front end. Library packages take a *zap.Logger explicitly; this package
// only decides where that logger writes.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ModeDev  = "dev"
	ModeProd = "prod"

	envMode  = "CMDTREE_ENV"
	envLevel = "CMDTREE_LOG_LEVEL"
)

var (
	raw *zap.Logger

	noop = zap.NewNop()

	atomicLevel zap.AtomicLevel
)

// Options selects the log destination and verbosity. Empty fields fall back
// to the CMDTREE_ENV and CMDTREE_LOG_LEVEL environment variables, then to
// prod mode at info level.
type Options struct {
	Mode  string
	Level string
	File  string
}

// L returns the global logger, or a no-op logger before Init.
func L() *zap.Logger {
	if raw == nil {
		return noop
	}
	return raw
}

// S is L in its sugared form.
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Init installs the global logger. Logs go to a rotated file so they never
// mix with command output on the terminal:
//
//   - dev  → human-readable logs in <state dir>/<app>/app-debug.log
//   - prod → JSON logs in <state dir>/<app>/app.log
//
// The state dir is $XDG_STATE_HOME, ~/.local/state, or the temp dir.
func Init(appName string, opts Options) error {
	mode := detectMode(opts.Mode)
	level, err := detectLevel(opts.Level, mode)
	if err != nil {
		return err
	}
	logPath := opts.File
	if logPath == "" {
		logPath = selectLogPath(appName, mode)
	}

	atomicLevel = zap.NewAtomicLevelAt(level)

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if mode == ModeDev {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, writer, atomicLevel)
	raw = zap.New(core, zap.AddCaller()).Named(appName)

	raw.Sugar().Infof("logger initialized in %s mode. Writing to %s", mode, logPath)
	return nil
}

// InitTest installs a development logger on stdout for tests.
func InitTest() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{"stdout"}
	atomicLevel = cfg.Level
	raw, _ = cfg.Build(zap.AddCaller())
}

// Sync flushes buffered entries.
func Sync() {
	if raw != nil {
		_ = raw.Sync()
	}
}

// SetLevel changes the level of an initialized logger at runtime.
func SetLevel(level string) error {
	if atomicLevel == (zap.AtomicLevel{}) {
		return fmt.Errorf("logger not initialized")
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	atomicLevel.SetLevel(l)
	return nil
}

func detectMode(mode string) string {
	if mode == "" {
		mode = os.Getenv(envMode)
	}
	switch strings.ToLower(mode) {
	case "dev", "development":
		return ModeDev
	default:
		return ModeProd
	}
}

func detectLevel(level, mode string) (zapcore.Level, error) {
	if level == "" {
		level = os.Getenv(envLevel)
	}
	if level == "" {
		if mode == ModeDev {
			return zap.DebugLevel, nil
		}
		return zap.InfoLevel, nil
	}
	l, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

func selectLogPath(appName, mode string) string {
	fileName := "app.log"
	if mode == ModeDev {
		fileName = "app-debug.log"
	}

	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		path := filepath.Join(xdg, appName)
		_ = os.MkdirAll(path, 0755)
		return filepath.Join(path, fileName)
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".local", "state", appName)
		_ = os.MkdirAll(path, 0755)
		return filepath.Join(path, fileName)
	}

	path := filepath.Join(os.TempDir(), appName)
	_ = os.MkdirAll(path, 0755)
	return filepath.Join(path, fileName)
}
