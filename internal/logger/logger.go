// Package logger sets up the global zap logger.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// PanicLogFile receives panics of the interactive mode when no log
// file was configured. It is only created once something is written.
const PanicLogFile = "procdump-panic.log"

type Config struct {
	// Debug lowers the level from warn to debug.
	Debug bool
	// Path of an optional rotating log file.
	Path       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
	// Interactive disables the console core, which would corrupt the
	// alternate screen.
	Interactive bool
	// Console defaults to stderr.
	Console io.Writer
}

// DefaultConfig returns the rotation settings used for --log-file.
func DefaultConfig() Config {
	return Config{
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}
}

// New builds a logger from config and installs it as the global one.
func New(config Config) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	if config.Debug {
		level.SetLevel(zap.DebugLevel)
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())

	var cores []zapcore.Core
	if !config.Interactive {
		console := config.Console
		if console == nil {
			console = os.Stderr
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(console)), level))
	}
	switch {
	case config.Path != "":
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(&lumberjack.Logger{
			Filename:   config.Path,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		}), level))
	case config.Interactive:
		// lumberjack opens its file on the first write
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(&lumberjack.Logger{
			Filename: PanicLogFile,
			MaxSize:  config.MaxSize,
		}), zap.ErrorLevel))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(l)
	return l
}
