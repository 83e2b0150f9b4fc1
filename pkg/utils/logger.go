package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "cinebook.log"

// InitLogger tees zap output to stdout and to a lumberjack-rotated file under
// cfg.Path. With no Path only stdout is written.
func InitLogger(cfg LogConfig, debug bool) (*zap.Logger, error) {
	var file io.Writer
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Path, logFileName),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}

	core, err := newLogCore(cfg, debug, os.Stdout, file)
	if err != nil {
		return nil, err
	}
	return zap.New(core, zap.AddCaller()), nil
}

// newLogCore builds one core per non-nil writer sharing level and encoder.
func newLogCore(cfg LogConfig, debug bool, writers ...io.Writer) (zapcore.Core, error) {
	level, err := logLevel(cfg.Level, debug)
	if err != nil {
		return nil, err
	}

	encoder, err := logEncoder(cfg.Format, debug)
	if err != nil {
		return nil, err
	}

	cores := make([]zapcore.Core, 0, len(writers))
	for _, w := range writers {
		if w == nil {
			continue
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(w), level))
	}
	return zapcore.NewTee(cores...), nil
}

func logLevel(name string, debug bool) (zapcore.Level, error) {
	if name == "" {
		if debug {
			return zap.DebugLevel, nil
		}
		return zap.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return level, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func logEncoder(format string, debug bool) (zapcore.Encoder, error) {
	if format == "" {
		format = "json"
		if debug {
			format = "console"
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	if debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	switch format {
	case "json":
		return zapcore.NewJSONEncoder(encoderConfig), nil
	case "console":
		return zapcore.NewConsoleEncoder(encoderConfig), nil
	default:
		return nil, fmt.Errorf("LOG_FORMAT: unknown format %q", format)
	}
}
