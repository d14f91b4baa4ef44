package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures the rotated log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// WithFile tees l into a size-rotated JSON file. The file receives the same
// levels l is enabled for. Empty Path returns l unchanged.
func WithFile(l *zap.Logger, opts FileOptions) *zap.Logger {
	if opts.Path == "" {
		return l
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB, // Megabytes
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays, // Days
		Compress:   opts.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(rotator),
			c, // same enabler as the console core
		)
		return zapcore.NewTee(c, fileCore)
	}))
}
