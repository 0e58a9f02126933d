package log

import (
	"errors"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures rotated log file output.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AttachFile tees the package logger into a size-rotated JSON log file. The
// returned Closer closes the file; the console output is unaffected.
func AttachFile(fc FileConfig) (io.Closer, error) {
	if fc.Path == "" {
		return nil, errors.New("log file path is empty")
	}

	w := &lumberjack.Logger{
		Filename:   fc.Path,
		MaxSize:    fc.MaxSizeMB,
		MaxBackups: fc.MaxBackups,
		MaxAge:     fc.MaxAgeDays,
		Compress:   fc.Compress,
	}

	base := GetZapLogger()
	level := zapcore.InfoLevel
	if base.Core().Enabled(zapcore.DebugLevel) {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), level)

	mu.Lock()
	baseLogger = base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	}))
	log = baseLogger.Sugar()
	mu.Unlock()

	return w, nil
}
