package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the run logger. Logs go to stderr so that stdout carries
// only workflow commands and the final marker.
func NewLogger(logLevel, format string) *zap.Logger {
	return newLogger(logLevel, format, os.Stderr)
}

func newLogger(logLevel, format string, w io.Writer) *zap.Logger {
	encodeConfig := zap.NewProductionConfig()
	encodeConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encodeConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var encoder zapcore.Encoder
	switch format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encodeConfig.EncoderConfig)
	default:
		encoder = zapcore.NewConsoleEncoder(encodeConfig.EncoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), parseLevel(logLevel))
	return zap.New(core, zap.AddCaller())
}

func parseLevel(logLevel string) zapcore.Level {
	switch logLevel {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
