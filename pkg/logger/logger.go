package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

var global = zap.NewNop()

// SetupLogger builds the process-wide logger. In dev it is a human readable
// console logger at debug level, everywhere else structured JSON at info.
func SetupLogger(env string) *zap.Logger {
	var cfg zap.Config

	switch env {
	case envDev:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		cfg = zap.NewProductionConfig()
	}

	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		log = zap.NewNop()
	}

	global = log

	return log
}

func Logger() *zap.Logger {
	return global
}

func Debug(msg string, fields ...zap.Field) {
	global.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	global.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	global.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	global.Error(msg, fields...)
}
