package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a production zap logger writing to stderr.
// encoding is "json" or "console"; anything else falls back to json.
func NewLogger(level, encoding string) (*zap.Logger, error) {
	return build(level, encoding, []string{"stderr"})
}

// NewFileLogger writes to stderr and to path.
func NewFileLogger(path, level, encoding string) (*zap.Logger, error) {
	return build(level, encoding, []string{"stderr", path})
}

func build(level, encoding string, outputs []string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	// Parse level
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		l = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(l)

	if encoding == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.OutputPaths = outputs

	return config.Build()
}
