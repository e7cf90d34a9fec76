package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger writes every level to logFilePath and warnings and above to stderr,
// leaving stdout to the download progress. An empty path skips the file.
func NewLogger(logFilePath string) (*zap.Logger, error) {
	encoderConfig := zap.NewDevelopmentConfig()

	encoder := zapcore.NewConsoleEncoder(encoderConfig.EncoderConfig)

	stderrCore := zapcore.NewCore(
		encoder,
		zapcore.Lock(os.Stderr),
		zapcore.WarnLevel,
	)

	core := stderrCore
	if logFilePath != "" {
		logFile, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}

		fileCore := zapcore.NewCore(
			encoder,
			zapcore.AddSync(logFile),
			zapcore.DebugLevel,
		)
		core = zapcore.NewTee(fileCore, stderrCore)
	}

	logger := zap.New(
		core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Development(),
	)

	return logger, nil
}
