package pkg

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// InitLogger initializes the global Logger for the named service.
// Release mode logs JSON to stdout, every other gin mode uses the colored development encoder.
func InitLogger(service string) {
	logger, err := NewLogger(gin.Mode())
	if err != nil {
		panic(err)
	}
	Logger = logger.With(zap.String("service", service))
}

// NewLogger builds a zap logger for the given gin mode.
func NewLogger(mode string) (*zap.Logger, error) {
	var config zap.Config
	if gin.ReleaseMode == mode {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
		config.EncoderConfig.TimeKey = "ts"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return config.Build(zap.AddStacktrace(zap.DPanicLevel))
}
