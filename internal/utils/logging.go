package utils

import (
	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitLogger builds the process-wide zap logger. Development mode gets the
// human-readable console encoder; production gets JSON with sampling.
func InitLogger(env string) {
	var err error
	if env == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
}

func GetLogger() *zap.Logger {
	if Logger == nil {
		InitLogger("development")
	}
	return Logger
}
