package config

import (
	"sync"

	"go.uber.org/zap"
)

var (
	appLogger  *zap.Logger
	onceLogger sync.Once
)

func Logger() *zap.Logger {
	onceLogger.Do(func() {
		var err error
		if IsProduction() {
			appLogger, err = zap.NewProduction()
		} else {
			appLogger, err = zap.NewDevelopment()
		}
		if err != nil {
			appLogger = zap.NewNop()
		}
	})
	return appLogger
}
