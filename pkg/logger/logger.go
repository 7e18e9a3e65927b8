package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	instance *zap.SugaredLogger
	once     sync.Once
)

// New builds the process-wide sugared logger. Safe to call more than once;
// the first call wins.
func New(development bool) (*zap.SugaredLogger, error) {
	var err error
	once.Do(func() {
		var l *zap.Logger
		if development {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			return
		}
		instance = l.Sugar()
	})
	return instance, err
}

// L returns the configured logger, falling back to a no-op logger so library
// code can log before New has run (tests, mostly).
func L() *zap.SugaredLogger {
	if instance == nil {
		return zap.NewNop().Sugar()
	}
	return instance
}
