package studio

import (
	"github.com/alexisbeaulieu97/gradix/internal/logger"
)

// Level classifies a user-facing notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier receives short status messages meant for whoever is driving the
// studio.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

// LogNotifier forwards notifications to a logger.
type LogNotifier struct {
	Log *logger.Logger
}

func (n LogNotifier) Notify(level Level, message string) {
	if level == LevelError {
		n.Log.Error(nil, message)
		return
	}
	n.Log.WithFields(logger.Fields{"status": string(level)}).Info(message)
}

type discard struct{}

func (discard) Notify(Level, string) {}
