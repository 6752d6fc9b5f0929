package slogx

import (
	"log/slog"
)

// Error returns an attribute with the key "error" holding the error's message.
// A nil error yields an empty attribute, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

const (
	// KeyLoggerName is the attribute key carrying the logger name.
	KeyLoggerName = "logger"
	// KeyObservable is the attribute key carrying an observable's name.
	KeyObservable = "observable"
)

// LoggerName returns an attribute for the logger name.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// Observable returns an attribute naming the observable a record is about.
func Observable(name string) slog.Attr {
	return slog.String(KeyObservable, name)
}
