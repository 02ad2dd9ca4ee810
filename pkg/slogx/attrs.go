package slogx

import (
	"log/slog"
)

// Error returns a slog.Attr for the provided error.
// The attribute key is "error" and the value is the error's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// ByteString creates a slog.Attr with the given key and a string
// representation of the byte slice value. Useful for logging marshaled
// payloads without an extra conversion at the call site.
func ByteString(key string, value []byte) slog.Attr {
	return slog.String(key, string(value))
}

// KeyLoggerName is the attribute key used to tag log records with the
// name of the component that produced them.
const KeyLoggerName = "logger"

// LoggerName creates a slog.Attr carrying the provided logger name under
// KeyLoggerName. Attach it with Logger.With to namespace a component's
// log output.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}
