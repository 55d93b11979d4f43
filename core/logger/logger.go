package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	log  *slog.Logger
	once sync.Once
)

// Init configures the process logger. Level is one of debug/info/warn/error.
func Init(level string) {
	once.Do(func() {
		var lvl slog.Level
		switch level {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	})
}

func get() *slog.Logger {
	if log == nil {
		Init("info")
	}
	return log
}

// normalize tolerates loose call sites: a trailing bare error (or any odd
// leftover value) is folded into an "error" attribute so key/value pairing
// never panics.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	last := args[len(args)-1]
	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	if err, ok := last.(error); ok {
		return append(out, "error", err)
	}
	return append(out, "detail", last)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}
