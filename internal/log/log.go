// Package log is a small leveled logger writing key/value lines to
// stderr. The TUI owns the terminal, so everything here stays on stderr
// and is only visible after exit or when redirected.
package log

import (
	"fmt"
	stdlog "log"
	"os"
	"sync"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

var (
	logger   *stdlog.Logger
	initOnce sync.Once
	mu       sync.Mutex
	minLevel = LevelInfo
)

func get() *stdlog.Logger {
	initOnce.Do(func() {
		logger = stdlog.New(os.Stderr, "", stdlog.LstdFlags)
	})
	return logger
}

// SetLevel sets the minimum level that will be written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	switch l {
	case LevelDebug, LevelInfo, LevelError:
		minLevel = l
	}
}

// ParseLevel maps a config string onto a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

func Debug(msg string, kv ...any) { write(LevelDebug, msg, kv...) }

func Info(msg string, kv ...any) { write(LevelInfo, msg, kv...) }

// Error logs msg with the error prepended to the key/value pairs.
func Error(msg string, err error, kv ...any) {
	write(LevelError, msg, append([]any{"err", err}, kv...)...)
}

func write(level Level, msg string, kv ...any) {
	if !enabled(level) {
		return
	}
	line := "[" + string(level) + "] " + msg
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		line += " " + key + "=" + fmt.Sprint(kv[i+1])
	}
	get().Println(line)
}

func enabled(level Level) bool {
	mu.Lock()
	defer mu.Unlock()
	switch minLevel {
	case LevelDebug:
		return true
	case LevelError:
		return level == LevelError
	default:
		return level != LevelDebug
	}
}
