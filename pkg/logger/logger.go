// Package logger is the process-wide structured logging facade. Call
// Init once at startup with the backends to use; every package logs
// through the package-level functions with key-value pairs. An
// uninitialized logger drops messages, which keeps library tests quiet.
package logger

// LoggerInstance defines the interface for logging backends.
type LoggerInstance interface {
	Log(message string, keyvals ...any)
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

type level int

const (
	levelLog level = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
	levelFatal
)

// Logger holds the configured backends and fans every call out to all
// of them.
type Logger struct {
	instances []LoggerInstance
}

var singleton *Logger

// Init initializes the global logger with one or more backends. Must be
// called before any logging function produces output.
func Init(instances ...LoggerInstance) {
	singleton = &Logger{
		instances: instances,
	}
}

func dispatch(l level, message string, keyvals ...any) {
	logger := singleton
	if logger == nil {
		return
	}

	for _, instance := range logger.instances {
		switch l {
		case levelLog:
			instance.Log(message, keyvals...)
		case levelDebug:
			instance.Debug(message, keyvals...)
		case levelInfo:
			instance.Info(message, keyvals...)
		case levelWarn:
			instance.Warn(message, keyvals...)
		case levelError:
			instance.Error(message, keyvals...)
		case levelFatal:
			instance.Fatal(message, keyvals...)
		}
	}
}

// Log writes a message at the backend's default level.
func Log(message string, keyvals ...any) { dispatch(levelLog, message, keyvals...) }

// Debug writes a message at DEBUG level.
func Debug(message string, keyvals ...any) { dispatch(levelDebug, message, keyvals...) }

// Info writes a message at INFO level.
func Info(message string, keyvals ...any) { dispatch(levelInfo, message, keyvals...) }

// Warn writes a message at WARN level.
func Warn(message string, keyvals ...any) { dispatch(levelWarn, message, keyvals...) }

// Error writes a message at ERROR level.
func Error(message string, keyvals ...any) { dispatch(levelError, message, keyvals...) }

// Fatal writes a message at FATAL level; backends are expected to
// terminate the process.
func Fatal(message string, keyvals ...any) { dispatch(levelFatal, message, keyvals...) }
