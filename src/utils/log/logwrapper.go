// Package log wraps logrus with package level helpers so every package logs the same way.
package log

import (
	"io"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is an alias of logrus.Level.
type Level = logrus.Level

// Fields is an alias of logrus.Fields.
type Fields = logrus.Fields

// Entry is an alias of logrus.Entry.
type Entry = logrus.Entry

const (
	// PanicLevel level, highest level of severity.
	PanicLevel = logrus.PanicLevel
	// FatalLevel level. Logs and then calls `os.Exit(1)`.
	FatalLevel = logrus.FatalLevel
	// ErrorLevel level. Used for errors that should definitely be noted.
	ErrorLevel = logrus.ErrorLevel
	// WarnLevel level. Non-critical entries that deserve eyes.
	WarnLevel = logrus.WarnLevel
	// InfoLevel level. General operational entries about what's going on inside the application.
	InfoLevel = logrus.InfoLevel
	// DebugLevel level. Usually only enabled when debugging.
	DebugLevel = logrus.DebugLevel
	// TraceLevel level. Designates finer-grained informational events than the Debug.
	TraceLevel = logrus.TraceLevel
)

const modulePrefix = "poker-contracts-sub001/src/"

// callerHook adds the short caller location to every entry.
type callerHook struct{}

func (h *callerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *callerHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["caller"]; ok {
		return nil
	}
	// skip logrus internals and this wrapper
	for skip := 4; skip < 12; skip++ {
		pc, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		name := fn.Name()
		if strings.Contains(name, "sirupsen/logrus") || strings.HasSuffix(filepath.Dir(file), "utils/log") {
			continue
		}
		if i := strings.Index(name, modulePrefix); i >= 0 {
			name = name[i+len(modulePrefix):]
		}
		entry.Data["caller"] = filepath.Base(file) + ":" + strconv.Itoa(line) + " " + name
		break
	}
	return nil
}

func init() {
	logrus.AddHook(&callerHook{})
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
}

// SetOutput sets the standard logger output.
func SetOutput(out io.Writer) {
	logrus.SetOutput(out)
}

// SetFormatter sets the standard logger formatter.
func SetFormatter(formatter logrus.Formatter) {
	logrus.SetFormatter(formatter)
}

// SetLevel sets the standard logger level.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// SetStringLevel sets the standard logger level by name, falls back to defaultLevel when
// the name can't be parsed.
func SetStringLevel(lvl string, defaultLevel Level) {
	if level, err := logrus.ParseLevel(lvl); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.SetLevel(defaultLevel)
	}
}

// GetLevel returns the standard logger level.
func GetLevel() Level {
	return logrus.GetLevel()
}

// ParseLevel takes a string level and returns the logrus log level constant.
func ParseLevel(lvl string) (Level, error) {
	return logrus.ParseLevel(lvl)
}

// WithError creates an entry from the standard logger and adds an error to it.
func WithError(err error) *Entry {
	return logrus.WithError(err)
}

// WithField creates an entry from the standard logger and adds a field to it.
func WithField(key string, value interface{}) *Entry {
	return logrus.WithField(key, value)
}

// WithFields creates an entry from the standard logger and adds multiple fields to it.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// Debug logs a message at level Debug on the standard logger.
func Debug(args ...interface{}) {
	logrus.Debug(args...)
}

// Info logs a message at level Info on the standard logger.
func Info(args ...interface{}) {
	logrus.Info(args...)
}

// Warning logs a message at level Warn on the standard logger.
func Warning(args ...interface{}) {
	logrus.Warning(args...)
}

// Error logs a message at level Error on the standard logger.
func Error(args ...interface{}) {
	logrus.Error(args...)
}

// Fatal logs a message at level Fatal on the standard logger then the process will exit.
func Fatal(args ...interface{}) {
	logrus.Fatal(args...)
}

// Debugf logs a message at level Debug on the standard logger.
func Debugf(format string, args ...interface{}) {
	logrus.Debugf(format, args...)
}

// Infof logs a message at level Info on the standard logger.
func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}

// Warningf logs a message at level Warn on the standard logger.
func Warningf(format string, args ...interface{}) {
	logrus.Warningf(format, args...)
}

// Errorf logs a message at level Error on the standard logger.
func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}

// Fatalf logs a message at level Fatal on the standard logger then the process will exit.
func Fatalf(format string, args ...interface{}) {
	logrus.Fatalf(format, args...)
}
