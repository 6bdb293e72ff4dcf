package log

import (
	"github.com/sirupsen/logrus"
)

// NilFormatter just discards the log entry.
type NilFormatter struct{}

// Format just return nil, nil for discarding log entry.
func (f *NilFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return nil, nil
}

// NilWriter just discards the log entry.
type NilWriter struct{}

// Write just return 0, nil for discarding log entry.
func (w *NilWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// Silence discards everything written to the standard logger, used by tests and quiet CLI runs.
func Silence() {
	SetOutput(&NilWriter{})
	SetFormatter(&NilFormatter{})
}
