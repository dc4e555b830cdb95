package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultLogFile = "deploy-checklist.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	override     io.Writer
	file         *os.File

	errorLog = newLogger(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	traceLog = newLogger(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano, DisableHTMLEscape: true})
)

func newLogger(f logrus.Formatter) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(f)
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(io.Discard)
	return l
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if !ensureOutput() {
		return
	}
	errorLog.Error(err)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace currently writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled || !ensureOutput() {
		return
	}
	fields := logrus.Fields{"event": event}
	if payload != nil {
		fields["payload"] = payload
	}
	traceLog.WithFields(fields).Info("trace")
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput sends both logs to w instead of the log file. A nil writer
// restores file output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	override = w
	if w != nil {
		errorLog.SetOutput(w)
		traceLog.SetOutput(w)
		return
	}
	errorLog.SetOutput(io.Discard)
	traceLog.SetOutput(io.Discard)
	if file != nil {
		errorLog.SetOutput(file)
		traceLog.SetOutput(file)
	}
}

// Close releases the log file, if one is open.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
}

func ensureOutput() bool {
	if override != nil || file != nil {
		return true
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return false
	}
	file = f
	errorLog.SetOutput(f)
	traceLog.SetOutput(f)
	return true
}

func closeFile() {
	if file == nil {
		return
	}
	_ = file.Close()
	file = nil
	if override == nil {
		errorLog.SetOutput(io.Discard)
		traceLog.SetOutput(io.Discard)
	}
}
