package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields aliases logrus.Fields so callers do not import logrus directly.
type Fields map[string]interface{}

// Log wraps logrus.Logger with component-scoped entries.
type Log struct {
	*logrus.Logger
}

// Entry wraps logrus.Entry.
type Entry struct {
	*logrus.Entry
}

var globalLogger *Log

func init() {
	globalLogger = newLogger()
}

func newLogger() *Log {
	l := logrus.New()

	level := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if level == "" {
		level = "info"
	}
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	return &Log{Logger: l}
}

// GetLogger returns the process-wide logger.
func GetLogger() *Log {
	return globalLogger
}

// UseLogFile switches output to a rotating log file under dir. Empty dir
// keeps the stdout sink.
func (l *Log) UseLogFile(dir, name string) {
	if dir == "" {
		return
	}
	l.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})
}

func (l *Log) WithComponent(component string) *Entry {
	return &Entry{Entry: l.Logger.WithField("component", component)}
}

func (l *Log) WithFields(fields Fields) *Entry {
	return &Entry{Entry: l.Logger.WithFields(logrus.Fields(fields))}
}

func (e *Entry) WithComponent(component string) *Entry {
	return &Entry{Entry: e.Entry.WithField("component", component)}
}

func (e *Entry) WithFields(fields Fields) *Entry {
	return &Entry{Entry: e.Entry.WithFields(logrus.Fields(fields))}
}

func (e *Entry) WithError(err error) *Entry {
	return &Entry{Entry: e.Entry.WithError(err)}
}
