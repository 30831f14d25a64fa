package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"minibank/internal/pkg/models"
)

// AppLogger is the application logger with JSON structured output.
type AppLogger struct {
	*logrus.Logger
	service string
}

// NewAppLogger creates a new application logger for the given service name.
func NewAppLogger(serviceName string, config models.LoggerConfig) *AppLogger {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetOutput(os.Stdout)

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	return &AppLogger{Logger: l, service: serviceName}
}

// WithFields adds custom fields to a log entry, always tagging the service.
func (al *AppLogger) WithFields(fields logrus.Fields) *logrus.Entry {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["service"] = al.service

	return al.Logger.WithFields(fields)
}

// WithError adds an error field to a log entry.
func (al *AppLogger) WithError(err error) *logrus.Entry {
	return al.WithFields(logrus.Fields{}).WithError(err)
}
