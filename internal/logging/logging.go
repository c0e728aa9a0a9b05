// Package logging builds the logrus logger shared by all binaries.
package logging

import (
	"github.com/sirupsen/logrus"
)

// New returns a logger writing text lines with full timestamps. Unknown
// level strings fall back to info.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}
