package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the process logger from the configured level. Unknown levels
// fall back to info rather than failing startup.
func New(level string) *logrus.Logger {
	log := logrus.New()
	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}
