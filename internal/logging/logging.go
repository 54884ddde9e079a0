package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetOutput(os.Stdout)
	logg.SetLevel(logrus.InfoLevel)
	if os.Getenv("LOG_DEBUG") == "1" {
		logg.SetLevel(logrus.DebugLevel)
	}
}

// GetLogger returns the shared application logger.
func GetLogger() *logrus.Logger {
	return logg
}

// LogError records a failure with its module/function context so export and
// persistence failures can be traced back to one call site.
func LogError(moduleName, funcName, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logg.WithFields(fields).Error(err.Error())
}
