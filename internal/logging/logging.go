package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. JSON output so log collectors can
// parse it; debug mode drops the level to Debug.
func New(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// LogError logs an error with the standard module/funcName fields
func LogError(logger *logrus.Logger, moduleName string, funcName string, err error) {
	logger.WithFields(logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
	}).Error(err.Error())
}
