package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Init must be called once at startup.
var Log = logrus.New()

type Entry = logrus.Entry

// Init configures structured JSON output on stdout. Setting DEBUG=true in the
// environment lowers the level to debug.
func Init() {
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	Log.SetOutput(os.Stdout)

	if os.Getenv("DEBUG") == "true" {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}
