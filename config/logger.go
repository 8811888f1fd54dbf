package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogger routes logrus output to stdout and a rotating file.
func SetupLogger() {
	rotate := &lumberjack.Logger{
		Filename:  LogFile,
		MaxSize:   20, // MB
		Compress:  true,
		LocalTime: true,
	}

	logrus.SetOutput(io.MultiWriter(os.Stdout, rotate))
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logrus.SetLevel(logrus.InfoLevel)
}
