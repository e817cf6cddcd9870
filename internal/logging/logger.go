// SPDX-License-Identifier: EPL-2.0

// Package logging builds the logrus logger used by the command line tool.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05.000 Z07:00"

type utcFormatter struct {
	logrus.Formatter
}

func (f utcFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Time = entry.Time.UTC()
	return f.Formatter.Format(entry)
}

// Setup returns a logger writing to out at level ("info" when empty), as
// JSON or as text lines. Timestamps are in UTC.
func Setup(out io.Writer, level string, json, colors bool) (*logrus.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var lineFormatter logrus.Formatter
	if json {
		lineFormatter = &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		}
	} else {
		lineFormatter = &logrus.TextFormatter{
			TimestampFormat:  timestampFormat,
			FullTimestamp:    true,
			ForceColors:      colors,
			DisableColors:    !colors,
			QuoteEmptyFields: true,
		}
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(utcFormatter{lineFormatter})
	return log, nil
}
