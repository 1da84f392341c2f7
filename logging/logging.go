// ec2search/logging
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

// Package logging sets up the logrus logger used by the command.
package logging

import (
    "fmt"
    "io"
    "time"

    "github.com/sirupsen/logrus"
)

// New returns a logger writing to w.
// level is a logrus level name, format is "text" or "json".
func New(level, format string, w io.Writer) (*logrus.Logger, error) {
    lv, err := logrus.ParseLevel(level)
    if err != nil {
	return nil, err
    }
    logger := logrus.New()
    logger.SetOutput(w)
    logger.SetLevel(lv)
    switch format {
    case "json":
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
    case "text", "":
	logger.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339, FullTimestamp: true})
    default:
	return nil, fmt.Errorf("unknown log format %q", format)
    }
    return logger, nil
}
