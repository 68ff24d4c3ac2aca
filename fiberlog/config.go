package fiberlog

import "github.com/sirupsen/logrus"

// Config selects the logger and the request tags written for each call.
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault logs status, latency, method and path on the standard logger.
var ConfigDefault Config = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}
