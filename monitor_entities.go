package main

import (
	"github.com/rs/zerolog"

	"webmonitor/internal/checker"
	"webmonitor/internal/config"
)

type Monitor struct {
	configurationURL string
	repeat           config.RepeatPolicy
	loader           ConfigurationLoader
	checker          StatusChecker
	notifier         Notifier
	sleeper          Sleeper
	logger           zerolog.Logger
}

type RunReport struct {
	AllEndpointsHealthy bool
	SkippedEntries      int
	EndpointReports     []EndpointReport
}

type EndpointReport struct {
	URL               string
	Classification    checker.Classification
	Detail            string
	Attempts          int
	Notified          bool
	NotificationError string
}

// Count returns how many endpoints ended with classification c.
func (r RunReport) Count(c checker.Classification) int {
	n := 0
	for _, e := range r.EndpointReports {
		if e.Classification == c {
			n++
		}
	}
	return n
}
