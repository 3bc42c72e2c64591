package main

import (
	"fmt"
	"strings"

	"webmonitor/internal/checker"
)

func reportRun(r RunReport) string {
	var b strings.Builder
	for _, e := range r.EndpointReports {
		if e.Classification == checker.OK {
			fmt.Fprintf(&b, "%s: OK\n", e.URL)
			continue
		}
		fmt.Fprintf(&b, "%s: %s - %s", e.URL, e.Classification, e.Detail)
		if e.NotificationError != "" {
			fmt.Fprintf(&b, " (notification failed: %s)", e.NotificationError)
		}
		b.WriteString("\n")
	}
	if r.SkippedEntries > 0 {
		fmt.Fprintf(&b, "Skipped entries: %d\n", r.SkippedEntries)
	}
	if r.AllEndpointsHealthy {
		b.WriteString("Summary: All endpoints are healthy")
	} else {
		b.WriteString("Summary: Some endpoints are unhealthy")
	}
	return b.String()
}
