package main

import (
	"context"
	"fmt"
	"time"

	"webmonitor/internal/checker"
	"webmonitor/internal/monitoring"
	"webmonitor/internal/notifier"
)

const (
	warningTitle = "Website warning"
	downTitle    = "Website down"
)

func (m *Monitor) Run(ctx context.Context) (*RunReport, error) {
	m.logger.Info().Msgf("Webpage Monitoring System version %s started", version)

	cfg, err := m.loader.Load(ctx, m.configurationURL)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to load monitoring configuration")
		return nil, &AppError{"Failed to load monitoring configuration", err}
	}

	report := &RunReport{AllEndpointsHealthy: true}
	for _, spec := range cfg.Webpages {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("monitoring interrupted: %w", err)
		}
		if len(spec.Raw) > 0 {
			m.logger.Debug().RawJSON("entry", spec.Raw).Msg("process monitoring entry")
		}
		if !spec.Monitorable() {
			m.logger.Warn().RawJSON("entry", rawOrNull(spec)).Msg(`entry has no attribute "monitoring_url"`)
			report.SkippedEntries++
			continue
		}

		endpointReport, err := m.monitorEndpoint(ctx, spec)
		if err != nil {
			return report, err
		}
		if endpointReport.Classification != checker.OK {
			report.AllEndpointsHealthy = false
		}
		report.EndpointReports = append(report.EndpointReports, endpointReport)
	}

	m.logger.Info().
		Int("ok", report.Count(checker.OK)).
		Int("warning", report.Count(checker.Warning)).
		Int("down", report.Count(checker.Down)).
		Int("skipped", report.SkippedEntries).
		Msgf("Webpage Monitoring System version %s ended", version)
	return report, nil
}

func (m *Monitor) monitorEndpoint(ctx context.Context, spec monitoring.EndpointSpec) (EndpointReport, error) {
	target := spec.Target()
	result, err := m.check(ctx, target)
	if err != nil {
		return EndpointReport{}, err
	}
	attempts := 1

	for m.repeat.Enabled && result.Classification != checker.OK && attempts <= m.repeat.MaxAttempts {
		m.logger.Warn().Msgf("WARNING %s (%s) - repeat in %d seconds.", target.URL, result.Detail, int(m.repeat.Wait/time.Second))
		if err := m.sleeper.Sleep(ctx, m.repeat.Wait); err != nil {
			return EndpointReport{}, fmt.Errorf("monitoring of %s interrupted: %w", target.URL, err)
		}
		if result, err = m.check(ctx, target); err != nil {
			return EndpointReport{}, err
		}
		attempts++
	}

	report := EndpointReport{
		URL:            target.URL,
		Classification: result.Classification,
		Detail:         result.Detail,
		Attempts:       attempts,
	}

	var msg notifier.Message
	switch result.Classification {
	case checker.OK:
		m.logger.Info().Msgf("OK %s", target.URL)
		return report, nil
	case checker.Warning:
		m.logger.Warn().Msgf("WARNING %s (%s)", target.URL, result.Detail)
		msg = notifier.Message{
			Title:    warningTitle,
			Body:     fmt.Sprintf("Website monitoring warning for (%s)\nDetails: %s", target.URL, result.Detail),
			Priority: notifier.PriorityNormal,
		}
	default:
		m.logger.Error().Msgf("ERROR %s (%s)", target.URL, result.Detail)
		msg = notifier.Message{
			Title:    downTitle,
			Body:     fmt.Sprintf("Website monitoring error for (%s)\nDetails: %s", target.URL, result.Detail),
			Priority: notifier.PriorityHigh,
		}
	}

	report.Notified = true
	if err := m.notifier.Notify(ctx, msg); err != nil {
		m.logger.Error().Err(err).Str("url", target.URL).Msg("failed to send notification")
		report.Notified = false
		report.NotificationError = err.Error()
	}
	return report, nil
}

// check drops results produced after ctx was cancelled.
func (m *Monitor) check(ctx context.Context, target checker.Target) (checker.Result, error) {
	result := m.checker.Check(ctx, target)
	if err := ctx.Err(); err != nil {
		return checker.Result{}, fmt.Errorf("monitoring of %s interrupted: %w", target.URL, err)
	}
	return result, nil
}

func rawOrNull(spec monitoring.EndpointSpec) []byte {
	if len(spec.Raw) == 0 {
		return []byte("null")
	}
	return spec.Raw
}

type contextSleeper struct{}

func (contextSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
