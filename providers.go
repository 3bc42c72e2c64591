package main

import (
	"github.com/rs/zerolog"

	"webmonitor/internal/checker"
	"webmonitor/internal/config"
	"webmonitor/internal/monitoring"
	"webmonitor/internal/notifier"
)

func NewMonitor(settings *config.Settings, loader ConfigurationLoader, statusChecker StatusChecker, n Notifier, sleeper Sleeper, logger zerolog.Logger) *Monitor {
	return &Monitor{
		configurationURL: settings.ConfigurationURL,
		repeat:           settings.Repeat,
		loader:           loader,
		checker:          statusChecker,
		notifier:         n,
		sleeper:          sleeper,
		logger:           logger,
	}
}

func NewConfigurationLoader(settings *config.Settings, logger zerolog.Logger) ConfigurationLoader {
	return monitoring.NewLoader(settings.CheckTimeout, logger)
}

func NewStatusChecker(settings *config.Settings, logger zerolog.Logger) StatusChecker {
	return checker.New(settings.CheckTimeout, settings.MaxBodyBytes, logger)
}

func NewNotifier(settings *config.Settings, logger zerolog.Logger) Notifier {
	return notifier.NewPushover(settings.PushoverAPIURL, settings.PushoverAPIKey, settings.PushoverUserKey, logger)
}

func NewSleeper() Sleeper {
	return contextSleeper{}
}
