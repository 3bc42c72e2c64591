//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"webmonitor/internal/config"
)

func InitializeMonitor(settings *config.Settings, logger zerolog.Logger) *Monitor {
	wire.Build(
		NewMonitor,
		NewConfigurationLoader,
		NewStatusChecker,
		NewNotifier,
		NewSleeper,
	)
	return nil
}
