package main

import (
	"context"
	"time"

	"webmonitor/internal/checker"
	"webmonitor/internal/monitoring"
	"webmonitor/internal/notifier"
)

//go:generate mockery
type ConfigurationLoader interface {
	Load(ctx context.Context, location string) (*monitoring.Configuration, error)
}

//go:generate mockery
type StatusChecker interface {
	Check(ctx context.Context, target checker.Target) checker.Result
}

//go:generate mockery
type Notifier interface {
	Notify(ctx context.Context, msg notifier.Message) error
}

//go:generate mockery
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}
