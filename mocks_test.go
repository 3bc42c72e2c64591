package main

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"webmonitor/internal/checker"
	"webmonitor/internal/monitoring"
	"webmonitor/internal/notifier"
)

type ConfigurationLoaderMock struct {
	mock.Mock
}

func (m *ConfigurationLoaderMock) Load(ctx context.Context, location string) (*monitoring.Configuration, error) {
	args := m.Called(ctx, location)
	cfg, _ := args.Get(0).(*monitoring.Configuration)
	return cfg, args.Error(1)
}

type StatusCheckerMock struct {
	mock.Mock
}

func (m *StatusCheckerMock) Check(ctx context.Context, target checker.Target) checker.Result {
	args := m.Called(ctx, target)
	return args.Get(0).(checker.Result)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) Notify(ctx context.Context, msg notifier.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type SleeperMock struct {
	mock.Mock
}

func (m *SleeperMock) Sleep(ctx context.Context, d time.Duration) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
