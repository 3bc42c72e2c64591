package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingVariable = errors.New("environment variable not defined")
	ErrInvalidValue    = errors.New("invalid environment variable value")
)

const (
	DefaultPushoverAPIURL    = "https://api.pushover.net/1/messages.json"
	DefaultCheckTimeout      = 5 * time.Second
	DefaultMaxBodyBytes      = 5 << 20
	defaultRepeatCounter     = 1
	defaultRepeatWaitTimeSec = 2
)

// RepeatPolicy controls how often a failing endpoint is checked again before
// its result is reported.
type RepeatPolicy struct {
	Enabled     bool
	MaxAttempts int
	Wait        time.Duration
}

// Settings holds everything a monitoring run reads from its environment.
type Settings struct {
	PushoverUserKey  string
	PushoverAPIKey   string
	PushoverAPIURL   string
	ConfigurationURL string
	Repeat           RepeatPolicy
	LogLevel         string
	LogFormat        string
	CheckTimeout     time.Duration
	MaxBodyBytes     int64
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load builds Settings from lookup and validates them. Missing required
// variables and malformed numbers are reported as errors.
func Load(lookup LookupFunc) (*Settings, error) {
	s := &Settings{
		PushoverAPIURL: getEnv(lookup, "PUSHOVER_API_URL", DefaultPushoverAPIURL),
		LogLevel:       getEnv(lookup, "LOGLEVEL", "info"),
		LogFormat:      getEnv(lookup, "LOG_FORMAT", "json"),
	}

	var err error
	if s.PushoverUserKey, err = requireEnv(lookup, "PUSHOVER_USER_KEY"); err != nil {
		return nil, err
	}
	if s.PushoverAPIKey, err = requireEnv(lookup, "PUSHOVER_API_KEY"); err != nil {
		return nil, err
	}
	if s.ConfigurationURL, err = requireEnv(lookup, "MONITORING_CONFIGURATION_URL"); err != nil {
		return nil, err
	}

	if s.Repeat, err = loadRepeatPolicy(lookup); err != nil {
		return nil, err
	}

	timeoutSec, err := getEnvInt(lookup, "CHECK_TIMEOUT_SEC", int(DefaultCheckTimeout/time.Second))
	if err != nil {
		return nil, err
	}
	if timeoutSec <= 0 {
		return nil, fmt.Errorf("%w: CHECK_TIMEOUT_SEC must be positive, got %d", ErrInvalidValue, timeoutSec)
	}
	s.CheckTimeout = time.Duration(timeoutSec) * time.Second

	maxBody, err := getEnvInt(lookup, "CHECK_MAX_BODY_BYTES", DefaultMaxBodyBytes)
	if err != nil {
		return nil, err
	}
	if maxBody <= 0 {
		return nil, fmt.Errorf("%w: CHECK_MAX_BODY_BYTES must be positive, got %d", ErrInvalidValue, maxBody)
	}
	s.MaxBodyBytes = int64(maxBody)

	return s, nil
}

func loadRepeatPolicy(lookup LookupFunc) (RepeatPolicy, error) {
	raw, _ := lookup("REPEAT_ON_ERROR")
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes":
	default:
		return RepeatPolicy{}, nil
	}

	counter, err := getEnvInt(lookup, "REPEAT_ON_ERROR_COUNTER", defaultRepeatCounter)
	if err != nil {
		return RepeatPolicy{}, err
	}
	waitSec, err := getEnvInt(lookup, "REPEAT_ON_ERROR_WAIT_TIME_SEC", defaultRepeatWaitTimeSec)
	if err != nil {
		return RepeatPolicy{}, err
	}
	if counter < 0 || waitSec < 0 {
		return RepeatPolicy{}, fmt.Errorf("%w: repeat counter and wait time must not be negative", ErrInvalidValue)
	}
	return RepeatPolicy{
		Enabled:     true,
		MaxAttempts: counter,
		Wait:        time.Duration(waitSec) * time.Second,
	}, nil
}

func requireEnv(lookup LookupFunc, key string) (string, error) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingVariable, key)
	}
	return value, nil
}

func getEnv(lookup LookupFunc, key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(lookup LookupFunc, key string, fallback int) (int, error) {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidValue, key, raw)
	}
	return value, nil
}
