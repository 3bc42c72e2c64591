package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/guregu/null/v5"
	"github.com/rs/zerolog"
)

// Classification is the health verdict of one check attempt.
type Classification int

const (
	Down Classification = iota
	Warning
	OK
)

func (c Classification) String() string {
	switch c {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	default:
		return "DOWN"
	}
}

const (
	DetailOK            = "OK"
	DetailNotReachable  = "URL not reachable"
	DetailPatternAbsent = "Validation pattern not found in response body"
)

// Result is the outcome of a single check attempt.
type Result struct {
	Classification Classification
	Detail         string
}

// Target describes what a healthy response of an endpoint looks like.
type Target struct {
	URL                string
	ExpectedStatusCode int
	OKSubstring        null.String
	WarnSubstring      null.String
}

// HTTPChecker classifies endpoints with a single GET request per check.
type HTTPChecker struct {
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
	logger       zerolog.Logger
}

func New(timeout time.Duration, maxBodyBytes int64, logger zerolog.Logger) *HTTPChecker {
	return &HTTPChecker{
		client:       &http.Client{Timeout: timeout},
		timeout:      timeout,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

func (c *HTTPChecker) Check(ctx context.Context, target Target) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", target.URL).Msg("failed to build request")
		return Result{Down, DetailNotReachable}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", target.URL).Msg("request failed")
		return Result{Down, DetailNotReachable}
	}
	defer resp.Body.Close()

	if resp.StatusCode != target.ExpectedStatusCode {
		return Result{Down, fmt.Sprintf("URL reachable, but status code %d != %d", resp.StatusCode, target.ExpectedStatusCode)}
	}

	if !target.OKSubstring.Valid {
		return Result{OK, DetailOK}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		c.logger.Debug().Err(err).Str("url", target.URL).Msg("failed to read response body")
		return Result{Down, DetailNotReachable}
	}
	text := string(body)

	if strings.Contains(text, target.OKSubstring.String) {
		return Result{OK, DetailOK}
	}
	if target.WarnSubstring.Valid && strings.Contains(text, target.WarnSubstring.String) {
		return Result{Warning, "String found for warning indication in response body: " + target.WarnSubstring.String}
	}
	return Result{Down, DetailPatternAbsent}
}
