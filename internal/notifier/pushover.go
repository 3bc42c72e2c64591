package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Pushover priorities, see https://pushover.net/api#priority
const (
	PriorityLowest  = -2
	PriorityLow     = -1
	PriorityNormal  = 0
	PriorityHigh    = 1
	PriorityUrgent  = 2
	defaultTimeout  = 10 * time.Second
	maxErrorBodyLen = 512
)

var ErrInvalidPriority = errors.New("priority out of range")

type Message struct {
	Title    string
	Body     string
	Priority int
}

// Pushover submits messages to the Pushover messages endpoint.
type Pushover struct {
	apiURL  string
	apiKey  string
	userKey string
	client  *http.Client
	logger  zerolog.Logger
}

func NewPushover(apiURL, apiKey, userKey string, logger zerolog.Logger) *Pushover {
	return &Pushover{
		apiURL:  apiURL,
		apiKey:  apiKey,
		userKey: userKey,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

// Notify sends msg once. A transport failure or a non-2xx answer is
// returned as an error; nothing is retried.
func (p *Pushover) Notify(ctx context.Context, msg Message) error {
	if msg.Priority < PriorityLowest || msg.Priority > PriorityUrgent {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, msg.Priority)
	}

	form := url.Values{}
	form.Set("token", p.apiKey)
	form.Set("user", p.userKey)
	form.Set("title", msg.Title)
	form.Set("message", msg.Body)
	form.Set("priority", strconv.Itoa(msg.Priority))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create pushover request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to pushover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return fmt.Errorf("pushover returned error status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	p.logger.Debug().Str("title", msg.Title).Int("priority", msg.Priority).Msg("pushover message sent")
	return nil
}
