package notifier

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifySendsForm(t *testing.T) {
	var received url.Values
	var contentType string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		received = r.PostForm
		_, _ = io.WriteString(w, `{"status":1,"request":"abc"}`)
	}))
	defer s.Close()

	p := NewPushover(s.URL+"/1/messages.json", "app-token", "user-key", zerolog.New(io.Discard))
	err := p.Notify(context.Background(), Message{
		Title:    "Website down",
		Body:     "Website monitoring error for (https://example.com)\nDetails: URL not reachable",
		Priority: PriorityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Equal(t, "app-token", received.Get("token"))
	assert.Equal(t, "user-key", received.Get("user"))
	assert.Equal(t, "Website down", received.Get("title"))
	assert.Equal(t, "Website monitoring error for (https://example.com)\nDetails: URL not reachable", received.Get("message"))
	assert.Equal(t, "1", received.Get("priority"))
}

func TestNotifyReportsErrorStatus(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"user":"invalid","status":0}`)
	}))
	defer s.Close()

	p := NewPushover(s.URL, "app-token", "user-key", zerolog.New(io.Discard))
	err := p.Notify(context.Background(), Message{Title: "Website warning", Body: "x", Priority: PriorityNormal})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid")
}

func TestNotifyReportsTransportFailure(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	apiURL := s.URL
	s.Close()

	p := NewPushover(apiURL, "app-token", "user-key", zerolog.New(io.Discard))
	err := p.Notify(context.Background(), Message{Title: "t", Body: "b"})
	assert.Error(t, err)
}

func TestNotifyRejectsInvalidPriority(t *testing.T) {
	p := NewPushover("http://127.0.0.1:1", "app-token", "user-key", zerolog.New(io.Discard))
	for _, priority := range []int{-3, 3} {
		err := p.Notify(context.Background(), Message{Title: "t", Body: "b", Priority: priority})
		assert.ErrorIs(t, err, ErrInvalidPriority)
	}
}
