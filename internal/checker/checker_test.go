package checker

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guregu/null/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestChecker() *HTTPChecker {
	return New(2*time.Second, 1<<20, zerolog.New(io.Discard))
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func TestCheckStatusMatchWithoutSubstringIsOK(t *testing.T) {
	s := serve(t, http.StatusOK, "anything at all")
	result := newTestChecker().Check(context.Background(), Target{URL: s.URL, ExpectedStatusCode: 200})
	assert.Equal(t, Result{OK, "OK"}, result)
}

func TestCheckCustomExpectedStatus(t *testing.T) {
	s := serve(t, http.StatusNoContent, "")
	result := newTestChecker().Check(context.Background(), Target{URL: s.URL, ExpectedStatusCode: 204})
	assert.Equal(t, OK, result.Classification)
}

func TestCheckStatusMismatchIsDown(t *testing.T) {
	s := serve(t, http.StatusServiceUnavailable, "Login")
	result := newTestChecker().Check(context.Background(), Target{
		URL:                s.URL,
		ExpectedStatusCode: 200,
		OKSubstring:        null.StringFrom("Login"),
	})
	assert.Equal(t, Down, result.Classification)
	assert.Equal(t, "URL reachable, but status code 503 != 200", result.Detail)
}

func TestCheckUnreachableIsDown(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	url := s.URL
	s.Close()

	result := newTestChecker().Check(context.Background(), Target{
		URL:                url,
		ExpectedStatusCode: 200,
		OKSubstring:        null.StringFrom("Login"),
		WarnSubstring:      null.StringFrom("Maintenance"),
	})
	assert.Equal(t, Result{Down, DetailNotReachable}, result)
}

func TestCheckTimeoutIsDown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer s.Close()

	c := New(100*time.Millisecond, 1<<20, zerolog.New(io.Discard))
	result := c.Check(context.Background(), Target{URL: s.URL, ExpectedStatusCode: 200})
	assert.Equal(t, Result{Down, DetailNotReachable}, result)
}

func TestCheckSubstrings(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		ok       null.String
		warn     null.String
		expected Result
	}{
		{"ok substring present", "<h1>Login</h1>", null.StringFrom("Login"), null.String{}, Result{OK, "OK"}},
		{"ok wins over warn", "Login Maintenance", null.StringFrom("Login"), null.StringFrom("Maintenance"), Result{OK, "OK"}},
		{"warn substring present", "Maintenance", null.StringFrom("Login"), null.StringFrom("Maintenance"),
			Result{Warning, "String found for warning indication in response body: Maintenance"}},
		{"neither present", "Welcome", null.StringFrom("Login"), null.StringFrom("Maintenance"), Result{Down, DetailPatternAbsent}},
		{"no warn configured", "Welcome", null.StringFrom("Login"), null.String{}, Result{Down, DetailPatternAbsent}},
		{"warn alone is ignored", "Maintenance", null.String{}, null.StringFrom("Maintenance"), Result{OK, "OK"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := serve(t, http.StatusOK, c.body)
			result := newTestChecker().Check(context.Background(), Target{
				URL:                s.URL,
				ExpectedStatusCode: 200,
				OKSubstring:        c.ok,
				WarnSubstring:      c.warn,
			})
			assert.Equal(t, c.expected, result)
		})
	}
}

func TestCheckBodyIsBounded(t *testing.T) {
	s := serve(t, http.StatusOK, "0123456789Login")
	c := New(2*time.Second, 10, zerolog.New(io.Discard))
	result := c.Check(context.Background(), Target{URL: s.URL, ExpectedStatusCode: 200, OKSubstring: null.StringFrom("Login")})
	assert.Equal(t, Down, result.Classification)
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "OK", OK.String())
	assert.Equal(t, "WARNING", Warning.String())
	assert.Equal(t, "DOWN", Down.String())
}
