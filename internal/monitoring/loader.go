package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var (
	ErrFileNotFound             = errors.New("file not found")
	ErrConfigurationUnreachable = errors.New("monitoring configuration not reachable")
	ErrUnexpectedStatus         = errors.New("unexpected status code")
	ErrUnsupportedLocation      = errors.New("unsupported configuration location")
	ErrMalformedDocument        = errors.New("malformed monitoring configuration")
)

const (
	fileScheme       = "file://"
	maxDocumentBytes = 10 << 20
)

// Loader reads monitoring configurations from local files or HTTP(S) URLs.
type Loader struct {
	client *http.Client
	logger zerolog.Logger
}

func NewLoader(timeout time.Duration, logger zerolog.Logger) *Loader {
	return &Loader{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Load fetches and decodes the document at location, which is either
// file://<path> or an http(s):// URL.
func (l *Loader) Load(ctx context.Context, location string) (*Configuration, error) {
	location = strings.TrimSpace(location)
	lower := strings.ToLower(location)

	var (
		data []byte
		name string
		err  error
	)
	switch {
	case strings.HasPrefix(lower, fileScheme):
		name = location[len(fileScheme):]
		l.logger.Debug().Str("file", name).Msg("load local configuration file")
		data, err = readFile(name)
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		name = remotePath(location)
		l.logger.Debug().Str("url", location).Msg("load configuration from url")
		data, err = l.fetch(ctx, location)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocation, location)
	}
	if err != nil {
		return nil, err
	}

	cfg, err := Decode(data, isYAML(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	if len(cfg.Webpages) == 0 {
		l.logger.Warn().Str("location", location).Msg("monitoring configuration contains no webpages")
	}
	if e := l.logger.Debug(); e.Enabled() {
		e.RawJSON("configuration", compactJSON(data, isYAML(name))).Msg("monitoring configuration loaded")
	}
	return cfg, nil
}

// Decode parses a monitoring document. YAML input is normalised to JSON so
// both formats go through the same entry decoding.
func Decode(data []byte, asYAML bool) (*Configuration, error) {
	if asYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}
	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &cfg, nil
}

func readFile(name string) ([]byte, error) {
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigurationUnreachable, location, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigurationUnreachable, location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, location, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigurationUnreachable, location, err)
	}
	return data, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return out, nil
}

func compactJSON(data []byte, asYAML bool) []byte {
	if asYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return []byte("null")
		}
		data = converted
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return []byte("null")
	}
	return buf.Bytes()
}

func remotePath(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	return u.Path
}

func isYAML(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
