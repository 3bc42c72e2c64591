package monitoring

import (
	"bytes"
	"encoding/json"

	"github.com/guregu/null/v5"

	"webmonitor/internal/checker"
)

const (
	DefaultStatusCode = 200
	minURLLength      = 7
)

// Configuration is the decoded monitoring document.
type Configuration struct {
	Webpages []EndpointSpec `json:"webpages"`
}

// EndpointSpec is one monitored URL. Fields with an unexpected type are
// treated as absent and defaults are applied.
type EndpointSpec struct {
	URL                string
	ExpectedStatusCode int
	OKSubstring        null.String
	WarnSubstring      null.String
	Raw                json.RawMessage
}

type rawEndpoint struct {
	MonitoringURL    json.RawMessage `json:"monitoring_url"`
	ReturnCode       json.RawMessage `json:"return_code"`
	ResponseOKData   json.RawMessage `json:"response_ok_data"`
	ResponseWarnData json.RawMessage `json:"response_warn_data"`
}

func (e *EndpointSpec) UnmarshalJSON(data []byte) error {
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return err
	}
	*e = EndpointSpec{
		ExpectedStatusCode: DefaultStatusCode,
		Raw:                compact.Bytes(),
	}
	var raw rawEndpoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	e.URL = decodeString(raw.MonitoringURL)
	if code, ok := decodeInt(raw.ReturnCode); ok {
		e.ExpectedStatusCode = code
	}
	e.OKSubstring = optionalString(raw.ResponseOKData)
	e.WarnSubstring = optionalString(raw.ResponseWarnData)
	return nil
}

// Monitorable reports whether the entry carries a usable URL.
func (e EndpointSpec) Monitorable() bool {
	return len(e.URL) >= minURLLength
}

func (e EndpointSpec) Target() checker.Target {
	return checker.Target{
		URL:                e.URL,
		ExpectedStatusCode: e.ExpectedStatusCode,
		OKSubstring:        e.OKSubstring,
		WarnSubstring:      e.WarnSubstring,
	}
}

func decodeString(data json.RawMessage) string {
	var s string
	if len(data) == 0 || json.Unmarshal(data, &s) != nil {
		return ""
	}
	return s
}

func decodeInt(data json.RawMessage) (int, bool) {
	var n int
	if len(data) == 0 || string(data) == "null" || json.Unmarshal(data, &n) != nil {
		return 0, false
	}
	return n, true
}

func optionalString(data json.RawMessage) null.String {
	s := decodeString(data)
	return null.NewString(s, s != "")
}
