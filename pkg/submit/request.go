package submit

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Request is one validated payload bound for an endpoint. It lives for the
// duration of a single network call.
type Request struct {
	ID       string
	FormID   string
	Endpoint string
	Payload  map[string]string
}

// Body encodes the payload as a JSON object.
func (r Request) Body() ([]byte, error) {
	payload := r.Payload
	if payload == nil {
		payload = map[string]string{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("submit: encode payload: %w", err)
	}
	return data, nil
}

// ParseEndpoint checks that raw is an absolute http or https URL.
func ParseEndpoint(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrEndpointMissing
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEndpointInvalid, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrEndpointInvalid, trimmed)
	}
	return u, nil
}

func clonePayload(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
