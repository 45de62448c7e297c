package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RelayRequest is one request captured by a RelayServer.
type RelayRequest struct {
	Method      string
	Path        string
	ContentType string
	RequestID   string
	Payload     map[string]string
}

// RelayServer is an httptest-backed stand-in for a form relay. It records
// every request and answers with the configured status and body.
type RelayServer struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	requests []RelayRequest
	hold     chan struct{}
	arrived  chan struct{}
}

// NewRelayServer starts a relay answering 200 until told otherwise. The
// server is closed when the test ends.
func NewRelayServer(t *testing.T) *RelayServer {
	t.Helper()

	relay := &RelayServer{status: http.StatusOK, body: `{"ok":true}`}
	relay.Server = httptest.NewServer(http.HandlerFunc(relay.serve))
	t.Cleanup(func() {
		relay.Release()
		relay.Server.Close()
	})
	return relay
}

// Respond sets the status and body returned for subsequent requests.
func (r *RelayServer) Respond(status int, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
	r.body = body
}

// Hold makes subsequent requests block until Release is called. The returned
// channel receives a value each time a request arrives.
func (r *RelayServer) Hold() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hold = make(chan struct{})
	r.arrived = make(chan struct{}, 16)
	return r.arrived
}

// Release unblocks held requests.
func (r *RelayServer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hold != nil {
		close(r.hold)
		r.hold = nil
	}
}

// Requests returns a copy of the captured requests.
func (r *RelayServer) Requests() []RelayRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RelayRequest(nil), r.requests...)
}

// Endpoint returns the endpoint for path on the relay.
func (r *RelayServer) Endpoint(path string) string {
	return r.Server.URL + path
}

func (r *RelayServer) serve(w http.ResponseWriter, req *http.Request) {
	data, _ := io.ReadAll(req.Body)
	payload := map[string]string{}
	_ = json.Unmarshal(data, &payload)

	r.mu.Lock()
	r.requests = append(r.requests, RelayRequest{
		Method:      req.Method,
		Path:        req.URL.Path,
		ContentType: req.Header.Get("Content-Type"),
		RequestID:   req.Header.Get("X-Request-ID"),
		Payload:     payload,
	})
	hold, arrived := r.hold, r.arrived
	status, body := r.status, r.body
	r.mu.Unlock()

	if hold != nil {
		arrived <- struct{}{}
		select {
		case <-hold:
		case <-req.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
