package submit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a submission when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

const maxResponseBody = 64 << 10

// Config binds an Executor to one form variant's endpoint.
type Config struct {
	FormID   string
	Endpoint string
	Timeout  time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithHTTPClient overrides the HTTP client used for submissions.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Executor) {
		if client != nil {
			e.client = client
		}
	}
}

// WithLogger sets the structured logger. A nil logger keeps the default,
// which discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRequestIDs overrides request id generation.
func WithRequestIDs(fn func() (string, error)) Option {
	return func(e *Executor) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// Executor issues one POST per call to its configured endpoint.
type Executor struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
	newID  func() (string, error)
	now    func() time.Time
}

// New constructs an Executor for cfg. The endpoint is not checked here so a
// missing value surfaces as a configuration_error result on Submit.
func New(cfg Config, options ...Option) *Executor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	e := &Executor{
		cfg:    cfg,
		client: http.DefaultClient,
		logger: slog.New(slog.DiscardHandler),
		newID:  newRequestID,
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Config returns the executor configuration with defaults applied.
func (e *Executor) Config() Config {
	return e.cfg
}

// NewRequest builds the request for payload, failing fast when the endpoint
// is missing or malformed.
func (e *Executor) NewRequest(payload map[string]string) (Request, error) {
	if _, err := ParseEndpoint(e.cfg.Endpoint); err != nil {
		return Request{}, err
	}
	id, err := e.newID()
	if err != nil {
		return Request{}, fmt.Errorf("submit: request id: %w", err)
	}
	return Request{
		ID:       id,
		FormID:   e.cfg.FormID,
		Endpoint: e.cfg.Endpoint,
		Payload:  clonePayload(payload),
	}, nil
}

// Submit sends payload to the configured endpoint and reports the outcome.
// It never returns an error: every failure is folded into the Result.
func (e *Executor) Submit(ctx context.Context, payload map[string]string) Result {
	req, err := e.NewRequest(payload)
	if err != nil {
		e.logger.Error("lead submission not attempted",
			"form", e.cfg.FormID,
			"reason", ReasonConfiguration,
			"error", err,
		)
		return Failure(e.cfg.FormID, ReasonConfiguration, err)
	}
	return e.Do(ctx, req)
}

// Do performs the network call for a prepared request.
func (e *Executor) Do(ctx context.Context, req Request) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint, err := ParseEndpoint(req.Endpoint)
	if err != nil {
		return withRequestID(Failure(req.FormID, ReasonConfiguration, err), req.ID)
	}

	body, err := req.Body()
	if err != nil {
		return withRequestID(Failure(req.FormID, ReasonConfiguration, err), req.ID)
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return withRequestID(Failure(req.FormID, ReasonConfiguration, fmt.Errorf("%w: %w", ErrEndpointInvalid, err)), req.ID)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if req.ID != "" {
		httpReq.Header.Set("X-Request-ID", req.ID)
	}

	logger := e.logger.With(
		"form", req.FormID,
		"request_id", req.ID,
		"endpoint_host", endpoint.Host,
	)

	start := e.now()
	resp, err := e.client.Do(httpReq)
	elapsed := e.now().Sub(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: timed out after %s: %w", ErrTransport, e.cfg.Timeout, err)
		} else {
			err = fmt.Errorf("%w: %w", ErrTransport, err)
		}
		logger.Warn("lead submission failed", "reason", ReasonNetwork, "duration", elapsed, "error", err)
		result := withRequestID(Failure(req.FormID, ReasonNetwork, err), req.ID)
		result.Duration = elapsed
		return result
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if readErr != nil {
		logger.Debug("relay response body unreadable", "status", resp.StatusCode, "read_bytes", len(data), "error", readErr)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logger.Info("lead submitted", "status", resp.StatusCode, "duration", elapsed)
		result := Success(req.FormID, req.ID, resp.StatusCode)
		result.Duration = elapsed
		return result
	}

	fields, form := decodeRelayErrors(data)
	err = fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	logger.Warn("lead submission rejected", "reason", ReasonServerRejected, "status", resp.StatusCode, "duration", elapsed)

	result := withRequestID(Failure(req.FormID, ReasonServerRejected, err), req.ID)
	result.StatusCode = resp.StatusCode
	result.FieldErrors = fields
	result.FormErrors = form
	result.Duration = elapsed
	return result
}

func withRequestID(result Result, id string) Result {
	result.RequestID = id
	return result
}

func newRequestID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
