package submit

import (
	"errors"
	"time"
)

var (
	// ErrEndpointMissing signals that no endpoint was configured for the form.
	ErrEndpointMissing = errors.New("submit: endpoint is not configured")
	// ErrEndpointInvalid signals an endpoint that is not an absolute http(s) URL.
	ErrEndpointInvalid = errors.New("submit: endpoint is not a valid http(s) url")
	// ErrTransport wraps failures where no response was received.
	ErrTransport = errors.New("submit: transport failure")
	// ErrRejected wraps non-2xx responses from the relay.
	ErrRejected = errors.New("submit: relay rejected submission")
)

// Status is the top-level outcome of a submission attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Reason tags a failed submission.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonConfiguration  Reason = "configuration_error"
	ReasonNetwork        Reason = "network_error"
	ReasonServerRejected Reason = "server_rejected"
)

// Result is produced once per submission attempt and consumed by the caller
// to drive notifications and form state.
type Result struct {
	FormID     string
	RequestID  string
	Status     Status
	Reason     Reason
	StatusCode int
	Err        error
	// FieldErrors and FormErrors carry messages decoded from a rejected
	// response body, when the relay provides them.
	FieldErrors map[string][]string
	FormErrors  []string
	Duration    time.Duration
}

// OK reports whether the submission succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Success builds a successful result.
func Success(formID, requestID string, statusCode int) Result {
	return Result{
		FormID:     formID,
		RequestID:  requestID,
		Status:     StatusSuccess,
		StatusCode: statusCode,
	}
}

// Failure builds a failed result for reason.
func Failure(formID string, reason Reason, err error) Result {
	return Result{
		FormID: formID,
		Status: StatusFailure,
		Reason: reason,
		Err:    err,
	}
}
