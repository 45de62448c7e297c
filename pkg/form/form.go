package form

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/notify"
	"github.com/goliatone/go-leadform/pkg/submit"
	"github.com/goliatone/go-leadform/pkg/validation"
)

// Submitter performs one submission of a validated payload. *submit.Executor
// satisfies it.
type Submitter interface {
	Submit(ctx context.Context, payload map[string]string) submit.Result
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, payload map[string]string) submit.Result

// Submit calls f(ctx, payload).
func (f SubmitterFunc) Submit(ctx context.Context, payload map[string]string) submit.Result {
	return f(ctx, payload)
}

// Outcome summarises what a call to Submit did.
type Outcome string

const (
	// OutcomeIgnored means a submission was already in flight.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeInvalid means validation failed and nothing was sent.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeSubmitted means the submitter ran; Result holds its verdict.
	OutcomeSubmitted Outcome = "submitted"
)

// Report describes one call to Submit.
type Report struct {
	Outcome      Outcome
	Errors       validation.Errors
	Result       submit.Result
	Notification notify.Notification
}

// Option configures a Form.
type Option func(*Form)

// WithEmitter adds an emitter notified after every submission attempt. The
// form always records the latest notification for View.
func WithEmitter(emitter notify.Emitter) Option {
	return func(f *Form) {
		if emitter != nil {
			f.emitters = append(f.emitters, emitter)
		}
	}
}

// WithInitialValues overrides schema defaults, e.g. the subject of a
// pricing inquiry. The values are restored after a successful submission.
func WithInitialValues(values map[string]string) Option {
	return func(f *Form) {
		f.initial = values
	}
}

// WithMessages overrides the notification copy derived from the schema.
func WithMessages(msgs notify.Messages) Option {
	return func(f *Form) {
		f.messages = &msgs
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Form binds a schema, its state and a submitter.
type Form struct {
	mu        sync.Mutex
	schema    model.FormSchema
	state     *State
	machine   Machine
	submitter Submitter
	latest    notify.Latest
	emitters  []notify.Emitter
	messages  *notify.Messages
	initial   map[string]string
	logger    *slog.Logger
}

// New constructs a form in the Idle state.
func New(schema model.FormSchema, submitter Submitter, opts ...Option) (*Form, error) {
	if submitter == nil {
		return nil, fmt.Errorf("form: %s: submitter is required", schema.ID)
	}
	f := &Form{
		schema:    schema,
		submitter: submitter,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	state, err := NewState(schema, f.initial)
	if err != nil {
		return nil, err
	}
	f.state = state
	if f.messages == nil {
		msgs := notify.MessagesFor(schema)
		f.messages = &msgs
	}
	return f, nil
}

// Schema returns the form declaration.
func (f *Form) Schema() model.FormSchema {
	return f.schema
}

// SetValue updates one field. Edits are accepted while a submission is in
// flight; the submitted payload was captured before the network call.
func (f *Form) SetValue(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.SetValue(name, value)
}

// Value returns the current value of name.
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Value(name)
}

// Values returns a copy of every field value.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Values()
}

// Errors returns the inline errors currently shown.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Errors()
}

// Status returns the workflow state.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.machine.Status()
}

// InFlight reports whether a submission is running.
func (f *Form) InFlight() bool {
	return f.Status() == StatusSubmitting
}

// Notification returns the latest notification, if one is visible.
func (f *Form) Notification() (notify.Notification, bool) {
	return f.latest.Current()
}

// Dismiss hides the visible notification.
func (f *Form) Dismiss() {
	f.latest.Dismiss()
}

// Submit validates the current values and, when they pass, hands them to
// the submitter exactly once. Errors never escape: validation failures are
// recorded inline and submission failures become notifications.
func (f *Form) Submit(ctx context.Context) Report {
	f.mu.Lock()
	if f.machine.Status() != StatusIdle {
		status := f.machine.Status()
		f.mu.Unlock()
		f.logger.Debug("submit ignored", "form", f.schema.ID, "status", string(status))
		return Report{Outcome: OutcomeIgnored}
	}

	f.transition(StatusValidating)
	if errs := f.state.Validate(); len(errs) > 0 {
		f.transition(StatusIdle)
		f.mu.Unlock()
		f.logger.Debug("submit rejected by validation", "form", f.schema.ID, "fields", len(errs))
		return Report{Outcome: OutcomeInvalid, Errors: errs}
	}
	f.transition(StatusSubmitting)
	payload := f.state.Values()
	f.mu.Unlock()

	result := f.call(ctx, payload)
	note := notify.ForResult(*f.messages, result, payload)

	f.mu.Lock()
	if result.OK() {
		f.state.Reset()
	} else if len(result.FieldErrors) > 0 {
		f.state.SetErrors(firstMessages(result.FieldErrors))
	}
	f.transition(StatusIdle)
	f.latest.Emit(note)
	f.mu.Unlock()

	for _, emitter := range f.emitters {
		emitter.Emit(note)
	}
	return Report{Outcome: OutcomeSubmitted, Result: result, Notification: note}
}

// call runs the submitter, converting a panic into a network failure so the
// in-flight flag is always cleared.
func (f *Form) call(ctx context.Context, payload map[string]string) (result submit.Result) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("submitter panicked", "form", f.schema.ID, "panic", r)
			result = submit.Failure(f.schema.ID, submit.ReasonNetwork, fmt.Errorf("%w: panic: %v", submit.ErrTransport, r))
		}
	}()
	if ctx == nil {
		ctx = context.Background()
	}
	result = f.submitter.Submit(ctx, payload)
	if result.FormID == "" {
		result.FormID = f.schema.ID
	}
	return result
}

func (f *Form) transition(next Status) {
	if err := f.machine.Transition(next); err != nil {
		f.logger.Error("form state", "form", f.schema.ID, "error", err)
	}
}

func firstMessages(fields map[string][]string) map[string]string {
	out := make(map[string]string, len(fields))
	for name, msgs := range fields {
		if len(msgs) > 0 {
			out[name] = msgs[0]
		}
	}
	return out
}
