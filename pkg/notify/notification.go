package notify

import "sync"

// Variant selects the visual treatment of a notification.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a transient message shown after a submission attempt.
type Notification struct {
	FormID      string  `json:"formId,omitempty"`
	RequestID   string  `json:"requestId,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

// Destructive reports whether the notification signals a failure.
func (n Notification) Destructive() bool {
	return n.Variant == VariantDestructive
}

// Emitter receives notifications. Implementations must be safe for
// concurrent use.
type Emitter interface {
	Emit(Notification)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(Notification)

// Emit calls f(n).
func (f EmitterFunc) Emit(n Notification) {
	if f != nil {
		f(n)
	}
}

// Multi fans a notification out to every emitter in order. Nil entries are
// skipped.
func Multi(emitters ...Emitter) Emitter {
	list := make([]Emitter, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			list = append(list, e)
		}
	}
	return multi(list)
}

type multi []Emitter

func (m multi) Emit(n Notification) {
	for _, e := range m {
		e.Emit(n)
	}
}

// Latest keeps the most recent notification. A new notification replaces
// the previous one.
type Latest struct {
	mu      sync.Mutex
	current *Notification
	count   int
}

// Emit replaces the current notification.
func (l *Latest) Emit(n Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = &n
	l.count++
}

// Current returns the visible notification, if any.
func (l *Latest) Current() (Notification, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return Notification{}, false
	}
	return *l.current, true
}

// Dismiss clears the visible notification.
func (l *Latest) Dismiss() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = nil
}

// Count reports how many notifications were emitted in total.
func (l *Latest) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
