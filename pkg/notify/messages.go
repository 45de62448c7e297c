package notify

import (
	"strings"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/submit"
)

// Messages holds the notification copy for one form. Text may reference
// submitted values with {field} placeholders, e.g. {email}.
type Messages struct {
	Success            model.Message
	ConfigurationError model.Message
	NetworkError       model.Message
	ServerRejected     model.Message
}

// DefaultMessages returns the copy used when a form declares none.
func DefaultMessages() Messages {
	return Messages{
		Success: model.Message{
			Title:       "Message sent!",
			Description: "We'll get back to you soon.",
		},
		ConfigurationError: model.Message{
			Title:       "Missing Form Endpoint",
			Description: "Submission endpoint is not configured.",
		},
		NetworkError: model.Message{
			Title:       "Error sending message",
			Description: "Could not reach the server. Check your connection and try again.",
		},
		ServerRejected: model.Message{
			Title:       "Submission rejected",
			Description: "The form service rejected the submission. Please review your details and try again.",
		},
	}
}

// MessagesFor overlays the notifications declared on schema onto the
// defaults. Titles and descriptions are merged independently.
func MessagesFor(schema model.FormSchema) Messages {
	msgs := DefaultMessages()
	overlay(&msgs.Success, schema.Notifications.Success)
	overlay(&msgs.ConfigurationError, schema.Notifications.ConfigurationError)
	overlay(&msgs.NetworkError, schema.Notifications.NetworkError)
	overlay(&msgs.ServerRejected, schema.Notifications.ServerRejected)
	return msgs
}

func overlay(dst *model.Message, src model.Message) {
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
}

// ForResult selects the message for result and fills in placeholders from
// values. Successful results use the default variant, failures the
// destructive one.
func ForResult(msgs Messages, result submit.Result, values map[string]string) Notification {
	var (
		msg     model.Message
		variant = VariantDestructive
	)
	switch {
	case result.OK():
		msg, variant = msgs.Success, VariantDefault
	case result.Reason == submit.ReasonConfiguration:
		msg = msgs.ConfigurationError
	case result.Reason == submit.ReasonServerRejected:
		msg = msgs.ServerRejected
	default:
		msg = msgs.NetworkError
	}

	fill := placeholders(values)
	return Notification{
		FormID:      result.FormID,
		RequestID:   result.RequestID,
		Title:       fill.Replace(msg.Title),
		Description: fill.Replace(msg.Description),
		Variant:     variant,
	}
}

func placeholders(values map[string]string) *strings.Replacer {
	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...)
}
