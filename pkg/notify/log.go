package notify

import (
	"context"
	"log/slog"
)

// LogEmitter writes notifications to a structured logger. Destructive
// notifications are logged at warn level.
type LogEmitter struct {
	Logger *slog.Logger
}

// Emit logs n.
func (e LogEmitter) Emit(n Notification) {
	logger := e.Logger
	if logger == nil {
		return
	}
	level := slog.LevelInfo
	if n.Destructive() {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "notification",
		"form", n.FormID,
		"request_id", n.RequestID,
		"title", n.Title,
		"variant", string(n.Variant),
	)
}
