package cmd

import (
	"context"
	"log/slog"

	"github.com/gowrivallaban/account-open-agenticAI/observability"
	"github.com/gowrivallaban/account-open-agenticAI/orchestrator"
)

// auditObserver writes account creation events to the audit log and ignores
// the rest of the dialogue event stream.
type auditObserver struct {
	logger *slog.Logger
}

func (o auditObserver) OnEvent(ctx context.Context, event observability.Event) {
	if event.Type != orchestrator.EventAccountCreated {
		return
	}

	attrs := make([]slog.Attr, 0, len(event.Data))
	for k, v := range event.Data {
		attrs = append(attrs, slog.Any(k, v))
	}
	o.logger.LogAttrs(ctx, slog.LevelInfo, string(event.Type), attrs...)
}
