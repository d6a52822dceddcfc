// Package engine defines the reasoning-engine dependency boundary. The
// engine generates dialogue content and decides when to invoke tools; the
// orchestrator owns all control flow around it.
package engine

import (
	"context"

	"github.com/gowrivallaban/account-open-agenticAI/core/protocol"
)

// Response is one engine turn: final text content, tool invocations, or
// both. An empty ToolCalls slice means the content is the final reply for
// this exchange.
type Response struct {
	Content   string
	ToolCalls []protocol.ToolCall
}

// Engine sends a full transcript plus the tool catalog to the reasoning
// engine and returns its next turn. Implementations must not mutate the
// transcript. Send blocks for the round trip; cancellation and deadlines
// arrive through ctx.
type Engine interface {
	Send(ctx context.Context, messages []protocol.Message, catalog []protocol.Tool) (*Response, error)
}
