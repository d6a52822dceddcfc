package orchestrator

import "github.com/gowrivallaban/account-open-agenticAI/observability"

// Orchestrator event types emitted during the dialogue loop.
const (
	EventTurnStart      observability.EventType = "dialogue.turn.start"
	EventTurnComplete   observability.EventType = "dialogue.turn.complete"
	EventIterationStart observability.EventType = "dialogue.iteration.start"
	EventToolCall       observability.EventType = "dialogue.tool.call"
	EventToolComplete   observability.EventType = "dialogue.tool.complete"
	EventAccountCreated observability.EventType = "dialogue.account.created"
	EventFallback       observability.EventType = "dialogue.fallback"
	EventError          observability.EventType = "dialogue.error"
)
