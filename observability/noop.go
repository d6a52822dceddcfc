package observability

import "context"

// NoOpObserver discards all events. The chat command installs it so loop
// telemetry stays out of the terminal transcript.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}
