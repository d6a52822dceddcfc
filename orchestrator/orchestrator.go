// Package orchestrator implements the multi-turn dialogue loop that composes
// the engine, tools, and session subsystems into one Process call per user
// message: send the transcript to the engine, execute any requested tools,
// and repeat until the engine answers with text or the iteration budget runs
// out.
//
// The orchestrator initializes from configuration via New, creating all
// subsystems internally. Functional options allow test overrides of any
// subsystem.
//
//	o, err := orchestrator.New(&cfg)
//	result, err := o.Process(ctx, "", "Hi, I'd like to open an account")
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gowrivallaban/account-open-agenticAI/core/protocol"
	"github.com/gowrivallaban/account-open-agenticAI/engine"
	"github.com/gowrivallaban/account-open-agenticAI/engine/openai"
	"github.com/gowrivallaban/account-open-agenticAI/observability"
	"github.com/gowrivallaban/account-open-agenticAI/session"
	"github.com/gowrivallaban/account-open-agenticAI/tools"
)

// Metadata carries account creation details lifted from a successful
// create_account tool result. The zero value marshals to an empty object.
type Metadata struct {
	AccountCreated bool   `json:"accountCreated,omitempty"`
	AccountNumber  string `json:"accountNumber,omitempty"`
	RoutingNumber  string `json:"routingNumber,omitempty"`
	AccountType    string `json:"accountType,omitempty"`
}

// Result holds the outcome of a Process invocation.
type Result struct {
	SessionID  string   `json:"sessionId"`
	Reply      string   `json:"reply"`
	Metadata   Metadata `json:"metadata"`
	Iterations int      `json:"-"`
}

// ToolExecutor abstracts tool listing and execution for testability.
// The default implementation delegates to the global tools package.
type ToolExecutor interface {
	List() []protocol.Tool
	Execute(ctx context.Context, name string, args json.RawMessage) (tools.Result, error)
}

type globalToolExecutor struct{}

func (globalToolExecutor) List() []protocol.Tool {
	return tools.List()
}

func (globalToolExecutor) Execute(ctx context.Context, name string, args json.RawMessage) (tools.Result, error) {
	return tools.Execute(ctx, name, args)
}

// Option configures an Orchestrator after config-driven initialization.
// Applied by New after cold start, so overrides replace config-created
// defaults.
type Option func(*Orchestrator)

// WithEngine overrides the config-created engine.
func WithEngine(e engine.Engine) Option {
	return func(o *Orchestrator) { o.engine = e }
}

// WithStore overrides the config-created session store.
func WithStore(s session.Store) Option {
	return func(o *Orchestrator) { o.store = s }
}

// WithToolExecutor overrides the default global tool executor.
func WithToolExecutor(e ToolExecutor) Option {
	return func(o *Orchestrator) { o.tools = e }
}

// WithObserver overrides the default SlogObserver.
func WithObserver(obs observability.Observer) Option {
	return func(o *Orchestrator) { o.observer = obs }
}

// Orchestrator runs the bounded engine/tool dialogue loop.
type Orchestrator struct {
	engine        engine.Engine
	store         session.Store
	tools         ToolExecutor
	observer      observability.Observer
	maxIterations int
}

// New creates an Orchestrator from configuration. The engine is built from
// the OpenAI section when an API key is configured; tests supply a mock via
// WithEngine instead. Returns an error when no engine is available after
// options are applied.
func New(cfg *Config, opts ...Option) (*Orchestrator, error) {
	merged := DefaultConfig()
	if cfg != nil {
		merged.Merge(cfg)
	}

	store, err := session.NewStore(&merged.Session, merged.SystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	o := &Orchestrator{
		store:         store,
		tools:         globalToolExecutor{},
		observer:      observability.NewSlogObserver(slog.Default()),
		maxIterations: merged.MaxIterations,
	}

	if merged.Engine.APIKey != "" {
		client, err := openai.NewClient(merged.Engine)
		if err != nil {
			return nil, fmt.Errorf("failed to create engine: %w", err)
		}
		o.engine = client
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.engine == nil {
		return nil, errors.New("no engine configured: set an API key or supply WithEngine")
	}

	return o, nil
}

// Store returns the orchestrator's session store.
func (o *Orchestrator) Store() session.Store {
	return o.store
}

// Process runs one user message through the dialogue loop. The session is
// resolved (or minted) from sessionID, the user turn is appended, and the
// loop alternates engine calls and tool execution until the engine produces
// a text reply or the iteration budget is exhausted. On exhaustion the fixed
// fallback reply is appended and returned with any metadata accumulated so
// far; this is not an error. Engine failures abort the turn and propagate.
func (o *Orchestrator) Process(ctx context.Context, sessionID, userMessage string) (*Result, error) {
	sess, _, err := o.store.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	o.store.Lock(sess.ID())
	defer o.store.Unlock(sess.ID())

	if err := sess.Append(ctx, protocol.NewMessage(protocol.RoleUser, userMessage)); err != nil {
		return nil, fmt.Errorf("failed to record user turn: %w", err)
	}

	result := &Result{SessionID: sess.ID()}
	catalog := o.tools.List()

	o.observer.OnEvent(ctx, observability.NewEvent(EventTurnStart, observability.LevelInfo, "orchestrator.Process", map[string]any{
		"session_id":     sess.ID(),
		"message_length": len(userMessage),
		"tools":          len(catalog),
	}))

	for iteration := 0; iteration < o.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		o.observer.OnEvent(ctx, observability.NewEvent(EventIterationStart, observability.LevelVerbose, "orchestrator.Process", map[string]any{
			"session_id": sess.ID(),
			"iteration":  iteration + 1,
		}))

		transcript, err := sess.Messages(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read transcript: %w", err)
		}

		resp, err := o.engine.Send(ctx, transcript, catalog)
		if err != nil {
			o.observer.OnEvent(ctx, observability.NewEvent(EventError, observability.LevelError, "orchestrator.Process", map[string]any{
				"session_id": sess.ID(),
				"iteration":  iteration + 1,
				"error":      err.Error(),
			}))
			return nil, fmt.Errorf("engine call failed: %w", err)
		}

		result.Iterations = iteration + 1

		if len(resp.ToolCalls) == 0 {
			if err := sess.Append(ctx, protocol.NewMessage(protocol.RoleAssistant, resp.Content)); err != nil {
				return nil, fmt.Errorf("failed to record assistant turn: %w", err)
			}
			result.Reply = resp.Content

			o.observer.OnEvent(ctx, observability.NewEvent(EventTurnComplete, observability.LevelInfo, "orchestrator.Process", map[string]any{
				"session_id":   sess.ID(),
				"iteration":    iteration + 1,
				"reply_length": len(result.Reply),
			}))
			return result, nil
		}

		err = sess.Append(ctx, protocol.Message{
			Role:      protocol.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record assistant turn: %w", err)
		}

		for _, tc := range resp.ToolCalls {
			o.observer.OnEvent(ctx, observability.NewEvent(EventToolCall, observability.LevelVerbose, "orchestrator.Process", map[string]any{
				"session_id": sess.ID(),
				"iteration":  iteration + 1,
				"name":       tc.Name,
			}))

			content, isError := o.executeTool(ctx, tc, &result.Metadata)

			err = sess.Append(ctx, protocol.Message{
				Role:       protocol.RoleTool,
				Content:    content,
				ToolCallID: tc.ID,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to record tool turn: %w", err)
			}

			o.observer.OnEvent(ctx, observability.NewEvent(EventToolComplete, observability.LevelVerbose, "orchestrator.Process", map[string]any{
				"session_id": sess.ID(),
				"iteration":  iteration + 1,
				"name":       tc.Name,
				"error":      isError,
			}))
		}
	}

	o.observer.OnEvent(ctx, observability.NewEvent(EventFallback, observability.LevelWarning, "orchestrator.Process", map[string]any{
		"session_id": sess.ID(),
		"iterations": o.maxIterations,
	}))

	if err := sess.Append(ctx, protocol.NewMessage(protocol.RoleAssistant, FallbackReply)); err != nil {
		return nil, fmt.Errorf("failed to record fallback turn: %w", err)
	}
	result.Reply = FallbackReply
	return result, nil
}

// executeTool dispatches one tool call and renders its transcript content.
// Unknown tools and handler failures produce a structured error payload so
// the engine can read the failure and recover; they never abort the turn.
func (o *Orchestrator) executeTool(ctx context.Context, tc protocol.ToolCall, meta *Metadata) (content string, isError bool) {
	toolResult, err := o.tools.Execute(ctx, tc.Name, json.RawMessage(tc.Arguments))
	if err != nil {
		if errors.Is(err, tools.ErrNotFound) {
			return errorPayload(fmt.Sprintf("Unknown tool: %s", tc.Name)), true
		}
		return errorPayload(err.Error()), true
	}

	if tc.Name == tools.ToolCreateAccount && !toolResult.IsError {
		o.captureAccount(ctx, toolResult.Content, meta)
	}

	return toolResult.Content, toolResult.IsError
}

// captureAccount lifts a successful create_account result into metadata.
func (o *Orchestrator) captureAccount(ctx context.Context, content string, meta *Metadata) {
	var created tools.CreateAccountResult
	if err := json.Unmarshal([]byte(content), &created); err != nil || !created.Success {
		return
	}

	meta.AccountCreated = true
	meta.AccountNumber = created.AccountNumber
	meta.RoutingNumber = created.RoutingNumber
	meta.AccountType = created.AccountType

	o.observer.OnEvent(ctx, observability.NewEvent(EventAccountCreated, observability.LevelInfo, "orchestrator.Process", map[string]any{
		"account_number_suffix": suffix(created.AccountNumber, 4),
		"account_type":          created.AccountType,
	}))
}

func errorPayload(msg string) string {
	raw, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return `{"error":"tool execution failed"}`
	}
	return string(raw)
}

func suffix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.Repeat("*", len(s)-n) + s[len(s)-n:]
}
