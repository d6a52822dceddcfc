package orchestrator

import (
	"github.com/gowrivallaban/account-open-agenticAI/engine/openai"
	"github.com/gowrivallaban/account-open-agenticAI/session"
)

const defaultMaxIterations = 10

// Config holds initialization parameters for the orchestrator and its
// subsystems. Each subsystem section delegates to that subsystem's
// config-driven constructor.
type Config struct {
	Engine        openai.Config  `json:"engine" mapstructure:"engine"`
	Session       session.Config `json:"session" mapstructure:"session"`
	MaxIterations int            `json:"max_iterations,omitempty" mapstructure:"max_iterations"`
	SystemPrompt  string         `json:"system_prompt,omitempty" mapstructure:"system_prompt"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Engine:        openai.DefaultConfig(),
		Session:       session.DefaultConfig(),
		MaxIterations: defaultMaxIterations,
		SystemPrompt:  DefaultSystemPrompt,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Engine.Merge(&source.Engine)
	c.Session.Merge(&source.Session)

	if source.MaxIterations > 0 {
		c.MaxIterations = source.MaxIterations
	}
	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
}
