package openai

import "time"

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o"
	defaultTemperature = 0.7
	defaultMaxTokens   = 1024
	defaultTimeout     = 60 * time.Second
)

// Config holds the chat-completions client parameters.
type Config struct {
	APIKey      string        `json:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL     string        `json:"base_url,omitempty" mapstructure:"base_url"`
	Model       string        `json:"model,omitempty" mapstructure:"model"`
	Temperature float64       `json:"temperature,omitempty" mapstructure:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty" mapstructure:"max_tokens"`
	Timeout     time.Duration `json:"timeout,omitempty" mapstructure:"timeout"`
}

// DefaultConfig returns the defaults used when a field is unset.
func DefaultConfig() Config {
	return Config{
		BaseURL:     defaultBaseURL,
		Model:       defaultModel,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		Timeout:     defaultTimeout,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.Temperature != 0 {
		c.Temperature = source.Temperature
	}
	if source.MaxTokens != 0 {
		c.MaxTokens = source.MaxTokens
	}
	if source.Timeout != 0 {
		c.Timeout = source.Timeout
	}
}
