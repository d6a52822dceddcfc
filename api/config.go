package api

// Config holds HTTP server parameters.
type Config struct {
	Addr string `json:"addr,omitempty" mapstructure:"addr"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{Addr: ":8000"}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Addr != "" {
		c.Addr = source.Addr
	}
}
