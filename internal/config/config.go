package config

import "time"

// Duration accepts "5s" style strings or integer nanoseconds in both JSON and YAML.
type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `json:"addr" yaml:"addr"`
	ReadHeaderTimeout Duration `json:"read_header_timeout" yaml:"read_header_timeout"`
	IdleTimeout       Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout   Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `json:"max_request_bytes" yaml:"max_request_bytes"`

	// CORSOrigins lists allowed browser origins. Empty uses the development defaults.
	CORSOrigins []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
}

type TaxonomyConfig struct {
	// Path to a JSON or YAML taxonomy document. Empty loads the embedded sample.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

type GenerationConfig struct {
	DefaultModel string   `json:"default_model,omitempty" yaml:"default_model,omitempty"`
	Timeout      Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Temperature  float64  `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens    int      `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

type EngineConfig struct {
	// Type is one of mock, oai_http, anthropic, gemini.
	Type string `json:"type" yaml:"type"`

	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// ChatCompletionsPath applies to oai_http engines only.
	ChatCompletionsPath string `json:"chat_completions_path,omitempty" yaml:"chat_completions_path,omitempty"`

	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// MaxRetries counts extra attempts on 429, 5xx or transport errors. Zero disables retry.
	MaxRetries int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
}

type ModelConfig struct {
	ID string `json:"id" yaml:"id"`

	// UpstreamModel overrides the model name sent to the provider. Defaults to ID.
	UpstreamModel string `json:"upstream_model,omitempty" yaml:"upstream_model,omitempty"`

	Engine EngineConfig `json:"engine" yaml:"engine"`
}

type AuditConfig struct {
	// Driver is sqlite or postgres. Empty DSN disables the audit trail.
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty"`
	DSN    string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

func (a AuditConfig) Enabled() bool { return a.DSN != "" }

type TracingConfig struct {
	Enabled     bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Endpoint    string  `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Insecure    bool    `json:"insecure,omitempty" yaml:"insecure,omitempty"`
	SampleRatio float64 `json:"sample_ratio,omitempty" yaml:"sample_ratio,omitempty"`
}

type Config struct {
	Env        string           `json:"env" yaml:"env"`
	Version    string           `json:"version,omitempty" yaml:"version,omitempty"`
	HTTP       HTTPConfig       `json:"http" yaml:"http"`
	Taxonomy   TaxonomyConfig   `json:"taxonomy" yaml:"taxonomy"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Models     []ModelConfig    `json:"models" yaml:"models"`
	Audit      AuditConfig      `json:"audit" yaml:"audit"`
	Tracing    TracingConfig    `json:"tracing" yaml:"tracing"`
}
