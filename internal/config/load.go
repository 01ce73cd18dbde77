package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/prince-Sf/Corelytics/internal/platform/envutil"
)

const (
	defaultAddr    = ":8080"
	defaultTimeout = 60 * time.Second
	defaultModel   = "mock-1"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		return d.parse(u)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar (line %d)", node.Line)
	}
	if node.Tag == "!!int" {
		n, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return err
		}
		d.Duration = time.Duration(n)
		return nil
	}
	return d.parse(node.Value)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func (d *Duration) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Duration = 0
		return nil
	}
	dd, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	d.Duration = dd
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Env:     "development",
		Version: "dev",
		HTTP: HTTPConfig{
			Addr:              defaultAddr,
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
		},
		Generation: GenerationConfig{
			DefaultModel: defaultModel,
			Timeout:      Duration{Duration: defaultTimeout},
			Temperature:  0.9,
			MaxTokens:    1000,
		},
		Models: []ModelConfig{
			{ID: defaultModel, Engine: EngineConfig{Type: "mock"}},
		},
		Tracing: TracingConfig{SampleRatio: 0.1},
	}
}

// Load reads the optional config file, applies env overrides and validates.
func Load() (*Config, error) {
	cfgPath := strings.TrimSpace(os.Getenv("CORELYTICS_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			for _, name := range []string{"config.json", "config.yaml", "config.yml"} {
				p := filepath.Join(wd, "config", name)
				if _, err := os.Stat(p); err == nil {
					cfgPath = p
					break
				}
			}
		}
	}
	return LoadFile(cfgPath)
}

// LoadFile is Load with an explicit path. An empty path uses defaults only.
func LoadFile(cfgPath string) (*Config, error) {
	cfg := defaultConfig()

	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decode(cfgPath, b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	default:
		return json.Unmarshal(b, cfg)
	}
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	cfg.HTTP.Addr = envutil.String("CORELYTICS_HTTP_ADDR", cfg.HTTP.Addr)
	if origins := envutil.List("CORELYTICS_CORS_ORIGINS"); len(origins) > 0 {
		cfg.HTTP.CORSOrigins = origins
	}
	cfg.Taxonomy.Path = envutil.String("CORELYTICS_TAXONOMY_PATH", cfg.Taxonomy.Path)
	cfg.Generation.DefaultModel = envutil.String("CORELYTICS_DEFAULT_MODEL", cfg.Generation.DefaultModel)
	cfg.Generation.Timeout.Duration = envutil.Duration("CORELYTICS_GENERATION_TIMEOUT", cfg.Generation.Timeout.Duration)
	cfg.Audit.DSN = envutil.String("CORELYTICS_AUDIT_DSN", cfg.Audit.DSN)
	cfg.Audit.Driver = envutil.String("CORELYTICS_AUDIT_DRIVER", cfg.Audit.Driver)
	cfg.Tracing.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Tracing.Insecure)

	for i := range cfg.Models {
		eng := &cfg.Models[i].Engine
		if strings.TrimSpace(eng.APIKey) != "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(eng.Type)) {
		case "oai_http", "openai_http":
			eng.APIKey = envutil.String("OPENAI_API_KEY", "")
		case "anthropic":
			eng.APIKey = envutil.String("ANTHROPIC_API_KEY", "")
		case "gemini":
			eng.APIKey = envutil.String("GEMINI_API_KEY", "")
		}
	}
}

func (cfg *Config) normalize() error {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = defaultAddr
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 1 << 20
	}
	if cfg.HTTP.ShutdownTimeout.Duration <= 0 {
		cfg.HTTP.ShutdownTimeout = Duration{Duration: 15 * time.Second}
	}
	if cfg.Generation.Timeout.Duration <= 0 {
		cfg.Generation.Timeout = Duration{Duration: defaultTimeout}
	}
	if cfg.Generation.MaxTokens < 0 {
		return errors.New("generation.max_tokens must not be negative")
	}
	if cfg.Generation.Temperature < 0 || cfg.Generation.Temperature > 2 {
		return fmt.Errorf("generation.temperature %.2f out of range [0,2]", cfg.Generation.Temperature)
	}
	if cfg.Tracing.SampleRatio <= 0 || cfg.Tracing.SampleRatio > 1 {
		cfg.Tracing.SampleRatio = 0.1
	}

	if len(cfg.Models) == 0 {
		return errors.New("config must define at least one model")
	}
	seen := make(map[string]bool, len(cfg.Models))
	for i := range cfg.Models {
		m := &cfg.Models[i]
		m.ID = strings.TrimSpace(m.ID)
		if m.ID == "" {
			return errors.New("model id is required")
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate model id %q", m.ID)
		}
		seen[m.ID] = true
		if strings.TrimSpace(m.UpstreamModel) == "" {
			m.UpstreamModel = m.ID
		}
		if err := m.Engine.normalize(m.ID); err != nil {
			return err
		}
	}

	cfg.Generation.DefaultModel = strings.TrimSpace(cfg.Generation.DefaultModel)
	if cfg.Generation.DefaultModel == "" {
		cfg.Generation.DefaultModel = cfg.Models[0].ID
	}
	if !seen[cfg.Generation.DefaultModel] {
		return fmt.Errorf("generation.default_model %q is not a configured model", cfg.Generation.DefaultModel)
	}

	cfg.Audit.Driver = strings.ToLower(strings.TrimSpace(cfg.Audit.Driver))
	if cfg.Audit.Enabled() {
		switch cfg.Audit.Driver {
		case "":
			cfg.Audit.Driver = "sqlite"
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("audit.driver %q unsupported (sqlite|postgres)", cfg.Audit.Driver)
		}
	}
	return nil
}

func (e *EngineConfig) normalize(modelID string) error {
	e.Type = strings.ToLower(strings.TrimSpace(e.Type))
	e.BaseURL = strings.TrimRight(strings.TrimSpace(e.BaseURL), "/")
	e.ChatCompletionsPath = strings.TrimSpace(e.ChatCompletionsPath)
	if e.MaxRetries < 0 {
		return fmt.Errorf("model %q invalid engine.max_retries", modelID)
	}
	if e.Timeout.Duration < 0 {
		return fmt.Errorf("model %q invalid engine.timeout", modelID)
	}

	switch e.Type {
	case "":
		return fmt.Errorf("model %q missing engine.type", modelID)
	case "mock":
	case "openai_http", "oai_http":
		e.Type = "oai_http"
		if e.BaseURL == "" {
			return fmt.Errorf("model %q (oai_http) missing engine.base_url", modelID)
		}
		if e.ChatCompletionsPath == "" {
			e.ChatCompletionsPath = "/v1/chat/completions"
		}
	case "anthropic", "gemini":
		if strings.TrimSpace(e.APIKey) == "" {
			return fmt.Errorf("model %q (%s) missing engine.api_key", modelID, e.Type)
		}
	default:
		return fmt.Errorf("model %q unsupported engine.type %q", modelID, e.Type)
	}
	return nil
}
