// Package server implements the HTTP interface of the knowledge-graph
// question service.
//
// This file defines the YAML configuration. Parsing is strict
// (KnownFields) so typos fail loudly, and ${VAR} references are expanded
// from the environment before decoding, which keeps API keys out of the
// file itself.
package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/distance"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/embeddings"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/llm"
)

// Config is the top-level service configuration.
type Config struct {
	// HTTPAddr is the listen address, e.g. ":8080".
	HTTPAddr string `yaml:"http_addr"`

	// AuthToken, when set, requires "Authorization: Bearer <token>" on
	// every endpoint except /healthz and /metrics.
	AuthToken string `yaml:"auth_token"`

	// GraphPath points at the GraphML dataset.
	GraphPath string `yaml:"graph_path"`

	// SnippetsPath points at the character background JSON. Optional;
	// without it narrative answers carry facts only.
	SnippetsPath string `yaml:"snippets_path"`

	Resolver ResolverConfig `yaml:"resolver"`
	Embedder EmbedderConfig `yaml:"embedder"`

	// LLM configures narrative generation. Narrative answers are enabled
	// when a model is set.
	LLM llm.Config `yaml:"llm"`
}

// ResolverConfig exposes the pipeline thresholds.
type ResolverConfig struct {
	EntityThreshold float64 `yaml:"entity_threshold"`
	IntentFloor     float64 `yaml:"intent_floor"`
	IntentEpsilon   float64 `yaml:"intent_epsilon"`
	// Precision selects resolver matrix storage: "float32" or "float16".
	Precision string `yaml:"precision"`
}

// EmbedderConfig selects and configures the embedding provider.
type EmbedderConfig struct {
	// Type is "lexical" (default, in-process), "ollama_api" or "openai".
	Type    string `yaml:"type"`
	URL     string `yaml:"url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
	// Dimensions applies to the lexical embedder only.
	Dimensions int `yaml:"dimensions"`
}

// DefaultConfig returns the configuration the service runs with when no
// file is given: lexical embeddings, default thresholds, no auth.
func DefaultConfig() Config {
	opts := kg.DefaultOptions()
	return Config{
		HTTPAddr:  ":8080",
		GraphPath: "data/marvel_kg.graphml",
		Resolver: ResolverConfig{
			EntityThreshold: opts.EntityThreshold,
			IntentFloor:     opts.IntentFloor,
			IntentEpsilon:   opts.IntentEpsilon,
			Precision:       string(opts.Precision),
		},
		Embedder: EmbedderConfig{Type: "lexical"},
	}
}

// LoadConfig reads, env-expands and strictly parses the YAML file at path.
// An empty path returns the defaults. Fields absent from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read configuration file '%s': %w", path, err)
	}
	expanded := os.ExpandEnv(string(data))

	decoder := yaml.NewDecoder(strings.NewReader(expanded))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return Config{}, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration in '%s': %w", path, err)
	}
	return config, nil
}

// Validate rejects configurations that would only fail later at runtime.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("http_addr must not be empty")
	}
	if c.GraphPath == "" {
		return fmt.Errorf("graph_path must not be empty")
	}
	if c.Resolver.EntityThreshold < 0 || c.Resolver.EntityThreshold > 1 {
		return fmt.Errorf("resolver.entity_threshold must be in [0, 1], got %v", c.Resolver.EntityThreshold)
	}
	if c.Resolver.IntentFloor < 0 || c.Resolver.IntentFloor > 1 {
		return fmt.Errorf("resolver.intent_floor must be in [0, 1], got %v", c.Resolver.IntentFloor)
	}
	if c.Resolver.IntentEpsilon < 0 {
		return fmt.Errorf("resolver.intent_epsilon must not be negative, got %v", c.Resolver.IntentEpsilon)
	}
	if !distance.KnownPrecision(distance.Precision(c.Resolver.Precision)) {
		return fmt.Errorf("resolver.precision must be \"float32\" or \"float16\", got %q", c.Resolver.Precision)
	}
	switch c.Embedder.Type {
	case "", "lexical", "ollama_api", "openai":
	default:
		return fmt.Errorf("embedder.type must be \"lexical\", \"ollama_api\" or \"openai\", got %q", c.Embedder.Type)
	}
	return nil
}

// EngineOptions converts the resolver section into pipeline options.
func (c *Config) EngineOptions() kg.Options {
	return kg.Options{
		EntityThreshold: c.Resolver.EntityThreshold,
		IntentFloor:     c.Resolver.IntentFloor,
		IntentEpsilon:   c.Resolver.IntentEpsilon,
		Precision:       distance.Precision(c.Resolver.Precision),
	}
}

// NarrativeEnabled reports whether a chat model is configured.
func (c *Config) NarrativeEnabled() bool {
	return c.LLM.Model != ""
}

// BuildEmbedder instantiates the configured embedding provider.
func (c *EmbedderConfig) BuildEmbedder() (embeddings.Embedder, error) {
	var timeout time.Duration
	if c.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid embedder timeout %q: %w", c.Timeout, err)
		}
	}
	switch c.Type {
	case "", "lexical":
		return embeddings.NewLexicalEmbedder(c.Dimensions), nil
	case "ollama_api":
		if c.URL == "" || c.Model == "" {
			return nil, fmt.Errorf("embedder type %q requires url and model", c.Type)
		}
		return embeddings.NewOllamaEmbedder(c.URL, c.Model, timeout), nil
	case "openai":
		if c.Model == "" {
			return nil, fmt.Errorf("embedder type %q requires a model", c.Type)
		}
		return embeddings.NewOpenAIEmbedder(c.URL, c.Model, c.APIKey, timeout), nil
	}
	return nil, fmt.Errorf("unknown embedder type %q", c.Type)
}
