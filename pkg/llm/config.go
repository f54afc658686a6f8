// Package llm is a minimal client for OpenAI-compatible chat APIs, used to
// turn raw graph facts into a narrative answer. It works with OpenAI,
// Ollama, LocalAI, vLLM and anything else speaking the same wire format.
package llm

// Config holds the connection settings for an LLM provider. It is designed
// to be embedded in YAML configuration files.
type Config struct {
	// BaseURL is the API endpoint.
	// Examples:
	// - OpenAI: "https://api.openai.com/v1"
	// - Ollama: "http://localhost:11434/v1"
	BaseURL string `yaml:"base_url" json:"base_url"`

	// APIKey is the authentication token. Required for OpenAI ("sk-...").
	// Often ignored by local Ollama.
	APIKey string `yaml:"api_key" json:"api_key"`

	// Model is the specific model identifier, e.g. "gpt-4o-mini" or
	// "llama3".
	Model string `yaml:"model" json:"model"`

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64 `yaml:"temperature" json:"temperature"`

	// MaxTokens limits the response length (optional).
	MaxTokens int `yaml:"max_tokens" json:"max_tokens"`
}

// DefaultConfig returns safe defaults for a local Ollama setup.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://localhost:11434/v1",
		Model:       "llama3",
		Temperature: 0.3,
		MaxTokens:   400,
	}
}

// ChatRequest is the payload sent to POST /chat/completions.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

// Message is a single turn in the chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the standard response from OpenAI-compatible APIs.
type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *APIError `json:"error,omitempty"`
}

// APIError is the provider-side error envelope.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
