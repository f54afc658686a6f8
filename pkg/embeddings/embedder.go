// Package embeddings converts text into vector representations for the
// similarity-based resolvers. Providers are interchangeable behind the
// Embedder interface: a remote Ollama or OpenAI endpoint for real semantic
// embeddings, or the in-process lexical embedder when resolution must stay
// pure computation with no network dependency.
package embeddings

// Embedder converts text into a vector representation.
type Embedder interface {
	Embed(text string) ([]float32, error)
}
