package embedding

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/sashabaranov/go-openai"

	"codeanomaly/types"
)

// Provider produces a fixed-dimension embedding vector for a piece of
// code text. Implementations must be deterministic for a fixed input and
// model version; the detector depends on nothing beyond this contract.
type Provider interface {
	Embed(ctx context.Context, text string) (types.Embedding, error)
}

// OpenAIClient represents a client for the OpenAI embeddings API
type OpenAIClient struct {
	Client *openai.Client
	Model  openai.EmbeddingModel
}

// NewOpenAIClient creates a new OpenAI client with the provided API key
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		Client: openai.NewClient(apiKey),
		Model:  openai.AdaEmbeddingV2,
	}
}

// Embed calculates an embedding for the given text using OpenAI's API.
// The model truncates input beyond its token window, so very long samples
// are represented by their prefix.
func (c *OpenAIClient) Embed(ctx context.Context, text string) (types.Embedding, error) {
	resp, err := c.Client.CreateEmbeddings(
		ctx,
		openai.EmbeddingRequest{
			Input: []string{text},
			Model: c.Model,
		},
	)
	if err != nil {
		return types.Embedding{}, fmt.Errorf("error getting embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return types.Embedding{}, fmt.Errorf("no embedding data returned")
	}

	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}

	return types.Embedding{Vector: vector}, nil
}

// CosineSimilarity calculates the cosine similarity between two embeddings
func CosineSimilarity(a, b types.Embedding) float32 {
	// Early check for empty vectors
	if len(a.Vector) == 0 || len(b.Vector) == 0 {
		return 0
	}

	// Vectors should be the same length
	if len(a.Vector) != len(b.Vector) {
		return 0
	}

	var dotProduct float32
	var normA float32
	var normB float32

	for i := 0; i < len(a.Vector); i++ {
		dotProduct += a.Vector[i] * b.Vector[i]
		normA += a.Vector[i] * a.Vector[i]
		normB += b.Vector[i] * b.Vector[i]
	}

	normA = float32(math.Sqrt(float64(normA)))
	normB = float32(math.Sqrt(float64(normB)))

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (normA * normB)
}

// GetAPIKey retrieves the OpenAI API key from environment variable
func GetAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}
