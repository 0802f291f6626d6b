package embedding

import (
	"context"
	"fmt"
	"hash/fnv"

	"codeanomaly/types"
)

// DefaultOfflineDimension is the vector size used when no dimension is
// requested for the offline provider.
const DefaultOfflineDimension = 64

// HashProvider is a deterministic Provider that needs no API access.
// Each dimension is derived from an FNV hash of the input text and the
// dimension index, so identical inputs always map to identical vectors.
// It carries no semantic meaning; it exists for offline runs and tests.
type HashProvider struct {
	Dimension int
}

// NewHashProvider creates a hash-based provider producing vectors of the
// given dimension
func NewHashProvider(dimension int) *HashProvider {
	if dimension <= 0 {
		dimension = DefaultOfflineDimension
	}
	return &HashProvider{Dimension: dimension}
}

// Embed returns the deterministic hash embedding for text
func (p *HashProvider) Embed(_ context.Context, text string) (types.Embedding, error) {
	vector := make([]float32, p.Dimension)
	for i := range vector {
		h := fnv.New32a()
		fmt.Fprintf(h, "%d:%s", i, text)
		vector[i] = float32(h.Sum32()%1000) / 999.0
	}
	return types.Embedding{Vector: vector}, nil
}
