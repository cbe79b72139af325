package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// Mock is a deterministic Embedder for tests and offline runs. The same text
// always yields the same unit-length vector, and distinct texts almost always
// yield distinct vectors, which is enough structure for pipeline tests.
type Mock struct {
	dims int
}

// NewMock creates a Mock embedder with the given output dimension.
func NewMock(dims int) *Mock {
	if dims <= 0 {
		dims = 384
	}
	return &Mock{dims: dims}
}

func (m *Mock) Initialize() error { return nil }
func (m *Mock) Dims() int         { return m.dims }
func (m *Mock) Name() string      { return "mock" }

// Embed derives each vector from a SHA-256 hash of the text, expanded across
// the requested dimensions and normalized to unit length.
func (m *Mock) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vecs[i] = m.encode(text)
	}
	return vecs, nil
}

func (m *Mock) encode(text string) []float32 {
	hash := sha256.Sum256([]byte(text))
	vec := make([]float32, m.dims)

	var sumSquares float32
	for i := range vec {
		word := binary.LittleEndian.Uint32(hash[(i*4)%(len(hash)-3):])
		// Mix in the dimension index so the hash does not repeat every
		// few components.
		word = word*2654435761 + uint32(i)
		v := float32(word%2000)/1000.0 - 1.0
		vec[i] = v
		sumSquares += v * v
	}

	if sumSquares > 0 {
		norm := float32(math.Sqrt(float64(sumSquares)))
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
