// Package vector implements the on-disk encoding of embedding vectors.
//
// A vector is stored as its components in order, each encoded as a
// little-endian IEEE-754 float32. There is no length prefix: the dimension
// is a property of the model that produced the vector, and consumers derive
// the component count from the blob size. The format is byte-compatible with
// numpy's float32 tobytes(), which produced the blobs this tool originally
// maintained.
package vector

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultDims is the output dimension of the default embedding model.
const DefaultDims = 384

// ErrMalformed is returned when a blob cannot be a float32 vector.
var ErrMalformed = errors.New("malformed vector blob")

// Serialize encodes vec as len(vec)*4 bytes of little-endian float32 values.
// It is pure and total; an empty vector encodes to an empty slice.
func Serialize(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Deserialize is the inverse of Serialize. It fails when len(data) is not a
// multiple of 4. The round trip Deserialize(Serialize(v)) is bit-exact for
// every vector v, including NaN payloads, because the encoding is exactly
// the in-memory representation.
func Deserialize(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4", ErrMalformed, len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}

// FormatCSV renders vec as comma-separated decimal components, the text form
// printed by the ad-hoc query mode. Each component uses the shortest decimal
// representation that parses back to the same float32.
func FormatCSV(vec []float32) string {
	var b strings.Builder
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	return b.String()
}
