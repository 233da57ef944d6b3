package readable_hash

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records how many bytes have been pulled from it.
type countingSource struct {
	*SliceReader
	pulls int
}

func (source *countingSource) Read(p []byte) (int, error) {
	n, err := source.SliceReader.Read(p)
	source.pulls += n
	return n, err
}

func TestBitReader_ReadBits(t *testing.T) {
	reader := NewBitReader(NewSliceReader([]byte{0xB2, 0xFF}))
	value, err := reader.ReadBits(3)
	require.NoError(t, err)
	assert.EqualValues(t, 0x5, value)
	value, err = reader.ReadBits(5)
	require.NoError(t, err)
	assert.EqualValues(t, 0x12, value)
	value, err = reader.ReadBits(8)
	require.NoError(t, err)
	assert.EqualValues(t, 0xFF, value)

	_, err = reader.ReadBits(1)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.True(t, reader.Exhausted())
	assert.Equal(t, 0, reader.BitsAvailable())
}

func TestBitReader_ReadBitsAcrossBytes(t *testing.T) {
	reader := NewBitReader(NewSliceReader([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	value, err := reader.ReadBits(32)
	require.NoError(t, err)
	assert.EqualValues(t, uint32(0xDEADBEEF), value)

	reader = NewBitReader(NewSliceReader([]byte{0x0F, 0xF0}))
	_, err = reader.ReadBits(4)
	require.NoError(t, err)
	value, err = reader.ReadBits(8)
	require.NoError(t, err)
	assert.EqualValues(t, 0xFF, value)
}

func TestBitReader_BitCountRange(t *testing.T) {
	reader := NewBitReader(NewSliceReader([]byte{0xFF}))
	_, err := reader.ReadBits(0)
	assert.ErrorIs(t, err, ErrBitCountRange)
	_, err = reader.ReadBits(33)
	assert.ErrorIs(t, err, ErrBitCountRange)
	assert.False(t, reader.HasBits(0))
	assert.False(t, reader.HasBits(33))
	assert.Equal(t, 0, reader.BitsAvailable())
}

func TestBitReader_ShortRead(t *testing.T) {
	reader := NewBitReader(NewSliceReader([]byte{0xAB}))
	_, err := reader.ReadBits(16)
	assert.ErrorIs(t, err, ErrExhausted)
	// A failed read consumes nothing.
	value, err := reader.ReadBits(8)
	require.NoError(t, err)
	assert.EqualValues(t, 0xAB, value)
}

func TestBitReader_HasBitsDoesNotConsume(t *testing.T) {
	reader := NewBitReader(NewSliceReader([]byte{0x80}))
	assert.True(t, reader.HasBits(8))
	assert.True(t, reader.HasBits(8))
	assert.False(t, reader.HasBits(9))
	value, err := reader.ReadBits(1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, value)
	assert.Equal(t, 7, reader.BitsAvailable())
}

func TestBitReader_PullsLazily(t *testing.T) {
	source := &countingSource{SliceReader: NewSliceReader(make([]byte, 16))}
	reader := NewBitReader(source)
	assert.Equal(t, 0, source.pulls)
	_, err := reader.ReadBits(4)
	require.NoError(t, err)
	assert.Equal(t, 1, source.pulls)
	_, err = reader.ReadBits(12)
	require.NoError(t, err)
	assert.Equal(t, 2, source.pulls)
	assert.True(t, reader.HasBits(16))
	assert.Equal(t, 4, source.pulls)
}

func TestBitReader_EmptySource(t *testing.T) {
	for _, reader := range []*BitReader{
		NewBitReader(NewSliceReader(nil)),
		NewBitReader(NewReaderSource(strings.NewReader(""))),
		NewBitReader(nil),
	} {
		assert.False(t, reader.HasBits(1))
		_, err := reader.ReadBits(1)
		assert.ErrorIs(t, err, ErrExhausted)
		assert.True(t, reader.Exhausted())
	}
}

func TestBitReader_RandomWidths(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		data := make([]byte, rng.Intn(24))
		rng.Read(data)
		var expected strings.Builder
		for _, b := range data {
			for bit := 7; bit >= 0; bit-- {
				expected.WriteByte('0' + (b>>bit)&1)
			}
		}
		reader := NewBitReader(NewSliceReader(data))
		var actual strings.Builder
		for {
			width := rng.Intn(MaxSampleBits) + 1
			value, err := reader.ReadBits(width)
			if err != nil {
				assert.Less(t, reader.BitsAvailable(), width)
				width = reader.BitsAvailable()
				if width == 0 {
					break
				}
				value, err = reader.ReadBits(width)
				require.NoError(t, err)
			}
			for bit := width - 1; bit >= 0; bit-- {
				actual.WriteByte('0' + byte(value>>uint(bit))&1)
			}
		}
		assert.Equalf(t, expected.String(), actual.String(),
			"round %d, %d bytes", round, len(data))
	}
}
