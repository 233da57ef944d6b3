package readable_hash

import (
	"github.com/pkg/errors"
)

const MaxSampleBits = 32

// Upper bound on the buffer capacity reserved from a bounded source's
// Remaining count.
const maxPresize = 4096

var (
	ErrBitCountRange = errors.New("readable_hash: bit count out of range")
	ErrExhausted     = errors.New("readable_hash: entropy exhausted")
)

// BitReader serves MSB-first groups of 1..32 bits from a ByteSource. Bytes
// are pulled one at a time and only when a request needs them.
type BitReader struct {
	source    ByteSource
	buffer    []byte
	bitPos    int
	exhausted bool
	scratch   [1]byte
}

func NewBitReader(source ByteSource) *BitReader {
	reader := &BitReader{source: source}
	if source == nil {
		reader.exhausted = true
	} else if remaining, bounded := source.Remaining(); bounded &&
		remaining > 0 {
		reader.buffer = make([]byte, 0, min(remaining, maxPresize))
	}
	return reader
}

// ensureBits pulls bytes until `bits` unread bits are buffered or the
// source runs dry.
func (reader *BitReader) ensureBits(bits int) bool {
	if reader.exhausted {
		return reader.BitsAvailable() >= bits
	}
	bytesNeeded := (reader.bitPos + bits + 7) / 8
	for len(reader.buffer) < bytesNeeded {
		n, _ := reader.source.Read(reader.scratch[:])
		if n == 0 {
			reader.exhausted = true
			break
		}
		reader.buffer = append(reader.buffer, reader.scratch[0])
	}
	return reader.BitsAvailable() >= bits
}

// BitsAvailable returns the number of buffered bits not yet consumed.
func (reader *BitReader) BitsAvailable() int {
	available := len(reader.buffer)*8 - reader.bitPos
	if available < 0 {
		return 0
	}
	return available
}

// Exhausted reports whether the source has signalled the end of its data.
func (reader *BitReader) Exhausted() bool {
	return reader.exhausted
}

// HasBits reports whether a ReadBits(bits) call would succeed, without
// consuming anything.
func (reader *BitReader) HasBits(bits int) bool {
	if bits < 1 || bits > MaxSampleBits {
		return false
	}
	return reader.ensureBits(bits)
}

// ReadBits consumes `bits` bits and returns them as an unsigned value, most
// significant bit first.
func (reader *BitReader) ReadBits(bits int) (uint32, error) {
	if bits < 1 || bits > MaxSampleBits {
		return 0, ErrBitCountRange
	}
	if !reader.ensureBits(bits) {
		return 0, ErrExhausted
	}
	var result uint32
	for i := 0; i < bits; i++ {
		byteIdx := reader.bitPos / 8
		bitIdx := reader.bitPos % 8
		bit := (reader.buffer[byteIdx] >> (7 - bitIdx)) & 1
		result = result<<1 | uint32(bit)
		reader.bitPos++
	}
	return result, nil
}
