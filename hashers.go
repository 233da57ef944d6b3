package readable_hash

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// Hasher turns input bytes into a stream of entropy for the word generator.
type Hasher interface {
	Name() string
	Stream(input []byte) ByteSource
}

// Sha256Hasher yields the 32 bytes of a SHA-256 digest, then runs dry.
type Sha256Hasher struct{}

func (Sha256Hasher) Name() string { return "sha256" }

func (Sha256Hasher) Stream(input []byte) ByteSource {
	digest := sha256.Sum256(input)
	return NewSliceReader(digest[:])
}

// Shake256Hasher yields the unbounded SHAKE256 output of the input.
type Shake256Hasher struct{}

func (Shake256Hasher) Name() string { return "shake256" }

func (Shake256Hasher) Stream(input []byte) ByteSource {
	shake := sha3.NewShake256()
	shake.Write(input)
	return NewReaderSource(shake)
}

// XXHasher yields an unbounded xxhash64 stream in counter mode: block i is
// xxhash64(input || uint64le(i)), emitted big-endian. Fast, and not
// cryptographic.
type XXHasher struct{}

func (XXHasher) Name() string { return "xxhash" }

func (XXHasher) Stream(input []byte) ByteSource {
	return &xxStream{
		digest: xxhash.New(),
		input:  input,
		pos:    8,
	}
}

type xxStream struct {
	digest  *xxhash.Digest
	input   []byte
	counter uint64
	block   [8]byte
	pos     int
}

func (stream *xxStream) nextBlock() {
	var counter [8]byte
	binary.LittleEndian.PutUint64(counter[:], stream.counter)
	stream.digest.Reset()
	stream.digest.Write(stream.input)
	stream.digest.Write(counter[:])
	binary.BigEndian.PutUint64(stream.block[:], stream.digest.Sum64())
	stream.counter++
	stream.pos = 0
}

func (stream *xxStream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if stream.pos == len(stream.block) {
			stream.nextBlock()
		}
		copied := copy(p[n:], stream.block[stream.pos:])
		stream.pos += copied
		n += copied
	}
	return n, nil
}

func (stream *xxStream) Remaining() (int, bool) {
	return 0, false
}

// HasherByName resolves a hasher from its name.
func HasherByName(name string) (Hasher, error) {
	switch name {
	case "sha256":
		return Sha256Hasher{}, nil
	case "shake256", "":
		return Shake256Hasher{}, nil
	case "xxhash":
		return XXHasher{}, nil
	}
	return nil, errors.Errorf("unknown hasher `%s`", name)
}
