package readable_hash

import (
	"io"
)

// ByteSource supplies entropy to a BitReader. A Read that returns zero bytes
// marks the source as exhausted. Remaining reports how many bytes are left,
// with bounded false for sources that never run dry.
type ByteSource interface {
	io.Reader
	Remaining() (n int, bounded bool)
}

// SliceReader is a bounded ByteSource over an in-memory slice.
type SliceReader struct {
	data []byte
	pos  int
}

func NewSliceReader(data []byte) *SliceReader {
	return &SliceReader{data: data}
}

func (reader *SliceReader) Read(p []byte) (int, error) {
	if reader.pos >= len(reader.data) {
		return 0, io.EOF
	}
	n := copy(p, reader.data[reader.pos:])
	reader.pos += n
	return n, nil
}

func (reader *SliceReader) Remaining() (int, bool) {
	return len(reader.data) - reader.pos, true
}

type readerSource struct {
	reader io.Reader
}

// NewReaderSource adapts any io.Reader into an unbounded ByteSource. The
// source is exhausted the first time the reader yields no bytes.
func NewReaderSource(reader io.Reader) ByteSource {
	return &readerSource{reader: reader}
}

func (source *readerSource) Read(p []byte) (int, error) {
	return source.reader.Read(p)
}

func (source *readerSource) Remaining() (int, bool) {
	return 0, false
}
