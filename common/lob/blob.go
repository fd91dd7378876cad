package lob

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Blob is a read-only copy of a binary large object.
type Blob struct {
	data []byte
}

// NewBlob copies data.
func NewBlob(data []byte) *Blob {
	b := make([]byte, len(data))
	copy(b, data)
	return &Blob{data: b}
}

// NewBlobFromSource copies the whole value of a live handle in one call.
func NewBlobFromSource(src BinarySource) (*Blob, error) {
	n, err := src.Length()
	if err != nil {
		return nil, errors.Wrap(err, "read blob length")
	}
	data, err := src.Bytes(1, int(n))
	if err != nil {
		return nil, errors.Wrap(err, "read blob content")
	}
	return NewBlob(data), nil
}

func (b *Blob) Length() (int64, error) {
	return int64(len(b.data)), nil
}

// Bytes returns a copy of up to length bytes from the 1-based position pos.
func (b *Blob) Bytes(pos int64, length int) ([]byte, error) {
	from, to, err := span(pos, length, len(b.data))
	if err != nil {
		return nil, err
	}
	out := make([]byte, to-from)
	copy(out, b.data[from:to])
	return out, nil
}

// Reader streams the whole value.
func (b *Blob) Reader() io.Reader {
	return bytes.NewReader(b.data)
}

// ReaderAt streams up to length bytes from the 1-based position pos.
func (b *Blob) ReaderAt(pos int64, length int) (io.Reader, error) {
	from, to, err := span(pos, length, len(b.data))
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b.data[from:to]), nil
}

// Position returns the 1-based offset of pattern at or after start, -1 when absent.
func (b *Blob) Position(pattern []byte, start int64) (int64, error) {
	if err := checkStart(start); err != nil {
		return -1, err
	}
	if start > int64(len(b.data)) {
		return -1, nil
	}
	idx := bytes.Index(b.data[start-1:], pattern)
	if idx < 0 {
		return -1, nil
	}
	return start + int64(idx), nil
}

// PositionOf materializes pattern and searches for it like Position.
func (b *Blob) PositionOf(pattern BinarySource, start int64) (int64, error) {
	n, err := pattern.Length()
	if err != nil {
		return -1, errors.Wrap(err, "read pattern length")
	}
	p, err := pattern.Bytes(1, int(n))
	if err != nil {
		return -1, errors.Wrap(err, "read pattern content")
	}
	return b.Position(p, start)
}

func (b *Blob) SetBytes(pos int64, data []byte) (int, error) {
	return 0, readOnly("blob set bytes")
}

func (b *Blob) Truncate(length int64) error {
	return readOnly("blob truncate")
}

func (b *Blob) Writer(pos int64) (io.Writer, error) {
	return nil, readOnly("blob writer")
}

// Free has nothing to release and is not supported.
func (b *Blob) Free() error {
	return unsupported("blob free")
}
