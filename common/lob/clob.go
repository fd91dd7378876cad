package lob

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Clob is a read-only copy of a character large object. Positions and
// lengths count characters, not bytes. The content is kept exactly as
// received; an invalid UTF-8 byte counts as one character.
type Clob struct {
	data  string
	chars int
}

func NewClob(s string) *Clob {
	return &Clob{data: s, chars: utf8.RuneCountInString(s)}
}

// NewClobFromBytes copies b without re-encoding it.
func NewClobFromBytes(b []byte) *Clob {
	return NewClob(string(b))
}

// byteOffset returns the byte index in s where character i (0-based) starts.
func byteOffset(s string, i int) int {
	off := 0
	for ; i > 0 && off < len(s); i-- {
		_, w := utf8.DecodeRuneInString(s[off:])
		off += w
	}
	return off
}

// NewClobFromSource copies the whole value of a live handle in one call.
func NewClobFromSource(src CharacterSource) (*Clob, error) {
	n, err := src.Length()
	if err != nil {
		return nil, errors.Wrap(err, "read clob length")
	}
	s, err := src.SubString(1, int(n))
	if err != nil {
		return nil, errors.Wrap(err, "read clob content")
	}
	return NewClob(s), nil
}

func (c *Clob) Length() (int64, error) {
	return int64(c.chars), nil
}

// SubString returns up to length characters from the 1-based position pos.
func (c *Clob) SubString(pos int64, length int) (string, error) {
	from, to, err := span(pos, length, c.chars)
	if err != nil {
		return "", err
	}
	start := byteOffset(c.data, from)
	end := start + byteOffset(c.data[start:], to-from)
	return c.data[start:end], nil
}

func (c *Clob) String() string {
	return c.data
}

func (c *Clob) Reader() io.Reader {
	return strings.NewReader(c.data)
}

func (c *Clob) ReaderAt(pos int64, length int) (io.Reader, error) {
	s, err := c.SubString(pos, length)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(s), nil
}

// Position returns the 1-based character offset of pattern at or after
// start, -1 when absent.
func (c *Clob) Position(pattern string, start int64) (int64, error) {
	if err := checkStart(start); err != nil {
		return -1, err
	}
	if start > int64(c.chars) {
		return -1, nil
	}
	tail := c.data[byteOffset(c.data, int(start-1)):]
	idx := strings.Index(tail, pattern)
	if idx < 0 {
		return -1, nil
	}
	return start + int64(utf8.RuneCountInString(tail[:idx])), nil
}

// PositionOf materializes pattern and searches for it like Position.
func (c *Clob) PositionOf(pattern CharacterSource, start int64) (int64, error) {
	n, err := pattern.Length()
	if err != nil {
		return -1, errors.Wrap(err, "read pattern length")
	}
	p, err := pattern.SubString(1, int(n))
	if err != nil {
		return -1, errors.Wrap(err, "read pattern content")
	}
	return c.Position(p, start)
}

func (c *Clob) SetString(pos int64, s string) (int, error) {
	return 0, readOnly("clob set string")
}

func (c *Clob) Truncate(length int64) error {
	return readOnly("clob truncate")
}

func (c *Clob) Writer(pos int64) (io.Writer, error) {
	return nil, readOnly("clob writer")
}

func (c *Clob) Free() error {
	return unsupported("clob free")
}
