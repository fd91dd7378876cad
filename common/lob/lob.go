// Package lob holds in-memory snapshots of large column values. A snapshot
// is copied in full when a row is materialized, so it stays readable after
// the connection that produced it is gone. Snapshots are never writable.
package lob

import (
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/pkg/errors"
)

// Value class names that mark a column as holding large objects.
const (
	ClassBlob = "blob"
	ClassClob = "clob"
)

// BinarySource is a live binary large object handle.
type BinarySource interface {
	Length() (int64, error)
	// Bytes returns up to length bytes starting at the 1-based position pos.
	Bytes(pos int64, length int) ([]byte, error)
}

// CharacterSource is a live character large object handle.
type CharacterSource interface {
	Length() (int64, error)
	// SubString returns up to length characters starting at the 1-based position pos.
	SubString(pos int64, length int) (string, error)
}

func readOnly(op string) error {
	return errors.Wrap(sqlerr.ErrReadOnly, op)
}

func unsupported(op string) error {
	return errors.Wrap(sqlerr.ErrUnsupported, op)
}

// span validates a 1-based (pos, length) request against a value of n units
// and returns the 0-based [from, to) range, truncated at the end of the value.
func span(pos int64, length int, n int) (int, int, error) {
	if pos < 1 || pos > int64(n)+1 {
		return 0, 0, sqlerr.OutOfRange("position", int(pos), 1, n+1)
	}
	if length < 0 {
		return 0, 0, sqlerr.OutOfRange("length", length, 0, n)
	}
	from := int(pos - 1)
	to := from + length
	if to > n || to < from {
		to = n
	}
	return from, to, nil
}

func checkStart(start int64) error {
	if start < 1 {
		return sqlerr.OutOfRange("start", int(start), 1, int(^uint(0)>>1))
	}
	return nil
}
