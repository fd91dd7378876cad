// Package rowset materializes a live cursor into memory and serves the
// usual navigable, read-only cursor contract from the copy, so callers can
// keep reading after the originating connection has been closed.
package rowset

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/longkeyy/go-rowset/common/element"
	"github.com/longkeyy/go-rowset/common/lob"
	"github.com/longkeyy/go-rowset/common/slots"
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/pkg/errors"
)

// Unbounded as maxRows keeps every row from startRow on.
const Unbounded = -1

// Cursor is a materialized, connection independent cursor. It is not safe
// for concurrent use: navigation state is unguarded.
type Cursor struct {
	id   string
	meta *Metadata
	rows *slots.Store[*element.Record]

	totalRows int
	position  int

	lastWasNull bool

	fetchDirection FetchDirection
	fetchSize      int
	warnings       []string
}

// Materialize copies every row of src.
func Materialize(src Source) (*Cursor, error) {
	return MaterializeWindow(src, 0, Unbounded)
}

// MaterializeWindow drains src and keeps the rows numbered (0-based)
// startRow up to startRow+maxRows-1. maxRows is positive or Unbounded.
// Rows outside the window are still counted in TotalRowCount.
// src is not referenced once this returns; closing it is the caller's job.
func MaterializeWindow(src Source, startRow, maxRows int) (*Cursor, error) {
	if startRow < 0 || (maxRows <= 0 && maxRows != Unbounded) {
		return nil, errors.Wrapf(sqlerr.ErrInvalidWindow, "startRow=%d maxRows=%d", startRow, maxRows)
	}

	c := &Cursor{
		id:             uuid.NewString(),
		rows:           slots.NewDefault[*element.Record](),
		fetchDirection: FetchForward,
	}
	if p, ok := src.(Properties); ok {
		c.fetchDirection = p.FetchDirection()
		c.fetchSize = p.FetchSize()
		c.warnings = append([]string(nil), p.Warnings()...)
	}

	ms, err := src.Metadata()
	if err != nil {
		return nil, errors.Wrap(err, "read cursor metadata")
	}
	if c.meta, err = NewMetadata(ms); err != nil {
		return nil, err
	}

	for src.Next() {
		rowNum := c.totalRows
		c.totalRows++
		if rowNum < startRow || (maxRows != Unbounded && rowNum-startRow >= maxRows) {
			continue
		}
		rec, err := c.readRow(src)
		if err != nil {
			return nil, errors.Wrapf(err, "materialize row %d", rowNum)
		}
		if err := c.rows.Set(c.rows.Size(), rec); err != nil {
			return nil, err
		}
	}
	if err := src.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate source cursor")
	}
	return c, nil
}

func (c *Cursor) readRow(src Source) (*element.Record, error) {
	values, err := src.Values()
	if err != nil {
		return nil, err
	}
	count := c.meta.ColumnCount()
	if len(values) != count {
		return nil, errors.Errorf("source returned %d values for %d columns", len(values), count)
	}
	rec := element.NewRecord(count)
	for i, raw := range values {
		var v element.Value
		switch column := i + 1; {
		case c.meta.isBlob(column):
			v, err = snapshotBlob(raw)
		case c.meta.isClob(column):
			v, err = snapshotClob(raw)
		default:
			v = element.FromDriver(raw)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i+1)
		}
		rec.AddColumn(v)
	}
	return rec, nil
}

func snapshotBlob(raw interface{}) (element.Value, error) {
	switch x := raw.(type) {
	case nil:
		return element.Null(), nil
	case *lob.Blob:
		return element.NewBlob(x), nil
	case lob.BinarySource:
		b, err := lob.NewBlobFromSource(x)
		if err != nil {
			return element.Value{}, err
		}
		return element.NewBlob(b), nil
	case []byte:
		if x == nil {
			return element.Null(), nil
		}
		return element.NewBlob(lob.NewBlob(x)), nil
	case string:
		return element.NewBlob(lob.NewBlob([]byte(x))), nil
	}
	return element.Value{}, sqlerr.TypeMismatch(element.KindBlob.String(), fmt.Sprintf("%T", raw))
}

func snapshotClob(raw interface{}) (element.Value, error) {
	switch x := raw.(type) {
	case nil:
		return element.Null(), nil
	case *lob.Clob:
		return element.NewClob(x), nil
	case lob.CharacterSource:
		cl, err := lob.NewClobFromSource(x)
		if err != nil {
			return element.Value{}, err
		}
		return element.NewClob(cl), nil
	case string:
		return element.NewClob(lob.NewClob(x)), nil
	case []byte:
		if x == nil {
			return element.Null(), nil
		}
		return element.NewClob(lob.NewClobFromBytes(x)), nil
	}
	return element.Value{}, sqlerr.TypeMismatch(element.KindClob.String(), fmt.Sprintf("%T", raw))
}

// ID identifies the cursor in logs.
func (c *Cursor) ID() string { return c.id }

func (c *Cursor) Metadata() *Metadata { return c.meta }

// TotalRowCount is the number of rows the source produced, window or not.
func (c *Cursor) TotalRowCount() int { return c.totalRows }

// BatchRowCount is the number of rows kept.
func (c *Cursor) BatchRowCount() int { return c.rows.Size() }

func (c *Cursor) FetchDirection() FetchDirection { return c.fetchDirection }

func (c *Cursor) FetchSize() int { return c.fetchSize }

func (c *Cursor) Warnings() []string { return append([]string(nil), c.warnings...) }

// Records returns copies of the kept rows in order.
func (c *Cursor) Records() []*element.Record {
	out := make([]*element.Record, 0, c.rows.Size())
	for _, rec := range c.rows.Values() {
		out = append(out, rec.Clone())
	}
	return out
}

// UpdateRow, InsertRow and DeleteRow exist for callers probing writability;
// a materialized cursor has no connection to write through.
func (c *Cursor) UpdateRow() error {
	return errors.Wrap(sqlerr.ErrUnsupported, "update row on a materialized cursor")
}

func (c *Cursor) InsertRow() error {
	return errors.Wrap(sqlerr.ErrUnsupported, "insert row on a materialized cursor")
}

func (c *Cursor) DeleteRow() error {
	return errors.Wrap(sqlerr.ErrUnsupported, "delete row on a materialized cursor")
}
