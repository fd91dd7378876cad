package element

import (
	"strings"
)

// Record is one materialized row. Columns are 0-based here; callers that
// expose 1-based column numbers translate at their boundary.
type Record struct {
	columns []Value
}

func NewRecord(columnCount int) *Record {
	return &Record{
		columns: make([]Value, 0, columnCount),
	}
}

func (r *Record) AddColumn(v Value) {
	r.columns = append(r.columns, v)
}

// SetColumn stores v at index, padding with nulls when the record is shorter.
func (r *Record) SetColumn(index int, v Value) {
	for len(r.columns) <= index {
		r.columns = append(r.columns, Null())
	}
	r.columns[index] = v
}

// GetColumn returns the value at index and false when index is outside the record.
func (r *Record) GetColumn(index int) (Value, bool) {
	if index < 0 || index >= len(r.columns) {
		return Value{}, false
	}
	return r.columns[index], true
}

func (r *Record) GetColumnNumber() int {
	return len(r.columns)
}

func (r *Record) GetByteSize() int {
	size := 0
	for _, col := range r.columns {
		size += col.GetByteSize()
	}
	return size
}

// Clone copies the record. Large object snapshots are shared since they are immutable.
func (r *Record) Clone() *Record {
	out := &Record{columns: make([]Value, len(r.columns))}
	copy(out.columns, r.columns)
	return out
}

func (r *Record) String() string {
	parts := make([]string, len(r.columns))
	for i, col := range r.columns {
		parts[i] = col.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
