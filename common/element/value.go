package element

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/longkeyy/go-rowset/common/lob"
	"github.com/shopspring/decimal"
)

// Kind is the tag of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindLong
	KindDouble
	KindDecimal
	KindString
	KindDate
	KindBool
	KindBytes
	KindBlob
	KindClob
	// KindObject keeps driver values of any other Go type untouched.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindLong:
		return "LONG"
	case KindDouble:
		return "DOUBLE"
	case KindDecimal:
		return "DECIMAL"
	case KindString:
		return "STRING"
	case KindDate:
		return "DATE"
	case KindBool:
		return "BOOL"
	case KindBytes:
		return "BYTES"
	case KindBlob:
		return "BLOB"
	case KindClob:
		return "CLOB"
	case KindObject:
		return "OBJECT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is one materialized cell. Only the field matching kind is meaningful.
type Value struct {
	kind Kind
	i    int64
	f    float64
	d    decimal.Decimal
	s    string
	t    time.Time
	b    []byte
	blob *lob.Blob
	clob *lob.Clob
	o    interface{}
}

func Null() Value { return Value{kind: KindNull} }

func NewLong(v int64) Value { return Value{kind: KindLong, i: v} }

func NewDouble(v float64) Value { return Value{kind: KindDouble, f: v} }

func NewDecimal(v decimal.Decimal) Value { return Value{kind: KindDecimal, d: v} }

func NewString(v string) Value { return Value{kind: KindString, s: v} }

func NewDate(v time.Time) Value { return Value{kind: KindDate, t: v} }

func NewBool(v bool) Value { return Value{kind: KindBool, i: boolToLong(v)} }

// NewBytes copies v. A nil slice is a null value.
func NewBytes(v []byte) Value {
	if v == nil {
		return Null()
	}
	b := make([]byte, len(v))
	copy(b, v)
	return Value{kind: KindBytes, b: b}
}

func NewBlob(v *lob.Blob) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: KindBlob, blob: v}
}

func NewClob(v *lob.Clob) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: KindClob, clob: v}
}

func boolToLong(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

// FromDriver tags a value as produced by database/sql scanning into
// interface{}. Types outside the known set are kept as KindObject.
func FromDriver(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case int64:
		return NewLong(x)
	case int:
		return NewLong(int64(x))
	case int32:
		return NewLong(int64(x))
	case int16:
		return NewLong(int64(x))
	case int8:
		return NewLong(int64(x))
	case uint8:
		return NewLong(int64(x))
	case uint16:
		return NewLong(int64(x))
	case uint32:
		return NewLong(int64(x))
	case uint:
		return fromUint64(uint64(x))
	case uint64:
		return fromUint64(x)
	case float64:
		return NewDouble(x)
	case float32:
		return NewDouble(float64(x))
	case decimal.Decimal:
		return NewDecimal(x)
	case *decimal.Decimal:
		if x == nil {
			return Null()
		}
		return NewDecimal(*x)
	case string:
		return NewString(x)
	case []byte:
		return NewBytes(x)
	case sql.RawBytes:
		return NewBytes(x)
	case time.Time:
		return NewDate(x)
	case bool:
		return NewBool(x)
	case *lob.Blob:
		return NewBlob(x)
	case *lob.Clob:
		return NewClob(x)
	default:
		return Value{kind: KindObject, o: v}
	}
}

func fromUint64(v uint64) Value {
	if v > math.MaxInt64 {
		return NewDecimal(decimal.RequireFromString(fmt.Sprintf("%d", v)))
	}
	return NewLong(int64(v))
}

func (v Value) GetType() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// TypeName names the stored runtime type, used in mismatch messages.
func (v Value) TypeName() string {
	if v.kind == KindObject {
		return fmt.Sprintf("OBJECT(%T)", v.o)
	}
	return v.kind.String()
}

// GetRawData returns the stored value as a plain Go value, nil for null.
func (v Value) GetRawData() interface{} {
	switch v.kind {
	case KindLong:
		return v.i
	case KindDouble:
		return v.f
	case KindDecimal:
		return v.d
	case KindString:
		return v.s
	case KindDate:
		return v.t
	case KindBool:
		return v.i != 0
	case KindBytes:
		b := make([]byte, len(v.b))
		copy(b, v.b)
		return b
	case KindBlob:
		return v.blob
	case KindClob:
		return v.clob
	case KindObject:
		return v.o
	default:
		return nil
	}
}

// GetByteSize estimates the in-memory footprint of the cell payload.
func (v Value) GetByteSize() int {
	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindString:
		return len(v.s)
	case KindBytes:
		return len(v.b)
	case KindBlob:
		n, _ := v.blob.Length()
		return int(n)
	case KindClob:
		return len(v.clob.String())
	case KindDecimal:
		return len(v.d.String())
	default:
		return 8
	}
}

// String renders the value for display; null renders as "null".
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBlob:
		n, _ := v.blob.Length()
		return fmt.Sprintf("<blob %d bytes>", n)
	}
	s, err := v.GetAsString()
	if err != nil {
		return fmt.Sprintf("<%s>", v.TypeName())
	}
	return s
}
