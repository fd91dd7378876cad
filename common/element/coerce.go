package element

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/longkeyy/go-rowset/common/lob"
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/shopspring/decimal"
)

// DateTimeFormat is used when a date is read as text.
const DateTimeFormat = "2006-01-02 15:04:05.999999999"

// CoerceTo converts v to kind. A null converts to null for every kind, the
// typed getters turn that into the zero value of their result type.
func (v Value) CoerceTo(kind Kind) (Value, error) {
	if v.kind == KindNull || v.kind == kind {
		return v, nil
	}
	switch kind {
	case KindLong:
		return v.toLong()
	case KindDouble:
		return v.toDouble()
	case KindDecimal:
		return v.toDecimal()
	case KindBool:
		return v.toBool()
	case KindString:
		return v.toString()
	case KindBytes:
		return v.toBytes()
	case KindDate:
		return v.toDate()
	}
	return Value{}, v.mismatch(kind)
}

func (v Value) mismatch(kind Kind) error {
	return sqlerr.TypeMismatch(kind.String(), v.TypeName())
}

func (v Value) toLong() (Value, error) {
	switch v.kind {
	case KindDouble:
		return NewLong(doubleToLong(v.f)), nil
	case KindDecimal:
		return NewLong(decimalToLong(v.d)), nil
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return Value{}, v.mismatch(KindLong)
		}
		return NewLong(n), nil
	}
	return Value{}, v.mismatch(KindLong)
}

var (
	minLongDecimal = decimal.NewFromInt(math.MinInt64)
	maxLongDecimal = decimal.NewFromInt(math.MaxInt64)
)

// doubleToLong truncates toward zero, saturating at the int64 bounds.
// NaN converts to 0.
func doubleToLong(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// decimalToLong truncates toward zero, saturating at the int64 bounds.
func decimalToLong(d decimal.Decimal) int64 {
	switch {
	case d.GreaterThan(maxLongDecimal):
		return math.MaxInt64
	case d.LessThan(minLongDecimal):
		return math.MinInt64
	}
	return d.IntPart()
}

func (v Value) toDouble() (Value, error) {
	switch v.kind {
	case KindLong:
		return NewDouble(float64(v.i)), nil
	case KindDecimal:
		return NewDouble(v.d.InexactFloat64()), nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return Value{}, v.mismatch(KindDouble)
		}
		return NewDouble(f), nil
	}
	return Value{}, v.mismatch(KindDouble)
}

func (v Value) toDecimal() (Value, error) {
	switch v.kind {
	case KindLong:
		return NewDecimal(decimal.NewFromInt(v.i)), nil
	case KindDouble:
		return NewDecimal(decimal.NewFromFloat(v.f)), nil
	case KindString:
		d, err := decimal.NewFromString(strings.TrimSpace(v.s))
		if err != nil {
			return Value{}, v.mismatch(KindDecimal)
		}
		return NewDecimal(d), nil
	}
	return Value{}, v.mismatch(KindDecimal)
}

func (v Value) toBool() (Value, error) {
	switch v.kind {
	case KindLong:
		return NewBool(v.i != 0), nil
	case KindDouble:
		return NewBool(v.f != 0), nil
	case KindDecimal:
		return NewBool(!v.d.IsZero()), nil
	case KindString:
		b, err := strconv.ParseBool(strings.TrimSpace(v.s))
		if err != nil {
			return Value{}, v.mismatch(KindBool)
		}
		return NewBool(b), nil
	}
	return Value{}, v.mismatch(KindBool)
}

func (v Value) toString() (Value, error) {
	switch v.kind {
	case KindLong:
		return NewString(strconv.FormatInt(v.i, 10)), nil
	case KindDouble:
		return NewString(strconv.FormatFloat(v.f, 'f', -1, 64)), nil
	case KindDecimal:
		return NewString(v.d.String()), nil
	case KindDate:
		return NewString(v.t.Format(DateTimeFormat)), nil
	case KindBool:
		return NewString(strconv.FormatBool(v.i != 0)), nil
	case KindBytes:
		return NewString(string(v.b)), nil
	case KindClob:
		return NewString(v.clob.String()), nil
	case KindObject:
		if s, ok := v.o.(interface{ String() string }); ok {
			return NewString(s.String()), nil
		}
	}
	return Value{}, v.mismatch(KindString)
}

func (v Value) toBytes() (Value, error) {
	switch v.kind {
	case KindString:
		return Value{kind: KindBytes, b: []byte(v.s)}, nil
	case KindBlob:
		n, _ := v.blob.Length()
		b, err := v.blob.Bytes(1, int(n))
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindBytes, b: b}, nil
	}
	return Value{}, v.mismatch(KindBytes)
}

func (v Value) toDate() (Value, error) {
	if v.kind == KindString {
		t, err := dateparse.ParseAny(strings.TrimSpace(v.s))
		if err != nil {
			return Value{}, v.mismatch(KindDate)
		}
		return NewDate(t), nil
	}
	return Value{}, v.mismatch(KindDate)
}

func (v Value) GetAsLong() (int64, error) {
	c, err := v.CoerceTo(KindLong)
	return c.i, err
}

func (v Value) GetAsDouble() (float64, error) {
	c, err := v.CoerceTo(KindDouble)
	return c.f, err
}

func (v Value) GetAsDecimal() (decimal.Decimal, error) {
	c, err := v.CoerceTo(KindDecimal)
	if err != nil || c.IsNull() {
		return decimal.Zero, err
	}
	return c.d, nil
}

func (v Value) GetAsBool() (bool, error) {
	c, err := v.CoerceTo(KindBool)
	return c.i != 0, err
}

func (v Value) GetAsString() (string, error) {
	c, err := v.CoerceTo(KindString)
	return c.s, err
}

// GetAsBytes returns a copy, nil for null.
func (v Value) GetAsBytes() ([]byte, error) {
	c, err := v.CoerceTo(KindBytes)
	if err != nil || c.IsNull() {
		return nil, err
	}
	if v.kind == KindBytes {
		b := make([]byte, len(c.b))
		copy(b, c.b)
		return b, nil
	}
	return c.b, nil
}

func (v Value) GetAsDate() (time.Time, error) {
	c, err := v.CoerceTo(KindDate)
	return c.t, err
}

// GetAsBlob fails unless the stored value is a blob snapshot; nil for null.
func (v Value) GetAsBlob() (*lob.Blob, error) {
	c, err := v.CoerceTo(KindBlob)
	return c.blob, err
}

// GetAsClob fails unless the stored value is a clob snapshot; nil for null.
func (v Value) GetAsClob() (*lob.Clob, error) {
	c, err := v.CoerceTo(KindClob)
	return c.clob, err
}
