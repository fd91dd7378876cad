package rowset

import (
	"time"

	"github.com/longkeyy/go-rowset/common/element"
	"github.com/longkeyy/go-rowset/common/lob"
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// value is the single read path: it checks the position and the column
// and records whether the value read was null.
func (c *Cursor) value(column int) (element.Value, error) {
	if !c.onRow() {
		return element.Value{}, errors.Wrapf(sqlerr.ErrOutOfRange, "cursor at position %d is not on a row", c.position)
	}
	rec, err := c.rows.Get(c.position - 1)
	if err != nil {
		return element.Value{}, err
	}
	v, ok := rec.GetColumn(column - 1)
	if !ok {
		return element.Value{}, sqlerr.OutOfRange("column", column, 1, rec.GetColumnNumber())
	}
	c.lastWasNull = v.IsNull()
	return v, nil
}

// WasNull reports whether the last value read was null. Navigation does
// not reset it.
func (c *Cursor) WasNull() bool {
	return c.lastWasNull
}

// GetValue returns the stored value with its kind.
func (c *Cursor) GetValue(column int) (element.Value, error) {
	return c.value(column)
}

// GetObject returns the stored value as the driver handed it over, nil for null.
func (c *Cursor) GetObject(column int) (interface{}, error) {
	v, err := c.value(column)
	if err != nil {
		return nil, err
	}
	return v.GetRawData(), nil
}

func (c *Cursor) GetString(column int) (string, error) {
	v, err := c.value(column)
	if err != nil {
		return "", err
	}
	return v.GetAsString()
}

func (c *Cursor) GetBool(column int) (bool, error) {
	v, err := c.value(column)
	if err != nil {
		return false, err
	}
	return v.GetAsBool()
}

func (c *Cursor) GetLong(column int) (int64, error) {
	v, err := c.value(column)
	if err != nil {
		return 0, err
	}
	return v.GetAsLong()
}

// GetInt, GetShort and GetByte truncate like a Go conversion.
func (c *Cursor) GetInt(column int) (int32, error) {
	n, err := c.GetLong(column)
	return int32(n), err
}

func (c *Cursor) GetShort(column int) (int16, error) {
	n, err := c.GetLong(column)
	return int16(n), err
}

func (c *Cursor) GetByte(column int) (int8, error) {
	n, err := c.GetLong(column)
	return int8(n), err
}

func (c *Cursor) GetDouble(column int) (float64, error) {
	v, err := c.value(column)
	if err != nil {
		return 0, err
	}
	return v.GetAsDouble()
}

func (c *Cursor) GetFloat(column int) (float32, error) {
	f, err := c.GetDouble(column)
	return float32(f), err
}

func (c *Cursor) GetDecimal(column int) (decimal.Decimal, error) {
	v, err := c.value(column)
	if err != nil {
		return decimal.Zero, err
	}
	return v.GetAsDecimal()
}

func (c *Cursor) GetBytes(column int) ([]byte, error) {
	v, err := c.value(column)
	if err != nil {
		return nil, err
	}
	return v.GetAsBytes()
}

func (c *Cursor) GetTime(column int) (time.Time, error) {
	v, err := c.value(column)
	if err != nil {
		return time.Time{}, err
	}
	return v.GetAsDate()
}

func (c *Cursor) GetBlob(column int) (*lob.Blob, error) {
	v, err := c.value(column)
	if err != nil {
		return nil, err
	}
	return v.GetAsBlob()
}

func (c *Cursor) GetClob(column int) (*lob.Clob, error) {
	v, err := c.value(column)
	if err != nil {
		return nil, err
	}
	return v.GetAsClob()
}

// FindColumn resolves a label or name to its 1-based column number.
func (c *Cursor) FindColumn(name string) (int, error) {
	return c.meta.FindColumn(name)
}

func (c *Cursor) GetValueByName(name string) (element.Value, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return element.Value{}, err
	}
	return c.GetValue(column)
}

func (c *Cursor) GetObjectByName(name string) (interface{}, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return nil, err
	}
	return c.GetObject(column)
}

func (c *Cursor) GetStringByName(name string) (string, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return "", err
	}
	return c.GetString(column)
}

func (c *Cursor) GetBoolByName(name string) (bool, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return false, err
	}
	return c.GetBool(column)
}

func (c *Cursor) GetLongByName(name string) (int64, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return c.GetLong(column)
}

func (c *Cursor) GetIntByName(name string) (int32, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return c.GetInt(column)
}

func (c *Cursor) GetShortByName(name string) (int16, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return c.GetShort(column)
}

func (c *Cursor) GetByteByName(name string) (int8, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return c.GetByte(column)
}

func (c *Cursor) GetDoubleByName(name string) (float64, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return c.GetDouble(column)
}

func (c *Cursor) GetFloatByName(name string) (float32, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return c.GetFloat(column)
}

func (c *Cursor) GetDecimalByName(name string) (decimal.Decimal, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return decimal.Zero, err
	}
	return c.GetDecimal(column)
}

func (c *Cursor) GetBytesByName(name string) ([]byte, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return nil, err
	}
	return c.GetBytes(column)
}

func (c *Cursor) GetTimeByName(name string) (time.Time, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return time.Time{}, err
	}
	return c.GetTime(column)
}

func (c *Cursor) GetBlobByName(name string) (*lob.Blob, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return nil, err
	}
	return c.GetBlob(column)
}

func (c *Cursor) GetClobByName(name string) (*lob.Clob, error) {
	column, err := c.meta.FindColumn(name)
	if err != nil {
		return nil, err
	}
	return c.GetClob(column)
}
