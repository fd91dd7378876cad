// Package param holds the positional parameters of a query until they are
// bound into a live statement.
package param

import (
	"time"

	"github.com/longkeyy/go-rowset/common/slots"
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Binder receives parameters positionally. Positions are 1-based.
type Binder interface {
	BindObject(position int, value interface{}) error
	BindNull(position int, sqlType SQLType) error
}

// Cache stores parameter values by position together with the SQL type
// of every null, which a plain nil cannot carry. The query text can be
// swapped while the values stay, so a count query and a page query can
// share the same parameters.
type Cache struct {
	query     string
	values    *slots.Store[interface{}]
	nullTypes map[int]SQLType
}

func New() *Cache {
	return NewWithQuery("")
}

func NewWithQuery(query string) *Cache {
	return &Cache{
		query:     query,
		values:    slots.NewDefault[interface{}](),
		nullTypes: make(map[int]SQLType),
	}
}

func (c *Cache) QueryText() string { return c.query }

func (c *Cache) SetQueryText(query string) { c.query = query }

// Count is the highest position set. Positions skipped on the way there
// hold untyped nulls.
func (c *Cache) Count() int { return c.values.Size() }

// SetObject stores value at position. Setting a non-nil value forgets any
// null type recorded for the position.
func (c *Cache) SetObject(position int, value interface{}) error {
	if position < 1 {
		return errors.Wrapf(sqlerr.ErrOutOfRange, "parameter position %d, positions start at 1", position)
	}
	if err := c.values.Set(position-1, value); err != nil {
		return err
	}
	if value != nil {
		delete(c.nullTypes, position)
	}
	return nil
}

// SetNull stores a null at position and remembers the type to bind it with.
func (c *Cache) SetNull(position int, sqlType SQLType) error {
	if err := c.SetObject(position, nil); err != nil {
		return err
	}
	c.nullTypes[position] = sqlType
	return nil
}

func (c *Cache) SetString(position int, v string) error   { return c.SetObject(position, v) }
func (c *Cache) SetBool(position int, v bool) error       { return c.SetObject(position, v) }
func (c *Cache) SetByte(position int, v int8) error       { return c.SetObject(position, v) }
func (c *Cache) SetShort(position int, v int16) error     { return c.SetObject(position, v) }
func (c *Cache) SetInt(position int, v int32) error       { return c.SetObject(position, v) }
func (c *Cache) SetLong(position int, v int64) error      { return c.SetObject(position, v) }
func (c *Cache) SetFloat(position int, v float32) error   { return c.SetObject(position, v) }
func (c *Cache) SetDouble(position int, v float64) error  { return c.SetObject(position, v) }
func (c *Cache) SetTime(position int, v time.Time) error  { return c.SetObject(position, v) }
func (c *Cache) SetDecimal(position int, v decimal.Decimal) error {
	return c.SetObject(position, v)
}

// SetBytes stores a copy of v.
func (c *Cache) SetBytes(position int, v []byte) error {
	b := make([]byte, len(v))
	copy(b, v)
	return c.SetObject(position, b)
}

// Get returns the value at position, nil for a null.
func (c *Cache) Get(position int) (interface{}, error) {
	v, err := c.values.Get(position - 1)
	if err != nil {
		return nil, errors.Wrapf(err, "parameter %d", position)
	}
	return v, nil
}

// NullType reports the type recorded by SetNull for position.
func (c *Cache) NullType(position int) (SQLType, bool) {
	t, ok := c.nullTypes[position]
	return t, ok
}

// Values returns the stored values in position order.
func (c *Cache) Values() []interface{} {
	return c.values.Values()
}

// Clear drops every value and null type; the query text stays.
func (c *Cache) Clear() {
	c.values.Clear()
	c.nullTypes = make(map[int]SQLType)
}

// BindInto binds positions 1..Count into b. Nulls are bound with their
// recorded type; a null without one fails with ErrUnboundNullType.
func (c *Cache) BindInto(b Binder) error {
	for position := 1; position <= c.Count(); position++ {
		v, err := c.Get(position)
		if err != nil {
			return err
		}
		if v == nil {
			t, ok := c.nullTypes[position]
			if !ok {
				return errors.Wrapf(sqlerr.ErrUnboundNullType, "parameter %d", position)
			}
			if err := b.BindNull(position, t); err != nil {
				return errors.Wrapf(err, "bind null parameter %d as %s", position, t)
			}
			continue
		}
		if err := b.BindObject(position, v); err != nil {
			return errors.Wrapf(err, "bind parameter %d", position)
		}
	}
	return nil
}
