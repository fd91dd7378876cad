package rdbms

import (
	"database/sql"

	"github.com/longkeyy/go-rowset/common/param"
	"github.com/shopspring/decimal"
)

// ArgsBinder collects bound parameters as database/sql arguments. Typed
// nulls become the matching sql.NullX zero value so drivers see the type.
type ArgsBinder struct {
	args []interface{}
}

func (b *ArgsBinder) BindObject(position int, value interface{}) error {
	b.set(position, value)
	return nil
}

func (b *ArgsBinder) BindNull(position int, sqlType param.SQLType) error {
	b.set(position, typedNull(sqlType))
	return nil
}

func (b *ArgsBinder) set(position int, value interface{}) {
	for len(b.args) < position {
		b.args = append(b.args, nil)
	}
	b.args[position-1] = value
}

// Args returns the arguments in position order.
func (b *ArgsBinder) Args() []interface{} {
	return b.args
}

// BindArgs 将参数缓存绑定为查询参数列表
func BindArgs(cache *param.Cache) ([]interface{}, error) {
	b := &ArgsBinder{}
	if err := cache.BindInto(b); err != nil {
		return nil, err
	}
	return b.Args(), nil
}

func typedNull(t param.SQLType) interface{} {
	switch t {
	case param.Char, param.VarChar, param.LongVarChar, param.Clob:
		return sql.NullString{}
	case param.BigInt:
		return sql.NullInt64{}
	case param.Integer:
		return sql.NullInt32{}
	case param.SmallInt:
		return sql.NullInt16{}
	case param.TinyInt:
		return sql.NullByte{}
	case param.Real, param.Float, param.Double:
		return sql.NullFloat64{}
	case param.Numeric, param.Decimal:
		return decimal.NullDecimal{}
	case param.Bit, param.Boolean:
		return sql.NullBool{}
	case param.Date, param.Time, param.Timestamp:
		return sql.NullTime{}
	case param.Binary, param.VarBinary, param.LongVarBinary, param.Blob:
		return []byte(nil)
	}
	return nil
}
