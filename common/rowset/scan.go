package rowset

import (
	"database/sql"
	"time"

	"github.com/longkeyy/go-rowset/common/element"
	"github.com/longkeyy/go-rowset/common/lob"
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Scan copies the current row into dest, one pointer per column, the way
// database/sql does. The sql.NullX destinations carry nullness; plain ones
// receive the zero value for null.
func (c *Cursor) Scan(dest ...interface{}) error {
	if len(dest) != c.meta.ColumnCount() {
		return errors.Errorf("expected %d destination arguments in Scan, not %d", c.meta.ColumnCount(), len(dest))
	}
	for i, d := range dest {
		v, err := c.value(i + 1)
		if err != nil {
			return err
		}
		if err := assign(d, v); err != nil {
			return errors.Wrapf(err, "scan column %d", i+1)
		}
	}
	return nil
}

func assign(dest interface{}, v element.Value) (err error) {
	switch p := dest.(type) {
	case *element.Value:
		*p = v
	case *interface{}:
		*p = v.GetRawData()
	case *string:
		*p, err = v.GetAsString()
	case *bool:
		*p, err = v.GetAsBool()
	case *int:
		var n int64
		n, err = v.GetAsLong()
		*p = int(n)
	case *int64:
		*p, err = v.GetAsLong()
	case *int32:
		var n int64
		n, err = v.GetAsLong()
		*p = int32(n)
	case *float64:
		*p, err = v.GetAsDouble()
	case *float32:
		var f float64
		f, err = v.GetAsDouble()
		*p = float32(f)
	case *decimal.Decimal:
		*p, err = v.GetAsDecimal()
	case *[]byte:
		*p, err = v.GetAsBytes()
	case *time.Time:
		*p, err = v.GetAsDate()
	case **lob.Blob:
		*p, err = v.GetAsBlob()
	case **lob.Clob:
		*p, err = v.GetAsClob()
	case *sql.NullString:
		p.Valid = !v.IsNull()
		p.String, err = v.GetAsString()
	case *sql.NullInt64:
		p.Valid = !v.IsNull()
		p.Int64, err = v.GetAsLong()
	case *sql.NullFloat64:
		p.Valid = !v.IsNull()
		p.Float64, err = v.GetAsDouble()
	case *sql.NullBool:
		p.Valid = !v.IsNull()
		p.Bool, err = v.GetAsBool()
	case *sql.NullTime:
		p.Valid = !v.IsNull()
		p.Time, err = v.GetAsDate()
	case *decimal.NullDecimal:
		p.Valid = !v.IsNull()
		p.Decimal, err = v.GetAsDecimal()
	default:
		return errors.Wrapf(sqlerr.ErrTypeMismatch, "unsupported scan destination %T", dest)
	}
	return err
}
