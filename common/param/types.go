package param

import (
	"strings"

	"github.com/pkg/errors"
)

// SQLType is a SQL type code, numbered the way JDBC numbers java.sql.Types.
type SQLType int

const (
	Bit           SQLType = -7
	TinyInt       SQLType = -6
	BigInt        SQLType = -5
	LongVarBinary SQLType = -4
	VarBinary     SQLType = -3
	Binary        SQLType = -2
	LongVarChar   SQLType = -1
	Null          SQLType = 0
	Char          SQLType = 1
	Numeric       SQLType = 2
	Decimal       SQLType = 3
	Integer       SQLType = 4
	SmallInt      SQLType = 5
	Float         SQLType = 6
	Real          SQLType = 7
	Double        SQLType = 8
	VarChar       SQLType = 12
	Boolean       SQLType = 16
	Date          SQLType = 91
	Time          SQLType = 92
	Timestamp     SQLType = 93
	Other         SQLType = 1111
	Blob          SQLType = 2004
	Clob          SQLType = 2005
)

var typeNames = map[SQLType]string{
	Bit:           "BIT",
	TinyInt:       "TINYINT",
	BigInt:        "BIGINT",
	LongVarBinary: "LONGVARBINARY",
	VarBinary:     "VARBINARY",
	Binary:        "BINARY",
	LongVarChar:   "LONGVARCHAR",
	Null:          "NULL",
	Char:          "CHAR",
	Numeric:       "NUMERIC",
	Decimal:       "DECIMAL",
	Integer:       "INTEGER",
	SmallInt:      "SMALLINT",
	Float:         "FLOAT",
	Real:          "REAL",
	Double:        "DOUBLE",
	VarChar:       "VARCHAR",
	Boolean:       "BOOLEAN",
	Date:          "DATE",
	Time:          "TIME",
	Timestamp:     "TIMESTAMP",
	Other:         "OTHER",
	Blob:          "BLOB",
	Clob:          "CLOB",
}

var typesByName = func() map[string]SQLType {
	m := make(map[string]SQLType, len(typeNames)+3)
	for t, name := range typeNames {
		m[name] = t
	}
	m["INT"] = Integer
	m["BOOL"] = Boolean
	m["DATETIME"] = Timestamp
	return m
}()

func (t SQLType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseSQLType accepts the type names used in job files, case-insensitively.
func ParseSQLType(name string) (SQLType, error) {
	if t, ok := typesByName[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return Other, errors.Errorf("unknown sql type %q", name)
}
