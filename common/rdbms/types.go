package rdbms

import (
	"strconv"
	"strings"

	"github.com/longkeyy/go-rowset/common/lob"
	"github.com/shopspring/decimal"
)

type typeSet map[string]struct{}

func newTypeSet(names ...string) typeSet {
	s := make(typeSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s typeSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

var (
	blobTypes = newTypeSet("BLOB", "LONGBLOB", "MEDIUMBLOB", "TINYBLOB", "BYTEA", "IMAGE", "LONG RAW")
	// TEXT and TINYTEXT are ordinary strings; only the large text types are snapshotted as clobs.
	clobTypes = newTypeSet("CLOB", "NCLOB", "LONGTEXT", "MEDIUMTEXT", "NTEXT")

	binaryTypes = newTypeSet("BINARY", "VARBINARY", "RAW", "BIT VARYING", "VARBIT", "GEOMETRY")

	integerTypes = newTypeSet("INT", "INTEGER", "TINYINT", "SMALLINT", "MEDIUMINT", "BIGINT",
		"INT2", "INT4", "INT8", "INT16", "INT32", "INT64", "UINT8", "UINT16", "UINT32", "UINT64",
		"SERIAL", "BIGSERIAL", "SMALLSERIAL", "YEAR")
	floatTypes = newTypeSet("FLOAT", "DOUBLE", "REAL", "FLOAT4", "FLOAT8", "FLOAT32", "FLOAT64",
		"DOUBLE PRECISION", "BINARY_FLOAT", "BINARY_DOUBLE")
	decimalTypes = newTypeSet("DECIMAL", "NUMERIC", "NUMBER", "MONEY", "SMALLMONEY",
		"DECIMAL32", "DECIMAL64", "DECIMAL128", "DECIMAL256")
	characterTypes = newTypeSet("CHAR", "VARCHAR", "NCHAR", "NVARCHAR", "VARCHAR2", "NVARCHAR2",
		"CHARACTER", "CHARACTER VARYING", "BPCHAR", "STRING", "FIXEDSTRING", "UUID", "JSON",
		"JSONB", "ENUM", "SET", "XML", "CITEXT", "NAME", "TEXT", "TINYTEXT")
)

// baseTypeName 去掉长度、精度、UNSIGNED以及ClickHouse的Nullable/LowCardinality包装
func baseTypeName(typeName string) string {
	t := strings.ToUpper(strings.TrimSpace(typeName))
	for changed := true; changed; {
		changed = false
		for _, wrapper := range []string{"NULLABLE(", "LOWCARDINALITY("} {
			if strings.HasPrefix(t, wrapper) && strings.HasSuffix(t, ")") {
				t = t[len(wrapper) : len(t)-1]
				changed = true
			}
		}
	}
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	t = strings.TrimPrefix(t, "UNSIGNED ")
	t = strings.TrimSuffix(t, " UNSIGNED")
	return strings.TrimSpace(t)
}

func isUnsigned(typeName string) bool {
	t := strings.ToUpper(typeName)
	return strings.Contains(t, "UNSIGNED") || strings.HasPrefix(baseTypeName(t), "UINT")
}

func isNumeric(base string) bool {
	return integerTypes.has(base) || floatTypes.has(base) || decimalTypes.has(base)
}

// lobClass maps a database type to the large object class the cursor snapshots.
func lobClass(base string) string {
	switch {
	case blobTypes.has(base):
		return lob.ClassBlob
	case clobTypes.has(base):
		return lob.ClassClob
	}
	return ""
}

// normalize 把驱动返回的原始值按列类型转换为更具体的Go类型
func normalize(base string, v interface{}) interface{} {
	if v == nil || blobTypes.has(base) || binaryTypes.has(base) {
		return v
	}
	if decimalTypes.has(base) {
		return toDecimal(v)
	}
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	s := string(b)
	switch {
	case integerTypes.has(base):
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return n
		}
	case floatTypes.has(base):
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case characterTypes.has(base), clobTypes.has(base):
		return s
	}
	return v
}

// toDecimal leaves values it cannot parse untouched.
func toDecimal(v interface{}) interface{} {
	switch x := v.(type) {
	case []byte:
		if d, err := decimal.NewFromString(string(x)); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(x); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(x)
	case float32:
		return decimal.NewFromFloat32(x)
	case int64:
		return decimal.NewFromInt(x)
	case int32:
		return decimal.NewFromInt32(x)
	}
	return v
}
