package rdbms

import (
	"database/sql"
	"testing"

	"github.com/longkeyy/go-rowset/common/lob"
	"github.com/longkeyy/go-rowset/common/param"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseTypeName(t *testing.T) {
	var testCases = []struct {
		in   string
		want string
	}{
		{in: "varchar(255)", want: "VARCHAR"},
		{in: "DECIMAL(10,2)", want: "DECIMAL"},
		{in: "UNSIGNED INT", want: "INT"},
		{in: "bigint unsigned", want: "BIGINT"},
		{in: "Nullable(Int64)", want: "INT64"},
		{in: "LowCardinality(Nullable(String))", want: "STRING"},
		{in: "", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, baseTypeName(tc.in))
		})
	}
}

func TestLobClass(t *testing.T) {
	assert.Equal(t, lob.ClassBlob, lobClass("BYTEA"))
	assert.Equal(t, lob.ClassBlob, lobClass("LONG RAW"))
	assert.Equal(t, lob.ClassClob, lobClass("MEDIUMTEXT"))
	assert.Equal(t, "", lobClass("VARCHAR"))
	assert.Equal(t, "", lobClass("TEXT"))
	assert.Equal(t, "", lobClass("TINYTEXT"))
	assert.Equal(t, lob.ClassClob, lobClass("CLOB"))
}

func TestNormalize(t *testing.T) {
	var testCases = []struct {
		name string
		base string
		in   interface{}
		want interface{}
	}{
		{name: "int text", base: "INT", in: []byte("42"), want: int64(42)},
		{name: "huge unsigned", base: "BIGINT", in: []byte("18446744073709551615"), want: uint64(18446744073709551615)},
		{name: "float text", base: "DOUBLE", in: []byte("2.5"), want: 2.5},
		{name: "varchar bytes", base: "VARCHAR", in: []byte("abc"), want: "abc"},
		{name: "text bytes", base: "TEXT", in: []byte("abc"), want: "abc"},
		{name: "decimal text", base: "DECIMAL", in: []byte("10.50"), want: decimal.RequireFromString("10.50")},
		{name: "decimal float", base: "NUMERIC", in: 1.25, want: decimal.NewFromFloat(1.25)},
		{name: "binary untouched", base: "VARBINARY", in: []byte("abc"), want: []byte("abc")},
		{name: "unknown untouched", base: "", in: []byte{1}, want: []byte{1}},
		{name: "bad decimal untouched", base: "DECIMAL", in: "n/a", want: "n/a"},
		{name: "nil", base: "INT", in: nil, want: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalize(tc.base, tc.in))
		})
	}
}

func TestArgsBinder(t *testing.T) {
	cache := param.New()
	require.NoError(t, cache.SetString(1, "open"))
	require.NoError(t, cache.SetNull(2, param.Integer))
	require.NoError(t, cache.SetNull(3, param.Decimal))
	require.NoError(t, cache.SetNull(4, param.Blob))
	require.NoError(t, cache.SetNull(5, param.Timestamp))
	require.NoError(t, cache.SetNull(6, param.Other))

	args, err := BindArgs(cache)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{
		"open",
		sql.NullInt32{},
		decimal.NullDecimal{},
		[]byte(nil),
		sql.NullTime{},
		nil,
	}, args)
}

func TestDatabaseType(t *testing.T) {
	var testCases = []struct {
		name string
		want DatabaseType
	}{
		{name: "SQLite", want: SQLite},
		{name: "postgres", want: PostgreSQL},
		{name: "mssql", want: SQLServer},
		{name: "taos", want: TDengine},
		{name: "clickhouse", want: ClickHouse},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDatabaseType(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
	_, err := ParseDatabaseType("db2")
	assert.Error(t, err)
	assert.Equal(t, "unknown", DatabaseType(99).String())

	dt, err := DetectDatabaseType("jdbc:postgresql://localhost:5432/app")
	require.NoError(t, err)
	assert.Equal(t, PostgreSQL, dt)
	dt, err = DetectDatabaseType("http://localhost:6041/power?taos")
	require.NoError(t, err)
	assert.Equal(t, TDengine, dt)
	_, err = DetectDatabaseType("jdbc:db2://x")
	assert.Error(t, err)
}
