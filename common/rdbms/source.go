// Package rdbms runs parameterized queries through database/sql or gorm and
// hands the live rows to the rowset package for materialization.
package rdbms

import (
	"database/sql"
	"math"
	"strings"

	"github.com/longkeyy/go-rowset/common/rowset"
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/pkg/errors"
)

// Source adapts *sql.Rows to rowset.Source. It does not close the rows.
type Source struct {
	rows      *sql.Rows
	columns   []*sql.ColumnType
	bases     []string
	fetchSize int
}

// NewSource 读取结果集的列类型并包装为可物化的数据源
func NewSource(rows *sql.Rows) (*Source, error) {
	columns, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.Wrap(err, "read column types")
	}
	bases := make([]string, len(columns))
	for i, ct := range columns {
		bases[i] = baseTypeName(ct.DatabaseTypeName())
	}
	return &Source{rows: rows, columns: columns, bases: bases}, nil
}

func (s *Source) SetFetchSize(n int) { s.fetchSize = n }

func (s *Source) Next() bool { return s.rows.Next() }

func (s *Source) Err() error { return s.rows.Err() }

// Values scans the current row. database/sql copies driver owned byte
// slices when scanning into interface{}, so the values outlive the rows.
func (s *Source) Values() ([]interface{}, error) {
	values := make([]interface{}, len(s.columns))
	ptrs := make([]interface{}, len(s.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		return nil, errors.Wrap(err, "scan row")
	}
	for i, v := range values {
		values[i] = normalize(s.bases[i], v)
	}
	return values, nil
}

func (s *Source) Metadata() (rowset.MetadataSource, error) {
	return columnTypes(s.columns), nil
}

func (s *Source) FetchDirection() rowset.FetchDirection { return rowset.FetchForward }

func (s *Source) FetchSize() int { return s.fetchSize }

func (s *Source) Warnings() []string { return nil }

type columnTypes []*sql.ColumnType

func (c columnTypes) ColumnCount() int { return len(c) }

func (c columnTypes) Column(column int) (rowset.ColumnDescriptor, error) {
	if column < 1 || column > len(c) {
		return rowset.ColumnDescriptor{}, sqlerr.OutOfRange("column", column, 1, len(c))
	}
	return describe(c[column-1]), nil
}

// describe 将 database/sql 的列类型转换为列描述
func describe(ct *sql.ColumnType) rowset.ColumnDescriptor {
	typeName := ct.DatabaseTypeName()
	base := baseTypeName(typeName)

	d := rowset.ColumnDescriptor{
		Name:          ct.Name(),
		Label:         ct.Name(),
		TypeName:      typeName,
		Nullable:      rowset.ColumnNullableUnknown,
		Signed:        isNumeric(base) && !isUnsigned(typeName),
		Searchable:    true,
		ReadOnly:      true,
		CaseSensitive: characterTypes.has(base) || clobTypes.has(base),
		Currency:      strings.HasSuffix(base, "MONEY"),
	}
	if class := lobClass(base); class != "" {
		d.ClassName = class
	} else if st := ct.ScanType(); st != nil {
		d.ClassName = st.String()
	}
	if nullable, ok := ct.Nullable(); ok {
		d.Nullable = rowset.ColumnNoNulls
		if nullable {
			d.Nullable = rowset.ColumnNullable
		}
	}
	if precision, scale, ok := ct.DecimalSize(); ok {
		d.Precision = clampInt(precision)
		d.Scale = clampInt(scale)
	}
	if length, ok := ct.Length(); ok {
		d.DisplaySize = clampInt(length)
		if d.Precision == 0 {
			d.Precision = d.DisplaySize
		}
	}
	return d
}

// clampInt 变长类型的长度可能是 math.MaxInt64
func clampInt(n int64) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
