package rowset

import (
	"strings"

	"github.com/longkeyy/go-rowset/common/lob"
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/pkg/errors"
)

// Metadata is an immutable copy of a live cursor's column descriptions.
// Column numbers are 1-based; numbers outside 1..ColumnCount panic.
type Metadata struct {
	columns []ColumnDescriptor
	index   map[string]int
}

// NewMetadata reads every column of src exactly once.
func NewMetadata(src MetadataSource) (*Metadata, error) {
	count := src.ColumnCount()
	m := &Metadata{
		columns: make([]ColumnDescriptor, count),
		index:   make(map[string]int, count*2),
	}
	for i := 1; i <= count; i++ {
		col, err := src.Column(i)
		if err != nil {
			return nil, errors.Wrapf(err, "read metadata of column %d", i)
		}
		m.columns[i-1] = col
	}
	// labels take precedence over names, earlier columns over later ones
	for i := count; i >= 1; i-- {
		col := m.columns[i-1]
		if col.Name != "" {
			m.index[strings.ToUpper(col.Name)] = i
		}
	}
	for i := count; i >= 1; i-- {
		col := m.columns[i-1]
		if col.Label != "" {
			m.index[strings.ToUpper(col.Label)] = i
		}
	}
	return m, nil
}

// FindColumn maps a column label or name, case-insensitively, to its 1-based number.
func (m *Metadata) FindColumn(name string) (int, error) {
	if i, ok := m.index[strings.ToUpper(name)]; ok {
		return i, nil
	}
	return 0, errors.Wrapf(sqlerr.ErrColumnNotFound, "%q", name)
}

func (m *Metadata) ColumnCount() int { return len(m.columns) }

// Column returns a copy of the full descriptor.
func (m *Metadata) Column(column int) (ColumnDescriptor, error) {
	if column < 1 || column > len(m.columns) {
		return ColumnDescriptor{}, sqlerr.OutOfRange("column", column, 1, len(m.columns))
	}
	return m.columns[column-1], nil
}

func (m *Metadata) ColumnName(column int) string      { return m.columns[column-1].Name }
func (m *Metadata) ColumnLabel(column int) string     { return m.columns[column-1].Label }
func (m *Metadata) ColumnTypeName(column int) string  { return m.columns[column-1].TypeName }
func (m *Metadata) ColumnClassName(column int) string { return m.columns[column-1].ClassName }
func (m *Metadata) TableName(column int) string       { return m.columns[column-1].TableName }
func (m *Metadata) SchemaName(column int) string      { return m.columns[column-1].SchemaName }
func (m *Metadata) CatalogName(column int) string     { return m.columns[column-1].CatalogName }
func (m *Metadata) Precision(column int) int          { return m.columns[column-1].Precision }
func (m *Metadata) Scale(column int) int              { return m.columns[column-1].Scale }
func (m *Metadata) ColumnDisplaySize(column int) int  { return m.columns[column-1].DisplaySize }
func (m *Metadata) IsNullable(column int) int         { return m.columns[column-1].Nullable }
func (m *Metadata) IsSigned(column int) bool          { return m.columns[column-1].Signed }
func (m *Metadata) IsSearchable(column int) bool      { return m.columns[column-1].Searchable }
func (m *Metadata) IsReadOnly(column int) bool        { return m.columns[column-1].ReadOnly }
func (m *Metadata) IsWritable(column int) bool        { return m.columns[column-1].Writable }
func (m *Metadata) IsAutoIncrement(column int) bool   { return m.columns[column-1].AutoIncrement }
func (m *Metadata) IsCaseSensitive(column int) bool   { return m.columns[column-1].CaseSensitive }
func (m *Metadata) IsCurrency(column int) bool        { return m.columns[column-1].Currency }

// Labels returns the display label of every column, falling back to the name.
func (m *Metadata) Labels() []string {
	out := make([]string, len(m.columns))
	for i, col := range m.columns {
		out[i] = col.Label
		if out[i] == "" {
			out[i] = col.Name
		}
	}
	return out
}

func (m *Metadata) isBlob(column int) bool {
	return strings.EqualFold(m.columns[column-1].ClassName, lob.ClassBlob)
}

func (m *Metadata) isClob(column int) bool {
	return strings.EqualFold(m.columns[column-1].ClassName, lob.ClassClob)
}
