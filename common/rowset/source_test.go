package rowset

import "github.com/pkg/errors"

// fakeSource is an in-memory live cursor. Values hands out the row slice
// itself so tests can mutate it after materialization.
type fakeSource struct {
	columns []ColumnDescriptor
	rows    [][]interface{}
	cur     int
	err     error
	metaErr error

	direction FetchDirection
	fetchSize int
	warnings  []string
}

func newFakeSource(columns []ColumnDescriptor, rows ...[]interface{}) *fakeSource {
	return &fakeSource{columns: columns, rows: rows, cur: -1}
}

func (f *fakeSource) Next() bool {
	if f.cur+1 >= len(f.rows) {
		return false
	}
	f.cur++
	return true
}

func (f *fakeSource) Values() ([]interface{}, error) {
	if f.cur < 0 || f.cur >= len(f.rows) {
		return nil, errors.New("no current row")
	}
	return f.rows[f.cur], nil
}

func (f *fakeSource) Metadata() (MetadataSource, error) {
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	return fakeMetadata(f.columns), nil
}

func (f *fakeSource) Err() error { return f.err }

type fakeMetadata []ColumnDescriptor

func (m fakeMetadata) ColumnCount() int { return len(m) }

func (m fakeMetadata) Column(column int) (ColumnDescriptor, error) {
	return m[column-1], nil
}

// propSource adds fetch properties to a fakeSource.
type propSource struct {
	*fakeSource
}

func (p propSource) FetchDirection() FetchDirection { return p.direction }
func (p propSource) FetchSize() int                 { return p.fetchSize }
func (p propSource) Warnings() []string             { return p.warnings }

func col(name, typeName string) ColumnDescriptor {
	return ColumnDescriptor{Name: name, Label: name, TypeName: typeName, Nullable: ColumnNullable}
}

// numbered returns count single-column rows holding 0..count-1.
func numbered(count int) *fakeSource {
	rows := make([][]interface{}, count)
	for i := range rows {
		rows[i] = []interface{}{int64(i)}
	}
	return newFakeSource([]ColumnDescriptor{col("id", "BIGINT")}, rows...)
}
