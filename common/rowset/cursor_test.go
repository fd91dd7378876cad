package rowset

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/longkeyy/go-rowset/common/element"
	"github.com/longkeyy/go-rowset/common/lob"
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peopleSource() *fakeSource {
	return newFakeSource(
		[]ColumnDescriptor{
			col("id", "BIGINT"),
			{Name: "full_name", Label: "Name", TypeName: "VARCHAR", Nullable: ColumnNullable},
			col("score", "DOUBLE"),
			col("balance", "DECIMAL"),
		},
		[]interface{}{int64(1), "alice", 4.5, decimal.RequireFromString("10.25")},
		[]interface{}{int64(2), nil, 3.0, nil},
		[]interface{}{int64(42), "carol", nil, decimal.RequireFromString("-1")},
	)
}

func TestMaterializeCopiesEveryRow(t *testing.T) {
	c, err := Materialize(peopleSource())
	require.NoError(t, err)
	assert.Equal(t, 3, c.TotalRowCount())
	assert.Equal(t, 3, c.BatchRowCount())
	assert.NotEmpty(t, c.ID())

	var ids []int64
	var names []string
	for c.Next() {
		id, err := c.GetLong(1)
		require.NoError(t, err)
		name, err := c.GetString(2)
		require.NoError(t, err)
		ids = append(ids, id)
		names = append(names, name)
	}
	assert.Equal(t, []int64{1, 2, 42}, ids)
	assert.Equal(t, []string{"alice", "", "carol"}, names)
	assert.True(t, c.IsAfterLast())
}

func TestMaterializeWindow(t *testing.T) {
	var testCases = []struct {
		name      string
		total     int
		startRow  int
		maxRows   int
		wantBatch []int64
	}{
		{name: "middle", total: 10, startRow: 2, maxRows: 3, wantBatch: []int64{2, 3, 4}},
		{name: "tail shorter than window", total: 10, startRow: 8, maxRows: 5, wantBatch: []int64{8, 9}},
		{name: "unbounded from offset", total: 4, startRow: 1, maxRows: Unbounded, wantBatch: []int64{1, 2, 3}},
		{name: "start past end", total: 10, startRow: 20, maxRows: 3, wantBatch: nil},
		{name: "largest window from offset", total: 5, startRow: 1, maxRows: math.MaxInt, wantBatch: []int64{1, 2, 3, 4}},
		{name: "empty source", total: 0, startRow: 0, maxRows: Unbounded, wantBatch: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := MaterializeWindow(numbered(tc.total), tc.startRow, tc.maxRows)
			require.NoError(t, err)
			assert.Equal(t, tc.total, c.TotalRowCount())
			assert.Equal(t, len(tc.wantBatch), c.BatchRowCount())

			var got []int64
			for c.Next() {
				n, err := c.GetLong(1)
				require.NoError(t, err)
				got = append(got, n)
			}
			assert.Equal(t, tc.wantBatch, got)
		})
	}
}

func TestMaterializeInvalidWindow(t *testing.T) {
	for _, w := range [][2]int{{-1, 3}, {0, 0}, {2, -5}} {
		_, err := MaterializeWindow(numbered(3), w[0], w[1])
		assert.ErrorIs(t, err, sqlerr.ErrInvalidWindow, "window %v", w)
	}
}

func TestMaterializeSourceErrors(t *testing.T) {
	boom := errors.New("connection reset")

	src := numbered(2)
	src.err = boom
	_, err := Materialize(src)
	assert.ErrorIs(t, err, boom)

	src = numbered(2)
	src.metaErr = boom
	_, err = Materialize(src)
	assert.ErrorIs(t, err, boom)

	short := newFakeSource([]ColumnDescriptor{col("a", "INT"), col("b", "INT")}, []interface{}{int64(1)})
	_, err = Materialize(short)
	assert.Error(t, err)
}

func TestNavigation(t *testing.T) {
	c, err := Materialize(numbered(3))
	require.NoError(t, err)

	assert.True(t, c.IsBeforeFirst())
	assert.Equal(t, 0, c.Row())

	assert.True(t, c.Previous(), "previous before the first row still reports true")
	assert.True(t, c.IsBeforeFirst())

	assert.True(t, c.Last())
	assert.True(t, c.IsLast())
	assert.Equal(t, 3, c.Row())

	assert.False(t, c.Next())
	assert.True(t, c.IsAfterLast())
	assert.False(t, c.Next())
	assert.True(t, c.IsAfterLast())

	assert.True(t, c.Previous())
	assert.Equal(t, 3, c.Row())

	assert.True(t, c.First())
	assert.True(t, c.IsFirst())

	assert.True(t, c.Relative(1))
	assert.Equal(t, 2, c.Row())
	assert.False(t, c.Relative(-5))
	assert.True(t, c.IsBeforeFirst())
	assert.False(t, c.Relative(10))
	assert.True(t, c.IsAfterLast())

	assert.True(t, c.Absolute(2))
	assert.Equal(t, 2, c.Row())
	assert.False(t, c.Absolute(0))
	assert.True(t, c.IsBeforeFirst())
	assert.False(t, c.Absolute(4))
	assert.True(t, c.IsAfterLast())

	c.BeforeFirst()
	assert.True(t, c.IsBeforeFirst())
	c.AfterLast()
	assert.True(t, c.IsAfterLast())
}

func TestNavigationOnEmptyCursor(t *testing.T) {
	c, err := Materialize(numbered(0))
	require.NoError(t, err)

	assert.False(t, c.First())
	assert.False(t, c.Last())
	assert.False(t, c.Next())
	assert.False(t, c.IsBeforeFirst())
	assert.False(t, c.IsAfterLast())
	assert.False(t, c.IsFirst())
	assert.Equal(t, 0, c.Row())

	_, err = c.GetObject(1)
	assert.ErrorIs(t, err, sqlerr.ErrOutOfRange)
}

func TestReadOutsideRowOrColumn(t *testing.T) {
	c, err := Materialize(numbered(2))
	require.NoError(t, err)

	_, err = c.GetLong(1)
	assert.ErrorIs(t, err, sqlerr.ErrOutOfRange, "before first")

	c.AfterLast()
	_, err = c.GetLong(1)
	assert.ErrorIs(t, err, sqlerr.ErrOutOfRange, "after last")

	require.True(t, c.First())
	_, err = c.GetLong(0)
	assert.ErrorIs(t, err, sqlerr.ErrOutOfRange)
	_, err = c.GetLong(2)
	assert.ErrorIs(t, err, sqlerr.ErrOutOfRange)
}

func TestWasNull(t *testing.T) {
	c, err := Materialize(peopleSource())
	require.NoError(t, err)
	require.True(t, c.Absolute(2))

	name, err := c.GetString(2)
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.True(t, c.WasNull())

	bal, err := c.GetDecimal(4)
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.Zero))
	assert.True(t, c.WasNull())

	obj, err := c.GetObject(4)
	require.NoError(t, err)
	assert.Nil(t, obj)

	score, err := c.GetDouble(3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, score)
	assert.False(t, c.WasNull())

	// navigation keeps the flag of the last read
	_, _ = c.GetString(2)
	require.True(t, c.Next())
	assert.True(t, c.WasNull())
}

func TestTypedReadCoercion(t *testing.T) {
	c, err := Materialize(peopleSource())
	require.NoError(t, err)
	require.True(t, c.Absolute(3))

	d, err := c.GetDouble(1)
	require.NoError(t, err)
	assert.Equal(t, 42.0, d)

	s, err := c.GetString(1)
	require.NoError(t, err)
	assert.Equal(t, "42", s)

	i, err := c.GetInt(1)
	require.NoError(t, err)
	assert.Equal(t, int32(42), i)

	sh, err := c.GetShort(1)
	require.NoError(t, err)
	assert.Equal(t, int16(42), sh)

	b, err := c.GetByte(1)
	require.NoError(t, err)
	assert.Equal(t, int8(42), b)

	f, err := c.GetFloat(1)
	require.NoError(t, err)
	assert.Equal(t, float32(42), f)

	ok, err := c.GetBool(1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = c.GetInt(2)
	require.ErrorIs(t, err, sqlerr.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "STRING")

	_, err = c.GetTime(1)
	assert.ErrorIs(t, err, sqlerr.ErrTypeMismatch)

	_, err = c.GetBlob(2)
	assert.ErrorIs(t, err, sqlerr.ErrTypeMismatch)
}

func TestReadByName(t *testing.T) {
	c, err := Materialize(peopleSource())
	require.NoError(t, err)
	require.True(t, c.First())

	id, err := c.GetLongByName("ID")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	name, err := c.GetStringByName("name")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	name, err = c.GetStringByName("FULL_NAME")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	bal, err := c.GetDecimalByName("Balance")
	require.NoError(t, err)
	assert.Equal(t, "10.25", bal.String())

	_, err = c.GetStringByName("missing")
	require.ErrorIs(t, err, sqlerr.ErrColumnNotFound)
	assert.Contains(t, err.Error(), "missing")

	n, err := c.FindColumn("score")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestClobColumnKeepsSourceBytes(t *testing.T) {
	latin1 := []byte{0x61, 0xff, 0xfe, 0x62}
	src := newFakeSource(
		[]ColumnDescriptor{{Name: "body", TypeName: "LONGTEXT", ClassName: lob.ClassClob}},
		[]interface{}{latin1},
	)
	c, err := Materialize(src)
	require.NoError(t, err)
	require.True(t, c.First())

	clob, err := c.GetClob(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x61, 0xff, 0xfe, 0x62}, []byte(clob.String()))
}

func TestLargeObjectsAreSnapshots(t *testing.T) {
	payload := []byte{0xCA, 0xFE, 0xBA, 0xBE}
	text := []byte("chapter one")
	src := newFakeSource(
		[]ColumnDescriptor{
			{Name: "data", TypeName: "BLOB", ClassName: lob.ClassBlob},
			{Name: "body", TypeName: "CLOB", ClassName: lob.ClassClob},
		},
		[]interface{}{payload, text},
		[]interface{}{nil, nil},
	)
	c, err := Materialize(src)
	require.NoError(t, err)

	payload[0] = 0
	text[0] = 'C'

	require.True(t, c.First())
	blob, err := c.GetBlobByName("data")
	require.NoError(t, err)
	got, err := blob.Bytes(1, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCA, 0xFE, 0xBA, 0xBE}, got)

	clob, err := c.GetClob(2)
	require.NoError(t, err)
	assert.Equal(t, "chapter one", clob.String())

	_, err = blob.SetBytes(1, []byte{1})
	assert.ErrorIs(t, err, sqlerr.ErrReadOnly)
	assert.ErrorIs(t, err, sqlerr.ErrUnsupported)

	obj, err := c.GetObject(1)
	require.NoError(t, err)
	assert.IsType(t, &lob.Blob{}, obj)

	require.True(t, c.Next())
	blob, err = c.GetBlob(1)
	require.NoError(t, err)
	assert.Nil(t, blob)
	assert.True(t, c.WasNull())
}

func TestLargeObjectColumnRejectsOtherValues(t *testing.T) {
	src := newFakeSource(
		[]ColumnDescriptor{{Name: "data", ClassName: "BLOB"}},
		[]interface{}{int64(5)},
	)
	_, err := Materialize(src)
	assert.ErrorIs(t, err, sqlerr.ErrTypeMismatch)
}

func TestCursorOutlivesSource(t *testing.T) {
	src := peopleSource()
	c, err := Materialize(src)
	require.NoError(t, err)

	src.rows[0][1] = "mallory"
	src.rows = nil

	require.True(t, c.First())
	name, err := c.GetString(2)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestPropertiesAreCopied(t *testing.T) {
	inner := numbered(1)
	inner.direction = FetchReverse
	inner.fetchSize = 50
	inner.warnings = []string{"truncated"}

	c, err := Materialize(propSource{inner})
	require.NoError(t, err)
	inner.warnings[0] = "changed"

	assert.Equal(t, FetchReverse, c.FetchDirection())
	assert.Equal(t, 50, c.FetchSize())
	assert.Equal(t, []string{"truncated"}, c.Warnings())

	plain, err := Materialize(numbered(1))
	require.NoError(t, err)
	assert.Equal(t, FetchForward, plain.FetchDirection())
	assert.Empty(t, plain.Warnings())
}

func TestMetadataSnapshot(t *testing.T) {
	c, err := Materialize(peopleSource())
	require.NoError(t, err)
	m := c.Metadata()

	assert.Equal(t, 4, m.ColumnCount())
	assert.Equal(t, "full_name", m.ColumnName(2))
	assert.Equal(t, "Name", m.ColumnLabel(2))
	assert.Equal(t, "DECIMAL", m.ColumnTypeName(4))
	assert.Equal(t, ColumnNullable, m.IsNullable(1))
	assert.Equal(t, []string{"id", "Name", "score", "balance"}, m.Labels())

	_, err = m.Column(5)
	assert.ErrorIs(t, err, sqlerr.ErrOutOfRange)
}

func TestMetadataLabelWinsOverName(t *testing.T) {
	src := newFakeSource([]ColumnDescriptor{
		{Name: "total", Label: "a"},
		{Name: "x", Label: "total"},
		{Name: "dup"},
		{Name: "dup"},
	})
	m, err := NewMetadata(mustMeta(t, src))
	require.NoError(t, err)

	n, err := m.FindColumn("TOTAL")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = m.FindColumn("dup")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func mustMeta(t *testing.T, src *fakeSource) MetadataSource {
	ms, err := src.Metadata()
	require.NoError(t, err)
	return ms
}

func TestRecordsAreCopies(t *testing.T) {
	c, err := Materialize(numbered(2))
	require.NoError(t, err)

	recs := c.Records()
	require.Len(t, recs, 2)
	recs[0].SetColumn(0, element.NewLong(99))

	require.True(t, c.First())
	n, err := c.GetLong(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestScan(t *testing.T) {
	c, err := Materialize(peopleSource())
	require.NoError(t, err)
	require.True(t, c.Absolute(2))

	var (
		id      int64
		name    sql.NullString
		score   float64
		balance decimal.NullDecimal
	)
	require.NoError(t, c.Scan(&id, &name, &score, &balance))
	assert.Equal(t, int64(2), id)
	assert.False(t, name.Valid)
	assert.Equal(t, 3.0, score)
	assert.False(t, balance.Valid)

	require.True(t, c.Next())
	var (
		raw   interface{}
		text  string
		value element.Value
		when  time.Time
	)
	err = c.Scan(&raw, &text, &value, &when)
	require.ErrorIs(t, err, sqlerr.ErrTypeMismatch, "decimal cannot be read as a date")
	assert.Equal(t, int64(42), raw)
	assert.Equal(t, "carol", text)
	assert.True(t, value.IsNull())

	assert.Error(t, c.Scan(&id))
	assert.ErrorIs(t, c.Scan(&id, &text, &score, struct{}{}), sqlerr.ErrTypeMismatch)
}

func TestMutationsUnsupported(t *testing.T) {
	c, err := Materialize(numbered(1))
	require.NoError(t, err)
	require.True(t, c.First())

	assert.ErrorIs(t, c.UpdateRow(), sqlerr.ErrUnsupported)
	assert.ErrorIs(t, c.InsertRow(), sqlerr.ErrUnsupported)
	assert.ErrorIs(t, c.DeleteRow(), sqlerr.ErrUnsupported)
}
