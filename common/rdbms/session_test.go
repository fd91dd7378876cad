package rdbms

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/longkeyy/go-rowset/common/lob"
	"github.com/longkeyy/go-rowset/common/param"
	"github.com/longkeyy/go-rowset/common/rowset"
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.db")
	orm, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	s, err := NewGormSession(SQLite, orm)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.DB().Exec(`CREATE TABLE orders (
		id INTEGER PRIMARY KEY,
		status TEXT,
		amount DECIMAL(10,2),
		note CLOB,
		payload BLOB
	)`)
	require.NoError(t, err)

	seed := []struct {
		id      int
		status  string
		amount  float64
		note    interface{}
		payload interface{}
	}{
		{1, "open", 10.25, "first note", []byte{0xCA, 0xFE}},
		{2, "closed", 5.5, nil, nil},
		{3, "open", 99.99, "third", []byte{0x01}},
		{4, "open", 0.5, "fourth", nil},
		{5, "closed", 20, "fifth", nil},
	}
	for _, r := range seed {
		_, err := s.DB().Exec("INSERT INTO orders (id, status, amount, note, payload) VALUES (?, ?, ?, ?, ?)",
			r.id, r.status, r.amount, r.note, r.payload)
		require.NoError(t, err)
	}
	return s
}

func TestQueryMaterializesRows(t *testing.T) {
	s := openSQLite(t)
	cache := param.NewWithQuery("SELECT id, status, amount, note, payload FROM orders WHERE status = ? ORDER BY id")
	require.NoError(t, cache.SetString(1, "open"))

	cur, err := s.Query(context.Background(), cache, 0, rowset.Unbounded)
	require.NoError(t, err)
	assert.Equal(t, 3, cur.TotalRowCount())
	assert.Equal(t, 3, cur.BatchRowCount())

	require.True(t, cur.First())
	id, err := cur.GetLong(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	status, err := cur.GetStringByName("STATUS")
	require.NoError(t, err)
	assert.Equal(t, "open", status)

	amount, err := cur.GetDecimal(3)
	require.NoError(t, err)
	assert.Equal(t, "10.25", amount.String())

	note, err := cur.GetClob(4)
	require.NoError(t, err)
	assert.Equal(t, "first note", note.String())

	payload, err := cur.GetBlob(5)
	require.NoError(t, err)
	n, err := payload.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.True(t, cur.Absolute(3))
	payload, err = cur.GetBlob(5)
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.True(t, cur.WasNull())

	m := cur.Metadata()
	assert.NotEqual(t, lob.ClassClob, m.ColumnClassName(2))
	assert.Equal(t, lob.ClassClob, m.ColumnClassName(4))
	statusObj, err := cur.GetObject(2)
	require.NoError(t, err)
	assert.IsType(t, "", statusObj)
	assert.Equal(t, lob.ClassBlob, m.ColumnClassName(5))
	assert.Equal(t, "status", m.ColumnName(2))
}

func TestQueryWindow(t *testing.T) {
	s := openSQLite(t)
	cache := param.NewWithQuery("SELECT id FROM orders ORDER BY id")

	cur, err := s.Query(context.Background(), cache, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, cur.TotalRowCount())
	assert.Equal(t, 2, cur.BatchRowCount())

	var ids []int64
	for cur.Next() {
		id, err := cur.GetLong(1)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []int64{2, 3}, ids)

	_, err = s.Query(context.Background(), cache, 0, 0)
	assert.ErrorIs(t, err, sqlerr.ErrInvalidWindow)
}

func TestQueryBindsTypedNulls(t *testing.T) {
	s := openSQLite(t)
	cache := param.NewWithQuery("SELECT COUNT(*) FROM orders WHERE (? IS NULL OR status = ?)")
	require.NoError(t, cache.SetNull(1, param.VarChar))
	require.NoError(t, cache.SetNull(2, param.VarChar))

	cur, err := s.Query(context.Background(), cache, 0, rowset.Unbounded)
	require.NoError(t, err)
	require.True(t, cur.First())
	n, err := cur.GetLong(1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	unbound := param.NewWithQuery("SELECT id FROM orders WHERE status = ?")
	require.NoError(t, unbound.SetObject(1, nil))
	_, err = s.Query(context.Background(), unbound, 0, rowset.Unbounded)
	assert.ErrorIs(t, err, sqlerr.ErrUnboundNullType)
}

func TestQueryRequiresText(t *testing.T) {
	s := openSQLite(t)
	_, err := s.Query(context.Background(), param.New(), 0, rowset.Unbounded)
	assert.Error(t, err)
	_, err = s.Query(context.Background(), nil, 0, rowset.Unbounded)
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	s := openSQLite(t)
	const pageQuery = "SELECT id FROM orders WHERE amount > ? ORDER BY id"
	cache := param.NewWithQuery(pageQuery)
	require.NoError(t, cache.SetDouble(1, 1.0))

	page, err := s.Paginate(context.Background(), cache, "SELECT COUNT(*) FROM orders WHERE amount > ?", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.PageCount())
	assert.Equal(t, pageQuery, cache.QueryText())

	require.Equal(t, 1, page.Cursor.BatchRowCount())
	require.True(t, page.Cursor.First())
	id, err := page.Cursor.GetLong(1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	page, err = s.Paginate(context.Background(), cache, "", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 3, page.Cursor.BatchRowCount())

	_, err = s.Paginate(context.Background(), cache, "", 0, 3)
	assert.ErrorIs(t, err, sqlerr.ErrInvalidWindow)
}

func TestCursorOutlivesSession(t *testing.T) {
	s := openSQLite(t)
	cur, err := s.Query(context.Background(), param.NewWithQuery("SELECT note FROM orders WHERE id = 1"), 0, rowset.Unbounded)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.True(t, cur.Next())
	note, err := cur.GetString(1)
	require.NoError(t, err)
	assert.Equal(t, "first note", note)
}

func TestCloseAggregatesErrors(t *testing.T) {
	s := openSQLite(t)
	s.OnClose(func() error { return errors.New("release cache") })
	s.OnClose(func() error { return errors.New("drop temp table") })

	err := s.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release cache")
	assert.Contains(t, err.Error(), "drop temp table")
	assert.NoError(t, s.Close())
}
