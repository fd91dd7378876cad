package rdbms

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/longkeyy/go-rowset/common/logger"
	"github.com/longkeyy/go-rowset/common/param"
	"github.com/longkeyy/go-rowset/common/rowset"
	"github.com/longkeyy/go-rowset/common/sqlerr"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Session 持有一个数据库连接池，执行参数化查询并把结果物化为离线游标。
// 游标返回前结果集已关闭，连接可以立即归还或关闭。
type Session struct {
	dbType    DatabaseType
	db        *sql.DB
	orm       *gorm.DB
	fetchSize int
	closers   []func() error

	log     logger.ComponentLogger
	metrics *logger.MetricsLogger
}

// NewSession wraps a plain connection pool. Close closes db.
func NewSession(dbType DatabaseType, db *sql.DB) *Session {
	s := newSession(dbType)
	s.db = db
	s.closers = append(s.closers, db.Close)
	return s
}

// NewGormSession 使用gorm执行查询，占位符按方言由gorm改写
func NewGormSession(dbType DatabaseType, orm *gorm.DB) (*Session, error) {
	db, err := orm.DB()
	if err != nil {
		return nil, errors.Wrapf(err, "get connection pool of %s", dbType)
	}
	s := newSession(dbType)
	s.db = db
	s.orm = orm
	s.closers = append(s.closers, db.Close)
	return s, nil
}

func newSession(dbType DatabaseType) *Session {
	return &Session{
		dbType:  dbType,
		log:     logger.Component().WithComponent("RdbmsSession"),
		metrics: logger.Metrics("RdbmsSession"),
	}
}

func (s *Session) DatabaseType() DatabaseType { return s.dbType }

// DB exposes the pool, for statements the session does not cover.
func (s *Session) DB() *sql.DB { return s.db }

// SetFetchSize is reported by cursors the session produces.
func (s *Session) SetFetchSize(n int) { s.fetchSize = n }

// OnClose registers fn to run on Close, before the pool is closed.
func (s *Session) OnClose(fn func() error) {
	s.closers = append(s.closers, fn)
}

// Close 关闭会话持有的全部资源，汇总所有关闭错误
func (s *Session) Close() error {
	var result *multierror.Error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			result = multierror.Append(result, err)
		}
	}
	s.closers = nil
	return result.ErrorOrNil()
}

// Query binds cache, runs its query text and materializes the window
// [startRow, startRow+maxRows) of the result; maxRows may be rowset.Unbounded.
func (s *Session) Query(ctx context.Context, cache *param.Cache, startRow, maxRows int) (*rowset.Cursor, error) {
	if cache == nil || strings.TrimSpace(cache.QueryText()) == "" {
		return nil, errors.New("query text is empty")
	}
	args, err := BindArgs(cache)
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("databaseType", s.dbType.String()),
		zap.Int("parameters", len(args)),
		zap.Int("startRow", startRow),
		zap.Int("maxRows", maxRows),
	}
	if jobID, ok := logger.GetJobID(ctx); ok {
		fields = append(fields, zap.String("jobId", jobID))
	}
	s.log.Debug("Executing query", append(fields, zap.String("sql", cache.QueryText()))...)

	timer := s.metrics.StartTimer("query")
	rows, err := s.rows(ctx, cache.QueryText(), args)
	if err != nil {
		s.log.Error("Query failed", append(fields, zap.Error(err))...)
		return nil, errors.Wrapf(err, "execute query on %s", s.dbType)
	}

	cur, err := s.materialize(rows, startRow, maxRows)
	if cerr := rows.Close(); cerr != nil && err == nil {
		err = errors.Wrap(cerr, "close rows")
	}
	if err != nil {
		s.log.Error("Materialization failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	s.metrics.LogMaterialization(cur.ID(), cur.TotalRowCount(), cur.BatchRowCount(), timer.Stop())
	return cur, nil
}

func (s *Session) rows(ctx context.Context, query string, args []interface{}) (*sql.Rows, error) {
	if s.orm != nil {
		return s.orm.WithContext(ctx).Raw(query, args...).Rows()
	}
	return s.db.QueryContext(ctx, query, args...)
}

func (s *Session) materialize(rows *sql.Rows, startRow, maxRows int) (*rowset.Cursor, error) {
	src, err := NewSource(rows)
	if err != nil {
		return nil, err
	}
	src.SetFetchSize(s.fetchSize)
	return rowset.MaterializeWindow(src, startRow, maxRows)
}

// Page is one page of a paginated query.
type Page struct {
	Total    int
	Page     int
	PageSize int
	Cursor   *rowset.Cursor
}

// PageCount is the number of pages Total rows fill.
func (p *Page) PageCount() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// Paginate 查询第page页（从1开始）。countQuery非空时先用相同参数执行计数查询，
// 否则以游标看到的总行数作为总数。
func (s *Session) Paginate(ctx context.Context, cache *param.Cache, countQuery string, page, pageSize int) (*Page, error) {
	if page < 1 || pageSize < 1 {
		return nil, errors.Wrapf(sqlerr.ErrInvalidWindow, "page=%d pageSize=%d", page, pageSize)
	}
	if cache == nil {
		return nil, errors.New("parameter cache is nil")
	}

	total := -1
	if strings.TrimSpace(countQuery) != "" {
		n, err := s.count(ctx, cache, countQuery)
		if err != nil {
			return nil, err
		}
		total = n
	}

	cur, err := s.Query(ctx, cache, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	if total < 0 {
		total = cur.TotalRowCount()
	}
	return &Page{Total: total, Page: page, PageSize: pageSize, Cursor: cur}, nil
}

// count runs countQuery with the parameters of cache, then restores the
// original query text.
func (s *Session) count(ctx context.Context, cache *param.Cache, countQuery string) (int, error) {
	query := cache.QueryText()
	cache.SetQueryText(countQuery)
	defer cache.SetQueryText(query)

	start := time.Now()
	cur, err := s.Query(ctx, cache, 0, 1)
	if err != nil {
		return 0, errors.Wrap(err, "count query")
	}
	if !cur.First() {
		return 0, errors.New("count query returned no rows")
	}
	n, err := cur.GetLong(1)
	if err != nil {
		return 0, errors.Wrap(err, "read count")
	}
	s.metrics.LogDatabaseMetrics("count", n, time.Since(start))
	return int(n), nil
}
