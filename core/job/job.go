package job

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/longkeyy/go-rowset/common/config"
	"github.com/longkeyy/go-rowset/common/logger"
	"github.com/longkeyy/go-rowset/common/plugin"
	"github.com/longkeyy/go-rowset/common/rdbms"
	"github.com/longkeyy/go-rowset/common/rowset"
	"github.com/longkeyy/go-rowset/core/registry"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// JobState represents the lifecycle state of a job
type JobState string

const (
	JobStateCreated   JobState = "CREATED"
	JobStateRunning   JobState = "RUNNING"
	JobStateSucceeded JobState = "SUCCEEDED"
	JobStateFailed    JobState = "FAILED"
	JobStateCancelled JobState = "CANCELLED"
)

// OpenFunc opens a session for a connection. Defaults to registry.Open.
type OpenFunc func(conn plugin.Connection) (*rdbms.Session, error)

// Job runs one query and keeps the materialized result after the
// connection has been closed.
// Following Go's exec.Cmd pattern: create, start (async), wait (block).
type Job struct {
	ID   string
	spec Spec
	open OpenFunc

	startTime  time.Time
	endTime    time.Time
	state      JobState
	result     *Result
	finalStats *StatsSummary

	done chan struct{}
	err  error
	mu   sync.RWMutex
}

// Result 作业结果，分页模式下Page非空
type Result struct {
	Cursor *rowset.Cursor
	Page   *rdbms.Page
}

// JobStatus provides a lightweight snapshot of job state
type JobStatus struct {
	ID        string        `json:"id"`
	State     JobState      `json:"state"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime,omitempty"`
	Stats     *StatsSummary `json:"stats,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// StatsSummary 物化统计
type StatsSummary struct {
	RowsSeen     int           `json:"rowsSeen"`
	RowsKept     int           `json:"rowsKept"`
	Duration     time.Duration `json:"duration"`
	AverageSpeed float64       `json:"averageSpeed"`
}

// NewJob creates a new job instance (but does not start it)
func NewJob(cfg *config.Configuration) (*Job, error) {
	spec, err := ParseSpec(cfg)
	if err != nil {
		return nil, err
	}

	id := spec.ID
	if id == "" {
		id = uuid.New().String()
	}

	return &Job{
		ID:    id,
		spec:  spec,
		open:  registry.Open,
		state: JobStateCreated,
		done:  make(chan struct{}),
	}, nil
}

// WithOpener replaces the connector lookup. Must be called before Start.
func (j *Job) WithOpener(open OpenFunc) *Job {
	j.open = open
	return j
}

// Spec returns the decoded job definition.
func (j *Job) Spec() Spec { return j.spec }

// Start begins job execution asynchronously (similar to exec.Cmd.Start)
func (j *Job) Start(ctx context.Context) error {
	j.mu.Lock()
	if j.state != JobStateCreated {
		j.mu.Unlock()
		return errors.Errorf("job %s already started (state: %s)", j.ID, j.state)
	}
	j.state = JobStateRunning
	j.startTime = time.Now()
	j.mu.Unlock()

	go j.run(ctx)
	return nil
}

// Wait blocks until the job completes and returns the result (similar to exec.Cmd.Wait)
func (j *Job) Wait() (*Result, error) {
	<-j.done
	return j.result, j.err
}

// Run executes the job synchronously (blocking) - convenience method for CLI mode
func (j *Job) Run(ctx context.Context) (*Result, error) {
	if err := j.Start(ctx); err != nil {
		return nil, err
	}
	return j.Wait()
}

// Done returns a channel that is closed when the job completes (Go idiom)
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Status returns current job status snapshot
func (j *Job) Status() JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()

	status := JobStatus{
		ID:        j.ID,
		State:     j.state,
		StartTime: j.startTime,
		EndTime:   j.endTime,
		Stats:     j.finalStats,
	}
	if j.err != nil {
		status.Error = j.err.Error()
	}
	return status
}

// GetState returns current job state
func (j *Job) GetState() JobState {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state
}

// run executes the job in a background goroutine
func (j *Job) run(ctx context.Context) {
	defer close(j.done)

	ctx = logger.WithJobID(ctx, j.ID)
	result, err := j.execute(ctx)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.endTime = time.Now()
	j.result = result
	j.err = err
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		j.state = JobStateCancelled
	case err != nil:
		j.state = JobStateFailed
	default:
		j.state = JobStateSucceeded
	}
	if result != nil {
		j.finalStats = summarize(result.Cursor, j.endTime.Sub(j.startTime))
	}
}

func (j *Job) execute(ctx context.Context) (result *Result, err error) {
	log := logger.JobLoggerFromContext(ctx)
	metrics := logger.Metrics("Job")

	if j.spec.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(j.spec.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	cache, err := j.spec.ParameterCache()
	if err != nil {
		return nil, err
	}

	session, err := j.open(j.spec.Connection)
	if err != nil {
		return nil, errors.Wrap(err, "open connection")
	}
	// 结果在连接关闭后依然可用
	defer func() {
		if cerr := session.Close(); cerr != nil {
			err = multierror.Append(err, errors.Wrap(cerr, "close connection")).ErrorOrNil()
		}
	}()
	if j.spec.FetchSize > 0 {
		session.SetFetchSize(j.spec.FetchSize)
	}

	log.Info("Job started",
		zap.String("database", session.DatabaseType().String()),
		zap.Int("parameters", cache.Count()),
		zap.Bool("paging", j.spec.paging()))

	timer := metrics.StartTimer("job")
	if j.spec.paging() {
		page, perr := session.Paginate(ctx, cache, j.spec.CountQuery, j.spec.Page, j.spec.PageSize)
		if perr != nil {
			return nil, perr
		}
		result = &Result{Cursor: page.Cursor, Page: page}
	} else {
		cursor, qerr := session.Query(ctx, cache, j.spec.Window.StartRow, j.spec.Window.MaxRows)
		if qerr != nil {
			return nil, qerr
		}
		result = &Result{Cursor: cursor}
	}
	timer.StopWithCount(int64(result.Cursor.BatchRowCount()))

	log.Info("Job completed",
		zap.String("cursorId", result.Cursor.ID()),
		zap.Int("rowsSeen", result.Cursor.TotalRowCount()),
		zap.Int("rowsKept", result.Cursor.BatchRowCount()))
	return result, nil
}

func summarize(cursor *rowset.Cursor, duration time.Duration) *StatsSummary {
	if cursor == nil {
		return nil
	}
	var avgSpeed float64
	if duration.Seconds() > 0 {
		avgSpeed = float64(cursor.TotalRowCount()) / duration.Seconds()
	}
	return &StatsSummary{
		RowsSeen:     cursor.TotalRowCount(),
		RowsKept:     cursor.BatchRowCount(),
		Duration:     duration,
		AverageSpeed: avgSpeed,
	}
}
