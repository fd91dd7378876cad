package engine

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/longkeyy/go-rowset/common/config"
	"github.com/longkeyy/go-rowset/common/element"
	"github.com/longkeyy/go-rowset/common/logger"
	"github.com/longkeyy/go-rowset/core/job"
	"github.com/pkg/errors"
	"github.com/ryanuber/columnize"
	"go.uber.org/zap"
)

// Engine is stateless - just a namespace for execution functions
type Engine struct {
	out io.Writer
}

func NewEngine(out io.Writer) *Engine {
	return &Engine{out: out}
}

// Start 同步执行作业，并在连接关闭后输出物化结果
func (e *Engine) Start(ctx context.Context, allConf *config.Configuration) error {
	j, err := job.NewJob(allConf)
	if err != nil {
		return err
	}
	result, err := j.Run(ctx)
	if err != nil {
		return err
	}
	return Render(e.out, result)
}

// 列分隔符，避免与数据中的 "|" 冲突
const columnDelim = "\x1f"

// Render 将结果按列对齐输出
func Render(w io.Writer, result *job.Result) error {
	if result == nil || result.Cursor == nil {
		return errors.New("no result to render")
	}
	cur := result.Cursor

	lines := []string{strings.Join(cur.Metadata().Labels(), columnDelim)}
	for _, record := range cur.Records() {
		cells := make([]string, record.GetColumnNumber())
		for i := range cells {
			cells[i] = cell(record, i)
		}
		lines = append(lines, strings.Join(cells, columnDelim))
	}

	table := columnize.Format(lines, &columnize.Config{Delim: columnDelim, Glue: "  ", Empty: ""})
	if _, err := fmt.Fprintln(w, table); err != nil {
		return errors.Wrap(err, "write result")
	}

	footer := fmt.Sprintf("(%d of %d rows)", cur.BatchRowCount(), cur.TotalRowCount())
	if result.Page != nil {
		footer = fmt.Sprintf("(page %d of %d, %d rows total)", result.Page.Page, result.Page.PageCount(), result.Page.Total)
	}
	_, err := fmt.Fprintln(w, footer)
	return errors.Wrap(err, "write result")
}

func cell(record *element.Record, i int) string {
	v, ok := record.GetColumn(i)
	if !ok || v.IsNull() {
		return "NULL"
	}
	return strings.ReplaceAll(v.String(), columnDelim, " ")
}

func Main(ver string) {
	var (
		jobPath  string
		logLevel string
	)
	flag.StringVar(&jobPath, "job", "", "Job configuration file path")
	flag.StringVar(&logLevel, "loglevel", string(logger.LevelInfo), "Log level: debug, info, warn, error")
	flag.Parse()

	// Setup structured logging with zap
	logConfig := &logger.LoggerConfig{
		Level:       logger.LogLevel(logLevel),
		Development: true,
		Console:     true,
	}
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.App()
	appLogger.Info("rowset starting", zap.String("version", ver))

	if jobPath == "" {
		fmt.Println("Usage: rowset -job <config-file> [-loglevel info]")
		os.Exit(1)
	}

	configuration, err := config.FromFile(jobPath)
	if err != nil {
		appLogger.Error("Failed to parse configuration file", zap.Error(err))
		os.Exit(1)
	}

	if err := NewEngine(os.Stdout).Start(context.Background(), configuration); err != nil {
		appLogger.Error("Job failed", zap.String("jobPath", jobPath), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	appLogger.Info("Job completed successfully", zap.String("jobPath", jobPath))
}
