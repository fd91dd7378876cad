package logger

import (
	"context"
)

type contextKey string

const (
	JobIDKey contextKey = "jobId"
)

// WithJobID 在context中添加jobId
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, JobIDKey, jobID)
}

// GetJobID 从context中获取jobId
func GetJobID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	jobID, ok := ctx.Value(JobIDKey).(string)
	return jobID, ok
}

// JobLoggerFromContext 从context创建带作业信息的日志器
func JobLoggerFromContext(ctx context.Context) JobLogger {
	return Job().WithContext(ctx)
}
