package logger

import (
	"time"

	"go.uber.org/zap"
)

// MetricsLogger 性能和指标日志器
type MetricsLogger struct {
	logger ComponentLogger
}

// NewMetricsLogger 创建性能指标日志器
func NewMetricsLogger(component string) *MetricsLogger {
	return &MetricsLogger{
		logger: Component().WithComponent(component),
	}
}

// Metrics 获取指定组件的指标日志器
func Metrics(component string) *MetricsLogger {
	return NewMetricsLogger(component)
}

// LogMaterialization 记录一次游标物化的行数和耗时
func (ml *MetricsLogger) LogMaterialization(cursorID string, rowsSeen, rowsKept int, duration time.Duration) {
	ml.logger.Info("Cursor materialized",
		zap.String("cursorId", cursorID),
		zap.Int("rowsSeen", rowsSeen),
		zap.Int("rowsKept", rowsKept),
		zap.Duration("duration", duration),
		zap.Float64("rowsPerSecond", perSecond(int64(rowsSeen), duration)))
}

// LogDatabaseMetrics 记录数据库操作指标
func (ml *MetricsLogger) LogDatabaseMetrics(operation string, affectedRows int64, duration time.Duration) {
	ml.logger.Info("Database operation",
		zap.String("operation", operation),
		zap.Int64("affectedRows", affectedRows),
		zap.Duration("duration", duration),
		zap.Float64("rowsPerSecond", perSecond(affectedRows, duration)))
}

func perSecond(n int64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}

// PerformanceTimer 性能计时器
type PerformanceTimer struct {
	startTime time.Time
	logger    *MetricsLogger
	operation string
}

// StartTimer 开始计时
func (ml *MetricsLogger) StartTimer(operation string) *PerformanceTimer {
	return &PerformanceTimer{
		startTime: time.Now(),
		logger:    ml,
		operation: operation,
	}
}

// Stop 停止计时并记录
func (pt *PerformanceTimer) Stop() time.Duration {
	duration := time.Since(pt.startTime)
	pt.logger.logger.Debug("Operation completed",
		zap.String("operation", pt.operation),
		zap.Duration("duration", duration))
	return duration
}

// StopWithCount 停止计时并记录处理数量
func (pt *PerformanceTimer) StopWithCount(count int64) time.Duration {
	duration := time.Since(pt.startTime)
	pt.logger.logger.Info("Operation completed with metrics",
		zap.String("operation", pt.operation),
		zap.Duration("duration", duration),
		zap.Int64("count", count),
		zap.Float64("throughput", perSecond(count, duration)))
	return duration
}
