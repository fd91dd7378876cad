package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// LogLevel 日志级别
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level      LogLevel `json:"level" mapstructure:"level"`
	OutputPath string   `json:"output_path" mapstructure:"output_path"`
	// 开发模式：更易读的格式，生产模式：JSON格式
	Development bool `json:"development" mapstructure:"development"`
	// 是否输出到控制台
	Console bool `json:"console" mapstructure:"console"`
}

// DefaultConfig 默认配置
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       LevelInfo,
		Development: true,
		Console:     true,
	}
}

// Logger 全局日志管理器
type Logger struct {
	appLogger       *zap.Logger // 应用级别日志
	componentLogger *zap.Logger // 组件级别日志
	jobLogger       *zap.Logger // 作业级别日志
	level           zap.AtomicLevel
	config          *LoggerConfig
}

// Initialize 初始化全局日志管理器，只有第一次调用生效
func Initialize(config *LoggerConfig) error {
	var err error
	once.Do(func() {
		if config == nil {
			config = DefaultConfig()
		}
		globalLogger, err = newLogger(config)
	})
	return err
}

func toZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// newLogger 创建新的日志实例
func newLogger(config *LoggerConfig) (*Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(toZapLevel(config.Level))

	var outputPaths []string
	// 控制台日志写stderr，stdout留给查询结果
	if config.Console {
		outputPaths = append(outputPaths, "stderr")
	}
	if config.OutputPath != "" {
		outputPaths = append(outputPaths, config.OutputPath)
	}
	if len(outputPaths) == 0 {
		outputPaths = []string{"stderr"}
	}
	zapConfig.OutputPaths = outputPaths
	zapConfig.ErrorOutputPaths = outputPaths

	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.MessageKey = "message"
	zapConfig.EncoderConfig.LevelKey = "level"
	zapConfig.EncoderConfig.StacktraceKey = "stacktrace"

	// 调用者总是指向logger包内部，没有用处
	zapConfig.DisableCaller = true

	baseLogger, err := zapConfig.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %v", err)
	}
	return fromBase(baseLogger, zapConfig.Level, config), nil
}

func fromBase(base *zap.Logger, level zap.AtomicLevel, config *LoggerConfig) *Logger {
	return &Logger{
		appLogger:       base.Named("APP"),
		componentLogger: base.Named("COMPONENT"),
		jobLogger:       base.Named("JOB"),
		level:           level,
		config:          config,
	}
}

// GetLogger 获取全局日志器，未初始化时使用默认配置
func GetLogger() *Logger {
	if globalLogger == nil {
		if err := Initialize(DefaultConfig()); err != nil || globalLogger == nil {
			globalLogger = fromBase(zap.NewNop(), zap.NewAtomicLevel(), DefaultConfig())
		}
	}
	return globalLogger
}

// ApplicationLogger 应用级日志接口
type ApplicationLogger interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
}

// ComponentLogger 组件级日志接口
type ComponentLogger interface {
	ApplicationLogger
	WithComponent(component string) ComponentLogger
}

// JobLogger 作业级日志接口
type JobLogger interface {
	ApplicationLogger
	WithJob(jobID string) JobLogger
	WithContext(ctx context.Context) JobLogger
}

func (l *Logger) App() ApplicationLogger {
	return &zapLogger{logger: l.appLogger}
}

func (l *Logger) Component() ComponentLogger {
	return &componentLogger{zapLogger{logger: l.componentLogger}}
}

func (l *Logger) Job() JobLogger {
	return &jobLogger{zapLogger{logger: l.jobLogger}}
}

type zapLogger struct {
	logger *zap.Logger
}

func (z *zapLogger) Info(msg string, fields ...zap.Field) {
	z.logger.Info(msg, fields...)
}

func (z *zapLogger) Warn(msg string, fields ...zap.Field) {
	z.logger.Warn(msg, fields...)
}

func (z *zapLogger) Error(msg string, fields ...zap.Field) {
	z.logger.Error(msg, fields...)
}

func (z *zapLogger) Debug(msg string, fields ...zap.Field) {
	z.logger.Debug(msg, fields...)
}

type componentLogger struct {
	zapLogger
}

func (c *componentLogger) WithComponent(component string) ComponentLogger {
	return &componentLogger{zapLogger{logger: c.logger.Named(component)}}
}

type jobLogger struct {
	zapLogger
}

func (j *jobLogger) WithJob(jobID string) JobLogger {
	return &jobLogger{zapLogger{logger: j.logger.With(zap.String("jobId", jobID))}}
}

// WithContext 从context中提取作业信息
func (j *jobLogger) WithContext(ctx context.Context) JobLogger {
	if jobID, ok := GetJobID(ctx); ok {
		return j.WithJob(jobID)
	}
	return j
}

// Sync 同步所有缓冲的日志
func (l *Logger) Sync() error {
	if err := l.appLogger.Sync(); err != nil {
		return err
	}
	if err := l.componentLogger.Sync(); err != nil {
		return err
	}
	return l.jobLogger.Sync()
}

// 全局便捷方法

func App() ApplicationLogger {
	return GetLogger().App()
}

func Component() ComponentLogger {
	return GetLogger().Component()
}

func Job() JobLogger {
	return GetLogger().Job()
}

func Sync() error {
	return GetLogger().Sync()
}

// SetLevel 动态设置日志级别
func SetLevel(level LogLevel) {
	GetLogger().level.SetLevel(toZapLevel(level))
}
