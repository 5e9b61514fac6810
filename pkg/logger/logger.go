package logger

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/snmp-reporter/pkg/config"
)

type Logger = zap.Logger

// FilePrefix 日志文件名前缀，文件名形如 snmp_log_2006-01-02.txt
const (
	FilePrefix     = "snmp_log_"
	FileSuffix     = ".txt"
	FileDateLayout = "2006-01-02"
)

var (
	baseLogger = zap.NewNop()
	fileWriter io.Closer
	active     bool
	mu         sync.RWMutex
)

// LevelFromVerbosity loglevel 配置值转 zap 级别：2=debug 1=info 其余=error
func LevelFromVerbosity(v int) zapcore.Level {
	switch v {
	case 2:
		return zapcore.DebugLevel
	case 1:
		return zapcore.InfoLevel
	default:
		return zapcore.ErrorLevel
	}
}

// FilePattern 按天切分的日志文件 strftime 模式
func FilePattern(dir string) string {
	return filepath.Join(dir, FilePrefix+"%Y-%m-%d"+FileSuffix)
}

// FileName 指定日期对应的日志文件路径
func FileName(dir string, t time.Time) string {
	return filepath.Join(dir, FilePrefix+t.Format(FileDateLayout)+FileSuffix)
}

// Init 初始化进程级日志：控制台 + 按天切分的文件
// 已初始化时直接返回当前 logger；Close 之后可以再次 Init
func Init(cfg config.LogConfig, fields ...zap.Field) (*Logger, error) {
	mu.Lock()
	defer mu.Unlock()
	if active {
		return baseLogger, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	// 保留天数由 retention 包负责，RotationCount 给足够大的值让 rotatelogs 不做清理
	// rotatelogs 按 UTC 对齐切分时间，按分钟计算文件名才能保证本地日期正确
	writer, err := rotatelogs.New(
		FilePattern(cfg.Dir),
		rotatelogs.WithClock(rotatelogs.Local),
		rotatelogs.WithRotationTime(time.Minute),
		rotatelogs.WithRotationCount(math.MaxUint16),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	baseLogger = New(cfg, zapcore.AddSync(os.Stdout), zapcore.AddSync(writer)).With(fields...)
	fileWriter = writer
	active = true
	return baseLogger, nil
}

// New 组装 tee core，console 与 file 两路输出，便于测试注入任意 WriteSyncer
func New(cfg config.LogConfig, console, file zapcore.WriteSyncer) *Logger {
	level := LevelFromVerbosity(cfg.Level)

	consoleEncoderCfg := zap.NewDevelopmentEncoderConfig()
	consoleEncoderCfg.ConsoleSeparator = " "
	consoleEncoderCfg.EncodeLevel = coloredLevelEncoder
	consoleEncoderCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(fmt.Sprintf("\033[34m%s\033[0m", t.Format("2006-01-02 15:04:05.000 -07:00")))
	}
	consoleEncoderCfg.EncodeCaller = func(c zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		rel := filepath.Join(filepath.Base(filepath.Dir(c.File)), filepath.Base(c.File))
		enc.AppendString(fmt.Sprintf("%s:%d", rel, c.Line))
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderCfg), console, level),
	}
	if file != nil {
		cores = append(cores, zapcore.NewCore(fileEncoder(cfg.Format), file, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// fileEncoder 文件里不带颜色，json 或纯文本
func fileEncoder(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000 -07:00")
	if format == "json" {
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(encCfg)
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.ConsoleSeparator = " "
	return zapcore.NewConsoleEncoder(encCfg)
}

func coloredLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var levelStr string
	switch level {
	case zapcore.DebugLevel:
		levelStr = "\033[36mDEBUG\033[0m"
	case zapcore.InfoLevel:
		levelStr = "\033[32mINFO \033[0m"
	case zapcore.WarnLevel:
		levelStr = "\033[33mWARN \033[0m"
	case zapcore.ErrorLevel:
		levelStr = "\033[31mERROR\033[0m"
	default:
		levelStr = "\033[35m" + level.CapitalString() + "\033[0m"
	}
	enc.AppendString(levelStr)
}

// GetLogger 未初始化时返回 Nop，不会 panic
func GetLogger() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return baseLogger
}

func Debug(msg string, fields ...zap.Field) { GetLogger().WithOptions(zap.AddCallerSkip(1)).Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { GetLogger().WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { GetLogger().WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { GetLogger().WithOptions(zap.AddCallerSkip(1)).Error(msg, fields...) }

// Replace 文件日志不可用时安装一个替代 logger，由 Close 统一收尾
func Replace(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	baseLogger = l
	fileWriter = nil
	active = true
}

// Close 刷盘并关闭日志文件，重复调用无副作用
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if !active {
		return nil
	}
	// stdout 在部分平台上 Sync 会返回 EINVAL，这里忽略
	_ = baseLogger.Sync()
	var err error
	if fileWriter != nil {
		err = fileWriter.Close()
		fileWriter = nil
	}
	baseLogger = zap.NewNop()
	active = false
	return err
}
