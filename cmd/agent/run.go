package agent

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/snmp-reporter/internal/pipeline"
	"github.com/snmp-reporter/pkg/config"
	"github.com/snmp-reporter/pkg/logger"
	"github.com/snmp-reporter/pkg/signal"
	"github.com/snmp-reporter/pkg/util"
)

const projectName = "snmp-reporter"

// Options 一次执行的参数
type Options struct {
	ConfigPath string
	NoPause    bool
	// Overrides 命令行覆盖项，叠加在配置文件之上
	Overrides config.Settings

	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) defaults() {
	if o.ConfigPath == "" {
		o.ConfigPath = config.DefaultPath
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Run 执行一次完整流程并返回退出码：0 正常结束（包括上报失败），1 配置或清单错误
// 日志在返回前已经刷盘关闭
func Run(ctx context.Context, opts Options) int {
	opts.defaults()

	ctx, stop := signal.NotifyContext(ctx, func(s os.Signal) {
		logger.Warn("interrupted, aborting current run", zap.String("signal", s.String()))
	})
	code := run(ctx, opts)
	stop()

	if !opts.NoPause {
		pause(opts.Stdin, opts.Stdout)
	}
	return code
}

func run(ctx context.Context, opts Options) int {
	runID := uuid.NewString()

	cfg, cfgErr := loadConfig(opts)
	logCfg := defaultCfg.Log
	if cfgErr == nil {
		logCfg = cfg.Log
	}

	log, err := logger.Init(logCfg, zap.String("run_id", runID))
	if err != nil {
		// 文件日志不可用时只写控制台
		fmt.Fprintf(opts.Stderr, "log file unavailable: %v\n", err)
		log = logger.New(logCfg, zapcore.AddSync(opts.Stdout), zapcore.AddSync(io.Discard)).With(zap.String("run_id", runID))
		logger.Replace(log)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(opts.Stderr, "close log file: %v\n", err)
		}
	}()

	if cfgErr != nil {
		logger.Error("failed to load configuration", zap.String("path", opts.ConfigPath), zap.Error(cfgErr))
		printSummary(opts.Stdout, pipeline.Outcome{Err: cfgErr})
		return 1
	}

	util.PrintBanner(opts.Stdout, projectName, "ColorBlue")
	logger.Info("configuration loaded",
		zap.String("path", opts.ConfigPath),
		zap.String("client_code", cfg.ClientCode),
		zap.Int("loglevel", cfg.Log.Level),
		zap.Int("log_days", cfg.Log.Days))
	for _, w := range cfg.Warnings {
		logger.Warn("ignored configuration value", zap.String("detail", w))
	}
	logHost(ctx)

	out := pipeline.NewDefault(cfg, log).Run(ctx)

	if err := out.Metrics.Export(ctx, cfg.Metrics, cfg.ClientCode); err != nil {
		logger.Warn("failed to export run metrics", zap.Error(err))
	}
	printSummary(opts.Stdout, out)

	if out.Err != nil {
		return 1
	}
	return 0
}

// loadConfig 读取配置文件并叠加命令行覆盖项
func loadConfig(opts Options) (*config.Config, error) {
	settings, err := config.ReadSettings(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	for k, v := range opts.Overrides {
		settings[k] = v
	}
	return config.FromSettings(settings)
}

func logHost(ctx context.Context) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		logger.Debug("host info unavailable", zap.Error(err))
		return
	}
	logger.Info("running on host",
		zap.String("hostname", info.Hostname),
		zap.String("os", info.OS),
		zap.String("platform", info.Platform),
		zap.String("platform_version", info.PlatformVersion))
}
