package pipeline

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/snmp-reporter/internal/collector"
	"github.com/snmp-reporter/internal/inventory"
	"github.com/snmp-reporter/internal/model"
	"github.com/snmp-reporter/internal/report"
	"github.com/snmp-reporter/internal/retention"
	"github.com/snmp-reporter/internal/snmp"
	"github.com/snmp-reporter/pkg/config"
	"github.com/snmp-reporter/pkg/metrics"
)

type Sweeper interface {
	Sweep(dir string, days int) retention.Result
}

type Inventory interface {
	Fetch(ctx context.Context, clientCode string) ([]model.Device, error)
}

type Collector interface {
	Collect(ctx context.Context, devices []model.Device, m *metrics.RunMetrics) model.Batch
}

type Submitter interface {
	Submit(ctx context.Context, clientCode string, batch model.Batch) report.Result
}

// Outcome 一次运行的结果
// 无论成功与否 Reached 最终都是 StageFinished，致命错误会直接跳到结束
// Err 非空表示致命错误（清单或意外 panic），此时没有上报，FailedAt 为出错的阶段
type Outcome struct {
	Reached   Stage
	FailedAt  Stage
	Batch     model.Batch
	Report    report.Result
	Submitted bool
	Metrics   *metrics.RunMetrics
	Err       error
}

// Deps 运行依赖，便于测试替换
type Deps struct {
	Sweeper   Sweeper
	Inventory Inventory
	Collector Collector
	Submitter Submitter
	Clock     clockwork.Clock
}

// Runner 按顺序执行：清理日志 → 拉取清单 → 采集 → 上报
// 不保存跨运行的状态，可以重复调用 Run
type Runner struct {
	cfg  *config.Config
	deps Deps
	log  *zap.Logger
}

// New 使用给定依赖创建 Runner
func New(cfg *config.Config, deps Deps, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	return &Runner{cfg: cfg, deps: deps, log: log.Named("pipeline")}
}

// NewDefault 使用真实的文件系统、HTTP 与 SNMP 实现
func NewDefault(cfg *config.Config, log *zap.Logger) *Runner {
	clock := clockwork.NewRealClock()
	return New(cfg, Deps{
		Sweeper:   retention.New(nil, clock, log),
		Inventory: inventory.New(cfg, log),
		Collector: collector.New(snmp.New(cfg.SNMP, log), log),
		Submitter: report.New(cfg, log),
		Clock:     clock,
	}, log)
}

// Run 执行一次完整的采集上报；任何失败都转换为 Outcome，不会 panic
func (r *Runner) Run(ctx context.Context) (out Outcome) {
	m := metrics.NewRunMetrics()
	out.Metrics = m
	out.Reached = StageStart
	start := r.deps.Clock.Now()

	defer func() {
		if p := recover(); p != nil {
			out.FailedAt = out.Reached + 1
			out.Err = fmt.Errorf("unexpected panic at stage %s: %v", out.FailedAt, p)
			r.log.Error("run aborted", zap.Stringer("stage", out.FailedAt), zap.Error(out.Err))
		}
		r.advance(&out, StageFinished)
		m.Finish(r.deps.Clock.Now(), out.Err == nil && out.Submitted)
		r.log.Debug("run finished",
			zap.Bool("fatal", out.Err != nil),
			zap.Duration("duration", r.deps.Clock.Since(start)))
	}()

	r.advance(&out, StageConfigLoaded)

	sweep := r.deps.Sweeper.Sweep(r.cfg.Log.Dir, r.cfg.Log.Days)
	if sweep.Err != nil {
		r.log.Warn("log retention sweep incomplete", zap.Error(sweep.Err))
	}
	if len(sweep.Deleted) > 0 {
		r.log.Info("removed old log files", zap.Strings("files", sweep.Deleted), zap.Int("log_days", r.cfg.Log.Days))
	}
	r.advance(&out, StageLogsRotated)

	r.log.Info("reading devices from inventory API")
	devices, err := r.deps.Inventory.Fetch(ctx, r.cfg.ClientCode)
	if err != nil {
		out.FailedAt = StageInventoryFetched
		out.Err = fmt.Errorf("fetch inventory: %w", err)
		r.log.Error("failed to fetch device inventory, no report will be sent", zap.Error(err))
		return out
	}
	r.advance(&out, StageInventoryFetched)

	out.Batch = r.deps.Collector.Collect(ctx, devices, m)
	r.advance(&out, StageBatchCollected)

	out.Report = r.deps.Submitter.Submit(ctx, r.cfg.ClientCode, out.Batch)
	out.Submitted = out.Report.OK()
	m.ObserveSubmission(out.Submitted)
	r.advance(&out, StageReportAttempted)

	if out.Submitted {
		r.log.Info("run completed successfully", zap.Int("devices", len(out.Batch)))
	} else {
		r.log.Warn("run completed but report submission failed", zap.Int("devices", len(out.Batch)), zap.Error(out.Report.Err))
	}
	return out
}

func (r *Runner) advance(out *Outcome, s Stage) {
	out.Reached = s
	r.log.Debug("stage reached", zap.Stringer("stage", s))
}
