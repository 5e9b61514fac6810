package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/snmp-reporter/pkg/config"
)

const pushJob = "snmp_reporter"

// RunMetrics 一次运行的指标，nil 接收者上的方法都是空操作
type RunMetrics struct {
	reg Registers

	polls        *prometheus.CounterVec
	pollDuration prometheus.Histogram
	devices      prometheus.Gauge
	submissions  *prometheus.CounterVec
	lastRun      prometheus.Gauge
	success      prometheus.Gauge
}

// NewRunMetrics 每次运行使用独立的 registry，运行之间不累积
func NewRunMetrics() *RunMetrics {
	reg := NewPromRegistry(prometheus.NewRegistry())
	f := NewMetricFactory(reg)
	return &RunMetrics{
		reg:          reg,
		polls:        f.NewPollsTotal(),
		pollDuration: f.NewPollDurationSeconds(),
		devices:      f.NewDevicesTotal(),
		submissions:  f.NewReportSubmissionsTotal(),
		lastRun:      f.NewLastRunTimestamp(),
		success:      f.NewRunSuccess(),
	}
}

func (m *RunMetrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.Gatherers{}
	}
	return m.reg
}

func (m *RunMetrics) ObservePoll(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(status).Inc()
	m.pollDuration.Observe(d.Seconds())
}

func (m *RunMetrics) SetDevices(n int) {
	if m == nil {
		return
	}
	m.devices.Set(float64(n))
}

func (m *RunMetrics) ObserveSubmission(ok bool) {
	if m == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	m.submissions.WithLabelValues(result).Inc()
}

// Finish 记录运行结束时间与结果
func (m *RunMetrics) Finish(at time.Time, ok bool) {
	if m == nil {
		return
	}
	m.lastRun.Set(float64(at.Unix()))
	if ok {
		m.success.Set(1)
	} else {
		m.success.Set(0)
	}
}

// Export 一次性导出：写 node_exporter textfile 和/或推送到 Pushgateway
// 未配置时什么也不做；两者都会尝试，错误合并返回
func (m *RunMetrics) Export(ctx context.Context, cfg config.MetricsConfig, clientCode string) error {
	if m == nil {
		return nil
	}
	var errs []error
	if cfg.File != "" {
		if err := prometheus.WriteToTextfile(cfg.File, m.reg); err != nil {
			errs = append(errs, fmt.Errorf("write metrics file %s: %w", cfg.File, err))
		}
	}
	if cfg.Pushgateway != "" {
		err := push.New(cfg.Pushgateway, pushJob).
			Gatherer(m.reg).
			Grouping("client_code", clientCode).
			PushContext(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("push metrics to %s: %w", cfg.Pushgateway, err))
		}
	}
	return errors.Join(errs...)
}
