package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "snmp_reporter"

// MetricFactory 指标工厂，用于统一创建指标（counter/gauge/histogram）
type MetricFactory struct {
	reg Registers
}

// NewMetricFactory 创建指标工厂
func NewMetricFactory(reg Registers) *MetricFactory {
	return &MetricFactory{reg: reg}
}

// NewPollsTotal SNMP 读取次数，按结果状态区分
func (f *MetricFactory) NewPollsTotal() *prometheus.CounterVec {
	return promauto.With(f.reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "SNMP reads performed in the run, by outcome",
		},
		[]string{"status"},
	)
}

// NewPollDurationSeconds 单次读取耗时
func (f *MetricFactory) NewPollDurationSeconds() prometheus.Histogram {
	return promauto.With(f.reg).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Duration of a single SNMP read",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 0.01s ~ 5.12s
		},
	)
}

func (f *MetricFactory) NewDevicesTotal() prometheus.Gauge {
	return promauto.With(f.reg).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "devices",
		Help:      "Devices polled in the run",
	})
}

// NewReportSubmissionsTotal 上报次数，result=success|failure
func (f *MetricFactory) NewReportSubmissionsTotal() *prometheus.CounterVec {
	return promauto.With(f.reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_submissions_total",
			Help:      "Report submission attempts, by result",
		},
		[]string{"result"},
	)
}

func (f *MetricFactory) NewLastRunTimestamp() prometheus.Gauge {
	return promauto.With(f.reg).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the run finished",
	})
}

func (f *MetricFactory) NewRunSuccess() prometheus.Gauge {
	return promauto.With(f.reg).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_success",
		Help:      "1 when the run collected and submitted its report, 0 otherwise",
	})
}
