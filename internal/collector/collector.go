package collector

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/snmp-reporter/internal/model"
	"github.com/snmp-reporter/internal/snmp"
	"github.com/snmp-reporter/pkg/metrics"
)

// Collector 顺序遍历设备与参数，每个参数调用一次 Poller
type Collector struct {
	poller snmp.Poller
	log    *zap.Logger
}

// New 创建采集器
func New(poller snmp.Poller, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{poller: poller, log: log.Named("collector")}
}

// Collect 生成本次运行的批次，输出顺序与输入一致；不会失败，读取失败已体现在 Reading.Value 中
// m 为本次运行的指标，可以为 nil
func (c *Collector) Collect(ctx context.Context, devices []model.Device, m *metrics.RunMetrics) model.Batch {
	batch := make(model.Batch, 0, len(devices))
	for _, device := range devices {
		batch = append(batch, c.collectDevice(ctx, device, m))
	}
	m.SetDevices(len(batch))
	return batch
}

func (c *Collector) collectDevice(ctx context.Context, device model.Device, m *metrics.RunMetrics) model.DeviceReport {
	c.log.Info("collecting snmp values",
		zap.String("device", device.Name),
		zap.String("address", device.Address),
		zap.Int("parameters", len(device.Parameters)))

	report := model.NewDeviceReport(device)
	for _, p := range device.Parameters {
		start := time.Now()
		res := c.poller.Poll(ctx, device.Address, p.OID)
		m.ObservePoll(res.Status.String(), time.Since(start))

		value := res.Text()
		c.log.Info("polled parameter",
			zap.String("device", device.Name),
			zap.String("oid", p.OID),
			zap.String("parameter", p.Label),
			zap.String("value", value))

		report.Parameters = append(report.Parameters, model.Reading{Parameter: p.Label, Value: value})
	}
	return report
}
