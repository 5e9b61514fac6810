package agent

import (
	"github.com/spf13/cobra"
)

func initServiceFlags(root *cobra.Command) {
	f := root.PersistentFlags()

	f.String("service.url", "", "-> Inventory API base URL (服务地址)")
	f.String("service.client-code", "", "-> Client code sent with every request (客户编码)")
	f.Duration("service.http-timeout", defaultCfg.HTTPTimeout, "-> Timeout per HTTP request (HTTP 请求超时)")
	f.String("metrics.file", "", "-> Write run metrics to this textfile (指标文件)")
	f.String("metrics.pushgateway", "", "-> Push run metrics to this Pushgateway (Pushgateway 地址)")

	bindKey("service.url", "service_url")
	bindKey("service.client-code", "client_code")
	bindKey("service.http-timeout", "http_timeout")
	bindKey("metrics.file", "metrics_file")
	bindKey("metrics.pushgateway", "pushgateway_url")
}
