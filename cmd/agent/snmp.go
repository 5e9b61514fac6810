package agent

import (
	"github.com/spf13/cobra"
)

func initSNMPFlags(root *cobra.Command) {
	f := root.PersistentFlags()

	f.String("snmp.community", defaultCfg.SNMP.Community, "-> SNMP v2c community | 团体名")
	f.Uint16("snmp.port", defaultCfg.SNMP.Port, "-> SNMP agent port | SNMP 端口")
	f.Duration("snmp.timeout", defaultCfg.SNMP.Timeout, "-> Timeout per SNMP request | 单次请求超时")
	f.Int("snmp.retries", defaultCfg.SNMP.Retries, "-> Retries per SNMP request | 重试次数")

	bindKey("snmp.community", "snmp_community")
	bindKey("snmp.port", "snmp_port")
	bindKey("snmp.timeout", "snmp_timeout")
	bindKey("snmp.retries", "snmp_retries")
}
