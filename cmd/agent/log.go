package agent

import (
	"github.com/spf13/cobra"
)

func initLogFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	logPrefix := "log."

	f.Int(
		logPrefix+"level",
		defaultCfg.Log.Level,
		"-> Log verbosity [0=error,1=info,2=debug] | 日志级别")
	f.Int(
		logPrefix+"days",
		defaultCfg.Log.Days,
		"-> Days of log files to keep | 日志保留天数")
	f.String(
		logPrefix+"dir",
		defaultCfg.Log.Dir,
		"-> Log file directory | 日志目录")
	f.String(
		logPrefix+"format",
		defaultCfg.Log.Format,
		"-> Log file format [console,json] | 日志格式 [console,json]")

	bindKey(logPrefix+"level", "loglevel")
	bindKey(logPrefix+"days", "log_days")
	bindKey(logPrefix+"dir", "log_dir")
	bindKey(logPrefix+"format", "log_format")
}
