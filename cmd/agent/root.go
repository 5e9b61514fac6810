package agent

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snmp-reporter/pkg/config"
)

var opts Options

var rootCmd = &cobra.Command{
	Use:           "snmp-reporter",
	Short:         "One-shot SNMP v2c collector that reports device readings to the inventory API",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts.Overrides = changedSettings(cmd.Flags())
		if code := Run(cmd.Context(), opts); code != 0 {
			return &exitError{code: code}
		}
		return nil
	},
}

// exitError 携带退出码，Run 已经输出过错误信息
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute 执行根命令并返回进程退出码
func Execute() int {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&opts.ConfigPath, "config", "c", config.DefaultPath, "-> Settings file path | 配置文件路径")
	f.BoolVar(&opts.NoPause, "no-pause", false, "-> Exit without waiting for Enter | 结束后不等待回车")

	// 分组 flag，只有显式传入的才会覆盖配置文件
	initServiceFlags(rootCmd)
	initSNMPFlags(rootCmd)
	initLogFlags(rootCmd)
}
