package agent

import (
	"github.com/spf13/pflag"

	"github.com/snmp-reporter/pkg/config"
)

var defaultCfg = config.NewDefaultConfig()

// flagKeys flag 名到配置键的映射
var flagKeys = map[string]string{}

func bindKey(flag, key string) {
	flagKeys[flag] = key
}

// changedSettings 收集命令行显式设置过的 flag，作为配置文件之上的覆盖项
func changedSettings(fs *pflag.FlagSet) config.Settings {
	out := config.Settings{}
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})
	return out
}
