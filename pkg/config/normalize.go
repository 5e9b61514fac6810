package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 非必填项取值非法时不中断运行，丢弃该值并回退到默认值
var (
	intKeys      = []string{"loglevel", "log_days"}
	countKeys    = []string{"snmp_retries"}
	portKeys     = []string{"snmp_port"}
	durationKeys = []string{"http_timeout", "snmp_timeout"}
)

// normalize 检查配置文件与环境变量合并后的原始值
// 无法解析的数值项被移除，返回的提示说明了哪些键使用了默认值
func normalize(raw map[string]any) (map[string]any, []string) {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	var warnings []string
	drop := func(key, value, reason string) {
		delete(out, key)
		warnings = append(warnings, fmt.Sprintf("%s=%q %s, using default", key, value, reason))
	}

	for _, k := range intKeys {
		if v, ok := stringValue(out, k); ok {
			if _, err := strconv.Atoi(v); err != nil {
				drop(k, v, "is not an integer")
			}
		}
	}
	for _, k := range countKeys {
		if v, ok := stringValue(out, k); ok {
			if n, err := strconv.Atoi(v); err != nil || n < 0 {
				drop(k, v, "is not a non-negative integer")
			}
		}
	}
	for _, k := range portKeys {
		if v, ok := stringValue(out, k); ok {
			if n, err := strconv.ParseUint(v, 10, 16); err != nil || n == 0 {
				drop(k, v, "is not a port in 1-65535")
			}
		}
	}
	for _, k := range durationKeys {
		if v, ok := stringValue(out, k); ok {
			d, err := parseDuration(v)
			if err != nil || d <= 0 {
				drop(k, v, "is not a positive duration")
				continue
			}
			out[k] = d.String()
		}
	}
	return out, warnings
}

// parseDuration 接受 Go 的 duration 写法，纯数字按秒处理
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func stringValue(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	return strings.TrimSpace(fmt.Sprint(v)), true
}
