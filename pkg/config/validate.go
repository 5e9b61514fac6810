package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requiredFields 只有服务地址与凭据缺失或非法才是致命错误
var requiredFields = []string{"ServiceURL", "APIKey", "APISecret", "ClientCode"}

// Validate 配置校验，缺少服务地址或凭据视为致命错误
func (c *Config) Validate() error {
	if err := valid.StructPartial(c, requiredFields...); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return describe(fieldErrs)
		}
		return err
	}
	return nil
}

// repair 其余字段校验失败时恢复默认值，返回对应的提示
func (c *Config) repair() []string {
	err := valid.StructExcept(c, requiredFields...)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	def := NewDefaultConfig()
	warnings := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := keyFor(fe.StructField())
		switch fe.StructField() {
		case "HTTPTimeout":
			c.HTTPTimeout = def.HTTPTimeout
		case "Dir":
			c.Log.Dir = def.Log.Dir
		case "Format":
			c.Log.Format = def.Log.Format
		case "Community":
			c.SNMP.Community = def.SNMP.Community
		case "Port":
			c.SNMP.Port = def.SNMP.Port
		case "Timeout":
			c.SNMP.Timeout = def.SNMP.Timeout
		case "Retries":
			c.SNMP.Retries = def.SNMP.Retries
		case "Pushgateway":
			c.Metrics.Pushgateway = ""
		}
		warnings = append(warnings, fmt.Sprintf("%s=%q is invalid (%s), using default", key, fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return warnings
}

// describe 把校验错误转换成配置文件里的键名，便于运维定位
func describe(errs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		key := keyFor(fe.StructField())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", key))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s), got %v", key, fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

var fieldKeys = map[string]string{
	"ServiceURL":  "service_url",
	"APIKey":      "api_key",
	"APISecret":   "api_secret",
	"ClientCode":  "client_code",
	"HTTPTimeout": "http_timeout",
	"Days":        "log_days",
	"Dir":         "log_dir",
	"Format":      "log_format",
	"Community":   "snmp_community",
	"Port":        "snmp_port",
	"Timeout":     "snmp_timeout",
	"Retries":     "snmp_retries",
	"Pushgateway": "pushgateway_url",
}

func keyFor(field string) string {
	if k, ok := fieldKeys[field]; ok {
		return k
	}
	return strings.ToLower(field)
}
