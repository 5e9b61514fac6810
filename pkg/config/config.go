package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var valid = validator.New()

// EnvPrefix 环境变量覆盖前缀，例如 SNMP_REPORTER_API_KEY
const EnvPrefix = "SNMP_REPORTER"

// DefaultPath 默认配置文件路径
const DefaultPath = "config.ini"

// Config 全局配置结构体
type Config struct {
	ServiceURL  string        `mapstructure:"service_url" validate:"required,url"`
	APIKey      string        `mapstructure:"api_key" validate:"required"`
	APISecret   string        `mapstructure:"api_secret" validate:"required"`
	ClientCode  string        `mapstructure:"client_code" validate:"required"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" validate:"gt=0"`

	Log     LogConfig     `mapstructure:",squash"`
	SNMP    SNMPConfig    `mapstructure:",squash"`
	Metrics MetricsConfig `mapstructure:",squash"`

	// Warnings 被忽略的非法配置项，日志初始化后输出
	Warnings []string `mapstructure:"-"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  int    `mapstructure:"loglevel"` // 0=error 1=info 2=debug
	Days   int    `mapstructure:"log_days"`
	Dir    string `mapstructure:"log_dir" validate:"required"`
	Format string `mapstructure:"log_format" validate:"oneof=console json"`
}

// SNMPConfig SNMP v2c 会话参数
type SNMPConfig struct {
	Community string        `mapstructure:"snmp_community" validate:"required"`
	Port      uint16        `mapstructure:"snmp_port" validate:"gt=0"`
	Timeout   time.Duration `mapstructure:"snmp_timeout" validate:"gt=0"`
	Retries   int           `mapstructure:"snmp_retries" validate:"gte=0"`
}

// MetricsConfig 运行指标导出，留空则不导出
type MetricsConfig struct {
	File        string `mapstructure:"metrics_file"`
	Pushgateway string `mapstructure:"pushgateway_url" validate:"omitempty,url"`
}

var knownKeys = []string{
	"service_url", "api_key", "api_secret", "client_code", "http_timeout",
	"loglevel", "log_days", "log_dir", "log_format",
	"snmp_community", "snmp_port", "snmp_timeout", "snmp_retries",
	"metrics_file", "pushgateway_url",
}

// NewDefaultConfig 创建默认配置（必填的服务地址与凭据没有默认值）
func NewDefaultConfig() *Config {
	return &Config{
		HTTPTimeout: 30 * time.Second,
		Log: LogConfig{
			Level:  0,
			Days:   7,
			Dir:    "logs",
			Format: "console",
		},
		SNMP: SNMPConfig{
			Community: "public",
			Port:      161,
			Timeout:   2 * time.Second,
			Retries:   2,
		},
	}
}

// Load 读取配置文件 → 合并环境变量 → 解码 → 校验
func Load(path string) (*Config, error) {
	settings, err := ReadSettings(path)
	if err != nil {
		return nil, err
	}
	return FromSettings(settings)
}

// FromSettings 在默认配置之上叠加 settings 与环境变量
func FromSettings(settings Settings) (*Config, error) {
	cfg := NewDefaultConfig()
	v := viper.New()

	merged := make(map[string]any, len(settings))
	for k, val := range settings {
		merged[k] = val
	}
	if err := v.MergeConfigMap(merged); err != nil {
		return nil, fmt.Errorf("merge settings: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range knownKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("new decoder: %w", err)
	}
	raw, warnings := normalize(v.AllSettings())
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.ServiceURL = strings.TrimRight(cfg.ServiceURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	cfg.Warnings = append(warnings, cfg.repair()...)
	return cfg, nil
}
