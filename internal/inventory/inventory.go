package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/snmp-reporter/internal/model"
	"github.com/snmp-reporter/pkg/config"
	"github.com/snmp-reporter/pkg/httpclient"
)

var valid = validator.New()

// StatusError 清单接口返回非 2xx，属于致命错误
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inventory request failed with status %d", e.Code)
}

// Client 设备清单客户端
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string
	timeout   time.Duration
	log       *zap.Logger
}

// New 创建清单客户端
func New(cfg *config.Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:   cfg.ServiceURL,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		timeout:   cfg.HTTPTimeout,
		log:       log.Named("inventory"),
	}
}

// Fetch 拉取客户的设备清单，只请求一次不重试
// 非 2xx 返回 *StatusError；响应体为空或 null 时返回空列表
func (c *Client) Fetch(ctx context.Context, clientCode string) ([]model.Device, error) {
	endpoint, err := c.endpoint(clientCode)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("inventory: new request: %w", err)
	}
	httpclient.SetAuth(req, c.apiKey, c.apiSecret)
	req.Header.Set("Accept", "application/json")

	client := httpclient.New(c.timeout)
	defer httpclient.Release(client)

	c.log.Debug("requesting device inventory", zap.String("url", endpoint))
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inventory: get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := httpclient.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	if !httpclient.IsSuccess(resp.StatusCode) {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	devices, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	c.log.Info("device inventory received", zap.String("url", endpoint), zap.Int("devices", len(devices)))
	return c.usable(devices), nil
}

func (c *Client) endpoint(clientCode string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("inventory: parse service url: %w", err)
	}
	q := u.Query()
	q.Set("client_code", clientCode)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decode 字段名大小写不敏感（encoding/json 默认行为）
func decode(body []byte) ([]model.Device, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []model.Device{}, nil
	}
	var devices []model.Device
	if err := json.Unmarshal(body, &devices); err != nil {
		return nil, fmt.Errorf("decode devices: %w", err)
	}
	if devices == nil {
		devices = []model.Device{}
	}
	return devices, nil
}

// usable 丢弃缺少地址的设备；OID 为空的参数保留，由采集层给出失败描述
func (c *Client) usable(devices []model.Device) []model.Device {
	out := make([]model.Device, 0, len(devices))
	for i, d := range devices {
		if err := valid.Struct(d); err != nil {
			c.log.Warn("skipping malformed inventory entry",
				zap.Int("index", i), zap.String("device", d.Name), zap.Error(err))
			continue
		}
		out = append(out, d)
	}
	return out
}
