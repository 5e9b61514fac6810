package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/snmp-reporter/internal/model"
	"github.com/snmp-reporter/pkg/config"
	"github.com/snmp-reporter/pkg/httpclient"
)

// Path 上报接口相对 service_url 的路径
const Path = "/report"

// Result 上报结果，失败原因在 Err 中，不会以 error 返回给调用方
type Result struct {
	StatusCode int
	Body       string
	Err        error
}

// OK 是否上报成功
func (r Result) OK() bool { return r.Err == nil }

// Submitter 上报客户端，每次上报只尝试一次
type Submitter struct {
	url       string
	apiKey    string
	apiSecret string
	timeout   time.Duration
	log       *zap.Logger
}

// New 创建上报客户端
func New(cfg *config.Config, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Submitter{
		url:       cfg.ServiceURL + Path,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		timeout:   cfg.HTTPTimeout,
		log:       log.Named("report"),
	}
}

// Submit 序列化 {client_code, data} 并 POST 到 <service_url>/report
func (s *Submitter) Submit(ctx context.Context, clientCode string, batch model.Batch) Result {
	res := s.submit(ctx, clientCode, batch)
	if res.Err != nil {
		s.log.Error("failed to send report", zap.String("url", s.url), zap.Error(res.Err))
		return res
	}
	s.log.Info("report sent", zap.String("url", s.url), zap.Int("status", res.StatusCode), zap.Int("devices", len(batch)))
	return res
}

func (s *Submitter) submit(ctx context.Context, clientCode string, batch model.Batch) Result {
	payload, err := json.Marshal(model.NewReport(clientCode, batch))
	if err != nil {
		return Result{Err: fmt.Errorf("marshal report: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return Result{Err: fmt.Errorf("new request: %w", err)}
	}
	httpclient.SetAuth(req, s.apiKey, s.apiSecret)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	client := httpclient.New(s.timeout)
	defer httpclient.Release(client)

	s.log.Debug("sending report", zap.String("url", s.url), zap.Int("bytes", len(payload)))
	resp, err := client.Do(req)
	if err != nil {
		return Result{Err: fmt.Errorf("post %s: %w", s.url, err)}
	}
	defer resp.Body.Close()

	body, err := httpclient.ReadBody(resp)
	if err != nil {
		return Result{StatusCode: resp.StatusCode, Err: err}
	}
	if !httpclient.IsSuccess(resp.StatusCode) {
		return Result{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("report rejected with status %d", resp.StatusCode),
		}
	}
	return Result{StatusCode: resp.StatusCode, Body: string(body)}
}
