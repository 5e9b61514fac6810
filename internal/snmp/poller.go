package snmp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	"go.uber.org/zap"

	"github.com/snmp-reporter/pkg/config"
)

// Poller 对一个设备地址读取一个 OID，结果永远不以 error 形式抛出
type Poller interface {
	Poll(ctx context.Context, address, oid string) Result
}

// session 一次 SNMP 会话，抽出来方便测试替换
type session interface {
	Connect() error
	Get(oids []string) (*gosnmp.SnmpPacket, error)
	Close() error
}

type gosnmpSession struct {
	*gosnmp.GoSNMP
}

func (s gosnmpSession) Close() error {
	if s.Conn == nil {
		return nil
	}
	return s.Conn.Close()
}

// Client 基于 gosnmp 的 v2c 读取器，每次读取新建并关闭会话
type Client struct {
	cfg        config.SNMPConfig
	log        *zap.Logger
	newSession func(ctx context.Context, address string) session
}

// New 创建 SNMP 读取器
func New(cfg config.SNMPConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{cfg: cfg, log: log.Named("snmp")}
	c.newSession = c.dial
	return c
}

func (c *Client) dial(ctx context.Context, address string) session {
	host, port := c.target(address)
	return gosnmpSession{GoSNMP: &gosnmp.GoSNMP{
		Target:    host,
		Port:      port,
		Community: c.cfg.Community,
		Version:   gosnmp.Version2c,
		Timeout:   c.cfg.Timeout,
		Retries:   c.cfg.Retries,
		Context:   ctx,
		MaxOids:   gosnmp.MaxOids,
	}}
}

// target 地址里带端口时使用该端口，否则用配置端口
func (c *Client) target(address string) (string, uint16) {
	if host, p, err := net.SplitHostPort(address); err == nil {
		if port, err := strconv.ParseUint(p, 10, 16); err == nil && port > 0 {
			return host, uint16(port)
		}
	}
	return address, c.cfg.Port
}

// Poll 读取单个 OID
func (c *Client) Poll(ctx context.Context, address, oid string) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = c.failed(address, oid, fmt.Errorf("panic during snmp get: %v", r))
		}
		c.log.Debug("snmp get finished",
			zap.String("address", address),
			zap.String("oid", oid),
			zap.Stringer("status", res.Status),
			zap.Duration("duration", time.Since(start)))
	}()

	if strings.TrimSpace(address) == "" {
		return Result{Status: StatusSessionInvalid, Err: errors.New("empty device address")}
	}
	if !ValidOID(oid) {
		return c.failed(address, oid, fmt.Errorf("invalid object identifier %q", oid))
	}

	s := c.newSession(ctx, address)
	if err := s.Connect(); err != nil {
		c.log.Warn("snmp session invalid", zap.String("address", address), zap.String("oid", oid), zap.Error(err))
		return Result{Status: StatusSessionInvalid, Err: err}
	}
	defer func() { _ = s.Close() }()

	packet, err := s.Get([]string{oid})
	if err != nil {
		return c.failed(address, oid, err)
	}
	if packet == nil {
		return Result{Status: StatusNoResponse}
	}
	if packet.Error != gosnmp.NoError {
		return c.failed(address, oid, fmt.Errorf("agent returned error status %v at index %d", packet.Error, packet.ErrorIndex))
	}
	if len(packet.Variables) == 0 {
		return Result{Status: StatusNoData}
	}
	return formatPDU(packet.Variables[0])
}

func (c *Client) failed(address, oid string, err error) Result {
	c.log.Error("snmp get failed", zap.String("address", address), zap.String("oid", oid), zap.Error(err))
	return Result{Status: StatusFailed, Err: err}
}

// ValidOID 点分数字格式，允许前导点，例如 .1.3.6.1.2.1.1.3.0
func ValidOID(oid string) bool {
	oid = strings.TrimPrefix(strings.TrimSpace(oid), ".")
	if oid == "" {
		return false
	}
	for _, part := range strings.Split(oid, ".") {
		if part == "" {
			return false
		}
		if _, err := strconv.ParseUint(part, 10, 32); err != nil {
			return false
		}
	}
	return true
}
