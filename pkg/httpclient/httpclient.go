package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// Header names shared by the inventory and report endpoints.
const (
	HeaderAPIKey    = "X-API-KEY"
	HeaderAPISecret = "X-API-SECRET"
)

// maxBody bounds how much of a response body is kept in memory.
const maxBody = 8 << 20

// New returns a client with its own transport and keep-alives disabled.
// Each network operation gets one and releases it when done.
func New(timeout time.Duration) *http.Client {
	c := cleanhttp.DefaultClient()
	c.Timeout = timeout
	return c
}

// Release drops any connection the client still holds.
func Release(c *http.Client) {
	if c != nil {
		c.CloseIdleConnections()
	}
}

// SetAuth adds the API credential headers.
func SetAuth(req *http.Request, key, secret string) {
	req.Header.Set(HeaderAPIKey, key)
	req.Header.Set(HeaderAPISecret, secret)
}

// ReadBody reads at most maxBody bytes of the response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

// IsSuccess reports whether the status code is 2xx.
func IsSuccess(code int) bool {
	return code/100 == 2
}
