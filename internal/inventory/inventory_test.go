package inventory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/snmp-reporter/internal/model"
	"github.com/snmp-reporter/pkg/config"
)

func testConfig(url string) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.ServiceURL = url
	cfg.APIKey = "K"
	cfg.APISecret = "S"
	cfg.ClientCode = "C7"
	cfg.HTTPTimeout = 2 * time.Second
	return cfg
}

func TestFetch(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "C7", r.URL.Query().Get("client_code"))
		assert.Equal(t, "K", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "S", r.Header.Get("X-API-SECRET"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"nome_de_dispositivo":"RouterA","ip_address":"10.0.0.1",
			"parameter":[{"parameter":"uptime","mib":"1.3.6.1.2.1.1.3.0"}]}]`))
	}))
	defer srv.Close()

	devices, err := New(testConfig(srv.URL), nil).Fetch(context.Background(), "C7")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []model.Device{{
		Name:       "RouterA",
		Address:    "10.0.0.1",
		Parameters: []model.Parameter{{Label: "uptime", OID: "1.3.6.1.2.1.1.3.0"}},
	}}, devices)
}

func TestFetchEmptyBodies(t *testing.T) {
	for _, body := range []string{"", "  ", "null", "[]"} {
		t.Run("body="+body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			devices, err := New(testConfig(srv.URL), nil).Fetch(context.Background(), "C7")
			require.NoError(t, err)
			assert.NotNil(t, devices)
			assert.Empty(t, devices)
		})
	}
}

func TestFetchNonSuccessIsFatal(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	devices, err := New(testConfig(srv.URL), nil).Fetch(context.Background(), "C7")
	require.Error(t, err)
	assert.Nil(t, devices)
	assert.Equal(t, 1, calls, "no retry")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Code)
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(testConfig(url), nil).Fetch(context.Background(), "C7")
	require.Error(t, err)
}

func TestFetchMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	_, err := New(testConfig(srv.URL), nil).Fetch(context.Background(), "C7")
	require.Error(t, err)
}

func TestFetchSkipsDevicesWithoutAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"nome_de_dispositivo":"ghost","parameter":[]},
			{"nome_de_dispositivo":"sw1","ip_address":"10.0.0.2"}
		]`))
	}))
	defer srv.Close()

	core, logs := observer.New(zap.WarnLevel)
	devices, err := New(testConfig(srv.URL), zap.New(core)).Fetch(context.Background(), "C7")
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "sw1", devices[0].Name)
	assert.Equal(t, 1, logs.FilterMessage("skipping malformed inventory entry").Len())
}

func TestEndpointKeepsExistingQuery(t *testing.T) {
	c := New(testConfig("http://api.example/devices?region=eu"), nil)
	got, err := c.endpoint("C 7")
	require.NoError(t, err)
	assert.Equal(t, "http://api.example/devices?client_code=C+7&region=eu", got)
}
