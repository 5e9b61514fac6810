package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceDecodeCaseInsensitive(t *testing.T) {
	raw := `[{"NOME_DE_DISPOSITIVO":"RouterA","Ip_Address":"10.0.0.1",
		"Parameter":[{"PARAMETER":"uptime","Mib":"1.3.6.1.2.1.1.3.0"}]}]`

	var devices []Device
	require.NoError(t, json.Unmarshal([]byte(raw), &devices))
	require.Len(t, devices, 1)
	assert.Equal(t, "RouterA", devices[0].Name)
	assert.Equal(t, "10.0.0.1", devices[0].Address)
	require.Len(t, devices[0].Parameters, 1)
	assert.Equal(t, Parameter{Label: "uptime", OID: "1.3.6.1.2.1.1.3.0"}, devices[0].Parameters[0])
}

func TestNewDeviceReportEmptyReadings(t *testing.T) {
	r := NewDeviceReport(Device{Name: "sw1", Address: "10.0.0.2"})

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"device":"sw1","ip":"10.0.0.2","parameters":[]}`, string(b))
}

func TestNewReportPayload(t *testing.T) {
	b, err := json.Marshal(NewReport("C7", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"client_code":"C7","data":[]}`, string(b))
}
