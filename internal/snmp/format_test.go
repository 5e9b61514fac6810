package snmp

import (
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
)

func TestFormatPDU(t *testing.T) {
	tests := []struct {
		name   string
		pdu    gosnmp.SnmpPDU
		status Status
		value  string
	}{
		{"printable octets", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("EPSON2C64AA")}, StatusOK, "EPSON2C64AA"},
		{"mac address", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte{0x00, 0x26, 0xab, 0x2c, 0x64, 0xaa}}, StatusOK, "00:26:ab:2c:64:aa"},
		{"zero mac", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte{0, 0, 0, 0, 0, 0}}, StatusOK, "00:00:00:00:00:00"},
		{"counter32", gosnmp.SnmpPDU{Type: gosnmp.Counter32, Value: uint(4294967295)}, StatusOK, "4294967295"},
		{"counter64", gosnmp.SnmpPDU{Type: gosnmp.Counter64, Value: uint64(18446744073709551615)}, StatusOK, "18446744073709551615"},
		{"integer", gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: -7}, StatusOK, "-7"},
		{"ip", gosnmp.SnmpPDU{Type: gosnmp.IPAddress, Value: "192.168.0.52"}, StatusOK, "192.168.0.52"},
		{"oid", gosnmp.SnmpPDU{Type: gosnmp.ObjectIdentifier, Value: ".1.3.6.1.4.1.1248"}, StatusOK, ".1.3.6.1.4.1.1248"},
		{"no such object", gosnmp.SnmpPDU{Type: gosnmp.NoSuchObject}, StatusOK, "noSuchObject"},
		{"no such instance", gosnmp.SnmpPDU{Type: gosnmp.NoSuchInstance}, StatusOK, "noSuchInstance"},
		{"null", gosnmp.SnmpPDU{Type: gosnmp.Null}, StatusNoData, SentinelNoData},
		{"opaque bytes", gosnmp.SnmpPDU{Type: gosnmp.Opaque, Value: []byte{1, 2}}, StatusOK, "01:02"},
		{"bit string", gosnmp.SnmpPDU{Type: gosnmp.BitString, Value: []byte{0xf0}}, StatusOK, "f0"},
		{"empty octets", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte{}}, StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := formatPDU(tt.pdu)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.value, res.Text())
		})
	}
}

func TestResultTextFailedWithoutError(t *testing.T) {
	assert.Equal(t, "Erro SNMP: unknown error", Result{Status: StatusFailed}.Text())
}
