package snmp

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosnmp/gosnmp"
)

// formatPDU 把变量绑定转成上报文本
func formatPDU(pdu gosnmp.SnmpPDU) Result {
	switch pdu.Type {
	case gosnmp.NoSuchObject:
		return Result{Status: StatusOK, Value: "noSuchObject"}
	case gosnmp.NoSuchInstance:
		return Result{Status: StatusOK, Value: "noSuchInstance"}
	case gosnmp.EndOfMibView:
		return Result{Status: StatusOK, Value: "endOfMibView"}
	case gosnmp.Null, gosnmp.UnknownType:
		return Result{Status: StatusNoData}
	case gosnmp.OctetString:
		b, ok := pdu.Value.([]byte)
		if !ok {
			return Result{Status: StatusOK, Value: fmt.Sprint(pdu.Value)}
		}
		return Result{Status: StatusOK, Value: octets(b)}
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks,
		gosnmp.Counter64, gosnmp.Uinteger32:
		return Result{Status: StatusOK, Value: gosnmp.ToBigInt(pdu.Value).String()}
	default:
		switch v := pdu.Value.(type) {
		case nil:
			return Result{Status: StatusNoData}
		case []byte:
			// Opaque、BitString 等字节类型
			return Result{Status: StatusOK, Value: octets(v)}
		}
		return Result{Status: StatusOK, Value: fmt.Sprint(pdu.Value)}
	}
}

// octets 可打印文本原样返回，否则按 MAC 风格输出十六进制（00:1a:2b）
func octets(b []byte) string {
	trimmed := strings.TrimRight(string(b), "\x00")
	if (trimmed != "" || len(b) == 0) && printable(trimmed) {
		return trimmed
	}
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02x", c)
	}
	return strings.Join(parts, ":")
}

func printable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
