package snmp

// Status 单次读取的结果类型
type Status int

const (
	StatusOK Status = iota
	StatusSessionInvalid
	StatusNoResponse
	StatusNoData
	StatusFailed
)

// 失败时写入上报数据的描述文本，上报方按原样接收
const (
	SentinelSessionInvalid = "SNMP inválido"
	SentinelNoResponse     = "Sem resposta"
	SentinelNoData         = "Sem dados"
	SentinelErrorPrefix    = "Erro SNMP: "
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSessionInvalid:
		return "session_invalid"
	case StatusNoResponse:
		return "no_response"
	case StatusNoData:
		return "no_data"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result 读取结果，失败原因放在结果里而不是作为 error 返回
type Result struct {
	Value  string
	Status Status
	Err    error
}

// OK 是否读到值
func (r Result) OK() bool { return r.Status == StatusOK }

// Text 上报用的文本：成功为读到的原值（空字符串也原样返回），失败为对应的描述且非空
func (r Result) Text() string {
	switch r.Status {
	case StatusOK:
		return r.Value
	case StatusSessionInvalid:
		return SentinelSessionInvalid
	case StatusNoResponse:
		return SentinelNoResponse
	case StatusNoData:
		return SentinelNoData
	default:
		msg := "unknown error"
		if r.Err != nil && r.Err.Error() != "" {
			msg = r.Err.Error()
		}
		return SentinelErrorPrefix + msg
	}
}
