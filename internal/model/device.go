package model

// Parameter 设备上一个可采集的指标（名称 + OID）
type Parameter struct {
	Label string `json:"parameter"`
	OID   string `json:"mib"`
}

// Device 清单接口返回的设备
type Device struct {
	Name       string      `json:"nome_de_dispositivo"`
	Address    string      `json:"ip_address" validate:"required"`
	Parameters []Parameter `json:"parameter"`
}

// Reading 一次采集结果，Value 为采集值或失败描述
type Reading struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
}

// DeviceReport 单台设备的上报快照，与 Device 一一对应但不持有其引用
type DeviceReport struct {
	Device     string    `json:"device"`
	IP         string    `json:"ip"`
	Parameters []Reading `json:"parameters"`
}

// Batch 一次运行采集到的全部设备数据，按清单顺序排列
type Batch []DeviceReport

// Report 上报接口的请求体
type Report struct {
	ClientCode string `json:"client_code"`
	Data       Batch  `json:"data"`
}

// NewDeviceReport 根据设备创建空的上报快照（readings 为非 nil 空切片，序列化为 []）
func NewDeviceReport(d Device) DeviceReport {
	return DeviceReport{
		Device:     d.Name,
		IP:         d.Address,
		Parameters: make([]Reading, 0, len(d.Parameters)),
	}
}

// NewReport 组装上报请求体，空批次序列化为 []
func NewReport(clientCode string, batch Batch) Report {
	if batch == nil {
		batch = Batch{}
	}
	return Report{ClientCode: clientCode, Data: batch}
}
