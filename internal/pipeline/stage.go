package pipeline

// Stage 一次运行的线性阶段
type Stage int

const (
	StageStart Stage = iota
	StageConfigLoaded
	StageLogsRotated
	StageInventoryFetched
	StageBatchCollected
	StageReportAttempted
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageConfigLoaded:
		return "config_loaded"
	case StageLogsRotated:
		return "logs_rotated"
	case StageInventoryFetched:
		return "inventory_fetched"
	case StageBatchCollected:
		return "batch_collected"
	case StageReportAttempted:
		return "report_attempted"
	case StageFinished:
		return "finished"
	default:
		return "unknown"
	}
}
