package retention

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/snmp-reporter/pkg/logger"
)

// Result 一次清理的结果，Err 汇总了所有删除失败的文件
type Result struct {
	Deleted []string
	Kept    []string
	Err     error
}

// Sweeper 按文件名中的日期清理过期日志
type Sweeper struct {
	fs    afero.Fs
	clock clockwork.Clock
	log   *zap.Logger
}

// New fs/clock 为 nil 时使用真实文件系统与时钟
func New(fs afero.Fs, clock clockwork.Clock, log *zap.Logger) *Sweeper {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{fs: fs, clock: clock, log: log.Named("retention")}
}

// Cutoff 保留边界：今天零点往前 days 天，日期严格早于它的文件会被删除
func (s *Sweeper) Cutoff(days int) time.Time {
	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -days)
}

// Sweep 清理 dir 下的 snmp_log_<yyyy-MM-dd>.txt，单个文件删除失败不影响其余文件
func (s *Sweeper) Sweep(dir string, days int) Result {
	var res Result
	if days < 0 {
		s.log.Warn("negative log_days would remove current logs, keeping today only", zap.Int("log_days", days))
		days = 0
	}

	pattern := filepath.Join(dir, logger.FilePrefix+"*"+logger.FileSuffix)
	files, err := afero.Glob(s.fs, pattern)
	if err != nil {
		res.Err = err
		return res
	}
	sort.Strings(files)

	cutoff := s.Cutoff(days)
	for _, file := range files {
		name := filepath.Base(file)
		day, ok := fileDate(name, cutoff.Location())
		if !ok || !day.Before(cutoff) {
			res.Kept = append(res.Kept, name)
			continue
		}
		if err := s.fs.Remove(file); err != nil {
			s.log.Warn("failed to remove old log", zap.String("file", name), zap.Error(err))
			res.Err = multierr.Append(res.Err, err)
			continue
		}
		s.log.Debug("removed old log", zap.String("file", name))
		res.Deleted = append(res.Deleted, name)
	}
	return res
}

// fileDate 解析文件名前缀后面紧跟的 yyyy-MM-dd
func fileDate(name string, loc *time.Location) (time.Time, bool) {
	rest := strings.TrimPrefix(name, logger.FilePrefix)
	if len(rest) < len(logger.FileDateLayout) {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(logger.FileDateLayout, rest[:len(logger.FileDateLayout)], loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
