package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Settings 配置文件解析出的键值对，键统一转为小写（大小写不敏感）
type Settings map[string]string

// ReadSettings 读取并解析配置文件，文件不存在或不可读时返回错误
func ReadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open settings %s: %w", path, err)
	}
	defer f.Close()

	s, err := ParseSettings(f)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	return s, nil
}

// ParseSettings 按行解析 key=value
// 忽略空行、以 ; # [ 开头的行；以第一个 = 切分；没有 = 的行直接跳过；重复键后者覆盖前者
func ParseSettings(r io.Reader) (Settings, error) {
	s := Settings{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[") {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		if key == "" {
			continue
		}
		s[key] = strings.TrimSpace(line[idx+1:])
	}
	return s, scanner.Err()
}

// Get 大小写不敏感读取
func (s Settings) Get(key string) (string, bool) {
	v, ok := s[strings.ToLower(key)]
	return v, ok
}

// Int 读取整数，缺失或解析失败时返回 def
func (s Settings) Int(key string, def int) int {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

