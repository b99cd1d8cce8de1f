//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStorageDir 确保 Android 存储目录存在并可写
//
// gdata 在 Android 上写入 /data/data/{package}/saves，但不会预先创建该目录，
// 因此必须在 gdata.Open 之前调用。
//
// 返回：
//   - string: 存储目录（用于日志）
//   - error: 无法确定包名、创建目录或写入时返回错误
func EnsureStorageDir() (string, error) {
	pkg, err := androidPackageName()
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return dir, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".probe")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return dir, fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	_ = os.Remove(probe)

	return dir, nil
}

// androidPackageName 从 /proc/self/cmdline 读取进程名，即应用包名
func androidPackageName() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	name := strings.Map(func(r rune) rune {
		if r == 0 || r == '\n' {
			return -1
		}
		return r
	}, string(data))
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
