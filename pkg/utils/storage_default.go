//go:build !android

package utils

// EnsureStorageDir 桌面端与 iOS 由 gdata 自行创建目录，返回空路径
func EnsureStorageDir() (string, error) {
	return "", nil
}
