//go:build !mobile

package utils

import (
	"os"
	"strconv"
)

// MobileEmulateEnv 桌面端调试移动模式的环境变量
const MobileEmulateEnv = "BUTTONMOVE_MOBILE_EMULATE"

// IsMobile 桌面端默认返回 false
//
// MobileEmulateEnv 为 strconv.ParseBool 认可的真值（1、true 等）时
// 按移动端处理：隐藏键盘提示并禁用 F11 全屏。
func IsMobile() bool {
	v, err := strconv.ParseBool(os.Getenv(MobileEmulateEnv))
	return err == nil && v
}
