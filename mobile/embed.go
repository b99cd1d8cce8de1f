//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// mobile/data/ 是根目录 data/ 的副本，由 make prepare-mobile 同步。
package mobile

import "embed"

//go:embed data/screen.yaml
var dataFS embed.FS
