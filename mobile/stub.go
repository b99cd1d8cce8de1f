//go:build !mobile

// 普通构建下 mobile 包没有任何内容，
// 只为让 go build ./... 和 go vet ./... 不因构建约束报错。
package mobile
