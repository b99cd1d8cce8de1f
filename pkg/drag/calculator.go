// Package drag 实现可拖动按钮的约束计算和拖拽会话状态机
//
// 按钮被视为半径为 Radius 的圆，拖拽过程中其中心必须始终落在
// [Radius, W-Radius] × [Radius, H-Radius] 范围内。
package drag

import (
	"math"

	"github.com/decker502/buttonmove/pkg/geom"
)

// Clamp 将原始拖拽位移限制在允许范围内
//
// 参数：
//   - delta: 手势开始以来的累计位移（任意实数）
//   - start: 手势开始时的按钮中心（容纳矩形局部坐标）
//   - bounds: 容纳矩形尺寸
//   - radius: 按钮半径
//
// 返回：
//   - geom.Vec2: 约束后的位移，start + 结果始终在内缩矩形内
//
// 若某一轴放不下按钮（min > max），该轴返回区间中点，即按钮在该轴居中。
// 位移为 NaN 的轴视为 0 再约束。
func Clamp(delta geom.Vec2, start geom.Point, bounds geom.Size, radius float64) geom.Vec2 {
	xMin := radius - start.X
	xMax := bounds.W - start.X - radius
	yMin := radius - start.Y
	yMax := bounds.H - start.Y - radius

	return geom.Vec2{
		X: clampAxis(delta.X, xMin, xMax),
		Y: clampAxis(delta.Y, yMin, yMax),
	}
}

// ClampGeometry 是 Clamp 的便捷版本，直接使用布局得到的 Geometry
func ClampGeometry(delta geom.Vec2, start geom.Point, g geom.Geometry) geom.Vec2 {
	return Clamp(delta, start, g.Bounds, g.Radius)
}

func clampAxis(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	// NaN 与任何值比较都为 false，按无位移处理
	if math.IsNaN(v) {
		v = 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
