// Package geom 提供拖拽约束计算使用的二维几何类型
//
// 所有坐标均为容纳矩形（opening）的局部坐标系：左上角为原点，X 向右，Y 向下。
package geom

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidGeometry 表示尺寸或半径不是有限的正数
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrOpeningTooSmall 表示容纳矩形在某一轴上放不下按钮（宽或高小于直径）
	ErrOpeningTooSmall = errors.New("opening too small for button")
)

// Vec2 二维位移向量
type Vec2 struct {
	X float64
	Y float64
}

// Point 二维坐标点
type Point struct {
	X float64
	Y float64
}

// Add 返回点 p 平移 v 之后的位置
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub 返回从 q 指向 p 的向量
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Size 矩形尺寸
type Size struct {
	W float64
	H float64
}

// Rect 轴对齐矩形，Min 为左上角
type Rect struct {
	Min  Point
	Size Size
}

// NewRect 通过左上角坐标和宽高创建矩形
func NewRect(x, y, w, h float64) Rect {
	return Rect{Min: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Max 返回右下角坐标
func (r Rect) Max() Point {
	return Point{X: r.Min.X + r.Size.W, Y: r.Min.Y + r.Size.H}
}

// Center 返回矩形中心
func (r Rect) Center() Point {
	return Point{X: r.Min.X + r.Size.W/2, Y: r.Min.Y + r.Size.H/2}
}

// Contains 检查点是否落在矩形内（含边界）
func (r Rect) Contains(p Point) bool {
	br := r.Max()
	return p.X >= r.Min.X && p.X <= br.X && p.Y >= r.Min.Y && p.Y <= br.Y
}

// ToLocal 将外部坐标转换为以矩形左上角为原点的局部坐标
func (r Rect) ToLocal(p Point) Point {
	return Point{X: p.X - r.Min.X, Y: p.Y - r.Min.Y}
}

// ToOuter 将局部坐标转换回外部坐标
func (r Rect) ToOuter(p Point) Point {
	return Point{X: p.X + r.Min.X, Y: p.Y + r.Min.Y}
}

// Geometry 按钮拖拽的几何参数，每次布局时重新计算
type Geometry struct {
	// Bounds 容纳矩形尺寸
	Bounds Size
	// Radius 按钮半径（直径的一半）
	Radius float64
}

// Validate 检查几何参数
//
// 返回：
//   - ErrInvalidGeometry: 宽高不是正的有限数，或半径为负/非有限数
//   - ErrOpeningTooSmall: 任一边长小于按钮直径
func (g Geometry) Validate() error {
	if !isFinite(g.Bounds.W) || !isFinite(g.Bounds.H) || g.Bounds.W <= 0 || g.Bounds.H <= 0 {
		return fmt.Errorf("%w: bounds %vx%v", ErrInvalidGeometry, g.Bounds.W, g.Bounds.H)
	}
	if !isFinite(g.Radius) || g.Radius < 0 {
		return fmt.Errorf("%w: radius %v", ErrInvalidGeometry, g.Radius)
	}
	if g.Bounds.W < 2*g.Radius || g.Bounds.H < 2*g.Radius {
		return fmt.Errorf("%w: bounds %vx%v, radius %v", ErrOpeningTooSmall, g.Bounds.W, g.Bounds.H, g.Radius)
	}
	return nil
}

// Inset 返回按钮中心允许的范围（容纳矩形向内收缩半径）
func (g Geometry) Inset() Rect {
	return NewRect(g.Radius, g.Radius, g.Bounds.W-2*g.Radius, g.Bounds.H-2*g.Radius)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
