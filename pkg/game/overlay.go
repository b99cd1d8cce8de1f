package game

import (
	"log"

	"github.com/decker502/buttonmove/pkg/geom"
)

// Overlay 配置模式遮罩的可见性开关
//
// 遮罩可见时按钮可以拖动；遮罩在开口区域留有镂空，
// 落在开口内的指针事件穿透给下面的控件。
type Overlay struct {
	visible bool
	opening geom.Rect
	queue   *MainQueue

	// OnClose 遮罩真正隐藏后调用（可选）
	OnClose func()
}

// NewOverlay 创建初始隐藏的遮罩
//
// 参数：
//   - opening: 镂空区域（屏幕坐标）
//   - queue: 用于延迟关闭的主循环队列
func NewOverlay(opening geom.Rect, queue *MainQueue) *Overlay {
	return &Overlay{
		opening: opening,
		queue:   queue,
	}
}

// Open 显示遮罩，已显示时无操作
func (o *Overlay) Open() {
	if !o.visible {
		o.visible = true
		log.Printf("[Overlay] Opened")
	}
}

// RequestClose 请求隐藏遮罩
//
// 隐藏动作投递到主循环队列，在下一个 tick 执行
func (o *Overlay) RequestClose() {
	if o.queue == nil {
		o.close()
		return
	}
	o.queue.Post(o.close)
}

func (o *Overlay) close() {
	if !o.visible {
		return
	}
	o.visible = false
	log.Printf("[Overlay] Closed")
	if o.OnClose != nil {
		o.OnClose()
	}
}

// Visible 遮罩是否可见
func (o *Overlay) Visible() bool {
	return o.visible
}

// AllowsDrag 只有遮罩可见时才允许开始拖拽
func (o *Overlay) AllowsDrag() bool {
	return o.visible
}

// Opening 返回镂空区域
func (o *Overlay) Opening() geom.Rect {
	return o.opening
}

// SetOpening 布局变化时更新镂空区域
func (o *Overlay) SetOpening(r geom.Rect) {
	o.opening = r
}

// Absorbs 检查指针事件是否被遮罩拦截
//
// 遮罩隐藏或点落在镂空区域内时返回 false
func (o *Overlay) Absorbs(p geom.Point) bool {
	if !o.visible {
		return false
	}
	return !o.opening.Contains(p)
}
