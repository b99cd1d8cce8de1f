package game

// MainQueue 主循环任务队列
//
// Post 把任务追加到队列末尾，Drain 在下一次 Update 开始时执行。
// 只用于让回调在触发它的控件事件完全结束后再执行，不涉及并发。
type MainQueue struct {
	tasks []func()
}

// NewMainQueue 创建空队列
func NewMainQueue() *MainQueue {
	return &MainQueue{}
}

// Post 追加任务
func (q *MainQueue) Post(task func()) {
	if task == nil {
		return
	}
	q.tasks = append(q.tasks, task)
}

// Drain 按顺序执行调用前已排队的任务
//
// 执行过程中新投递的任务留到下一次 Drain。
// 返回执行的任务数量。
func (q *MainQueue) Drain() int {
	pending := q.tasks
	q.tasks = nil
	for _, task := range pending {
		task()
	}
	return len(pending)
}

// Len 返回等待中的任务数量
func (q *MainQueue) Len() int {
	return len(q.tasks)
}
