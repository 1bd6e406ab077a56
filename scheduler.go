// Scheduler implementations for rxlite
// 调度器实现：立即调度器、虚拟时间测试调度器、单 goroutine 事件循环调度器
package rxlite

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// ============================================================================
// 调度器接口
// ============================================================================

// Scheduler 时间线的唯一调度权威：按到期时间顺序执行，到期时间相同时按提交顺序执行
type Scheduler interface {
	// Now 调度器当前时间
	Now() time.Time
	// Schedule 尽快执行任务
	Schedule(action func()) Disposable
	// ScheduleWithDelay 延迟执行任务，返回的 Disposable 可取消尚未执行的任务
	ScheduleWithDelay(action func(), delay time.Duration) Disposable
}

// ============================================================================
// 立即调度器 - Immediate Scheduler
// ============================================================================

// immediateScheduler 在调用者的栈上同步执行任务，延迟任务先休眠再同步执行
type immediateScheduler struct{}

// NewImmediateScheduler 创建立即调度器
func NewImmediateScheduler() Scheduler {
	return &immediateScheduler{}
}

// Now 当前墙钟时间
func (s *immediateScheduler) Now() time.Time {
	return time.Now()
}

// Schedule 立即执行任务
func (s *immediateScheduler) Schedule(action func()) Disposable {
	action()
	return NewBaseDisposable(nil)
}

// ScheduleWithDelay 休眠 delay 后在当前 goroutine 执行任务
func (s *immediateScheduler) ScheduleWithDelay(action func(), delay time.Duration) Disposable {
	if delay > 0 {
		time.Sleep(delay)
	}
	action()
	return NewBaseDisposable(nil)
}

// Immediate 立即调度器实例
var Immediate = NewImmediateScheduler()

// ============================================================================
// 调度队列
// ============================================================================

// scheduledItem 队列中的一个待执行任务
type scheduledItem struct {
	due       time.Time
	seq       uint64
	action    func()
	cancelled atomic.Bool
}

func (item *scheduledItem) Dispose() {
	item.cancelled.Store(true)
}

func (item *scheduledItem) IsDisposed() bool {
	return item.cancelled.Load()
}

// scheduledQueue 按 (due, seq) 排序的最小堆
type scheduledQueue []*scheduledItem

func (q scheduledQueue) Len() int { return len(q) }

func (q scheduledQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q scheduledQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *scheduledQueue) Push(x interface{}) {
	*q = append(*q, x.(*scheduledItem))
}

func (q *scheduledQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func (q scheduledQueue) peek() *scheduledItem {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

// ============================================================================
// 测试调度器 - Test Scheduler
// ============================================================================

// TestScheduler 虚拟时间调度器，时间只在 AdvanceBy/AdvanceTo/Run 时前进
type TestScheduler struct {
	mu    sync.Mutex
	start time.Time
	clock time.Duration
	seq   uint64
	queue scheduledQueue
}

var _ Scheduler = (*TestScheduler)(nil)

// NewTestScheduler 创建测试调度器，虚拟时钟从0开始
func NewTestScheduler() *TestScheduler {
	return &TestScheduler{start: time.Unix(0, 0).UTC()}
}

// Now 虚拟当前时间
func (s *TestScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start.Add(s.clock)
}

// Clock 自创建以来经过的虚拟时间
func (s *TestScheduler) Clock() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// Schedule 在当前虚拟时刻调度任务
func (s *TestScheduler) Schedule(action func()) Disposable {
	return s.ScheduleWithDelay(action, 0)
}

// ScheduleWithDelay 在当前虚拟时刻之后 delay 调度任务
func (s *TestScheduler) ScheduleWithDelay(action func(), delay time.Duration) Disposable {
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	at := s.clock + delay
	s.mu.Unlock()
	return s.ScheduleAt(at, action)
}

// ScheduleAt 在指定的虚拟时刻调度任务，早于当前时刻的任务在下一次推进时执行
func (s *TestScheduler) ScheduleAt(at time.Duration, action func()) Disposable {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	item := &scheduledItem{due: s.start.Add(at), seq: s.seq, action: action}
	heap.Push(&s.queue, item)
	return item
}

// AdvanceBy 推进虚拟时间
func (s *TestScheduler) AdvanceBy(duration time.Duration) {
	s.mu.Lock()
	target := s.clock + duration
	s.mu.Unlock()
	s.AdvanceTo(target)
}

// AdvanceTo 推进虚拟时间到指定时刻，依次执行期间到期的任务
func (s *TestScheduler) AdvanceTo(at time.Duration) {
	deadline := s.start.Add(at)
	for {
		item := s.next(func(item *scheduledItem) bool { return !item.due.After(deadline) })
		if item == nil {
			break
		}
		if !item.IsDisposed() {
			item.action()
		}
	}

	s.mu.Lock()
	if at > s.clock {
		s.clock = at
	}
	s.mu.Unlock()
}

// Run 执行队列中的全部任务，直到队列为空
// 周期任务会让队列永不为空，此时应使用 AdvanceTo
func (s *TestScheduler) Run() {
	for {
		item := s.next(func(*scheduledItem) bool { return true })
		if item == nil {
			return
		}
		if !item.IsDisposed() {
			item.action()
		}
	}
}

// Pending 尚未执行且未取消的任务数量
func (s *TestScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.queue {
		if !item.IsDisposed() {
			count++
		}
	}
	return count
}

// next 弹出满足条件的队首任务并把时钟推进到其到期时间
func (s *TestScheduler) next(ready func(*scheduledItem) bool) *scheduledItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	head := s.queue.peek()
	if head == nil || !ready(head) {
		return nil
	}
	heap.Pop(&s.queue)
	if due := head.due.Sub(s.start); due > s.clock {
		s.clock = due
	}
	return head
}

// ============================================================================
// 事件循环调度器 - Event Loop Scheduler
// ============================================================================

// EventLoopScheduler 所有任务都在 Run 所在的 goroutine 上按墙钟时间执行
type EventLoopScheduler struct {
	mu     sync.Mutex
	seq    uint64
	queue  scheduledQueue
	wake   chan struct{}
	logger zerolog.Logger
}

var _ Scheduler = (*EventLoopScheduler)(nil)

// NewEventLoopScheduler 创建事件循环调度器，需调用 Run 驱动
func NewEventLoopScheduler(opts ...Option) *EventLoopScheduler {
	config := newConfig(opts)
	return &EventLoopScheduler{
		wake:   make(chan struct{}, 1),
		logger: config.Logger.With().Str("component", "event_loop").Logger(),
	}
}

// Now 当前墙钟时间
func (s *EventLoopScheduler) Now() time.Time {
	return time.Now()
}

// Schedule 尽快在事件循环上执行任务
func (s *EventLoopScheduler) Schedule(action func()) Disposable {
	return s.ScheduleWithDelay(action, 0)
}

// ScheduleWithDelay 在 delay 之后于事件循环上执行任务
func (s *EventLoopScheduler) ScheduleWithDelay(action func(), delay time.Duration) Disposable {
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	s.seq++
	item := &scheduledItem{due: time.Now().Add(delay), seq: s.seq, action: action}
	heap.Push(&s.queue, item)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return item
}

// Run 驱动事件循环直到 ctx 结束，返回 ctx 的错误
func (s *EventLoopScheduler) Run(ctx context.Context) error {
	s.logger.Debug().Msg("event loop started")
	defer s.logger.Debug().Msg("event loop stopped")

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		item, wait := s.poll()
		if item != nil {
			s.execute(item)
			continue
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
		case <-timer.C:
		}
	}
}

// poll 返回已到期的任务，或距离下一个任务到期的等待时间
func (s *EventLoopScheduler) poll() (*scheduledItem, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		head := s.queue.peek()
		if head == nil {
			return nil, time.Hour
		}
		if head.IsDisposed() {
			heap.Pop(&s.queue)
			continue
		}
		wait := time.Until(head.due)
		if wait > 0 {
			return nil, wait
		}
		heap.Pop(&s.queue)
		return head, 0
	}
}

func (s *EventLoopScheduler) execute(item *scheduledItem) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("scheduled action panicked")
		}
	}()
	item.action()
}

// ============================================================================
// 调度器辅助函数
// ============================================================================

// schedulePeriodic 以固定周期重复执行 action，下一次执行时间按计划时间而非实际执行时间计算
// serial 被释放后停止调度
func schedulePeriodic(scheduler Scheduler, period time.Duration, serial *SerialDisposable, action func()) {
	planned := scheduler.Now().Add(period)

	var tick func()
	tick = func() {
		action()
		if serial.IsDisposed() {
			return
		}
		planned = planned.Add(period)
		serial.Set(scheduler.ScheduleWithDelay(tick, planned.Sub(scheduler.Now())))
	}
	serial.Set(scheduler.ScheduleWithDelay(tick, period))
}
