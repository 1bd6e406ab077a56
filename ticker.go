// Ticker for rxlite
// 热计时器：独立于订阅者运行，按周期发射递增计数，可暂停与恢复
package rxlite

import (
	"sync"
	"time"
)

// Ticker 热计时器，订阅者只会收到订阅之后的计数
// 暂停与恢复不会丢失或重复计数；恢复后从恢复时刻起重新计算周期
type Ticker struct {
	mu        sync.Mutex
	scheduler Scheduler
	period    time.Duration
	subject   *PublishSubject
	serial    *SerialDisposable
	next      int
	running   bool
	disposed  bool
}

// NewTicker 创建处于暂停状态的计时器，调用 Resume 开始计时
func NewTicker(period time.Duration, scheduler Scheduler) *Ticker {
	return &Ticker{
		scheduler: scheduler,
		period:    period,
		subject:   NewPublishSubject(),
	}
}

// Observable 计时器的输出序列
func (t *Ticker) Observable() Observable {
	return t.subject.AsObservable()
}

// Resume 开始或恢复计时；周期不为正时计时器以 ErrArgumentOutOfRange 终止
func (t *Ticker) Resume() {
	t.mu.Lock()
	if t.running || t.disposed {
		t.mu.Unlock()
		return
	}
	if t.period <= 0 {
		t.disposed = true
		t.mu.Unlock()
		t.subject.OnError(ErrArgumentOutOfRange)
		return
	}
	t.running = true
	serial := NewSerialDisposable()
	t.serial = serial
	t.mu.Unlock()

	schedulePeriodic(t.scheduler, t.period, serial, func() {
		t.mu.Lock()
		if !t.running || t.serial != serial {
			t.mu.Unlock()
			return
		}
		value := t.next
		t.next++
		t.mu.Unlock()

		t.subject.OnNext(value)
	})
}

// Suspend 暂停计时，下次 Resume 从暂停时的计数继续
func (t *Ticker) Suspend() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	serial := t.serial
	t.serial = nil
	t.mu.Unlock()

	serial.Dispose()
}

// IsRunning 是否正在计时
func (t *Ticker) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Dispose 停止计时并完成输出序列
func (t *Ticker) Dispose() {
	t.Suspend()

	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.disposed = true
	t.mu.Unlock()

	t.subject.OnComplete()
}

// IsDisposed 检查是否已释放
func (t *Ticker) IsDisposed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disposed
}
