// Time-based operators for rxlite
// 时间相关操作符实现，所有定时都通过显式传入的调度器完成
// Buffer、Window、Timeout、Debounce 需要定时调度器（TestScheduler 或 EventLoopScheduler）
package rxlite

import (
	"time"
)

// ============================================================================
// 时间操作符实现
// ============================================================================

// Delay 将每个事件（包括终止事件）延迟 duration 后发射，上游订阅不被延迟
func (o *observableImpl) Delay(duration time.Duration, scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		pending := NewCompositeDisposable()
		sub.Add(pending)

		subscribeChild(sub, o, func(event Event) {
			scheduleInto(pending, scheduler, duration, func() {
				sub.Emit(event)
			})
		})
	})
}

// DelaySubscription 延迟 duration 后才订阅上游
// 热源在延迟期间发射的值会永久丢失
func (o *observableImpl) DelaySubscription(duration time.Duration, scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		serial := NewSerialDisposable()
		sub.Add(serial)

		serial.Set(scheduler.ScheduleWithDelay(func() {
			if sub.IsDisposed() {
				return
			}
			subscribeChild(sub, o, sub.Emit)
		}, duration))
	})
}

// Throttle 节流操作符，距上次发射不足 duration 的值被丢弃
func (o *observableImpl) Throttle(duration time.Duration, scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		var lastEmit time.Time
		emitted := false

		subscribeChild(sub, o, func(event Event) {
			if event.Kind == KindNext {
				now := scheduler.Now()
				if emitted && now.Sub(lastEmit) < duration {
					return
				}
				lastEmit = now
				emitted = true
			}
			sub.Emit(event)
		})
	})
}

// Debounce 防抖操作符，值在 duration 内没有被新值替换时才发射
// 源完成时立即发射尚未发射的值
func (o *observableImpl) Debounce(duration time.Duration, scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		serial := NewSerialDisposable()
		sub.Add(serial)

		var latest interface{}
		hasLatest := false

		subscribeChild(sub, o, func(event Event) {
			switch event.Kind {
			case KindNext:
				latest = event.Value
				hasLatest = true
				serial.Set(scheduler.ScheduleWithDelay(func() {
					if hasLatest {
						hasLatest = false
						sub.OnNext(latest)
					}
				}, duration))
			case KindError:
				sub.OnError(event.Err)
			case KindComplete:
				serial.Set(nil)
				if hasLatest {
					hasLatest = false
					sub.OnNext(latest)
				}
				sub.OnComplete()
			}
		})
	})
}

// Timeout 订阅后或上一个事件后 duration 内没有新事件时以 *TimeoutError 终止
func (o *observableImpl) Timeout(duration time.Duration, scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		serial := NewSerialDisposable()
		sub.Add(serial)

		arm := func() {
			serial.Set(scheduler.ScheduleWithDelay(func() {
				sub.OnError(NewTimeoutError(duration))
			}, duration))
		}

		arm()
		if sub.IsDisposed() {
			return
		}

		subscribeChild(sub, o, func(event Event) {
			if event.Kind == KindNext {
				arm()
				sub.OnNext(event.Value)
				return
			}
			serial.Dispose()
			sub.Emit(event)
		})
	})
}

// Buffer 收集值并按批次以 []interface{} 发射
// 达到 count 个值或距上次发射满 timeSpan 时发射（时间到而没有值时发射空切片），每次发射后重新计时
// 源完成时发射剩余的批次后完成，出错时丢弃剩余批次
// timeSpan 必须为正，否则以 ErrArgumentOutOfRange 终止
func (o *observableImpl) Buffer(timeSpan time.Duration, count int, scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		if timeSpan <= 0 {
			sub.OnError(ErrArgumentOutOfRange)
			return
		}

		serial := NewSerialDisposable()
		sub.Add(serial)

		buffer := make([]interface{}, 0)

		var flush func()
		startTimer := func() {
			serial.Set(scheduler.ScheduleWithDelay(func() { flush() }, timeSpan))
		}
		flush = func() {
			out := buffer
			buffer = make([]interface{}, 0)
			sub.OnNext(out)
			if !sub.IsDisposed() {
				startTimer()
			}
		}

		startTimer()
		if sub.IsDisposed() {
			return
		}

		subscribeChild(sub, o, func(event Event) {
			switch event.Kind {
			case KindNext:
				buffer = append(buffer, event.Value)
				if count > 0 && len(buffer) >= count {
					flush()
				}
			case KindError:
				serial.Dispose()
				sub.OnError(event.Err)
			case KindComplete:
				serial.Dispose()
				sub.OnNext(buffer)
				sub.OnComplete()
			}
		})
	})
}

// Window 与 Buffer 的触发规则相同，但每个批次以独立的 Observable 发射
// 窗口在周期开始时打开、周期结束时完成，消费者需在收到窗口时订阅
func (o *observableImpl) Window(timeSpan time.Duration, count int, scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		if timeSpan <= 0 {
			sub.OnError(ErrArgumentOutOfRange)
			return
		}

		serial := NewSerialDisposable()
		sub.Add(serial)

		var current *PublishSubject
		size := 0

		var open func()
		rotate := func() {
			current.OnComplete()
			open()
		}
		open = func() {
			current = NewPublishSubject()
			size = 0
			sub.OnNext(current.AsObservable())
			if sub.IsDisposed() {
				return
			}
			serial.Set(scheduler.ScheduleWithDelay(rotate, timeSpan))
		}

		open()
		if sub.IsDisposed() {
			return
		}

		subscribeChild(sub, o, func(event Event) {
			switch event.Kind {
			case KindNext:
				current.OnNext(event.Value)
				size++
				if count > 0 && size >= count {
					rotate()
				}
			case KindError:
				serial.Dispose()
				current.OnError(event.Err)
				sub.OnError(event.Err)
			case KindComplete:
				serial.Dispose()
				current.OnComplete()
				sub.OnComplete()
			}
		})
	})
}

// ObserveOn 在指定调度器上投递事件，保持原有顺序
func (o *observableImpl) ObserveOn(scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		pending := NewCompositeDisposable()
		sub.Add(pending)

		subscribeChild(sub, o, func(event Event) {
			scheduleInto(pending, scheduler, 0, func() {
				sub.Emit(event)
			})
		})
	})
}

// SubscribeOn 在指定调度器上订阅上游
func (o *observableImpl) SubscribeOn(scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		serial := NewSerialDisposable()
		sub.Add(serial)

		serial.Set(scheduler.Schedule(func() {
			if sub.IsDisposed() {
				return
			}
			subscribeChild(sub, o, sub.Emit)
		}))
	})
}

// scheduleInto 调度任务并在执行前把它登记到 pending，执行后移除
func scheduleInto(pending *CompositeDisposable, scheduler Scheduler, delay time.Duration, action func()) {
	var task Disposable
	fired := false
	task = scheduler.ScheduleWithDelay(func() {
		fired = true
		if task != nil {
			pending.Remove(task)
		}
		action()
	}, delay)
	if !fired {
		pending.Add(task)
	}
}
