// Factory functions for rxlite
// 工厂函数，提供符合Go习惯的API设计
package rxlite

import (
	"time"
)

// ============================================================================
// 基础工厂函数
// ============================================================================

// Just 同步发射给定的值后完成
func Just(values ...interface{}) Observable {
	return FromSlice(values)
}

// Of 是Just的别名
func Of(values ...interface{}) Observable {
	return FromSlice(values)
}

// FromSlice 从切片创建Observable，每次订阅都从头发射
func FromSlice(slice []interface{}) Observable {
	return NewObservable(func(sub *Subscriber) {
		for _, value := range slice {
			if sub.IsDisposed() {
				return
			}
			sub.OnNext(value)
		}
		sub.OnComplete()
	})
}

// Empty 创建一个空的Observable，立即完成
func Empty() Observable {
	return NewObservable(func(sub *Subscriber) {
		sub.OnComplete()
	})
}

// Never 创建一个永不发射任何事件的Observable
func Never() Observable {
	return NewObservable(func(sub *Subscriber) {})
}

// Error 创建一个立即以错误终止的Observable
func Error(err error) Observable {
	return NewObservable(func(sub *Subscriber) {
		sub.OnError(err)
	})
}

// Range 发射 start 起的 count 个连续整数
func Range(start, count int) Observable {
	return NewObservable(func(sub *Subscriber) {
		for i := 0; i < count; i++ {
			if sub.IsDisposed() {
				return
			}
			sub.OnNext(start + i)
		}
		sub.OnComplete()
	})
}

// ============================================================================
// 创建操作符
// ============================================================================

// Create 从自定义生产函数创建Observable
// factory 在每次订阅时调用一次，返回的 Disposable 在订阅终止或取消时释放
func Create(factory func(emitter Emitter) Disposable) Observable {
	return NewObservable(func(sub *Subscriber) {
		sub.Add(factory(sub))
	})
}

// Defer 延迟创建Observable，直到有观察者订阅
func Defer(factory func() Observable) Observable {
	return NewObservable(func(sub *Subscriber) {
		subscribeChild(sub, factory(), sub.Emit)
	})
}

// ============================================================================
// 时间相关工厂函数
// ============================================================================

// Interval 每个周期发射一个从0开始递增的整数；每个订阅拥有独立的计数器
// period 必须为正，否则以 ErrArgumentOutOfRange 终止
func Interval(period time.Duration, scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		if period <= 0 {
			sub.OnError(ErrArgumentOutOfRange)
			return
		}

		serial := NewSerialDisposable()
		sub.Add(serial)

		counter := 0
		schedulePeriodic(scheduler, period, serial, func() {
			if sub.IsDisposed() {
				return
			}
			value := counter
			counter++
			sub.OnNext(value)
		})
	})
}

// Timer 在 dueTime 之后发射 0 并完成
func Timer(dueTime time.Duration, scheduler Scheduler) Observable {
	return NewObservable(func(sub *Subscriber) {
		sub.Add(scheduler.ScheduleWithDelay(func() {
			sub.OnNext(0)
			sub.OnComplete()
		}, dueTime))
	})
}
