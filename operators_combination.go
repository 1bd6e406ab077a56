// Combination operators for rxlite
// 组合操作符实现，包含Merge, Concat, Zip, CombineLatest, Amb, StartWith, WithLatestFrom, Sample
package rxlite

import (
	"github.com/gammazero/deque"
)

// ============================================================================
// 多源组合函数
// ============================================================================

// Merge 同时订阅全部源并按到达顺序转发；全部完成时完成，任一出错立即终止
func Merge(sources ...Observable) Observable {
	return NewObservable(func(sub *Subscriber) {
		remaining := len(sources)
		if remaining == 0 {
			sub.OnComplete()
			return
		}

		for _, source := range sources {
			if sub.IsDisposed() {
				return
			}
			subscribeChild(sub, source, func(event Event) {
				if event.Kind != KindComplete {
					sub.Emit(event)
					return
				}
				remaining--
				if remaining == 0 {
					sub.OnComplete()
				}
			})
		}
	})
}

// Concat 按顺序订阅各个源，前一个完成后才订阅下一个
func Concat(sources ...Observable) Observable {
	return NewObservable(func(sub *Subscriber) {
		serial := NewSerialDisposable()
		sub.Add(serial)

		index := 0
		var run func()
		run = func() {
			for index < len(sources) {
				if sub.IsDisposed() {
					return
				}
				source := sources[index]
				index++

				subscribing := true
				completedInline := false
				subscribeDetached(source, func(event Event) {
					if event.Kind != KindComplete {
						sub.Emit(event)
						return
					}
					if subscribing {
						completedInline = true
						return
					}
					run()
				}, serial.hold)
				subscribing = false

				if !completedInline {
					return
				}
			}
			sub.OnComplete()
		}
		run()
	})
}

// Zip 按顺序配对各个源的值：每个源的队列都有值时各取一个组合发射
// 任一已完成的源队列耗尽时完成
func Zip(sources []Observable, zipper Combiner) Observable {
	return NewObservable(func(sub *Subscriber) {
		n := len(sources)
		if n == 0 {
			sub.OnComplete()
			return
		}

		queues := make([]deque.Deque[interface{}], n)
		done := make([]bool, n)

		checkDone := func() {
			for i := range queues {
				if done[i] && queues[i].Len() == 0 {
					sub.OnComplete()
					return
				}
			}
		}

		for i, source := range sources {
			if sub.IsDisposed() {
				return
			}
			index := i
			subscribeChild(sub, source, func(event Event) {
				switch event.Kind {
				case KindNext:
					queues[index].PushBack(event.Value)
					for j := range queues {
						if queues[j].Len() == 0 {
							return
						}
					}
					values := make([]interface{}, n)
					for j := range queues {
						values[j] = queues[j].PopFront()
					}
					sub.OnNext(zipper(values...))
					checkDone()
				case KindError:
					sub.OnError(event.Err)
				case KindComplete:
					done[index] = true
					checkDone()
				}
			})
		}
	})
}

// CombineLatest 每个源都至少发射过一次后，任一源发射时组合各源的最新值
// 全部源完成时完成
func CombineLatest(sources []Observable, combiner Combiner) Observable {
	return NewObservable(func(sub *Subscriber) {
		n := len(sources)
		if n == 0 {
			sub.OnComplete()
			return
		}

		latest := make([]interface{}, n)
		has := make([]bool, n)
		ready := 0
		remaining := n

		for i, source := range sources {
			if sub.IsDisposed() {
				return
			}
			index := i
			subscribeChild(sub, source, func(event Event) {
				switch event.Kind {
				case KindNext:
					if !has[index] {
						has[index] = true
						ready++
					}
					latest[index] = event.Value
					if ready == n {
						values := make([]interface{}, n)
						copy(values, latest)
						sub.OnNext(combiner(values...))
					}
				case KindError:
					sub.OnError(event.Err)
				case KindComplete:
					remaining--
					if remaining == 0 {
						sub.OnComplete()
					}
				}
			})
		}
	})
}

// Amb 订阅全部源，最先发射任意事件的源胜出，其余源立即被取消
func Amb(sources ...Observable) Observable {
	return NewObservable(func(sub *Subscriber) {
		if len(sources) == 0 {
			sub.OnComplete()
			return
		}

		winner := -1
		children := make([]*Subscriber, len(sources))
		for i, source := range sources {
			if winner >= 0 || sub.IsDisposed() {
				return
			}
			index := i
			children[index] = subscribeChild(sub, source, func(event Event) {
				if winner == -1 {
					winner = index
					for j, child := range children {
						if j != index && child != nil {
							child.Dispose()
						}
					}
				}
				if winner == index {
					sub.Emit(event)
				}
			})
		}
	})
}

// ============================================================================
// 组合操作符方法
// ============================================================================

// Merge 与其他序列合并
func (o *observableImpl) Merge(others ...Observable) Observable {
	return Merge(append([]Observable{o}, others...)...)
}

// Concat 在当前序列完成后依次连接其他序列
func (o *observableImpl) Concat(others ...Observable) Observable {
	return Concat(append([]Observable{o}, others...)...)
}

// Zip 与另一个序列按顺序配对
func (o *observableImpl) Zip(other Observable, zipper func(interface{}, interface{}) interface{}) Observable {
	return Zip([]Observable{o, other}, func(values ...interface{}) interface{} {
		return zipper(values[0], values[1])
	})
}

// CombineLatest 与另一个序列组合最新值
func (o *observableImpl) CombineLatest(other Observable, combiner func(interface{}, interface{}) interface{}) Observable {
	return CombineLatest([]Observable{o, other}, func(values ...interface{}) interface{} {
		return combiner(values[0], values[1])
	})
}

// Amb 与其他序列竞争
func (o *observableImpl) Amb(others ...Observable) Observable {
	return Amb(append([]Observable{o}, others...)...)
}

// StartWith 订阅上游之前先同步发射给定的值
func (o *observableImpl) StartWith(values ...interface{}) Observable {
	return NewObservable(func(sub *Subscriber) {
		for _, value := range values {
			if sub.IsDisposed() {
				return
			}
			sub.OnNext(value)
		}
		if sub.IsDisposed() {
			return
		}
		subscribeChild(sub, o, sub.Emit)
	})
}

// WithLatestFrom 源发射时与 other 的最新值组合；other 尚未发射时丢弃源的值
// combiner 为 nil 时直接发射 other 的最新值
func (o *observableImpl) WithLatestFrom(other Observable, combiner func(interface{}, interface{}) interface{}) Observable {
	return NewObservable(func(sub *Subscriber) {
		var latest interface{}
		hasLatest := false

		subscribeChild(sub, other, func(event Event) {
			switch event.Kind {
			case KindNext:
				latest = event.Value
				hasLatest = true
			case KindError:
				sub.OnError(event.Err)
			}
		})
		if sub.IsDisposed() {
			return
		}

		subscribeChild(sub, o, func(event Event) {
			if event.Kind != KindNext {
				sub.Emit(event)
				return
			}
			if !hasLatest {
				return
			}
			if combiner == nil {
				sub.OnNext(latest)
				return
			}
			sub.OnNext(combiner(event.Value, latest))
		})
	})
}

// Sample trigger 每次发射时发射源的最新值，自上次采样以来没有新值则不发射
// trigger 完成时先发射未采样的值再完成
func (o *observableImpl) Sample(trigger Observable) Observable {
	return NewObservable(func(sub *Subscriber) {
		var latest interface{}
		hasNew := false

		flush := func() {
			if hasNew {
				hasNew = false
				sub.OnNext(latest)
			}
		}

		subscribeChild(sub, o, func(event Event) {
			if event.Kind != KindNext {
				sub.Emit(event)
				return
			}
			latest = event.Value
			hasNew = true
		})
		if sub.IsDisposed() {
			return
		}

		subscribeChild(sub, trigger, func(event Event) {
			switch event.Kind {
			case KindNext:
				flush()
			case KindError:
				sub.OnError(event.Err)
			case KindComplete:
				flush()
				sub.OnComplete()
			}
		})
	})
}
