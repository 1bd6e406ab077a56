// Higher-order operators for rxlite
// 高阶操作符实现，包含FlatMap, FlatMapLatest, ConcatMap, SwitchLatest, MergeAll
package rxlite

import (
	"github.com/gammazero/deque"
)

// ============================================================================
// 高阶操作符实现
// ============================================================================

// FlatMap 将每个值映射为 Observable 并同时订阅全部内部序列，合并其输出
// 已订阅的内部序列在外部订阅存续期间不会被取消
func (o *observableImpl) FlatMap(selector func(interface{}) Observable) Observable {
	return o.mergeMap(func(value interface{}) (Observable, error) {
		return selector(value), nil
	})
}

// MergeAll 合并 Observable 的 Observable
func (o *observableImpl) MergeAll() Observable {
	return o.mergeMap(func(value interface{}) (Observable, error) {
		return asObservable("MergeAll", value)
	})
}

// FlatMapLatest 只订阅最新的内部序列，新值到来时先取消上一个内部订阅
func (o *observableImpl) FlatMapLatest(selector func(interface{}) Observable) Observable {
	return o.switchMap(func(value interface{}) (Observable, error) {
		return selector(value), nil
	})
}

// SwitchLatest 对 Observable 的 Observable 只订阅最新的一个
func (o *observableImpl) SwitchLatest() Observable {
	return o.switchMap(func(value interface{}) (Observable, error) {
		return asObservable("SwitchLatest", value)
	})
}

// ConcatMap 将每个值映射为 Observable，按顺序逐个订阅，前一个完成后才订阅下一个
func (o *observableImpl) ConcatMap(selector func(interface{}) Observable) Observable {
	return NewObservable(func(sub *Subscriber) {
		serial := NewSerialDisposable()
		sub.Add(serial)

		var pending deque.Deque[Observable]
		active := false
		draining := false
		outerDone := false

		var drain func()
		drain = func() {
			draining = true
			defer func() { draining = false }()

			for !active && !sub.IsDisposed() {
				if pending.Len() == 0 {
					if outerDone {
						sub.OnComplete()
					}
					return
				}

				active = true
				subscribeDetached(pending.PopFront(), func(event Event) {
					switch event.Kind {
					case KindNext:
						sub.OnNext(event.Value)
					case KindError:
						sub.OnError(event.Err)
					case KindComplete:
						active = false
						if !draining {
							drain()
						}
					}
				}, serial.hold)
			}
		}

		subscribeChild(sub, o, func(event Event) {
			switch event.Kind {
			case KindNext:
				pending.PushBack(selector(event.Value))
			case KindError:
				sub.OnError(event.Err)
				return
			case KindComplete:
				outerDone = true
			}
			if !active && !draining {
				drain()
			}
		})
	})
}

// mergeMap FlatMap 与 MergeAll 的共同实现
func (o *observableImpl) mergeMap(selector func(interface{}) (Observable, error)) Observable {
	return NewObservable(func(sub *Subscriber) {
		inners := NewCompositeDisposable()
		sub.Add(inners)

		active := 0
		outerDone := false

		subscribeChild(sub, o, func(event Event) {
			switch event.Kind {
			case KindNext:
				inner, err := selector(event.Value)
				if err != nil {
					sub.OnError(err)
					return
				}

				active++
				var child *Subscriber
				subscribeDetached(inner, func(innerEvent Event) {
					switch innerEvent.Kind {
					case KindNext:
						sub.OnNext(innerEvent.Value)
					case KindError:
						sub.OnError(innerEvent.Err)
					case KindComplete:
						active--
						inners.Remove(child)
						if outerDone && active == 0 {
							sub.OnComplete()
						}
					}
				}, func(c *Subscriber) {
					child = c
					inners.Add(c)
				})
			case KindError:
				sub.OnError(event.Err)
			case KindComplete:
				outerDone = true
				if active == 0 {
					sub.OnComplete()
				}
			}
		})
	})
}

// switchMap FlatMapLatest 与 SwitchLatest 的共同实现
func (o *observableImpl) switchMap(selector func(interface{}) (Observable, error)) Observable {
	return NewObservable(func(sub *Subscriber) {
		serial := NewSerialDisposable()
		sub.Add(serial)

		generation := 0
		innerActive := false
		outerDone := false

		subscribeChild(sub, o, func(event Event) {
			switch event.Kind {
			case KindNext:
				inner, err := selector(event.Value)
				if err != nil {
					sub.OnError(err)
					return
				}

				generation++
				id := generation
				serial.Set(nil)
				innerActive = true

				subscribeDetached(inner, func(innerEvent Event) {
					if id != generation {
						return
					}
					switch innerEvent.Kind {
					case KindNext:
						sub.OnNext(innerEvent.Value)
					case KindError:
						sub.OnError(innerEvent.Err)
					case KindComplete:
						innerActive = false
						if outerDone {
							sub.OnComplete()
						}
					}
				}, serial.hold)
			case KindError:
				sub.OnError(event.Err)
			case KindComplete:
				outerDone = true
				if !innerActive {
					sub.OnComplete()
				}
			}
		})
	})
}

func asObservable(operator string, value interface{}) (Observable, error) {
	observable, ok := value.(Observable)
	if !ok {
		return nil, unexpectedType(operator, "Observable", value)
	}
	return observable, nil
}
