// Observable implementation for rxlite
// Observable 核心接口与实现：每次订阅独立运行生产逻辑（冷序列）
package rxlite

import (
	"reflect"
	"time"

	"github.com/rs/zerolog"
)

// ============================================================================
// Observable 核心接口
// ============================================================================

// Observable 可观察序列的核心接口
type Observable interface {
	// Subscribe 订阅观察者，返回的 Disposable 用于取消订阅
	Subscribe(observer Observer) Disposable

	// SubscribeWithCallbacks 使用回调函数订阅，任意回调可为 nil
	SubscribeWithCallbacks(onNext OnNext, onError OnError, onComplete OnComplete) Disposable

	// 过滤操作符
	Filter(predicate Predicate) Observable
	Skip(count int) Observable
	SkipWhile(predicate Predicate) Observable
	SkipUntil(trigger Observable) Observable
	Take(count int) Observable
	TakeWhile(predicate Predicate) Observable
	TakeUntil(trigger Observable) Observable
	DistinctUntilChanged() Observable
	DistinctUntilChangedWith(equal func(a, b interface{}) bool) Observable
	IgnoreElements() Observable
	ElementAt(index int) Observable

	// 转换操作符
	Map(transformer Transformer) Observable
	Enumerated() Observable
	FlatMap(selector func(interface{}) Observable) Observable
	FlatMapLatest(selector func(interface{}) Observable) Observable
	ConcatMap(selector func(interface{}) Observable) Observable
	SwitchLatest() Observable
	MergeAll() Observable
	Materialize() Observable
	Dematerialize() Observable

	// 聚合操作符
	Scan(seed interface{}, reducer Reducer) Observable
	Reduce(seed interface{}, reducer Reducer) Observable
	ToArray() Observable

	// 组合操作符
	StartWith(values ...interface{}) Observable
	Concat(others ...Observable) Observable
	Merge(others ...Observable) Observable
	Zip(other Observable, zipper func(interface{}, interface{}) interface{}) Observable
	CombineLatest(other Observable, combiner func(interface{}, interface{}) interface{}) Observable
	WithLatestFrom(other Observable, combiner func(interface{}, interface{}) interface{}) Observable
	Sample(trigger Observable) Observable
	Amb(others ...Observable) Observable

	// 时间操作符
	Delay(duration time.Duration, scheduler Scheduler) Observable
	DelaySubscription(duration time.Duration, scheduler Scheduler) Observable
	Throttle(duration time.Duration, scheduler Scheduler) Observable
	Debounce(duration time.Duration, scheduler Scheduler) Observable
	Timeout(duration time.Duration, scheduler Scheduler) Observable
	Buffer(timeSpan time.Duration, count int, scheduler Scheduler) Observable
	Window(timeSpan time.Duration, count int, scheduler Scheduler) Observable
	ObserveOn(scheduler Scheduler) Observable
	SubscribeOn(scheduler Scheduler) Observable

	// 错误处理
	Catch(handler func(error) Observable) Observable
	CatchAndReturn(value interface{}) Observable
	Retry(count int) Observable

	// 副作用操作符
	DoOnNext(action OnNext) Observable
	DoOnError(action OnError) Observable
	DoOnComplete(action OnComplete) Observable
	DoOnTerminate(action func()) Observable
	DoOnEach(action func(Event)) Observable
	DoOnSubscribe(action func()) Observable
	DoOnDispose(action func()) Observable
	Debug(name string, logger zerolog.Logger) Observable

	// 多播支持
	Publish() ConnectableObservable
	Replay(bufferSize int) ConnectableObservable
	ReplayAll() ConnectableObservable
	Share() Observable

	// 转换为其他类型
	AsSingle() Single

	subscribeWith(sub *Subscriber)
}

// ============================================================================
// Observable 核心实现
// ============================================================================

// observableImpl Observable的核心实现
type observableImpl struct {
	produce func(sub *Subscriber)
}

// NewObservable 创建新的Observable，produce 在每次订阅时调用一次
func NewObservable(produce func(sub *Subscriber)) Observable {
	return newObservable(produce)
}

func newObservable(produce func(sub *Subscriber)) *observableImpl {
	return &observableImpl{produce: produce}
}

// Subscribe 订阅观察者
func (o *observableImpl) Subscribe(observer Observer) Disposable {
	sub := newSubscriber(observer)
	o.produce(sub)
	return sub
}

// SubscribeWithCallbacks 使用回调函数订阅
func (o *observableImpl) SubscribeWithCallbacks(onNext OnNext, onError OnError, onComplete OnComplete) Disposable {
	return o.Subscribe(NewObserver(onNext, onError, onComplete))
}

func (o *observableImpl) subscribeWith(sub *Subscriber) {
	o.produce(sub)
}

// ============================================================================
// 过滤操作符
// ============================================================================

// Filter 过滤操作符
func (o *observableImpl) Filter(predicate Predicate) Observable {
	return NewObservable(func(sub *Subscriber) {
		subscribeChild(sub, o, func(event Event) {
			if event.Kind == KindNext && !predicate(event.Value) {
				return
			}
			sub.Emit(event)
		})
	})
}

// Skip 跳过前N个值
func (o *observableImpl) Skip(count int) Observable {
	return NewObservable(func(sub *Subscriber) {
		skipped := 0
		subscribeChild(sub, o, func(event Event) {
			if event.Kind == KindNext && skipped < count {
				skipped++
				return
			}
			sub.Emit(event)
		})
	})
}

// SkipWhile 谓词为真时跳过；一旦为假便不再判断
func (o *observableImpl) SkipWhile(predicate Predicate) Observable {
	return NewObservable(func(sub *Subscriber) {
		open := false
		subscribeChild(sub, o, func(event Event) {
			if event.Kind == KindNext && !open {
				if predicate(event.Value) {
					return
				}
				open = true
			}
			sub.Emit(event)
		})
	})
}

// SkipUntil 在 trigger 首次发射值之前丢弃源的值
func (o *observableImpl) SkipUntil(trigger Observable) Observable {
	return NewObservable(func(sub *Subscriber) {
		open := false
		var gate *Subscriber
		gate = subscribeChild(sub, trigger, func(event Event) {
			switch event.Kind {
			case KindNext:
				open = true
				if gate != nil {
					gate.Dispose()
				}
			case KindError:
				sub.OnError(event.Err)
			}
		})
		if open {
			gate.Dispose()
		}
		if sub.IsDisposed() {
			return
		}

		subscribeChild(sub, o, func(event Event) {
			if event.Kind == KindNext && !open {
				return
			}
			sub.Emit(event)
		})
	})
}

// Take 取前N个值，第N个值之后立即取消上游并完成
func (o *observableImpl) Take(count int) Observable {
	return NewObservable(func(sub *Subscriber) {
		if count <= 0 {
			sub.OnComplete()
			return
		}

		taken := 0
		subscribeChild(sub, o, func(event Event) {
			if event.Kind != KindNext {
				sub.Emit(event)
				return
			}
			if taken >= count {
				return
			}
			taken++
			sub.OnNext(event.Value)
			if taken == count {
				sub.OnComplete()
			}
		})
	})
}

// TakeWhile 谓词为真时透传，首次为假时完成
func (o *observableImpl) TakeWhile(predicate Predicate) Observable {
	return NewObservable(func(sub *Subscriber) {
		subscribeChild(sub, o, func(event Event) {
			if event.Kind == KindNext && !predicate(event.Value) {
				sub.OnComplete()
				return
			}
			sub.Emit(event)
		})
	})
}

// TakeUntil 透传源的事件，直到 trigger 首次发射值时完成
func (o *observableImpl) TakeUntil(trigger Observable) Observable {
	return NewObservable(func(sub *Subscriber) {
		subscribeChild(sub, trigger, func(event Event) {
			switch event.Kind {
			case KindNext:
				sub.OnComplete()
			case KindError:
				sub.OnError(event.Err)
			}
		})
		if sub.IsDisposed() {
			return
		}

		subscribeChild(sub, o, sub.Emit)
	})
}

// DistinctUntilChanged 抑制与上一个值结构相等的连续值
func (o *observableImpl) DistinctUntilChanged() Observable {
	return o.DistinctUntilChangedWith(reflect.DeepEqual)
}

// DistinctUntilChangedWith 使用自定义相等判断抑制连续重复值
func (o *observableImpl) DistinctUntilChangedWith(equal func(a, b interface{}) bool) Observable {
	return NewObservable(func(sub *Subscriber) {
		var last interface{}
		hasLast := false
		subscribeChild(sub, o, func(event Event) {
			if event.Kind == KindNext {
				if hasLast && equal(last, event.Value) {
					return
				}
				last = event.Value
				hasLast = true
			}
			sub.Emit(event)
		})
	})
}

// ============================================================================
// 转换操作符
// ============================================================================

// Map 转换操作符，转换函数返回错误时终止序列
func (o *observableImpl) Map(transformer Transformer) Observable {
	return NewObservable(func(sub *Subscriber) {
		subscribeChild(sub, o, func(event Event) {
			if event.Kind != KindNext {
				sub.Emit(event)
				return
			}

			result, err := transformer(event.Value)
			if err != nil {
				sub.OnError(err)
				return
			}
			sub.OnNext(result)
		})
	})
}
