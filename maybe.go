// Maybe implementation for rxlite
// 可能为空的单值序列：成功发射一个值、直接完成或以错误终止
package rxlite

// ============================================================================
// Maybe 接口
// ============================================================================

// Maybe 产生零个或一个值的序列
type Maybe interface {
	// Subscribe 订阅，任意回调可为 nil
	Subscribe(onSuccess OnNext, onError OnError, onComplete OnComplete) Disposable
	Map(transformer Transformer) Maybe
	Filter(predicate Predicate) Maybe
	// DefaultIfEmpty 为空时以 defaultValue 成功
	DefaultIfEmpty(defaultValue interface{}) Single
	AsObservable() Observable
}

// MaybeEmitter Maybe 生产者的发射接口
type MaybeEmitter interface {
	OnSuccess(value interface{})
	OnError(err error)
	OnComplete()
	IsDisposed() bool
}

// ============================================================================
// Maybe 实现
// ============================================================================

// maybeImpl Maybe的核心实现
type maybeImpl struct {
	source Observable
}

type maybeEmitter struct {
	singleEmitter
}

func (e maybeEmitter) OnComplete() {
	e.sub.OnComplete()
}

// NewMaybe 创建新的Maybe，factory 在每次订阅时调用一次
func NewMaybe(factory func(emitter MaybeEmitter) Disposable) Maybe {
	return &maybeImpl{source: NewObservable(func(sub *Subscriber) {
		sub.Add(factory(maybeEmitter{singleEmitter{sub: sub}}))
	})}
}

// MaybeJust 创建发射指定值的Maybe
func MaybeJust(value interface{}) Maybe {
	return &maybeImpl{source: Just(value)}
}

// MaybeEmpty 创建直接完成的Maybe
func MaybeEmpty() Maybe {
	return &maybeImpl{source: Empty()}
}

// MaybeError 创建以错误终止的Maybe
func MaybeError(err error) Maybe {
	return &maybeImpl{source: Error(err)}
}

// MaybeFromObservable 取源的第一个值；源为空时直接完成
func MaybeFromObservable(observable Observable) Maybe {
	return &maybeImpl{source: observable.Take(1)}
}

// Subscribe 订阅
func (m *maybeImpl) Subscribe(onSuccess OnNext, onError OnError, onComplete OnComplete) Disposable {
	received := false
	return m.source.SubscribeWithCallbacks(func(value interface{}) {
		received = true
		if onSuccess != nil {
			onSuccess(value)
		}
	}, onError, func() {
		if !received && onComplete != nil {
			onComplete()
		}
	})
}

// Map 转换操作符
func (m *maybeImpl) Map(transformer Transformer) Maybe {
	return &maybeImpl{source: m.source.Map(transformer)}
}

// Filter 值不满足谓词时变为空
func (m *maybeImpl) Filter(predicate Predicate) Maybe {
	return &maybeImpl{source: m.source.Filter(predicate)}
}

// DefaultIfEmpty 为空时以 defaultValue 成功
func (m *maybeImpl) DefaultIfEmpty(defaultValue interface{}) Single {
	source := m.source
	return &singleImpl{source: NewObservable(func(sub *Subscriber) {
		received := false
		subscribeChild(sub, source, func(event Event) {
			if event.Kind == KindNext {
				received = true
			}
			if event.Kind == KindComplete && !received {
				sub.OnNext(defaultValue)
			}
			sub.Emit(event)
		})
	})}
}

// AsObservable 转换为Observable
func (m *maybeImpl) AsObservable() Observable {
	return m.source
}
