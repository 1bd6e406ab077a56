// Single implementation for rxlite
// 单值序列的实现，只会成功发射一个值或以错误终止
package rxlite

// ============================================================================
// Single 接口
// ============================================================================

// Single 恰好产生一个值或一个错误的序列
type Single interface {
	// Subscribe 订阅单值观察者，任意回调可为 nil
	Subscribe(onSuccess OnNext, onError OnError) Disposable
	// Map 转换成功值
	Map(transformer Transformer) Single
	// FlatMap 用成功值产生下一个 Single
	FlatMap(selector func(interface{}) Single) Single
	// AsObservable 转换为发射一个值后完成的 Observable
	AsObservable() Observable
}

// SingleEmitter Single 生产者的发射接口
type SingleEmitter interface {
	OnSuccess(value interface{})
	OnError(err error)
	IsDisposed() bool
}

// ============================================================================
// Single 实现
// ============================================================================

// singleImpl Single的核心实现，内部复用 Observable 的订阅模型
type singleImpl struct {
	source Observable
}

// singleEmitter 把成功值翻译为值加完成
type singleEmitter struct {
	sub *Subscriber
}

func (e singleEmitter) OnSuccess(value interface{}) {
	e.sub.OnNext(value)
	e.sub.OnComplete()
}

func (e singleEmitter) OnError(err error) {
	e.sub.OnError(err)
}

func (e singleEmitter) IsDisposed() bool {
	return e.sub.IsDisposed()
}

// NewSingle 创建新的Single，factory 在每次订阅时调用一次
func NewSingle(factory func(emitter SingleEmitter) Disposable) Single {
	return &singleImpl{source: NewObservable(func(sub *Subscriber) {
		sub.Add(factory(singleEmitter{sub: sub}))
	})}
}

// SingleJust 创建发射指定值的Single
func SingleJust(value interface{}) Single {
	return &singleImpl{source: Just(value)}
}

// SingleError 创建以错误终止的Single
func SingleError(err error) Single {
	return &singleImpl{source: Error(err)}
}

// Subscribe 订阅单值观察者
func (s *singleImpl) Subscribe(onSuccess OnNext, onError OnError) Disposable {
	return s.source.SubscribeWithCallbacks(onSuccess, onError, nil)
}

// Map 转换操作符
func (s *singleImpl) Map(transformer Transformer) Single {
	return &singleImpl{source: s.source.Map(transformer)}
}

// FlatMap 用成功值产生下一个 Single
func (s *singleImpl) FlatMap(selector func(interface{}) Single) Single {
	return &singleImpl{source: s.source.FlatMapLatest(func(value interface{}) Observable {
		return selector(value).AsObservable()
	})}
}

// AsObservable 转换为Observable
func (s *singleImpl) AsObservable() Observable {
	return s.source
}

// AsSingle 要求源恰好发射一个值：为空时返回 ErrNoElements，多于一个时返回 ErrMoreThanOneElement
func (o *observableImpl) AsSingle() Single {
	return &singleImpl{source: NewObservable(func(sub *Subscriber) {
		var value interface{}
		has := false
		subscribeChild(sub, o, func(event Event) {
			switch event.Kind {
			case KindNext:
				if has {
					sub.OnError(ErrMoreThanOneElement)
					return
				}
				value = event.Value
				has = true
			case KindError:
				sub.OnError(event.Err)
			case KindComplete:
				if !has {
					sub.OnError(ErrNoElements)
					return
				}
				sub.OnNext(value)
				sub.OnComplete()
			}
		})
	})}
}
