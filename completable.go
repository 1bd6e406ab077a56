// Completable implementation for rxlite
// 只关心完成或失败、不产生值的序列
package rxlite

// ============================================================================
// Completable 接口
// ============================================================================

// Completable 只发射完成或错误
type Completable interface {
	// Subscribe 订阅，任意回调可为 nil
	Subscribe(onComplete OnComplete, onError OnError) Disposable
	// AndThen 完成后订阅 next
	AndThen(next Completable) Completable
	// AndThenObservable 完成后切换到 next
	AndThenObservable(next Observable) Observable
	AsObservable() Observable
}

// CompletableEmitter Completable 生产者的发射接口
type CompletableEmitter interface {
	OnComplete()
	OnError(err error)
	IsDisposed() bool
}

// ============================================================================
// Completable 实现
// ============================================================================

// completableImpl Completable的核心实现
type completableImpl struct {
	source Observable
}

// NewCompletable 创建新的Completable，factory 在每次订阅时调用一次
func NewCompletable(factory func(emitter CompletableEmitter) Disposable) Completable {
	return &completableImpl{source: NewObservable(func(sub *Subscriber) {
		sub.Add(factory(sub))
	})}
}

// CompletableComplete 创建立即完成的Completable
func CompletableComplete() Completable {
	return &completableImpl{source: Empty()}
}

// CompletableError 创建以错误终止的Completable
func CompletableError(err error) Completable {
	return &completableImpl{source: Error(err)}
}

// CompletableFromAction 订阅时执行 action，返回错误时失败
func CompletableFromAction(action func() error) Completable {
	return &completableImpl{source: NewObservable(func(sub *Subscriber) {
		if err := action(); err != nil {
			sub.OnError(err)
			return
		}
		sub.OnComplete()
	})}
}

// CompletableFromObservable 忽略源的全部值，只保留终止事件
func CompletableFromObservable(observable Observable) Completable {
	return &completableImpl{source: observable.IgnoreElements()}
}

// CompletableConcat 依次执行
func CompletableConcat(completables ...Completable) Completable {
	sources := make([]Observable, len(completables))
	for i, c := range completables {
		sources[i] = c.AsObservable()
	}
	return &completableImpl{source: Concat(sources...)}
}

// CompletableMerge 同时执行，全部完成时完成
func CompletableMerge(completables ...Completable) Completable {
	sources := make([]Observable, len(completables))
	for i, c := range completables {
		sources[i] = c.AsObservable()
	}
	return &completableImpl{source: Merge(sources...)}
}

// Subscribe 订阅
func (c *completableImpl) Subscribe(onComplete OnComplete, onError OnError) Disposable {
	return c.source.SubscribeWithCallbacks(nil, onError, onComplete)
}

// AndThen 完成后订阅 next
func (c *completableImpl) AndThen(next Completable) Completable {
	return &completableImpl{source: Concat(c.source, next.AsObservable())}
}

// AndThenObservable 完成后切换到 next
func (c *completableImpl) AndThenObservable(next Observable) Observable {
	return Concat(c.source, next)
}

// AsObservable 转换为Observable
func (c *completableImpl) AsObservable() Observable {
	return c.source
}
