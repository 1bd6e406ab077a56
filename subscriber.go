// Subscriber implementation for rxlite
// 每个订阅对应一个 Subscriber：保证终止事件之后不再投递，持有并释放订阅所拥有的资源
package rxlite

import (
	"sync"

	"go.uber.org/atomic"
)

// ============================================================================
// Emitter 接口
// ============================================================================

// Emitter 生产者向订阅发射事件的接口
type Emitter interface {
	// OnNext 发射下一个值
	OnNext(value interface{})
	// OnError 以错误终止
	OnError(err error)
	// OnComplete 正常完成
	OnComplete()
	// IsDisposed 订阅已终止或已释放时返回 true，生产者应据此停止生产
	IsDisposed() bool
}

// ============================================================================
// Subscriber 实现
// ============================================================================

// Subscriber 单个订阅的事件接收端
type Subscriber struct {
	observer  Observer
	stopped   atomic.Bool
	disposed  atomic.Bool
	mu        sync.Mutex
	resources []Disposable
}

var _ Emitter = (*Subscriber)(nil)
var _ Disposable = (*Subscriber)(nil)

func newSubscriber(observer Observer) *Subscriber {
	if observer == nil {
		observer = func(Event) {}
	}
	return &Subscriber{observer: observer}
}

// OnNext 发射下一个值
func (s *Subscriber) OnNext(value interface{}) {
	if s.IsDisposed() {
		return
	}
	s.observer(NextEvent(value))
}

// OnError 以错误终止订阅并释放其资源
func (s *Subscriber) OnError(err error) {
	if s.disposed.Load() || !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.observer(ErrorEvent(err))
	s.Dispose()
}

// OnComplete 正常完成订阅并释放其资源
func (s *Subscriber) OnComplete() {
	if s.disposed.Load() || !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.observer(CompleteEvent())
	s.Dispose()
}

// Emit 按事件种类分发
func (s *Subscriber) Emit(event Event) {
	switch event.Kind {
	case KindNext:
		s.OnNext(event.Value)
	case KindError:
		s.OnError(event.Err)
	case KindComplete:
		s.OnComplete()
	}
}

// IsDisposed 订阅已终止或已释放
func (s *Subscriber) IsDisposed() bool {
	return s.stopped.Load() || s.disposed.Load()
}

// Add 将资源绑定到订阅生命周期；订阅已释放时立即释放该资源
func (s *Subscriber) Add(disposable Disposable) {
	if disposable == nil {
		return
	}

	s.mu.Lock()
	if s.disposed.Load() {
		s.mu.Unlock()
		disposable.Dispose()
		return
	}
	s.resources = append(s.resources, disposable)
	s.mu.Unlock()
}

// Dispose 取消订阅，按添加顺序释放资源
func (s *Subscriber) Dispose() {
	s.mu.Lock()
	if !s.disposed.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return
	}
	resources := s.resources
	s.resources = nil
	s.mu.Unlock()

	for _, resource := range resources {
		resource.Dispose()
	}
}

// subscribeChild 创建绑定到 parent 生命周期的上游订阅
// child 在生产开始前已挂到 parent 上，同步源也能及时观察到下游的取消
func subscribeChild(parent *Subscriber, source Observable, observer Observer) *Subscriber {
	child := newSubscriber(observer)
	parent.Add(child)
	source.subscribeWith(child)
	return child
}

// subscribeDetached 创建独立的订阅，由调用方自行管理生命周期
// register 在生产开始前调用，用于把 child 放入 Serial/Composite 容器
func subscribeDetached(source Observable, observer Observer, register func(child *Subscriber)) *Subscriber {
	child := newSubscriber(observer)
	if register != nil {
		register(child)
	}
	source.subscribeWith(child)
	return child
}
