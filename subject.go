// Subject implementations for rxlite
// 实现Subject系统，包括PublishSubject、BehaviorSubject、ReplaySubject
package rxlite

import (
	"sync"

	"github.com/gammazero/deque"
)

// ============================================================================
// Subject 接口
// ============================================================================

// Subject 同时是 Observable 和观察者
type Subject interface {
	Observable

	// OnNext 向所有当前订阅者广播值
	OnNext(value interface{})
	// OnError 以错误终止
	OnError(err error)
	// OnComplete 正常完成
	OnComplete()

	// AsObserver 以 Observer 形式暴露输入端
	AsObserver() Observer
	// AsObservable 隐藏输入端，只暴露 Observable
	AsObservable() Observable

	HasObservers() bool
	ObserverCount() int

	// Dispose 进入释放状态：丢弃观察者且不发送终止事件，新订阅者只收到 ErrDisposed
	Dispose()
	IsDisposed() bool
}

// ============================================================================
// 共享状态机
// ============================================================================

type subjectState int

const (
	subjectActive subjectState = iota
	subjectTerminated
	subjectDisposed
)

// replayBuffer 重放缓冲，limit 为0不保存，小于0不限长度
type replayBuffer struct {
	limit  int
	values deque.Deque[interface{}]
}

func (b *replayBuffer) add(value interface{}) {
	if b.limit == 0 {
		return
	}
	b.values.PushBack(value)
	for b.limit > 0 && b.values.Len() > b.limit {
		b.values.PopFront()
	}
}

func (b *replayBuffer) snapshot() []interface{} {
	values := make([]interface{}, b.values.Len())
	for i := range values {
		values[i] = b.values.At(i)
	}
	return values
}

func (b *replayBuffer) clear() {
	b.values.Clear()
}

// subjectCore 三种 Subject 的公共实现
type subjectCore struct {
	*observableImpl

	mu        sync.Mutex
	state     subjectState
	terminal  Event
	observers []*Subscriber
	buffer    replayBuffer
}

func newSubjectCore(bufferLimit int) *subjectCore {
	s := &subjectCore{buffer: replayBuffer{limit: bufferLimit}}
	s.observableImpl = newObservable(s.register)
	return s
}

// register 注册新订阅者：已释放时只收到 ErrDisposed，已终止时收到缓冲值与终止事件
func (s *subjectCore) register(sub *Subscriber) {
	s.mu.Lock()
	switch s.state {
	case subjectDisposed:
		s.mu.Unlock()
		sub.OnError(ErrDisposed)
		return
	case subjectTerminated:
		replay := s.buffer.snapshot()
		terminal := s.terminal
		s.mu.Unlock()
		for _, value := range replay {
			sub.OnNext(value)
		}
		sub.Emit(terminal)
		return
	}

	replay := s.buffer.snapshot()
	s.observers = append(s.observers, sub)
	s.mu.Unlock()

	sub.Add(NewBaseDisposable(func() { s.remove(sub) }))
	for _, value := range replay {
		sub.OnNext(value)
	}
}

func (s *subjectCore) remove(sub *Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, observer := range s.observers {
		if observer == sub {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// OnNext 向所有当前订阅者按注册顺序广播值
func (s *subjectCore) OnNext(value interface{}) {
	s.mu.Lock()
	if s.state != subjectActive {
		s.mu.Unlock()
		return
	}
	s.buffer.add(value)
	observers := append([]*Subscriber(nil), s.observers...)
	s.mu.Unlock()

	for _, observer := range observers {
		observer.OnNext(value)
	}
}

// OnError 以错误终止
func (s *subjectCore) OnError(err error) {
	s.terminate(ErrorEvent(err))
}

// OnComplete 正常完成
func (s *subjectCore) OnComplete() {
	s.terminate(CompleteEvent())
}

func (s *subjectCore) terminate(event Event) {
	s.mu.Lock()
	if s.state != subjectActive {
		s.mu.Unlock()
		return
	}
	s.state = subjectTerminated
	s.terminal = event
	observers := s.observers
	s.observers = nil
	s.mu.Unlock()

	for _, observer := range observers {
		observer.Emit(event)
	}
}

// AsObserver 以 Observer 形式暴露输入端
func (s *subjectCore) AsObserver() Observer {
	return func(event Event) {
		switch event.Kind {
		case KindNext:
			s.OnNext(event.Value)
		case KindError:
			s.OnError(event.Err)
		case KindComplete:
			s.OnComplete()
		}
	}
}

// AsObservable 隐藏输入端
func (s *subjectCore) AsObservable() Observable {
	return NewObservable(s.register)
}

// HasObservers 检查是否有观察者
func (s *subjectCore) HasObservers() bool {
	return s.ObserverCount() > 0
}

// ObserverCount 获取观察者数量
func (s *subjectCore) ObserverCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// Dispose 释放 Subject
func (s *subjectCore) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == subjectDisposed {
		return
	}
	s.state = subjectDisposed
	s.observers = nil
	s.buffer.clear()
}

// IsDisposed 检查是否已释放
func (s *subjectCore) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == subjectDisposed
}

// isTerminated 已完成或出错
func (s *subjectCore) isTerminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == subjectTerminated
}

// ============================================================================
// PublishSubject - 发布主题
// ============================================================================

// PublishSubject 发布主题，只向当前订阅者发送新的值
type PublishSubject struct {
	*subjectCore
}

var _ Subject = (*PublishSubject)(nil)

// NewPublishSubject 创建新的发布主题
func NewPublishSubject() *PublishSubject {
	return &PublishSubject{subjectCore: newSubjectCore(0)}
}

// ============================================================================
// BehaviorSubject - 行为主题
// ============================================================================

// BehaviorSubject 行为主题，新订阅者立即收到最近的值
type BehaviorSubject struct {
	*subjectCore
}

var _ Subject = (*BehaviorSubject)(nil)

// NewBehaviorSubject 创建带初始值的行为主题
func NewBehaviorSubject(initialValue interface{}) *BehaviorSubject {
	core := newSubjectCore(1)
	core.buffer.add(initialValue)
	return &BehaviorSubject{subjectCore: core}
}

// Value 返回当前值；已出错时返回该错误，已释放时返回 ErrDisposed
func (bs *BehaviorSubject) Value() (interface{}, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	switch {
	case bs.state == subjectDisposed:
		return nil, ErrDisposed
	case bs.state == subjectTerminated && bs.terminal.Kind == KindError:
		return nil, bs.terminal.Err
	}
	return bs.buffer.values.Back(), nil
}

// ============================================================================
// ReplaySubject - 重放主题
// ============================================================================

// ReplaySubject 重放主题，新订阅者按顺序收到最近 N 个值
type ReplaySubject struct {
	*subjectCore
	bufferSize int
}

var _ Subject = (*ReplaySubject)(nil)

// NewReplaySubject 创建缓冲最近 bufferSize 个值的重放主题
func NewReplaySubject(bufferSize int) *ReplaySubject {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return &ReplaySubject{subjectCore: newSubjectCore(bufferSize), bufferSize: bufferSize}
}

// NewReplayAllSubject 创建缓冲全部值的重放主题
func NewReplayAllSubject() *ReplaySubject {
	return &ReplaySubject{subjectCore: newSubjectCore(-1), bufferSize: -1}
}

// BufferSize 缓冲容量，-1 表示不限
func (rs *ReplaySubject) BufferSize() int {
	return rs.bufferSize
}
