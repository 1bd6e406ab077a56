// ConnectableObservable implementation for rxlite
// 可连接的多播序列：订阅者注册到内部 Subject，Connect 时才对源建立唯一的上游订阅
package rxlite

import (
	"sync"
)

// ============================================================================
// ConnectableObservable 接口
// ============================================================================

// ConnectableObservable 可连接的 Observable
type ConnectableObservable interface {
	Observable

	// Connect 建立对源的订阅；已连接时返回现有连接，不会产生重复的上游订阅
	Connect() Disposable
	// IsConnected 检查是否已连接
	IsConnected() bool
	// RefCount 第一个订阅者到来时连接，最后一个订阅者离开时断开
	RefCount() Observable
	// AutoConnect 订阅者数量达到 subscriberCount 时自动连接，之后不再断开
	AutoConnect(subscriberCount int) Observable
}

// ============================================================================
// ConnectableObservable 实现
// ============================================================================

// connectableObservableImpl ConnectableObservable的核心实现
type connectableObservableImpl struct {
	*observableImpl

	source     Observable
	newSubject func() Subject
	// resetOnTerminate 源终止后丢弃 Subject 与连接，下一个订阅者会重新连接源
	resetOnTerminate bool

	mu         sync.Mutex
	subject    Subject
	connection *connection
}

// connection 一次连接对应的上游订阅
type connection struct {
	parent   *connectableObservableImpl
	upstream *Subscriber
}

func (c *connection) Dispose() {
	c.parent.disconnect(c)
}

func (c *connection) IsDisposed() bool {
	return c.upstream.IsDisposed()
}

// Multicast 使用 subjectFactory 创建的 Subject 进行多播
func Multicast(source Observable, subjectFactory func() Subject) ConnectableObservable {
	return newConnectable(source, subjectFactory, false)
}

func newConnectable(source Observable, subjectFactory func() Subject, resetOnTerminate bool) *connectableObservableImpl {
	co := &connectableObservableImpl{
		source:           source,
		newSubject:       subjectFactory,
		resetOnTerminate: resetOnTerminate,
	}
	co.observableImpl = newObservable(co.register)
	return co
}

// register 把订阅者注册到当前 Subject
func (co *connectableObservableImpl) register(sub *Subscriber) {
	co.currentSubject().subscribeWith(sub)
}

func (co *connectableObservableImpl) currentSubject() Subject {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.subject == nil {
		co.subject = co.newSubject()
	}
	return co.subject
}

// Connect 开始向订阅者转发源的事件
func (co *connectableObservableImpl) Connect() Disposable {
	co.mu.Lock()
	if co.connection != nil {
		conn := co.connection
		co.mu.Unlock()
		return conn
	}
	if co.subject == nil {
		co.subject = co.newSubject()
	}
	forward := co.subject.AsObserver()
	conn := &connection{parent: co}
	conn.upstream = newSubscriber(func(event Event) {
		forward(event)
		if event.IsTerminal() && co.resetOnTerminate {
			co.reset(conn)
		}
	})
	co.connection = conn
	co.mu.Unlock()

	co.source.subscribeWith(conn.upstream)
	return conn
}

// IsConnected 检查是否已连接
func (co *connectableObservableImpl) IsConnected() bool {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.connection != nil
}

func (co *connectableObservableImpl) disconnect(conn *connection) {
	co.mu.Lock()
	if co.connection == conn {
		co.connection = nil
	}
	co.mu.Unlock()

	conn.upstream.Dispose()
}

func (co *connectableObservableImpl) reset(conn *connection) {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.connection == conn {
		co.connection = nil
		co.subject = nil
	}
}

// RefCount 返回一个自动连接/断开的Observable
func (co *connectableObservableImpl) RefCount() Observable {
	var mu sync.Mutex
	count := 0
	var conn Disposable

	return NewObservable(func(sub *Subscriber) {
		mu.Lock()
		count++
		first := count == 1
		mu.Unlock()

		sub.Add(NewBaseDisposable(func() {
			mu.Lock()
			count--
			var last Disposable
			if count == 0 {
				last = conn
				conn = nil
			}
			mu.Unlock()

			if last != nil {
				last.Dispose()
			}
		}))

		co.register(sub)
		if !first {
			return
		}

		connected := co.Connect()
		mu.Lock()
		if count == 0 {
			mu.Unlock()
			connected.Dispose()
			return
		}
		conn = connected
		mu.Unlock()
	})
}

// AutoConnect 订阅者数量达到 subscriberCount 时自动连接
func (co *connectableObservableImpl) AutoConnect(subscriberCount int) Observable {
	if subscriberCount < 1 {
		subscriberCount = 1
	}

	var mu sync.Mutex
	count := 0

	return NewObservable(func(sub *Subscriber) {
		co.register(sub)

		mu.Lock()
		count++
		shouldConnect := count == subscriberCount
		mu.Unlock()

		if shouldConnect {
			co.Connect()
		}
	})
}

// ============================================================================
// 多播操作符
// ============================================================================

// Publish 转换为不重放的可连接序列
func (o *observableImpl) Publish() ConnectableObservable {
	return newConnectable(o, func() Subject { return NewPublishSubject() }, false)
}

// Replay 转换为可连接序列，从连接时刻起缓冲最近 bufferSize 个值，后来的订阅者先收到缓冲值
func (o *observableImpl) Replay(bufferSize int) ConnectableObservable {
	return newConnectable(o, func() Subject { return NewReplaySubject(bufferSize) }, false)
}

// ReplayAll 转换为缓冲全部值的可连接序列
func (o *observableImpl) ReplayAll() ConnectableObservable {
	return newConnectable(o, func() Subject { return NewReplayAllSubject() }, false)
}

// Share 多播并按引用计数自动连接；源终止后新的订阅者会重新订阅源
func (o *observableImpl) Share() Observable {
	return newConnectable(o, func() Subject { return NewPublishSubject() }, true).RefCount()
}
