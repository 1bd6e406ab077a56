// Connectable observable tests for rxlite
// Publish、Replay、RefCount、AutoConnect、Share 与 Multicast 测试
package rxlite

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// countingSource 记录订阅次数的冷序列
func countingSource(values ...interface{}) (Observable, *int) {
	subscriptions := 0
	return Defer(func() Observable {
		subscriptions++
		return FromSlice(values)
	}), &subscriptions
}

func TestPublish(t *testing.T) {
	t.Run("Connect 之前不订阅源", func(t *testing.T) {
		source, subscriptions := countingSource(1, 2)
		published := source.Publish()

		first := collect(published)
		second := collect(published)
		assert.Equal(t, 0, *subscriptions)
		assert.False(t, published.IsConnected())

		published.Connect()
		assert.Equal(t, 1, *subscriptions)
		assert.Equal(t, ints(1, 2), first.values())
		assert.Equal(t, ints(1, 2), second.values())
		assert.True(t, first.completed())
	})

	t.Run("重复 Connect 返回同一连接", func(t *testing.T) {
		source := NewPublishSubject()
		published := source.Publish()

		first := published.Connect()
		second := published.Connect()
		assert.Same(t, first, second)
		assert.Equal(t, 1, source.ObserverCount())
	})

	t.Run("断开连接取消上游", func(t *testing.T) {
		source := NewPublishSubject()
		published := source.Publish()
		r := collect(published)

		connection := published.Connect()
		source.OnNext(1)
		connection.Dispose()
		source.OnNext(2)

		assert.Equal(t, ints(1), r.values())
		assert.False(t, source.HasObservers())
		assert.False(t, published.IsConnected())
		assert.True(t, connection.IsDisposed())
	})
}

func TestConcurrentConnect(t *testing.T) {
	for i := 0; i < 200; i++ {
		source := NewPublishSubject()
		published := source.Publish()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			published.Connect()
		}()
		go func() {
			defer wg.Done()
			published.Connect().Dispose()
		}()
		wg.Wait()

		if published.IsConnected() {
			assert.Equal(t, 1, source.ObserverCount())
		} else {
			assert.Equal(t, 0, source.ObserverCount())
		}
	}
}

func TestReplayConnectable(t *testing.T) {
	s := NewTestScheduler()
	source := Create(func(emitter Emitter) Disposable {
		tasks := NewCompositeDisposable()
		for i := 1; i <= 4; i++ {
			value := i
			tasks.Add(s.ScheduleAt(time.Duration(i)*time.Second, func() { emitter.OnNext(value) }))
		}
		return tasks
	})

	replayed := source.Replay(1)
	replayed.Connect()

	first := newRecorder()
	replayed.Subscribe(first.observer())
	late := newRecorder()
	s.ScheduleAt(3*time.Second, func() { replayed.Subscribe(late.observer()) })

	s.AdvanceTo(5 * time.Second)
	assert.Equal(t, ints(1, 2, 3, 4), first.values())
	assert.Equal(t, ints(3, 4), late.values())

	t.Run("ReplayAll", func(t *testing.T) {
		all := Just(1, 2, 3).ReplayAll()
		all.Connect()
		assert.Equal(t, ints(1, 2, 3), collect(all).values())
	})
}

func TestRefCount(t *testing.T) {
	t.Run("第一个订阅者连接，最后一个离开时断开", func(t *testing.T) {
		source := NewPublishSubject()
		shared := source.Publish().RefCount()

		first := newRecorder()
		second := newRecorder()
		a := shared.Subscribe(first.observer())
		b := shared.Subscribe(second.observer())
		assert.Equal(t, 1, source.ObserverCount())

		source.OnNext(1)
		a.Dispose()
		assert.True(t, source.HasObservers())
		source.OnNext(2)
		b.Dispose()
		assert.False(t, source.HasObservers())

		assert.Equal(t, ints(1), first.values())
		assert.Equal(t, ints(1, 2), second.values())
	})

	t.Run("重新订阅时再次连接", func(t *testing.T) {
		source := NewPublishSubject()
		shared := source.Publish().RefCount()

		shared.Subscribe(nil).Dispose()
		assert.False(t, source.HasObservers())

		r := collect(shared)
		source.OnNext("again")
		assert.Equal(t, []interface{}{"again"}, r.values())
	})
}

func TestAutoConnect(t *testing.T) {
	source, subscriptions := countingSource(1, 2)
	auto := source.Publish().AutoConnect(2)

	first := collect(auto)
	assert.Equal(t, 0, *subscriptions)

	second := collect(auto)
	assert.Equal(t, 1, *subscriptions)
	assert.Equal(t, ints(1, 2), first.values())
	assert.Equal(t, ints(1, 2), second.values())
}

func TestShare(t *testing.T) {
	t.Run("并发订阅者共享一次订阅", func(t *testing.T) {
		subscriptions := 0
		source := Create(func(emitter Emitter) Disposable {
			subscriptions++
			emitter.OnNext(subscriptions)
			return NewBaseDisposable(nil)
		}).Share()

		first := collect(source)
		second := collect(source)
		assert.Equal(t, 1, subscriptions)
		assert.Equal(t, ints(1), first.values())
		assert.Empty(t, second.values())
	})

	t.Run("源完成后重新订阅源", func(t *testing.T) {
		source, subscriptions := countingSource("a")
		shared := source.Share()

		assert.Equal(t, []interface{}{"a"}, collect(shared).values())
		assert.Equal(t, []interface{}{"a"}, collect(shared).values())
		assert.Equal(t, 2, *subscriptions)
	})
}

func TestMulticast(t *testing.T) {
	source := NewPublishSubject()
	multicast := Multicast(source, func() Subject { return NewBehaviorSubject("seed") })

	r := collect(multicast)
	multicast.Connect()
	source.OnNext("live")

	assert.Equal(t, []interface{}{"seed", "live"}, r.values())
}
