// Disposable tests for rxlite
// 验证 BaseDisposable、CompositeDisposable、SerialDisposable 与 DisposeBag
package rxlite

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// BaseDisposable
// ============================================================================

func TestBaseDisposable(t *testing.T) {
	t.Run("动作只执行一次", func(t *testing.T) {
		calls := 0
		d := NewBaseDisposable(func() { calls++ })
		assert.False(t, d.IsDisposed())

		d.Dispose()
		d.Dispose()
		assert.True(t, d.IsDisposed())
		assert.Equal(t, 1, calls)
	})

	t.Run("空动作", func(t *testing.T) {
		d := NewBaseDisposable(nil)
		d.Dispose()
		assert.True(t, d.IsDisposed())
	})
}

// ============================================================================
// CompositeDisposable
// ============================================================================

func TestCompositeDisposable(t *testing.T) {
	t.Run("按添加顺序释放", func(t *testing.T) {
		var order []int
		cd := NewCompositeDisposable(
			NewBaseDisposable(func() { order = append(order, 1) }),
			NewBaseDisposable(func() { order = append(order, 2) }),
		)
		cd.Add(NewBaseDisposable(func() { order = append(order, 3) }))
		assert.Equal(t, 3, cd.Len())

		cd.Dispose()
		cd.Dispose()
		assert.Equal(t, []int{1, 2, 3}, order)
		assert.True(t, cd.IsDisposed())
		assert.Equal(t, 0, cd.Len())
	})

	t.Run("释放后添加立即释放", func(t *testing.T) {
		cd := NewCompositeDisposable()
		cd.Dispose()

		d := NewBaseDisposable(nil)
		cd.Add(d)
		assert.True(t, d.IsDisposed())
	})

	t.Run("移除并释放", func(t *testing.T) {
		cd := NewCompositeDisposable()
		d := NewBaseDisposable(nil)
		cd.Add(d)
		cd.Add(nil)
		cd.Remove(d)
		assert.True(t, d.IsDisposed())
		assert.Equal(t, 0, cd.Len())
	})
}

// ============================================================================
// SerialDisposable
// ============================================================================

func TestSerialDisposable(t *testing.T) {
	t.Run("替换时释放旧资源", func(t *testing.T) {
		sd := NewSerialDisposable()
		first := NewBaseDisposable(nil)
		second := NewBaseDisposable(nil)

		sd.Set(first)
		sd.Set(second)
		assert.True(t, first.IsDisposed())
		assert.False(t, second.IsDisposed())

		sd.Dispose()
		assert.True(t, second.IsDisposed())
		assert.True(t, sd.IsDisposed())
	})

	t.Run("释放后设置立即释放", func(t *testing.T) {
		sd := NewSerialDisposable()
		sd.Dispose()

		d := NewBaseDisposable(nil)
		sd.Set(d)
		assert.True(t, d.IsDisposed())
	})
}

// ============================================================================
// DisposeBag
// ============================================================================

type panickingDisposable struct {
	disposed bool
}

func (p *panickingDisposable) Dispose() {
	p.disposed = true
	panic("boom")
}

func (p *panickingDisposable) IsDisposed() bool {
	return p.disposed
}

func TestDisposeBag(t *testing.T) {
	t.Run("按插入顺序释放全部成员", func(t *testing.T) {
		var order []string
		bag := NewDisposeBag()
		bag.Add(
			NewBaseDisposable(func() { order = append(order, "a") }),
			NewBaseDisposable(func() { order = append(order, "b") }),
		)
		DisposedBy(NewBaseDisposable(func() { order = append(order, "c") }), bag)
		assert.Equal(t, 3, bag.Len())

		require.NoError(t, bag.Dispose())
		require.NoError(t, bag.Dispose())
		assert.Equal(t, []string{"a", "b", "c"}, order)
		assert.True(t, bag.IsDisposed())
	})

	t.Run("释放订阅后不再收到事件", func(t *testing.T) {
		subject := NewPublishSubject()
		r := newRecorder()
		bag := NewDisposeBag()
		bag.Add(subject.Subscribe(r.observer()))

		subject.OnNext(1)
		require.NoError(t, bag.Dispose())
		subject.OnNext(2)

		assert.Equal(t, ints(1), r.values())
		assert.False(t, subject.HasObservers())
	})

	t.Run("已释放时添加的成员立即释放", func(t *testing.T) {
		bag := NewDisposeBag()
		require.NoError(t, bag.Dispose())

		d := NewBaseDisposable(nil)
		bag.Add(d)
		assert.True(t, d.IsDisposed())
		assert.Equal(t, 0, bag.Len())
	})

	t.Run("成员 panic 被汇总并记录", func(t *testing.T) {
		var logs bytes.Buffer
		bag := NewDisposeBag(WithLogger(zerolog.New(&logs)))

		after := NewBaseDisposable(nil)
		bag.Add(&panickingDisposable{}, after)

		err := bag.Dispose()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "member 0")
		assert.Contains(t, err.Error(), "boom")
		assert.True(t, after.IsDisposed())
		assert.Contains(t, logs.String(), "dispose bag member panicked")
	})
}
