// Observable tests for rxlite
// 工厂函数、过滤、转换与聚合操作符测试
package rxlite

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var errTest = errors.New("test error")

// ============================================================================
// 工厂函数
// ============================================================================

func TestFactories(t *testing.T) {
	t.Run("Just", func(t *testing.T) {
		r := collect(Just(1, 2, 3))
		assert.Equal(t, ints(1, 2, 3), r.values())
		assert.True(t, r.completed())
	})

	t.Run("Empty", func(t *testing.T) {
		r := collect(Empty())
		assert.Empty(t, r.values())
		assert.True(t, r.completed())
	})

	t.Run("Never", func(t *testing.T) {
		r := collect(Never())
		assert.Empty(t, r.events)
	})

	t.Run("Error", func(t *testing.T) {
		r := collect(Error(errTest))
		assert.Equal(t, errTest, r.err())
	})

	t.Run("Range", func(t *testing.T) {
		assert.Equal(t, ints(5, 6, 7), collect(Range(5, 3)).values())
		assert.True(t, collect(Range(0, 0)).completed())
	})

	t.Run("Create 返回的资源在终止时释放", func(t *testing.T) {
		resource := NewBaseDisposable(nil)
		r := collect(Create(func(emitter Emitter) Disposable {
			emitter.OnNext("a")
			emitter.OnComplete()
			emitter.OnNext("b")
			return resource
		}))
		assert.Equal(t, []interface{}{"a"}, r.values())
		assert.True(t, r.completed())
		assert.True(t, resource.IsDisposed())
	})

	t.Run("Create 取消订阅时释放资源", func(t *testing.T) {
		resource := NewBaseDisposable(nil)
		subscription := Create(func(emitter Emitter) Disposable {
			return resource
		}).Subscribe(nil)
		assert.False(t, resource.IsDisposed())

		subscription.Dispose()
		assert.True(t, resource.IsDisposed())
	})

	t.Run("Defer 每次订阅调用工厂", func(t *testing.T) {
		calls := 0
		deferred := Defer(func() Observable {
			calls++
			return Just(calls)
		})
		assert.Equal(t, ints(1), collect(deferred).values())
		assert.Equal(t, ints(2), collect(deferred).values())
	})
}

func TestColdReplayProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		xs := rapid.SliceOf(rapid.Int()).Draw(t, "xs")
		values := make([]interface{}, len(xs))
		for i, x := range xs {
			values[i] = x
		}
		source := FromSlice(values)

		first := collect(source)
		second := collect(source)
		if len(xs) == 0 {
			assert.Empty(t, first.values())
		} else {
			assert.Equal(t, values, first.values())
		}
		assert.Equal(t, first.values(), second.values())
		assert.True(t, second.completed())
	})
}

// ============================================================================
// 过滤操作符
// ============================================================================

func isEven(value interface{}) bool {
	return value.(int)%2 == 0
}

func TestFilteringOperators(t *testing.T) {
	t.Run("Filter", func(t *testing.T) {
		assert.Equal(t, ints(2, 4, 6), collect(Range(1, 6).Filter(isEven)).values())
	})

	t.Run("Skip", func(t *testing.T) {
		assert.Equal(t, ints(4, 5), collect(Range(1, 5).Skip(3)).values())
	})

	t.Run("SkipWhile 只判断到第一个假值", func(t *testing.T) {
		assert.Equal(t, ints(3, 4, 4), collect(Just(2, 2, 3, 4, 4).SkipWhile(isEven)).values())
	})

	t.Run("SkipUntil", func(t *testing.T) {
		source := NewPublishSubject()
		trigger := NewPublishSubject()
		r := newRecorder()
		source.SkipUntil(trigger).Subscribe(r.observer())

		source.OnNext("A")
		trigger.OnNext("X")
		source.OnNext("B")
		assert.Equal(t, []interface{}{"B"}, r.values())
		assert.False(t, trigger.HasObservers())
	})

	t.Run("Take 取消上游", func(t *testing.T) {
		source := NewPublishSubject()
		r := newRecorder()
		source.Take(2).Subscribe(r.observer())

		source.OnNext(1)
		source.OnNext(2)
		source.OnNext(3)
		assert.Equal(t, ints(1, 2), r.values())
		assert.True(t, r.completed())
		assert.False(t, source.HasObservers())
	})

	t.Run("Take 在下游重入推送时不超过 n 个值", func(t *testing.T) {
		source := NewPublishSubject()
		r := newRecorder()
		record := r.observer()
		source.SkipWhile(func(interface{}) bool { return false }).Take(2).Subscribe(func(event Event) {
			record(event)
			if event.Kind == KindNext {
				source.OnNext(event.Value.(int) + 1)
			}
		})

		source.OnNext(1)
		assert.Equal(t, ints(1, 2), r.values())
		assert.True(t, r.completed())
		assert.Equal(t, 1, r.terminals())

		single := NewPublishSubject()
		once := newRecorder()
		pushed := false
		record = once.observer()
		single.Take(1).Subscribe(func(event Event) {
			record(event)
			if !pushed {
				pushed = true
				single.OnNext(2)
			}
		})
		single.OnNext(1)
		assert.Equal(t, ints(1), once.values())
	})

	t.Run("Take 0", func(t *testing.T) {
		r := collect(Just(1).Take(0))
		assert.Empty(t, r.values())
		assert.True(t, r.completed())
	})

	t.Run("TakeWhile", func(t *testing.T) {
		r := collect(Just(2, 4, 5, 6).TakeWhile(isEven))
		assert.Equal(t, ints(2, 4), r.values())
		assert.True(t, r.completed())
	})

	t.Run("TakeUntil", func(t *testing.T) {
		source := NewPublishSubject()
		trigger := NewPublishSubject()
		r := newRecorder()
		source.TakeUntil(trigger).Subscribe(r.observer())

		source.OnNext(1)
		trigger.OnNext("stop")
		source.OnNext(2)
		assert.Equal(t, ints(1), r.values())
		assert.True(t, r.completed())
		assert.False(t, source.HasObservers())
	})

	t.Run("DistinctUntilChanged", func(t *testing.T) {
		r := collect(Just(1, 1, 2, 2, 2, 3).DistinctUntilChanged())
		assert.Equal(t, ints(1, 2, 3), r.values())
	})

	t.Run("DistinctUntilChanged 结构相等", func(t *testing.T) {
		r := collect(Just([]int{1}, []int{1}, []int{2}).DistinctUntilChanged())
		assert.Len(t, r.values(), 2)
	})

	t.Run("DistinctUntilChangedWith", func(t *testing.T) {
		sameParity := func(a, b interface{}) bool { return a.(int)%2 == b.(int)%2 }
		r := collect(Just(1, 3, 4, 6, 7).DistinctUntilChangedWith(sameParity))
		assert.Equal(t, ints(1, 4, 7), r.values())
	})

	t.Run("IgnoreElements", func(t *testing.T) {
		r := collect(Just(1, 2).IgnoreElements())
		assert.Empty(t, r.values())
		assert.True(t, r.completed())
	})

	t.Run("ElementAt", func(t *testing.T) {
		assert.Equal(t, ints(3), collect(Range(1, 5).ElementAt(2)).values())
		assert.Equal(t, ErrArgumentOutOfRange, collect(Range(1, 2).ElementAt(5)).err())
		assert.Equal(t, ErrArgumentOutOfRange, collect(Range(1, 2).ElementAt(-1)).err())
	})

	t.Run("ElementAt 重入推送的值不会再次命中", func(t *testing.T) {
		source := NewPublishSubject()
		r := newRecorder()
		record := r.observer()
		source.ElementAt(0).Subscribe(func(event Event) {
			record(event)
			if event.Kind == KindNext {
				source.OnNext("again")
			}
		})

		source.OnNext("first")
		assert.Equal(t, []interface{}{"first"}, r.values())
		assert.True(t, r.completed())
	})
}

func TestTakeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 20).Draw(t, "count")
		n := rapid.IntRange(0, 25).Draw(t, "n")

		r := collect(Range(0, count).Take(n))
		expected := n
		if count < n {
			expected = count
		}
		assert.Len(t, r.values(), expected)
		assert.True(t, r.completed())
	})
}

func TestDistinctUntilChangedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		xs := rapid.SliceOf(rapid.IntRange(0, 3)).Draw(t, "xs")
		values := make([]interface{}, len(xs))
		for i, x := range xs {
			values[i] = x
		}

		out := collect(FromSlice(values).DistinctUntilChanged()).values()
		for i := 1; i < len(out); i++ {
			assert.NotEqual(t, out[i-1], out[i])
		}
		if len(xs) > 0 {
			require.NotEmpty(t, out)
			assert.Equal(t, values[0], out[0])
			assert.Equal(t, values[len(values)-1], out[len(out)-1])
		}
	})
}

// ============================================================================
// 转换与聚合操作符
// ============================================================================

func TestTransformingOperators(t *testing.T) {
	t.Run("Map", func(t *testing.T) {
		r := collect(Just(1, 2).Map(func(v interface{}) (interface{}, error) {
			return v.(int) * 10, nil
		}))
		assert.Equal(t, ints(10, 20), r.values())
	})

	t.Run("Map 返回错误时终止", func(t *testing.T) {
		r := collect(Just(1, 2).Map(func(v interface{}) (interface{}, error) {
			return nil, errTest
		}))
		assert.Empty(t, r.values())
		assert.Equal(t, errTest, r.err())
	})

	t.Run("Enumerated", func(t *testing.T) {
		r := collect(Just("a", "b").Enumerated())
		assert.Equal(t, []interface{}{
			IndexedValue{Index: 0, Value: "a"},
			IndexedValue{Index: 1, Value: "b"},
		}, r.values())
	})

	t.Run("Materialize 与 Dematerialize", func(t *testing.T) {
		materialized := collect(Just(1).Concat(Error(errTest)).Materialize())
		assert.Equal(t, []interface{}{NextEvent(1), ErrorEvent(errTest)}, materialized.values())
		assert.True(t, materialized.completed())

		r := collect(Just(1).Concat(Error(errTest)).Materialize().Dematerialize())
		assert.Equal(t, ints(1), r.values())
		assert.Equal(t, errTest, r.err())
	})

	t.Run("Dematerialize 类型错误", func(t *testing.T) {
		r := collect(Just(1).Dematerialize())
		assert.Error(t, r.err())
	})

	t.Run("ToArray", func(t *testing.T) {
		r := collect(Just(1, 2, 3).ToArray())
		assert.Equal(t, []interface{}{ints(1, 2, 3)}, r.values())
	})

	t.Run("ToArray 空序列", func(t *testing.T) {
		r := collect(Empty().ToArray())
		assert.Equal(t, []interface{}{[]interface{}{}}, r.values())
	})

	t.Run("Scan 与 Reduce", func(t *testing.T) {
		sum := func(acc, cur interface{}) interface{} { return acc.(int) + cur.(int) }
		assert.Equal(t, ints(1, 4, 9), collect(Just(1, 3, 5).Scan(0, sum)).values())
		assert.Equal(t, ints(9), collect(Just(1, 3, 5).Reduce(0, sum)).values())
		assert.Equal(t, ints(7), collect(Empty().Reduce(7, sum)).values())
	})
}
