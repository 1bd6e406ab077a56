// Completable tests for rxlite
// Completable 测试
package rxlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// completableResult 记录 Completable 的回调
type completableResult struct {
	completed bool
	err       error
}

func subscribeCompletable(c Completable) *completableResult {
	result := &completableResult{}
	c.Subscribe(func() { result.completed = true }, func(err error) { result.err = err })
	return result
}

func TestCompletable(t *testing.T) {
	t.Run("CompletableComplete", func(t *testing.T) {
		result := subscribeCompletable(CompletableComplete())
		assert.True(t, result.completed)
		assert.NoError(t, result.err)
	})

	t.Run("CompletableError", func(t *testing.T) {
		result := subscribeCompletable(CompletableError(errTest))
		assert.False(t, result.completed)
		assert.Equal(t, errTest, result.err)
	})

	t.Run("NewCompletable 只接受第一个终止事件", func(t *testing.T) {
		released := false
		c := NewCompletable(func(emitter CompletableEmitter) Disposable {
			emitter.OnComplete()
			emitter.OnError(errTest)
			return NewBaseDisposable(func() { released = true })
		})

		result := subscribeCompletable(c)
		assert.True(t, result.completed)
		assert.NoError(t, result.err)
		assert.True(t, released)
	})

	t.Run("CompletableFromAction", func(t *testing.T) {
		calls := 0
		c := CompletableFromAction(func() error {
			calls++
			return nil
		})
		assert.Equal(t, 0, calls)
		assert.True(t, subscribeCompletable(c).completed)
		assert.True(t, subscribeCompletable(c).completed)
		assert.Equal(t, 2, calls)

		failing := CompletableFromAction(func() error { return errTest })
		assert.Equal(t, errTest, subscribeCompletable(failing).err)
	})

	t.Run("CompletableFromObservable 忽略值", func(t *testing.T) {
		r := collect(CompletableFromObservable(Just(1, 2, 3)).AsObservable())
		assert.Empty(t, r.values())
		assert.True(t, r.completed())
	})
}

func TestCompletableComposition(t *testing.T) {
	step := func(log *[]string, name string) Completable {
		return CompletableFromAction(func() error {
			*log = append(*log, name)
			return nil
		})
	}

	t.Run("AndThen 按顺序执行", func(t *testing.T) {
		var log []string
		result := subscribeCompletable(step(&log, "a").AndThen(step(&log, "b")))
		assert.True(t, result.completed)
		assert.Equal(t, []string{"a", "b"}, log)
	})

	t.Run("出错时不执行后续", func(t *testing.T) {
		var log []string
		result := subscribeCompletable(CompletableError(errTest).AndThen(step(&log, "b")))
		assert.Equal(t, errTest, result.err)
		assert.Empty(t, log)
	})

	t.Run("AndThenObservable", func(t *testing.T) {
		r := collect(CompletableComplete().AndThenObservable(Just("next")))
		assert.Equal(t, []interface{}{"next"}, r.values())
		assert.True(t, r.completed())
	})

	t.Run("CompletableConcat", func(t *testing.T) {
		var log []string
		result := subscribeCompletable(CompletableConcat(step(&log, "1"), step(&log, "2"), step(&log, "3")))
		assert.True(t, result.completed)
		assert.Equal(t, []string{"1", "2", "3"}, log)
	})

	t.Run("CompletableMerge 等待全部完成", func(t *testing.T) {
		first := NewPublishSubject()
		second := NewPublishSubject()
		result := subscribeCompletable(CompletableMerge(
			CompletableFromObservable(first),
			CompletableFromObservable(second),
		))

		first.OnComplete()
		assert.False(t, result.completed)
		second.OnComplete()
		assert.True(t, result.completed)
	})

	t.Run("CompletableMerge 任一出错即失败", func(t *testing.T) {
		result := subscribeCompletable(CompletableMerge(CompletableError(errTest), CompletableFromObservable(Never())))
		assert.Equal(t, errTest, result.err)
	})
}
