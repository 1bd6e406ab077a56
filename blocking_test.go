// Blocking helper tests for rxlite
// 阻塞辅助函数测试
package rxlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocking(t *testing.T) {
	ctx := context.Background()

	t.Run("BlockingToSlice", func(t *testing.T) {
		values, err := BlockingToSlice(ctx, Just(1, 2, 3))
		require.NoError(t, err)
		assert.Equal(t, ints(1, 2, 3), values)

		values, err = BlockingToSlice(ctx, Empty())
		require.NoError(t, err)
		assert.Empty(t, values)

		_, err = BlockingToSlice(ctx, Error(errTest))
		assert.Equal(t, errTest, err)
	})

	t.Run("BlockingFirst", func(t *testing.T) {
		value, err := BlockingFirst(ctx, Just("a", "b"))
		require.NoError(t, err)
		assert.Equal(t, "a", value)

		_, err = BlockingFirst(ctx, Empty())
		assert.Equal(t, ErrNoElements, err)
	})

	t.Run("BlockingLast", func(t *testing.T) {
		value, err := BlockingLast(ctx, Range(1, 5))
		require.NoError(t, err)
		assert.Equal(t, 5, value)

		_, err = BlockingLast(ctx, Empty())
		assert.Equal(t, ErrNoElements, err)
	})

	t.Run("BlockingForEach", func(t *testing.T) {
		var seen []interface{}
		err := BlockingForEach(ctx, Just(1).Concat(Error(errTest)), func(v interface{}) {
			seen = append(seen, v)
		})
		assert.Equal(t, errTest, err)
		assert.Equal(t, ints(1), seen)
	})

	t.Run("ctx 超时返回并取消订阅", func(t *testing.T) {
		disposed := make(chan struct{})
		timeout, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		err := BlockingWait(timeout, Never().DoOnDispose(func() { close(disposed) }))
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		select {
		case <-disposed:
		default:
			assert.Fail(t, "subscription was not disposed")
		}
	})

	t.Run("等待其他 goroutine 驱动的序列", func(t *testing.T) {
		s := NewEventLoopScheduler()
		loopCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		go func() { _ = s.Run(loopCtx) }()

		value, err := BlockingFirst(loopCtx, Timer(5*time.Millisecond, s))
		require.NoError(t, err)
		assert.Equal(t, 0, value)
	})
}
