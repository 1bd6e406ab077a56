// Ticker tests for rxlite
// 热计时器测试
package rxlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicker(t *testing.T) {
	t.Run("暂停与恢复不丢失计数", func(t *testing.T) {
		s := NewTestScheduler()
		ticker := NewTicker(time.Second, s)
		r := newTimedRecorder(s)
		ticker.Observable().Subscribe(r.observer())

		s.AdvanceTo(2 * time.Second)
		assert.Empty(t, r.values())
		assert.False(t, ticker.IsRunning())

		ticker.Resume()
		ticker.Resume()
		s.AdvanceTo(5 * time.Second)
		assert.Equal(t, ints(0, 1, 2), r.values())
		assert.Equal(t, seconds(3, 4, 5), r.times)

		ticker.Suspend()
		assert.False(t, ticker.IsRunning())
		s.AdvanceTo(9500 * time.Millisecond)
		assert.Len(t, r.values(), 3)

		ticker.Resume()
		s.AdvanceTo(12 * time.Second)
		assert.Equal(t, ints(0, 1, 2, 3, 4), r.values())
		assert.Equal(t, seconds(3, 4, 5, 10.5, 11.5), r.times)
	})

	t.Run("后来的订阅者只收到之后的计数", func(t *testing.T) {
		s := NewTestScheduler()
		ticker := NewTicker(time.Second, s)
		ticker.Resume()

		s.AdvanceTo(2500 * time.Millisecond)
		late := collect(ticker.Observable())
		s.AdvanceTo(4 * time.Second)

		assert.Equal(t, ints(2, 3), late.values())
	})

	t.Run("Dispose 完成输出序列", func(t *testing.T) {
		s := NewTestScheduler()
		ticker := NewTicker(time.Second, s)
		r := collect(ticker.Observable())
		ticker.Resume()
		s.AdvanceTo(time.Second)

		ticker.Dispose()
		ticker.Dispose()
		assert.True(t, ticker.IsDisposed())
		assert.True(t, r.completed())
		assert.Equal(t, 1, r.terminals())
		assert.Equal(t, 0, s.Pending())

		ticker.Resume()
		assert.False(t, ticker.IsRunning())
		s.AdvanceTo(5 * time.Second)
		assert.Equal(t, ints(0), r.values())
	})
}
