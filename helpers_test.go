// Test helpers for rxlite
// 测试辅助：记录事件的观察者
package rxlite

import (
	"time"
)

// recorder 记录收到的全部事件
type recorder struct {
	events []Event
	times  []time.Duration
	clock  *TestScheduler
}

func newRecorder() *recorder {
	return &recorder{}
}

// newTimedRecorder 同时记录事件发生时的虚拟时间
func newTimedRecorder(clock *TestScheduler) *recorder {
	return &recorder{clock: clock}
}

func (r *recorder) observer() Observer {
	return func(event Event) {
		r.events = append(r.events, event)
		if r.clock != nil {
			r.times = append(r.times, r.clock.Clock())
		}
	}
}

func (r *recorder) values() []interface{} {
	values := make([]interface{}, 0)
	for _, event := range r.events {
		if event.Kind == KindNext {
			values = append(values, event.Value)
		}
	}
	return values
}

func (r *recorder) completed() bool {
	return len(r.events) > 0 && r.events[len(r.events)-1].Kind == KindComplete
}

func (r *recorder) err() error {
	if len(r.events) == 0 {
		return nil
	}
	last := r.events[len(r.events)-1]
	if last.Kind != KindError {
		return nil
	}
	return last.Err
}

func (r *recorder) terminals() int {
	count := 0
	for _, event := range r.events {
		if event.IsTerminal() {
			count++
		}
	}
	return count
}

// collect 同步订阅并返回记录器
func collect(observable Observable) *recorder {
	r := newRecorder()
	observable.Subscribe(r.observer())
	return r
}

func ints(values ...int) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
