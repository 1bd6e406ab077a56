// Error handling operators for rxlite
// 错误处理操作符实现，包含Catch, CatchAndReturn, Retry
package rxlite

// ============================================================================
// 错误处理操作符实现
// ============================================================================

// Catch 上游出错时取消上游并切换到 handler 返回的 Observable
func (o *observableImpl) Catch(handler func(error) Observable) Observable {
	return NewObservable(func(sub *Subscriber) {
		serial := NewSerialDisposable()
		sub.Add(serial)

		subscribeDetached(o, func(event Event) {
			if event.Kind != KindError {
				sub.Emit(event)
				return
			}

			fallback := handler(event.Err)
			if fallback == nil {
				sub.OnError(event.Err)
				return
			}
			subscribeDetached(fallback, sub.Emit, serial.hold)
		}, serial.hold)
	})
}

// CatchAndReturn 上游出错时发射 value 并正常完成
func (o *observableImpl) CatchAndReturn(value interface{}) Observable {
	return o.Catch(func(error) Observable {
		return Just(value)
	})
}

// Retry 上游出错时重新订阅，最多重试 count 次，之后透传最后一个错误
// count 小于0时无限重试
func (o *observableImpl) Retry(count int) Observable {
	return NewObservable(func(sub *Subscriber) {
		serial := NewSerialDisposable()
		sub.Add(serial)

		retries := 0
		var run func()
		run = func() {
			for !sub.IsDisposed() {
				subscribing := true
				failedInline := false
				subscribeDetached(o, func(event Event) {
					if event.Kind != KindError {
						sub.Emit(event)
						return
					}
					if count >= 0 && retries >= count {
						sub.OnError(event.Err)
						return
					}
					retries++
					if subscribing {
						failedInline = true
						return
					}
					run()
				}, serial.hold)
				subscribing = false

				if !failedInline {
					return
				}
			}
		}
		run()
	})
}
