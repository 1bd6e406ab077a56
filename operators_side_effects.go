// Side effect operators for rxlite
// 副作用操作符实现，包含DoOnNext, DoOnError, DoOnComplete, DoOnSubscribe, DoOnDispose, Debug等
package rxlite

import (
	"github.com/rs/zerolog"
)

// ============================================================================
// 副作用操作符实现
// ============================================================================

// DoOnNext 在每个值发射前执行副作用操作
func (o *observableImpl) DoOnNext(action OnNext) Observable {
	return o.DoOnEach(func(event Event) {
		if event.Kind == KindNext && action != nil {
			action(event.Value)
		}
	})
}

// DoOnError 在错误发射前执行副作用操作
func (o *observableImpl) DoOnError(action OnError) Observable {
	return o.DoOnEach(func(event Event) {
		if event.Kind == KindError && action != nil {
			action(event.Err)
		}
	})
}

// DoOnComplete 在完成发射前执行副作用操作
func (o *observableImpl) DoOnComplete(action OnComplete) Observable {
	return o.DoOnEach(func(event Event) {
		if event.Kind == KindComplete && action != nil {
			action()
		}
	})
}

// DoOnTerminate 在终止（完成或错误）发射前执行副作用操作
func (o *observableImpl) DoOnTerminate(action func()) Observable {
	return o.DoOnEach(func(event Event) {
		if event.IsTerminal() && action != nil {
			action()
		}
	})
}

// DoOnEach 对每个事件（包括错误和完成）执行副作用操作
func (o *observableImpl) DoOnEach(action func(Event)) Observable {
	return NewObservable(func(sub *Subscriber) {
		subscribeChild(sub, o, func(event Event) {
			if action != nil {
				action(event)
			}
			sub.Emit(event)
		})
	})
}

// DoOnSubscribe 在订阅上游之前执行副作用操作
func (o *observableImpl) DoOnSubscribe(action func()) Observable {
	return NewObservable(func(sub *Subscriber) {
		if action != nil {
			action()
		}
		subscribeChild(sub, o, sub.Emit)
	})
}

// DoOnDispose 在订阅被释放时执行副作用操作，正常终止后的释放同样触发
func (o *observableImpl) DoOnDispose(action func()) Observable {
	return NewObservable(func(sub *Subscriber) {
		if action != nil {
			sub.Add(NewBaseDisposable(action))
		}
		subscribeChild(sub, o, sub.Emit)
	})
}

// Debug 使用 logger 记录订阅、每个事件与释放
func (o *observableImpl) Debug(name string, logger zerolog.Logger) Observable {
	return NewObservable(func(sub *Subscriber) {
		log := logger.With().Str("observable", name).Logger()

		log.Debug().Msg("subscribed")
		sub.Add(NewBaseDisposable(func() {
			log.Debug().Msg("disposed")
		}))

		subscribeChild(sub, o, func(event Event) {
			entry := log.Debug().Str("event", event.Kind.String())
			switch event.Kind {
			case KindNext:
				entry = entry.Interface("value", event.Value)
			case KindError:
				entry = entry.Err(event.Err)
			}
			entry.Msg("event")
			sub.Emit(event)
		})
	})
}
