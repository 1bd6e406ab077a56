// Utility operators for rxlite
// 工具操作符实现，包含Materialize, Dematerialize, IgnoreElements, ElementAt, Enumerated
package rxlite

// ============================================================================
// 工具操作符实现
// ============================================================================

// Materialize 将每个事件（包括终止事件）包装为 Event 值发射，然后完成
func (o *observableImpl) Materialize() Observable {
	return NewObservable(func(sub *Subscriber) {
		subscribeChild(sub, o, func(event Event) {
			sub.OnNext(event)
			if event.IsTerminal() {
				sub.OnComplete()
			}
		})
	})
}

// Dematerialize Materialize 的逆操作，Event 值还原为原始事件
func (o *observableImpl) Dematerialize() Observable {
	return NewObservable(func(sub *Subscriber) {
		subscribeChild(sub, o, func(event Event) {
			if event.Kind != KindNext {
				sub.Emit(event)
				return
			}

			inner, ok := event.Value.(Event)
			if !ok {
				sub.OnError(unexpectedType("Dematerialize", "Event", event.Value))
				return
			}
			sub.Emit(inner)
		})
	})
}

// IgnoreElements 忽略所有值，只传递错误和完成信号
func (o *observableImpl) IgnoreElements() Observable {
	return NewObservable(func(sub *Subscriber) {
		subscribeChild(sub, o, func(event Event) {
			if event.Kind == KindNext {
				return
			}
			sub.Emit(event)
		})
	})
}

// ElementAt 只发射指定索引处的值；源提前完成时返回 ErrArgumentOutOfRange
func (o *observableImpl) ElementAt(index int) Observable {
	return NewObservable(func(sub *Subscriber) {
		if index < 0 {
			sub.OnError(ErrArgumentOutOfRange)
			return
		}

		current := 0
		subscribeChild(sub, o, func(event Event) {
			switch event.Kind {
			case KindNext:
				current++
				if current-1 == index {
					sub.OnNext(event.Value)
					sub.OnComplete()
				}
			case KindError:
				sub.OnError(event.Err)
			case KindComplete:
				sub.OnError(ErrArgumentOutOfRange)
			}
		})
	})
}

// Enumerated 为每个值附加从0开始的索引，发射 IndexedValue
func (o *observableImpl) Enumerated() Observable {
	return NewObservable(func(sub *Subscriber) {
		index := 0
		subscribeChild(sub, o, func(event Event) {
			if event.Kind != KindNext {
				sub.Emit(event)
				return
			}
			sub.OnNext(IndexedValue{Index: index, Value: event.Value})
			index++
		})
	})
}
