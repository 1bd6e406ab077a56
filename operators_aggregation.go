// Aggregation operators for rxlite
// 聚合操作符实现，包含Scan, Reduce, ToArray
package rxlite

// ============================================================================
// 聚合操作符实现
// ============================================================================

// Scan 每个值都发射当前累加结果
func (o *observableImpl) Scan(seed interface{}, reducer Reducer) Observable {
	return NewObservable(func(sub *Subscriber) {
		accumulator := seed
		subscribeChild(sub, o, func(event Event) {
			if event.Kind != KindNext {
				sub.Emit(event)
				return
			}
			accumulator = reducer(accumulator, event.Value)
			sub.OnNext(accumulator)
		})
	})
}

// Reduce 源完成时发射唯一的累加结果
func (o *observableImpl) Reduce(seed interface{}, reducer Reducer) Observable {
	return NewObservable(func(sub *Subscriber) {
		accumulator := seed
		subscribeChild(sub, o, func(event Event) {
			switch event.Kind {
			case KindNext:
				accumulator = reducer(accumulator, event.Value)
			case KindError:
				sub.OnError(event.Err)
			case KindComplete:
				sub.OnNext(accumulator)
				sub.OnComplete()
			}
		})
	})
}

// ToArray 源完成时以 []interface{} 发射全部值
func (o *observableImpl) ToArray() Observable {
	return NewObservable(func(sub *Subscriber) {
		values := make([]interface{}, 0)
		subscribeChild(sub, o, func(event Event) {
			switch event.Kind {
			case KindNext:
				values = append(values, event.Value)
			case KindError:
				sub.OnError(event.Err)
			case KindComplete:
				sub.OnNext(values)
				sub.OnComplete()
			}
		})
	})
}
