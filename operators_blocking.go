// Blocking helpers for rxlite
// 阻塞辅助函数：在调用者 goroutine 上等待序列终止，供测试与命令行宿主使用
// 序列的事件需由其他 goroutine（例如 EventLoopScheduler.Run）驱动，同步序列会在订阅时直接完成
package rxlite

import (
	"context"
)

// ============================================================================
// 阻塞操作实现
// ============================================================================

// BlockingForEach 对每个值调用 action，阻塞直到序列终止或 ctx 结束
// action 在产生事件的 goroutine 上执行
func BlockingForEach(ctx context.Context, observable Observable, action OnNext) error {
	done := make(chan error, 1)

	subscription := observable.Subscribe(func(event Event) {
		switch event.Kind {
		case KindNext:
			if action != nil {
				action(event.Value)
			}
		case KindError:
			done <- event.Err
		case KindComplete:
			done <- nil
		}
	})
	defer subscription.Dispose()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// BlockingToSlice 收集全部值，阻塞直到序列终止
func BlockingToSlice(ctx context.Context, observable Observable) ([]interface{}, error) {
	result, err := blockingSingle(ctx, observable.ToArray())
	if err != nil {
		return nil, err
	}
	return result.([]interface{}), nil
}

// BlockingFirst 阻塞获取第一个值，序列为空时返回 ErrNoElements
func BlockingFirst(ctx context.Context, observable Observable) (interface{}, error) {
	return blockingSingle(ctx, observable.Take(1).AsSingle().AsObservable())
}

// BlockingLast 阻塞获取最后一个值，序列为空时返回 ErrNoElements
func BlockingLast(ctx context.Context, observable Observable) (interface{}, error) {
	last := NewObservable(func(sub *Subscriber) {
		var value interface{}
		has := false
		subscribeChild(sub, observable, func(event Event) {
			switch event.Kind {
			case KindNext:
				value = event.Value
				has = true
			case KindError:
				sub.OnError(event.Err)
			case KindComplete:
				if !has {
					sub.OnError(ErrNoElements)
					return
				}
				sub.OnNext(value)
				sub.OnComplete()
			}
		})
	})
	return blockingSingle(ctx, last)
}

// BlockingWait 阻塞直到序列终止，忽略全部值
func BlockingWait(ctx context.Context, observable Observable) error {
	return BlockingForEach(ctx, observable, nil)
}

// blockingSingle 等待恰好一个值
func blockingSingle(ctx context.Context, observable Observable) (interface{}, error) {
	var result interface{}
	err := BlockingForEach(ctx, observable, func(value interface{}) {
		result = value
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
