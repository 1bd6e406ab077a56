// DisposeBag for rxlite
// 由宿主（例如一个界面或会话）持有的订阅集合，宿主销毁时按添加顺序释放全部订阅
package rxlite

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DisposeBag 不拥有成员的聚合器：自身释放时按插入顺序释放全部成员
// 成员释放时的 panic 会被恢复、汇总并记录，不会中断其余成员的释放
type DisposeBag struct {
	mu          sync.Mutex
	disposed    bool
	disposables []Disposable
	logger      zerolog.Logger
}

// NewDisposeBag 创建新的 DisposeBag
func NewDisposeBag(opts ...Option) *DisposeBag {
	config := newConfig(opts)
	return &DisposeBag{logger: config.Logger}
}

// Add 添加成员；已释放的 bag 会立即释放新成员
func (b *DisposeBag) Add(disposables ...Disposable) {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		if err := b.disposeAll(disposables); err != nil {
			b.logger.Error().Err(err).Msg("dispose bag member panicked")
		}
		return
	}
	for _, d := range disposables {
		if d != nil {
			b.disposables = append(b.disposables, d)
		}
	}
	b.mu.Unlock()
}

// Len 当前成员数量
func (b *DisposeBag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.disposables)
}

// Dispose 按插入顺序释放所有成员，返回释放过程中恢复的 panic 汇总
func (b *DisposeBag) Dispose() error {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return nil
	}
	b.disposed = true
	disposables := b.disposables
	b.disposables = nil
	b.mu.Unlock()

	err := b.disposeAll(disposables)
	if err != nil {
		b.logger.Error().Err(err).Int("members", len(disposables)).Msg("dispose bag member panicked")
	}
	return err
}

// IsDisposed 检查是否已释放
func (b *DisposeBag) IsDisposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposed
}

func (b *DisposeBag) disposeAll(disposables []Disposable) error {
	var result *multierror.Error
	for i, d := range disposables {
		if d == nil {
			continue
		}
		if err := disposeSafely(d); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "member %d", i))
		}
	}
	return result.ErrorOrNil()
}

func disposeSafely(d Disposable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic during dispose: %v", r)
		}
	}()
	d.Dispose()
	return nil
}

// DisposedBy 把订阅加入 bag，便于链式书写
func DisposedBy(disposable Disposable, bag *DisposeBag) Disposable {
	bag.Add(disposable)
	return disposable
}
