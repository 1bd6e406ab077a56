// Error taxonomy for rxlite
// 错误类型定义：源错误原样透传，超时与释放错误由引擎产生
package rxlite

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrDisposed 对已释放的资源（如 Subject）进行订阅
	ErrDisposed = errors.New("rxlite: object has been disposed")
	// ErrArgumentOutOfRange 参数越界，例如 ElementAt 元素不足或周期不为正
	ErrArgumentOutOfRange = errors.New("rxlite: argument out of range")
	// ErrNoElements 序列为空但需要一个元素
	ErrNoElements = errors.New("rxlite: sequence contains no elements")
	// ErrMoreThanOneElement 序列包含多于一个元素
	ErrMoreThanOneElement = errors.New("rxlite: sequence contains more than one element")
)

// TimeoutError 超时错误
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("rxlite: sequence timeout after %s", e.Timeout)
}

// NewTimeoutError 创建超时错误
func NewTimeoutError(timeout time.Duration) *TimeoutError {
	return &TimeoutError{Timeout: timeout}
}

// IsTimeout 检查错误链中是否包含超时错误
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsDisposed 检查错误链中是否包含释放错误
func IsDisposed(err error) bool {
	return errors.Is(err, ErrDisposed)
}

func unexpectedType(operator string, expected string, value interface{}) error {
	return errors.Errorf("rxlite: %s expected %s, got %T", operator, expected, value)
}
