// Package rxlite provides a minimal single-timeline reactive-stream engine for Go
// 轻量级响应式流引擎：Observable、Subject、调度器（含虚拟时间）以及时间窗口操作符
package rxlite

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// ============================================================================
// 事件类型定义
// ============================================================================

// Kind 事件种类
type Kind int

const (
	// KindNext 下一个值
	KindNext Kind = iota
	// KindError 错误终止
	KindError
	// KindComplete 正常完成
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindComplete:
		return "completed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event 表示流中的一个事件：Next(value) | Error(err) | Complete
type Event struct {
	Kind  Kind        // 事件种类
	Value interface{} // 仅 KindNext 有效
	Err   error       // 仅 KindError 有效
}

// NextEvent 创建值事件
func NextEvent(value interface{}) Event {
	return Event{Kind: KindNext, Value: value}
}

// ErrorEvent 创建错误事件
func ErrorEvent(err error) Event {
	return Event{Kind: KindError, Err: err}
}

// CompleteEvent 创建完成事件
func CompleteEvent() Event {
	return Event{Kind: KindComplete}
}

// IsTerminal 检查是否为终止事件
func (e Event) IsTerminal() bool {
	return e.Kind == KindError || e.Kind == KindComplete
}

func (e Event) String() string {
	switch e.Kind {
	case KindNext:
		return fmt.Sprintf("next(%v)", e.Value)
	case KindError:
		return fmt.Sprintf("error(%v)", e.Err)
	case KindComplete:
		return "completed"
	default:
		return e.Kind.String()
	}
}

// ============================================================================
// 函数类型定义
// ============================================================================

// Observer 观察者函数类型
type Observer func(event Event)

// OnNext 处理下一个值的函数
type OnNext func(value interface{})

// OnError 处理错误的函数
type OnError func(err error)

// OnComplete 处理完成的函数
type OnComplete func()

// Predicate 谓词函数，用于过滤
type Predicate func(value interface{}) bool

// Transformer 转换函数，用于映射
type Transformer func(value interface{}) (interface{}, error)

// Reducer 归约函数，用于聚合
type Reducer func(accumulator, current interface{}) interface{}

// Combiner 组合多个最新值
type Combiner func(values ...interface{}) interface{}

// IndexedValue Enumerated 发射的带索引的值
type IndexedValue struct {
	Index int
	Value interface{}
}

// NewObserver 由三个可选回调构造观察者，nil 回调视为空操作
func NewObserver(onNext OnNext, onError OnError, onComplete OnComplete) Observer {
	return func(event Event) {
		switch event.Kind {
		case KindNext:
			if onNext != nil {
				onNext(event.Value)
			}
		case KindError:
			if onError != nil {
				onError(event.Err)
			}
		case KindComplete:
			if onComplete != nil {
				onComplete()
			}
		}
	}
}

// ============================================================================
// 生命周期管理
// ============================================================================

// Disposable 可释放资源的接口
type Disposable interface {
	// Dispose 释放资源，重复调用无副作用
	Dispose()
	// IsDisposed 检查是否已释放
	IsDisposed() bool
}

// baseDisposable 基础可释放资源实现
type baseDisposable struct {
	disposed atomic.Bool
	action   func()
}

// NewBaseDisposable 创建基础可释放资源，action 最多执行一次
func NewBaseDisposable(action func()) Disposable {
	return &baseDisposable{action: action}
}

// Dispose 释放资源
func (d *baseDisposable) Dispose() {
	if d.disposed.CompareAndSwap(false, true) {
		if d.action != nil {
			d.action()
		}
	}
}

// IsDisposed 检查是否已释放
func (d *baseDisposable) IsDisposed() bool {
	return d.disposed.Load()
}

// CompositeDisposable 组合式资源管理器
type CompositeDisposable struct {
	mu        sync.Mutex
	disposed  bool
	resources []Disposable
}

// NewCompositeDisposable 创建组合式资源管理器
func NewCompositeDisposable(disposables ...Disposable) *CompositeDisposable {
	cd := &CompositeDisposable{resources: make([]Disposable, 0, len(disposables))}
	for _, d := range disposables {
		cd.Add(d)
	}
	return cd
}

// Add 添加可释放资源，已释放时立即释放新资源
func (cd *CompositeDisposable) Add(disposable Disposable) {
	if disposable == nil {
		return
	}

	cd.mu.Lock()
	if cd.disposed {
		cd.mu.Unlock()
		disposable.Dispose()
		return
	}
	cd.resources = append(cd.resources, disposable)
	cd.mu.Unlock()
}

// Remove 移除并释放指定资源
func (cd *CompositeDisposable) Remove(disposable Disposable) {
	cd.mu.Lock()
	found := false
	for i, d := range cd.resources {
		if d == disposable {
			cd.resources = append(cd.resources[:i], cd.resources[i+1:]...)
			found = true
			break
		}
	}
	cd.mu.Unlock()

	if found {
		disposable.Dispose()
	}
}

// Len 当前持有的资源数量
func (cd *CompositeDisposable) Len() int {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return len(cd.resources)
}

// Dispose 按添加顺序释放所有资源
func (cd *CompositeDisposable) Dispose() {
	cd.mu.Lock()
	if cd.disposed {
		cd.mu.Unlock()
		return
	}
	cd.disposed = true
	resources := cd.resources
	cd.resources = nil
	cd.mu.Unlock()

	for _, resource := range resources {
		resource.Dispose()
	}
}

// IsDisposed 检查是否已释放
func (cd *CompositeDisposable) IsDisposed() bool {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.disposed
}

// SerialDisposable 持有单个可替换资源，替换时释放旧资源
type SerialDisposable struct {
	mu       sync.Mutex
	disposed bool
	current  Disposable
}

// NewSerialDisposable 创建串行资源管理器
func NewSerialDisposable() *SerialDisposable {
	return &SerialDisposable{}
}

// Set 替换当前资源
func (sd *SerialDisposable) Set(disposable Disposable) {
	sd.mu.Lock()
	if sd.disposed {
		sd.mu.Unlock()
		if disposable != nil {
			disposable.Dispose()
		}
		return
	}
	previous := sd.current
	sd.current = disposable
	sd.mu.Unlock()

	if previous != nil {
		previous.Dispose()
	}
}

// hold 以订阅者替换当前资源，供 subscribeDetached 的注册回调使用
func (sd *SerialDisposable) hold(child *Subscriber) {
	sd.Set(child)
}

// Dispose 释放当前资源，之后设置的资源会被立即释放
func (sd *SerialDisposable) Dispose() {
	sd.mu.Lock()
	if sd.disposed {
		sd.mu.Unlock()
		return
	}
	sd.disposed = true
	current := sd.current
	sd.current = nil
	sd.mu.Unlock()

	if current != nil {
		current.Dispose()
	}
}

// IsDisposed 检查是否已释放
func (sd *SerialDisposable) IsDisposed() bool {
	sd.mu.Lock()
	defer sd.mu.Unlock()
	return sd.disposed
}

// ============================================================================
// 配置选项
// ============================================================================

// Option 配置选项接口
type Option interface {
	Apply(config *Config)
}

// Config 配置结构
type Config struct {
	Logger zerolog.Logger
}

// OptionFunc 函数形式的配置选项
type OptionFunc func(config *Config)

// Apply 应用配置
func (f OptionFunc) Apply(config *Config) {
	f(config)
}

// WithLogger 指定日志记录器
func WithLogger(logger zerolog.Logger) Option {
	return OptionFunc(func(config *Config) {
		config.Logger = logger
	})
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Logger: zerolog.Nop(),
	}
}

func newConfig(options []Option) *Config {
	config := DefaultConfig()
	for _, opt := range options {
		opt.Apply(config)
	}
	return config
}
