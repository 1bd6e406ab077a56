package playground

import (
	"github.com/pkg/errors"

	"github.com/xinjiayu/rxlite"
)

const chapterCreation = "creation"

var errAnError = errors.New("an error")

func creationExamples() []Example {
	return []Example{
		{Chapter: chapterCreation, Name: "just-of-from", Title: "just, of, from", Run: justOfFrom},
		{Chapter: chapterCreation, Name: "subscribe", Title: "subscribe", Run: subscribeCallbacks},
		{Chapter: chapterCreation, Name: "empty", Title: "empty", Run: empty},
		{Chapter: chapterCreation, Name: "never", Title: "never", Run: never},
		{Chapter: chapterCreation, Name: "range", Title: "range", Run: rangeFibonacci},
		{Chapter: chapterCreation, Name: "dispose", Title: "dispose", Run: dispose},
		{Chapter: chapterCreation, Name: "dispose-bag", Title: "DisposeBag", Run: disposeBag},
		{Chapter: chapterCreation, Name: "create", Title: "create", Run: create},
		{Chapter: chapterCreation, Name: "create-error", Title: "create + Error", Run: createError},
		{Chapter: chapterCreation, Name: "deferred", Title: "deferred", Run: deferred},
		{Chapter: chapterCreation, Name: "single", Title: "Single", Run: single},
	}
}

func justOfFrom(p *Printer) {
	one, two, three := 1, 2, 3

	rxlite.Just(one).Subscribe(p.Observer("just"))
	rxlite.Of(one, two, three).Subscribe(p.Observer("of"))
	rxlite.FromSlice([]interface{}{one, two, three}).Subscribe(p.Observer("from"))
}

func subscribeCallbacks(p *Printer) {
	rxlite.Of(1, 2, 3).SubscribeWithCallbacks(func(value interface{}) {
		p.Value("", value)
	}, nil, func() {
		p.Info("completed")
	})
}

func empty(p *Printer) {
	rxlite.Empty().SubscribeWithCallbacks(func(value interface{}) {
		p.Value("", value)
	}, nil, func() {
		p.Info("completed")
	})
}

func never(p *Printer) {
	bag := rxlite.NewDisposeBag()
	bag.Add(rxlite.Never().
		DoOnSubscribe(func() { p.Info("subscribed") }).
		DoOnDispose(func() { p.Info("disposed") }).
		Subscribe(p.Observer("never")))
	_ = bag.Dispose()
}

func rangeFibonacci(p *Printer) {
	rxlite.Range(1, 10).Map(func(value interface{}) (interface{}, error) {
		n := value.(int)
		a, b := 0, 1
		for i := 1; i < n; i++ {
			a, b = b, a+b
		}
		return b, nil
	}).SubscribeWithCallbacks(func(value interface{}) {
		p.Value("", value)
	}, nil, nil)
}

func dispose(p *Printer) {
	subject := rxlite.NewPublishSubject()
	subscription := subject.Subscribe(p.Observer(""))
	subject.OnNext("A")
	subject.OnNext("B")
	subscription.Dispose()
	subject.OnNext("C")
	p.Info("disposed: %v", subscription.IsDisposed())
}

func disposeBag(p *Printer) {
	bag := rxlite.NewDisposeBag()
	bag.Add(rxlite.Of("A", "B", "C").Subscribe(p.Observer("")))
	_ = bag.Dispose()
}

func create(p *Printer) {
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(rxlite.Create(func(emitter rxlite.Emitter) rxlite.Disposable {
		emitter.OnNext("1")
		emitter.OnComplete()
		emitter.OnNext("?")
		return rxlite.NewBaseDisposable(nil)
	}).DoOnDispose(func() {
		p.Info("disposed")
	}).Subscribe(p.Observer("")))
}

func createError(p *Printer) {
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(rxlite.Create(func(emitter rxlite.Emitter) rxlite.Disposable {
		emitter.OnNext("1")
		emitter.OnError(errAnError)
		emitter.OnNext("?")
		return rxlite.NewBaseDisposable(nil)
	}).DoOnDispose(func() {
		p.Info("disposed")
	}).Subscribe(p.Observer("")))
}

func deferred(p *Printer) {
	flip := false
	factory := rxlite.Defer(func() rxlite.Observable {
		flip = !flip
		if flip {
			return rxlite.Of(1, 2, 3)
		}
		return rxlite.Of(4, 5, 6)
	})

	for i := 0; i < 4; i++ {
		values, _ := collect(factory)
		p.Value("", values)
	}
}

var errFileNotFound = errors.New("file not found")

func single(p *Printer) {
	files := map[string]string{
		"Copyright": "Copyright (c) rxlite authors",
	}
	loadText := func(name string) rxlite.Single {
		return rxlite.NewSingle(func(emitter rxlite.SingleEmitter) rxlite.Disposable {
			contents, ok := files[name]
			if !ok {
				emitter.OnError(errors.Wrap(errFileNotFound, name))
				return rxlite.NewBaseDisposable(nil)
			}
			emitter.OnSuccess(contents)
			return rxlite.NewBaseDisposable(nil)
		})
	}

	for _, name := range []string{"Copyright", "License"} {
		loadText(name).Subscribe(func(value interface{}) {
			p.Value("success", value)
		}, func(err error) {
			p.Value("failure", err)
		})
	}
}

// collect synchronously gathers the values of a synchronous observable.
func collect(o rxlite.Observable) ([]interface{}, error) {
	var values []interface{}
	var err error
	o.SubscribeWithCallbacks(func(value interface{}) {
		values = append(values, value)
	}, func(e error) {
		err = e
	}, nil)
	return values, err
}
