package playground

import (
	"github.com/xinjiayu/rxlite"
)

const chapterFiltering = "filtering"

func filteringExamples() []Example {
	return []Example{
		{Chapter: chapterFiltering, Name: "ignore-elements", Title: "ignoreElements", Run: ignoreElements},
		{Chapter: chapterFiltering, Name: "element-at", Title: "elementAt", Run: elementAt},
		{Chapter: chapterFiltering, Name: "filter", Title: "filter", Run: filter},
		{Chapter: chapterFiltering, Name: "skip", Title: "skip", Run: skip},
		{Chapter: chapterFiltering, Name: "skip-while", Title: "skipWhile", Run: skipWhile},
		{Chapter: chapterFiltering, Name: "skip-until", Title: "skipUntil", Run: skipUntil},
		{Chapter: chapterFiltering, Name: "take", Title: "take", Run: take},
		{Chapter: chapterFiltering, Name: "take-while", Title: "takeWhile", Run: takeWhile},
		{Chapter: chapterFiltering, Name: "take-until", Title: "takeUntil", Run: takeUntil},
		{Chapter: chapterFiltering, Name: "distinct-until-changed", Title: "distinctUntilChanged", Run: distinctUntilChanged},
	}
}

func isEven(value interface{}) bool {
	return value.(int)%2 == 0
}

func ignoreElements(p *Printer) {
	strikes := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(strikes.IgnoreElements().SubscribeWithCallbacks(nil, nil, func() {
		p.Info("You're out!")
	}))

	strikes.OnNext("X")
	strikes.OnNext("X")
	strikes.OnNext("X")
	strikes.OnComplete()
}

func elementAt(p *Printer) {
	strikes := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(strikes.ElementAt(2).SubscribeWithCallbacks(func(interface{}) {
		p.Info("You're out!")
	}, nil, nil))

	strikes.OnNext("X")
	strikes.OnNext("X")
	strikes.OnNext("X")
}

func filter(p *Printer) {
	rxlite.Of(1, 2, 3, 4, 5, 6).Filter(isEven).Subscribe(p.Observer(""))
}

func skip(p *Printer) {
	rxlite.Of("A", "B", "C", "D", "E", "F").Skip(3).Subscribe(p.Observer(""))
}

func skipWhile(p *Printer) {
	rxlite.Of(2, 2, 3, 4, 4).SkipWhile(isEven).Subscribe(p.Observer(""))
}

func skipUntil(p *Printer) {
	subject := rxlite.NewPublishSubject()
	trigger := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(subject.SkipUntil(trigger).Subscribe(p.Observer("")))

	subject.OnNext("A")
	subject.OnNext("B")
	trigger.OnNext("X")
	subject.OnNext("C")
}

func take(p *Printer) {
	rxlite.Of(1, 2, 3, 4, 5, 6).Take(3).Subscribe(p.Observer(""))
}

func takeWhile(p *Printer) {
	rxlite.Of(2, 2, 4, 4, 6, 6).Enumerated().TakeWhile(func(value interface{}) bool {
		indexed := value.(rxlite.IndexedValue)
		return isEven(indexed.Value) && indexed.Index < 3
	}).Map(func(value interface{}) (interface{}, error) {
		return value.(rxlite.IndexedValue).Value, nil
	}).Subscribe(p.Observer(""))
}

func takeUntil(p *Printer) {
	subject := rxlite.NewPublishSubject()
	trigger := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(subject.TakeUntil(trigger).Subscribe(p.Observer("")))

	subject.OnNext("1")
	subject.OnNext("2")
	trigger.OnNext("X")
	subject.OnNext("3")
}

func distinctUntilChanged(p *Printer) {
	rxlite.Of("A", "A", "B", "B", "A").DistinctUntilChanged().Subscribe(p.Observer(""))
}
