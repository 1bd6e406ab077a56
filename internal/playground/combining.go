package playground

import (
	"fmt"

	"github.com/xinjiayu/rxlite"
)

const chapterCombining = "combining"

func combiningExamples() []Example {
	return []Example{
		{Chapter: chapterCombining, Name: "start-with", Title: "startWith", Run: startWith},
		{Chapter: chapterCombining, Name: "concat-static", Title: "Concat", Run: concatStatic},
		{Chapter: chapterCombining, Name: "concat", Title: "concat", Run: concat},
		{Chapter: chapterCombining, Name: "concat-map", Title: "concatMap", Run: concatMap},
		{Chapter: chapterCombining, Name: "merge", Title: "merge", Run: merge},
		{Chapter: chapterCombining, Name: "combine-latest", Title: "combineLatest", Run: combineLatest},
		{Chapter: chapterCombining, Name: "zip", Title: "zip", Run: zip},
		{Chapter: chapterCombining, Name: "with-latest-from", Title: "withLatestFrom", Run: withLatestFrom},
		{Chapter: chapterCombining, Name: "sample", Title: "sample", Run: sample},
		{Chapter: chapterCombining, Name: "amb", Title: "amb", Run: amb},
		{Chapter: chapterCombining, Name: "switch-latest", Title: "switchLatest", Run: switchLatest},
		{Chapter: chapterCombining, Name: "reduce", Title: "reduce", Run: reduce},
		{Chapter: chapterCombining, Name: "scan", Title: "scan", Run: scan},
		{Chapter: chapterCombining, Name: "zip-scan", Title: "zip and scan", Run: zipScan},
	}
}

func sum(accumulator, current interface{}) interface{} {
	return accumulator.(int) + current.(int)
}

func pair(left, right interface{}) interface{} {
	return fmt.Sprintf("%v %v", left, right)
}

func startWith(p *Printer) {
	rxlite.Of(2, 3, 4).StartWith(1).Subscribe(p.Observer(""))
}

func concatStatic(p *Printer) {
	rxlite.Concat(rxlite.Of(1, 2, 3), rxlite.Of(4, 5, 6)).Subscribe(p.Observer(""))
}

func concat(p *Printer) {
	germanCities := rxlite.Of("Berlin", "Münich", "Frankfurt")
	spanishCities := rxlite.Of("Madrid", "Barcelona", "Valencia")
	germanCities.Concat(spanishCities).Subscribe(p.Observer(""))
}

func concatMap(p *Printer) {
	sequences := map[string]rxlite.Observable{
		"Germany": rxlite.Of("Berlin", "Münich", "Frankfurt"),
		"Spain":   rxlite.Of("Madrid", "Barcelona", "Valencia"),
	}
	rxlite.Of("Germany", "Spain").ConcatMap(func(value interface{}) rxlite.Observable {
		return sequences[value.(string)]
	}).Subscribe(p.Observer(""))
}

func merge(p *Printer) {
	left := rxlite.NewPublishSubject()
	right := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(rxlite.Merge(left, right).Subscribe(p.Observer("")))

	left.OnNext("Left: Berlin")
	right.OnNext("Right: Madrid")
	left.OnNext("Left: Münich")
	right.OnNext("Right: Barcelona")
	left.OnComplete()
	right.OnNext("Right: Valencia")
	right.OnComplete()
}

func combineLatest(p *Printer) {
	left := rxlite.NewPublishSubject()
	right := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(left.CombineLatest(right, pair).Subscribe(p.Observer("")))

	left.OnNext("Hello,")
	right.OnNext("world")
	right.OnNext("RxLite")
	left.OnNext("Have a good day,")
	left.OnComplete()
	right.OnComplete()
}

func zip(p *Printer) {
	left := rxlite.Of("Sunny", "Cloudy", "Cloudy", "Sunny")
	right := rxlite.Of("Lisbon", "Copenhagen", "London", "Madrid", "Vienna")
	left.Zip(right, func(weather, city interface{}) interface{} {
		return fmt.Sprintf("It's %v in %v", weather, city)
	}).Subscribe(p.Observer(""))
}

func withLatestFrom(p *Printer) {
	button := rxlite.NewPublishSubject()
	textField := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(button.WithLatestFrom(textField, nil).Subscribe(p.Observer("")))

	textField.OnNext("Par")
	textField.OnNext("Pari")
	textField.OnNext("Paris")
	button.OnNext(struct{}{})
	button.OnNext(struct{}{})
}

func sample(p *Printer) {
	button := rxlite.NewPublishSubject()
	textField := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(textField.Sample(button).Subscribe(p.Observer("")))

	textField.OnNext("Par")
	textField.OnNext("Pari")
	textField.OnNext("Paris")
	button.OnNext(struct{}{})
	button.OnNext(struct{}{})
}

func amb(p *Printer) {
	left := rxlite.NewPublishSubject()
	right := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(left.Amb(right).Subscribe(p.Observer("")))

	left.OnNext("Lisbon")
	right.OnNext("Copenhagen")
	left.OnNext("London")
	left.OnNext("Madrid")
	right.OnNext("Vienna")
	p.Info("right has observers: %v", right.HasObservers())
}

func switchLatest(p *Printer) {
	one := rxlite.NewPublishSubject()
	two := rxlite.NewPublishSubject()
	three := rxlite.NewPublishSubject()
	source := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(source.SwitchLatest().Subscribe(p.Observer("")))

	source.OnNext(one)
	one.OnNext("Some text from sequence one")
	two.OnNext("Some text from sequence two")

	source.OnNext(two)
	two.OnNext("More text from sequence two")
	one.OnNext("and also from sequence one")

	source.OnNext(three)
	two.OnNext("Why don't you see me?")
	one.OnNext("I'm alone, help me")
	three.OnNext("Hey it's three. I win.")

	source.OnNext(one)
	one.OnNext("Nope. It's me, one!")
}

func reduce(p *Printer) {
	rxlite.Of(1, 3, 5, 7, 9).Reduce(0, sum).Subscribe(p.Observer(""))
}

func scan(p *Printer) {
	rxlite.Of(1, 3, 5, 7, 9).Scan(0, sum).Subscribe(p.Observer(""))
}

func zipScan(p *Printer) {
	source := rxlite.Of(1, 3, 5, 7, 9)
	source.Zip(source.Scan(0, sum), func(value, total interface{}) interface{} {
		return fmt.Sprintf("%v %v", value, total)
	}).Subscribe(p.Observer(""))
}
