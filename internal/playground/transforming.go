package playground

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/xinjiayu/rxlite"
)

const chapterTransforming = "transforming"

func transformingExamples() []Example {
	return []Example{
		{Chapter: chapterTransforming, Name: "to-array", Title: "toArray", Run: toArray},
		{Chapter: chapterTransforming, Name: "map", Title: "map", Run: mapNumbers},
		{Chapter: chapterTransforming, Name: "enumerated-map", Title: "enumerated and map", Run: enumeratedMap},
		{Chapter: chapterTransforming, Name: "flat-map", Title: "flatMap", Run: flatMapStudents},
		{Chapter: chapterTransforming, Name: "flat-map-latest", Title: "flatMapLatest", Run: flatMapLatestStudents},
		{Chapter: chapterTransforming, Name: "materialize-dematerialize", Title: "materialize and dematerialize", Run: materializeDematerialize},
		{Chapter: chapterTransforming, Name: "element-not-share", Title: "elements without share", Run: elementNotShare},
		{Chapter: chapterTransforming, Name: "element-share", Title: "elements with share", Run: elementShare},
	}
}

var errCheating = errors.New("cheating")

// student exposes its score as a BehaviorSubject.
type student struct {
	score *rxlite.BehaviorSubject
}

func newStudent(score int) *student {
	return &student{score: rxlite.NewBehaviorSubject(score)}
}

func toArray(p *Printer) {
	rxlite.Of("A", "B", "C").ToArray().Subscribe(p.Observer(""))
}

func mapNumbers(p *Printer) {
	words := []string{"zero", "one", "two", "three", "four", "five"}
	rxlite.Of(1, 3, 5).Map(func(value interface{}) (interface{}, error) {
		return words[value.(int)], nil
	}).Subscribe(p.Observer(""))
}

func enumeratedMap(p *Printer) {
	rxlite.Of(1, 2, 3, 4, 5, 6).Enumerated().Map(func(value interface{}) (interface{}, error) {
		indexed := value.(rxlite.IndexedValue)
		if indexed.Index > 2 {
			return indexed.Value.(int) * 2, nil
		}
		return indexed.Value, nil
	}).Subscribe(p.Observer(""))
}

func flatMapStudents(p *Printer) {
	ryan := newStudent(80)
	charlotte := newStudent(90)
	students := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(students.FlatMap(func(value interface{}) rxlite.Observable {
		return value.(*student).score
	}).Subscribe(p.Observer("")))

	students.OnNext(ryan)
	ryan.score.OnNext(85)
	students.OnNext(charlotte)
	ryan.score.OnNext(95)
	charlotte.score.OnNext(100)
}

func flatMapLatestStudents(p *Printer) {
	ryan := newStudent(80)
	charlotte := newStudent(90)
	students := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(students.FlatMapLatest(func(value interface{}) rxlite.Observable {
		return value.(*student).score
	}).Subscribe(p.Observer("")))

	students.OnNext(ryan)
	ryan.score.OnNext(85)
	students.OnNext(charlotte)
	ryan.score.OnNext(95)
	charlotte.score.OnNext(100)
}

func materializeDematerialize(p *Printer) {
	ryan := newStudent(80)
	charlotte := newStudent(100)
	current := rxlite.NewBehaviorSubject(ryan)
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	events := current.FlatMapLatest(func(value interface{}) rxlite.Observable {
		return value.(*student).score.Materialize()
	})

	bag.Add(events.Filter(func(value interface{}) bool {
		event := value.(rxlite.Event)
		if event.Kind == rxlite.KindError {
			p.Value("", event.Err)
			return false
		}
		return true
	}).Dematerialize().Subscribe(p.Observer("")))

	ryan.score.OnNext(85)
	ryan.score.OnError(errCheating)
	ryan.score.OnNext(90)
	current.OnNext(charlotte)
}

func elementNotShare(p *Printer) {
	sharedElements(p, false)
}

func elementShare(p *Printer) {
	sharedElements(p, true)
}

func sharedElements(p *Printer, share bool) {
	subscriptions := 0
	source := rxlite.Create(func(emitter rxlite.Emitter) rxlite.Disposable {
		subscriptions++
		p.Info("subscription %d", subscriptions)
		emitter.OnNext(subscriptions)
		return rxlite.NewBaseDisposable(nil)
	})
	if share {
		source = source.Share()
	}

	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	for i := 1; i <= 2; i++ {
		bag.Add(source.Subscribe(p.Observer(fmt.Sprintf("%d)", i))))
	}
}
