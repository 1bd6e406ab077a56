package playground

import (
	"github.com/xinjiayu/rxlite"
)

const chapterSubjects = "subjects"

func subjectExamples() []Example {
	return []Example{
		{Chapter: chapterSubjects, Name: "publish-subject", Title: "PublishSubject", Run: publishSubject},
		{Chapter: chapterSubjects, Name: "behavior-subject", Title: "BehaviorSubject", Run: behaviorSubject},
		{Chapter: chapterSubjects, Name: "replay-subject", Title: "ReplaySubject", Run: replaySubject},
	}
}

func publishSubject(p *Printer) {
	subject := rxlite.NewPublishSubject()
	subject.OnNext("Is anyone listening?")

	subscriptionOne := subject.SubscribeWithCallbacks(func(value interface{}) {
		p.Value("", value)
	}, nil, nil)
	subject.OnNext("1")
	subject.OnNext("2")

	subscriptionTwo := subject.Subscribe(p.Observer("2)"))
	subject.OnNext("3")

	subscriptionOne.Dispose()
	subject.OnNext("4")

	subject.OnComplete()
	subject.OnNext("5")
	subscriptionTwo.Dispose()

	bag := rxlite.NewDisposeBag()
	bag.Add(subject.Subscribe(p.Observer("3)")))
	subject.OnNext("?")
	_ = bag.Dispose()
}

func behaviorSubject(p *Printer) {
	subject := rxlite.NewBehaviorSubject("Initial value")
	bag := rxlite.NewDisposeBag()

	subject.OnNext("X")
	bag.Add(subject.Subscribe(p.Observer("1)")))

	subject.OnError(errAnError)
	bag.Add(subject.Subscribe(p.Observer("2)")))

	if _, err := subject.Value(); err != nil {
		p.Value("value", err)
	}
	_ = bag.Dispose()
}

func replaySubject(p *Printer) {
	subject := rxlite.NewReplaySubject(2)
	bag := rxlite.NewDisposeBag()

	subject.OnNext("1")
	subject.OnNext("2")
	subject.OnNext("3")

	bag.Add(subject.Subscribe(p.Observer("1)")))
	bag.Add(subject.Subscribe(p.Observer("2)")))

	subject.OnNext("4")
	subject.OnError(errAnError)
	subject.Dispose()

	bag.Add(subject.Subscribe(p.Observer("3)")))
	_ = bag.Dispose()
}
