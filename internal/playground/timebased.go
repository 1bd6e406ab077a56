package playground

import (
	"fmt"
	"time"

	"github.com/xinjiayu/rxlite"
)

const chapterTime = "time"

func timeExamples() []Example {
	return []Example{
		{Chapter: chapterTime, Name: "replay", Title: "replay", Run: replay},
		{Chapter: chapterTime, Name: "buffer", Title: "buffer", Run: buffer},
		{Chapter: chapterTime, Name: "window", Title: "window", Run: window},
		{Chapter: chapterTime, Name: "delay-subscription", Title: "delaySubscription", Run: delaySubscription},
		{Chapter: chapterTime, Name: "interval", Title: "interval", Run: interval},
		{Chapter: chapterTime, Name: "timer", Title: "timer", Run: timer},
		{Chapter: chapterTime, Name: "timeout", Title: "timeout", Run: timeout},
		{Chapter: chapterTime, Name: "ticker", Title: "ticker suspend and resume", Run: ticker},
	}
}

// emitEvery schedules values one per second starting at one second.
func emitEvery(s *rxlite.TestScheduler, subject rxlite.Subject, values ...interface{}) {
	for i, value := range values {
		v := value
		s.ScheduleAt(time.Duration(i+1)*time.Second, func() { subject.OnNext(v) })
	}
}

func replay(p *Printer) {
	s := rxlite.NewTestScheduler()
	p = p.WithClock(s)

	source := rxlite.Create(func(emitter rxlite.Emitter) rxlite.Disposable {
		composite := rxlite.NewCompositeDisposable()
		for i := 1; i <= 4; i++ {
			value := i
			composite.Add(s.ScheduleAt(time.Duration(i)*time.Second, func() {
				emitter.OnNext(value)
			}))
		}
		return composite
	})

	replayed := source.Replay(1)
	connection := replayed.Connect()
	defer connection.Dispose()

	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(replayed.Subscribe(p.Observer("1)")))
	s.ScheduleAt(3*time.Second, func() {
		bag.Add(replayed.Subscribe(p.Observer("2)")))
	})
	s.AdvanceTo(5 * time.Second)
}

func buffer(p *Printer) {
	s := rxlite.NewTestScheduler()
	p = p.WithClock(s)

	source := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(source.Buffer(4*time.Second, 2, s).Subscribe(p.Observer("")))

	emitEvery(s, source, "A", "B", "C")
	s.AdvanceTo(9 * time.Second)
}

func window(p *Printer) {
	s := rxlite.NewTestScheduler()
	p = p.WithClock(s)

	source := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	windows := 0
	bag.Add(source.Window(4*time.Second, 2, s).SubscribeWithCallbacks(func(value interface{}) {
		windows++
		label := windowLabel(windows)
		p.Info("window %s opened", label)
		bag.Add(value.(rxlite.Observable).Subscribe(p.Observer(label)))
	}, nil, nil))

	emitEvery(s, source, "A", "B", "C")
	s.AdvanceTo(9 * time.Second)
}

func windowLabel(n int) string {
	return fmt.Sprintf("%d)", n)
}

func delaySubscription(p *Printer) {
	s := rxlite.NewTestScheduler()
	p = p.WithClock(s)

	source := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(source.DelaySubscription(2500*time.Millisecond, s).Subscribe(p.Observer("")))

	emitEvery(s, source, 1, 2, 3, 4)
	s.AdvanceTo(5 * time.Second)
}

func interval(p *Printer) {
	s := rxlite.NewTestScheduler()
	p = p.WithClock(s)

	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(rxlite.Interval(time.Second, s).Take(3).Subscribe(p.Observer("")))
	s.AdvanceTo(5 * time.Second)
}

func timer(p *Printer) {
	s := rxlite.NewTestScheduler()
	p = p.WithClock(s)

	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(rxlite.Timer(3*time.Second, s).Subscribe(p.Observer("")))
	s.Run()
}

func timeout(p *Printer) {
	s := rxlite.NewTestScheduler()
	p = p.WithClock(s)

	source := rxlite.NewPublishSubject()
	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()

	bag.Add(source.Timeout(2*time.Second, s).Subscribe(p.Observer("")))

	s.ScheduleAt(time.Second, func() { source.OnNext("tap") })
	s.ScheduleAt(2*time.Second, func() { source.OnNext("tap") })
	s.AdvanceTo(6 * time.Second)
}

func ticker(p *Printer) {
	s := rxlite.NewTestScheduler()
	p = p.WithClock(s)

	t := rxlite.NewTicker(time.Second, s)
	defer t.Dispose()

	bag := rxlite.NewDisposeBag()
	defer bag.Dispose()
	bag.Add(t.Observable().Subscribe(p.Observer("")))

	t.Resume()
	s.AdvanceTo(3 * time.Second)
	t.Suspend()
	p.Info("suspended")
	s.AdvanceTo(6 * time.Second)
	t.Resume()
	p.Info("resumed")
	s.AdvanceTo(8 * time.Second)
}
