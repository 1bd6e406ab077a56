// Package playground replays the operator demonstrations chapter by chapter.
// Time based examples run on a TestScheduler, so every run prints the same output.
package playground

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownExample is returned when neither an example nor a chapter matches.
var ErrUnknownExample = errors.New("unknown example or chapter")

// Example is a single named demonstration.
type Example struct {
	Chapter string
	Name    string
	Title   string
	Run     func(p *Printer)
}

// Registry holds examples in registration order.
type Registry struct {
	examples []Example
	chapters []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Default returns a registry with every built-in chapter.
func Default() *Registry {
	r := NewRegistry()
	r.Register(creationExamples()...)
	r.Register(subjectExamples()...)
	r.Register(filteringExamples()...)
	r.Register(transformingExamples()...)
	r.Register(combiningExamples()...)
	r.Register(timeExamples()...)
	return r
}

// Register appends examples.
func (r *Registry) Register(examples ...Example) {
	for _, e := range examples {
		if !r.hasChapter(e.Chapter) {
			r.chapters = append(r.chapters, e.Chapter)
		}
		r.examples = append(r.examples, e)
	}
}

func (r *Registry) hasChapter(chapter string) bool {
	for _, c := range r.chapters {
		if c == chapter {
			return true
		}
	}
	return false
}

// Chapters lists chapters in registration order.
func (r *Registry) Chapters() []string {
	return append([]string(nil), r.chapters...)
}

// Examples lists every example in registration order.
func (r *Registry) Examples() []Example {
	return append([]Example(nil), r.examples...)
}

// Names lists example names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.examples))
	for _, e := range r.examples {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Find returns the example called name.
func (r *Registry) Find(name string) (Example, bool) {
	for _, e := range r.examples {
		if e.Name == name {
			return e, true
		}
	}
	return Example{}, false
}

// Chapter returns the examples of one chapter.
func (r *Registry) Chapter(chapter string) []Example {
	var examples []Example
	for _, e := range r.examples {
		if e.Chapter == chapter {
			examples = append(examples, e)
		}
	}
	return examples
}

// Run runs the example or every example of the chapter named target.
func (r *Registry) Run(target string, p *Printer) error {
	if e, ok := r.Find(target); ok {
		p.Header(e.Title)
		e.Run(p)
		return nil
	}

	examples := r.Chapter(target)
	if len(examples) == 0 {
		return errors.Wrapf(ErrUnknownExample, "%q", target)
	}
	for _, e := range examples {
		p.Header(e.Title)
		e.Run(p)
	}
	return nil
}
