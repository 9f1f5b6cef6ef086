package ngram

import (
	"fmt"
	"io"
)

// Action is the kind of change made to the chain.
type Action int

const (
	Decrement Action = iota
	DeleteWord
	DeleteKey
)

func (a Action) String() string {
	switch a {
	case Decrement:
		return "decrement"
	case DeleteWord:
		return "delete_word"
	case DeleteKey:
		return "delete_key"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Event records one change to the chain.
type Event struct {
	Action    Action
	Key       string
	Word      string
	Remaining int
}

// String formats the event as the line printed for the operator.
func (e Event) String() string {
	switch e.Action {
	case DeleteWord:
		return fmt.Sprintf("Deleting %s: %s", e.Key, e.Word)
	case DeleteKey:
		return fmt.Sprintf("Deleting key %s", e.Key)
	default:
		return fmt.Sprintf("Decrementing %s: %s", e.Key, e.Word)
	}
}

// Reporter receives every event produced by a purge.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

// Reporters fans an event out to each reporter in order.
type Reporters []Reporter

func (rs Reporters) Report(e Event) {
	for _, r := range rs {
		r.Report(e)
	}
}

// PrintReporter writes one line per event to w.
func PrintReporter(w io.Writer) Reporter {
	return ReporterFunc(func(e Event) {
		fmt.Fprintln(w, e.String())
	})
}
