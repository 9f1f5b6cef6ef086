package ngram

// Stats counts what a purge changed.
type Stats struct {
	Words        int
	Decremented  int
	DeletedWords int
	DeletedKeys  int
}

// Purger removes the contribution of a message from a chain.
type Purger struct {
	prefixLen int
	fold      Folder
	reporter  Reporter
}

// NewPurger returns a purger for chains trained with prefixLen-word windows.
// A nil fold means SimpleFold; a nil reporter discards events.
func NewPurger(prefixLen int, fold Folder, reporter Reporter) *Purger {
	if prefixLen < 1 {
		prefixLen = DefaultPrefixLen
	}
	if fold == nil {
		fold = SimpleFold
	}
	if reporter == nil {
		reporter = ReporterFunc(func(Event) {})
	}
	return &Purger{prefixLen: prefixLen, fold: fold, reporter: reporter}
}

// Purge walks words through the window and takes one count off every
// (key, word) pair the trainer would have added. Pairs missing from the
// model are skipped.
func (p *Purger) Purge(m Model, words []string) Stats {
	stats := Stats{Words: len(words)}
	window := NewWindow(p.prefixLen)
	for _, word := range words {
		for _, key := range window.Keys(p.fold) {
			for _, e := range m.Forget(key, word) {
				switch e.Action {
				case Decrement:
					stats.Decremented++
				case DeleteWord:
					stats.DeletedWords++
				case DeleteKey:
					stats.DeletedKeys++
				}
				p.reporter.Report(e)
			}
		}
		window.Shift(word)
	}
	return stats
}
