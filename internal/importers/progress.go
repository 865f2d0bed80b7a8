package importers

import "sync"

// Progress is a snapshot of a run's counters.
type Progress struct {
	Imported int `json:"imported"`
	Found    int `json:"found"`
}

// ProgressObserver receives counter snapshots in mutation order. It runs
// synchronously on the reporting provider's goroutine, outside the counter
// lock. A snapshot superseded while an earlier observer call was running is
// skipped, so the newest state is always the last one delivered.
type ProgressObserver func(Progress)

// Tracker counts found and imported decks for one run. It is safe for
// concurrent use.
type Tracker struct {
	mu       sync.Mutex
	found    int
	imported int
	seq      uint64

	// notify serializes observer calls; delivered is the seq last passed on
	notify    sync.Mutex
	delivered uint64
	observer  ProgressObserver
}

// NewTracker creates a zeroed tracker. observer may be nil.
func NewTracker(observer ProgressObserver) *Tracker {
	return &Tracker{observer: observer}
}

func (t *Tracker) IncrementFound(n int) {
	t.update(n, 0)
}

// DecrementFound takes back decks that were counted as found but will never
// be imported.
func (t *Tracker) DecrementFound(n int) {
	t.update(-n, 0)
}

func (t *Tracker) IncrementImported(n int) {
	t.update(0, n)
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Progress{Imported: t.imported, Found: t.found}
}

func (t *Tracker) update(found, imported int) {
	t.mu.Lock()
	t.found += found
	t.imported += imported
	t.seq++
	seq := t.seq
	snapshot := Progress{Imported: t.imported, Found: t.found}
	t.mu.Unlock()

	if t.observer == nil {
		return
	}

	t.notify.Lock()
	defer t.notify.Unlock()
	if seq <= t.delivered {
		return
	}
	t.delivered = seq
	t.observer(snapshot)
}
