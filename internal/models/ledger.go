package models

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultGoal = 100

// RandomSource picks an index in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// LedgerObserver is notified with a fresh snapshot after every mutation.
// Callbacks run on the mutating goroutine, after the ledger lock is released.
type LedgerObserver interface {
	OnLedgerChanged(snapshot *Snapshot)
}

type LedgerObserverFunc func(snapshot *Snapshot)

func (f LedgerObserverFunc) OnLedgerChanged(snapshot *Snapshot) { f(snapshot) }

type LedgerOption func(*Ledger)

func WithRand(rnd RandomSource) LedgerOption {
	return func(l *Ledger) {
		if rnd != nil {
			l.rnd = rnd
		}
	}
}

func WithIDGenerator(fn func() string) LedgerOption {
	return func(l *Ledger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

func WithClock(fn func() time.Time) LedgerOption {
	return func(l *Ledger) {
		if fn != nil {
			l.now = fn
		}
	}
}

// Ledger holds the contributions (newest first) and the running total toward
// the goal. current always equals the sum of Score over contributions.
type Ledger struct {
	mu            sync.RWMutex
	contributions []Contribution
	goal          int
	current       int
	version       uint64

	rnd   RandomSource
	newID func() string
	now   func() time.Time

	obsMu     sync.RWMutex
	observers map[int]LedgerObserver
	nextObsID int
}

func NewLedger(goal int, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		contributions: make([]Contribution, 0),
		goal:          goal,
		rnd:           rand.New(rand.NewSource(time.Now().UnixNano())),
		newID:         uuid.NewString,
		now:           time.Now,
		observers:     make(map[int]LedgerObserver),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize replaces the contents with the fixed seed list and recomputes
// the running total from it.
func (l *Ledger) Initialize() {
	l.mu.Lock()
	seeded := make([]Contribution, 0, len(seedContributions))
	total := 0
	for _, t := range seedContributions {
		c := l.materialize(t)
		seeded = append(seeded, c)
		total += Score(c)
	}
	l.contributions = seeded
	l.current = total
	l.version++
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(snapshot)
}

// AddRandomSample picks one entry of the sample pool uniformly, records it as
// the newest contribution and returns it.
func (l *Ledger) AddRandomSample() Contribution {
	c, _ := l.AddRandomSampleSnapshot()
	return c
}

// AddRandomSampleSnapshot is AddRandomSample that also returns the state right
// after this mutation.
func (l *Ledger) AddRandomSampleSnapshot() (Contribution, *Snapshot) {
	if len(samplePool) == 0 {
		panic("models: sample pool is empty")
	}

	l.mu.Lock()
	c := l.materialize(samplePool[l.rnd.Intn(len(samplePool))])
	l.contributions = append([]Contribution{c}, l.contributions...)
	l.current += Score(c)
	l.version++
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(snapshot)
	return c, snapshot
}

func (l *Ledger) materialize(t blueprint) Contribution {
	c := Contribution{
		ID:        l.newID(),
		User:      t.user,
		Type:      t.kind,
		Amount:    t.amount,
		Timestamp: l.now(),
	}
	if t.message != nil {
		m := *t.message
		c.Message = &m
	}
	return c
}

// Progress is current/goal clamped to [0, 1], or 0 when the goal is not positive.
func (l *Ledger) Progress() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return progressOf(l.current, l.goal)
}

func progressOf(current, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	p := float64(current) / float64(goal)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (l *Ledger) Current() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

func (l *Ledger) Goal() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.goal
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.contributions)
}

func (l *Ledger) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Contributions returns a copy of the list, newest first.
func (l *Ledger) Contributions() []Contribution {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Contribution, len(l.contributions))
	copy(out, l.contributions)
	return out
}

func (l *Ledger) Snapshot() *Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() *Snapshot {
	views := make([]ContributionView, 0, len(l.contributions))
	for _, c := range l.contributions {
		views = append(views, NewContributionView(c))
	}
	return &Snapshot{
		Goal:          l.goal,
		Current:       l.current,
		Progress:      progressOf(l.current, l.goal),
		Version:       l.version,
		Contributions: views,
	}
}

// Subscribe registers an observer and returns a function removing it.
func (l *Ledger) Subscribe(o LedgerObserver) func() {
	l.obsMu.Lock()
	id := l.nextObsID
	l.nextObsID++
	l.observers[id] = o
	l.obsMu.Unlock()

	return func() {
		l.obsMu.Lock()
		delete(l.observers, id)
		l.obsMu.Unlock()
	}
}

func (l *Ledger) notify(snapshot *Snapshot) {
	l.obsMu.RLock()
	targets := make([]LedgerObserver, 0, len(l.observers))
	for _, o := range l.observers {
		targets = append(targets, o)
	}
	l.obsMu.RUnlock()

	for _, o := range targets {
		o.OnLedgerChanged(snapshot)
	}
}
