package pathfind

import (
	"sort"
	"time"
)

// Profiler receives begin/end pairs around full searches.
type Profiler interface {
	BeginScope(name string)
	EndScope(name string)
}

// ScopeStats aggregates the calls recorded for one scope.
type ScopeStats struct {
	Calls int
	Total time.Duration
	Max   time.Duration
}

func (s ScopeStats) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// ScopeTimer is a Profiler that measures wall-clock time per scope name.
// Nested scopes of the same name are matched last-in first-out.
// It is not safe for concurrent use.
type ScopeTimer struct {
	now    func() time.Time
	open   map[string][]time.Time
	scopes map[string]*ScopeStats
}

func NewScopeTimer() *ScopeTimer {
	return &ScopeTimer{
		now:    time.Now,
		open:   make(map[string][]time.Time),
		scopes: make(map[string]*ScopeStats),
	}
}

func (t *ScopeTimer) BeginScope(name string) {
	t.open[name] = append(t.open[name], t.now())
}

// EndScope without a matching BeginScope is ignored.
func (t *ScopeTimer) EndScope(name string) {
	stack := t.open[name]
	if len(stack) == 0 {
		return
	}
	began := stack[len(stack)-1]
	t.open[name] = stack[:len(stack)-1]

	elapsed := t.now().Sub(began)
	stats := t.scopes[name]
	if stats == nil {
		stats = &ScopeStats{}
		t.scopes[name] = stats
	}
	stats.Calls++
	stats.Total += elapsed
	if elapsed > stats.Max {
		stats.Max = elapsed
	}
}

func (t *ScopeTimer) Stats(name string) ScopeStats {
	if s := t.scopes[name]; s != nil {
		return *s
	}
	return ScopeStats{}
}

// Scopes lists recorded scope names in sorted order.
func (t *ScopeTimer) Scopes() []string {
	names := make([]string, 0, len(t.scopes))
	for name := range t.scopes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *ScopeTimer) Reset() {
	clear(t.open)
	clear(t.scopes)
}
