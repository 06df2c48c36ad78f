package pathfind

import (
	"reflect"
	"testing"
	"time"
)

type recordingProfiler struct {
	events []string
}

func (r *recordingProfiler) BeginScope(name string) { r.events = append(r.events, "begin:"+name) }
func (r *recordingProfiler) EndScope(name string)   { r.events = append(r.events, "end:"+name) }

func TestProfilerWrapsFind(t *testing.T) {
	pf, g := newFinder(t, 4, 4)
	rec := &recordingProfiler{}
	pf.SetProfiler(rec)

	pf.Find(0, 0, 3, 3)
	g.SetWalkable(3, 3, false)
	pf.FindEx(0, 0, 3, 3, DefaultOptions())
	pf.HasPath(0, 0, 2, 2)

	want := []string{
		"begin:" + ProfileScope, "end:" + ProfileScope,
		"begin:" + ProfileScope, "end:" + ProfileScope,
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("expected %v, got %v", want, rec.events)
	}

	pf.SetProfiler(nil)
	pf.Find(0, 0, 2, 2)
	if len(rec.events) != len(want) {
		t.Fatalf("removed profiler should not be called")
	}
}

func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestScopeTimer(t *testing.T) {
	st := NewScopeTimer()
	st.now = fakeClock(time.Millisecond)

	st.BeginScope("a")
	st.EndScope("a")
	st.BeginScope("a")
	st.BeginScope("b")
	st.EndScope("b")
	st.EndScope("a")
	st.EndScope("c")

	a := st.Stats("a")
	if a.Calls != 2 {
		t.Fatalf("expected 2 calls for a, got %d", a.Calls)
	}
	// first: 1ms, second spans the nested scope: 3ms
	if a.Total != 4*time.Millisecond || a.Max != 3*time.Millisecond {
		t.Fatalf("unexpected stats %+v", a)
	}
	if a.Mean() != 2*time.Millisecond {
		t.Fatalf("unexpected mean %v", a.Mean())
	}
	if b := st.Stats("b"); b.Calls != 1 || b.Total != time.Millisecond {
		t.Fatalf("unexpected stats for b %+v", b)
	}
	if got := st.Scopes(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected scopes %v", got)
	}

	st.Reset()
	if len(st.Scopes()) != 0 || st.Stats("a").Calls != 0 {
		t.Fatalf("reset should drop everything")
	}
	if (ScopeStats{}).Mean() != 0 {
		t.Fatalf("empty mean should be 0")
	}
}

func TestScopeTimerCountsSearches(t *testing.T) {
	pf, _ := newFinder(t, 6, 6)
	st := NewScopeTimer()
	pf.SetProfiler(st)

	for i := 0; i < 5; i++ {
		pf.Find(0, 0, 5, i)
	}
	pf.HasPath(0, 0, 5, 5)

	if got := st.Stats(ProfileScope).Calls; got != 5 {
		t.Fatalf("expected 5 profiled searches, got %d", got)
	}
}
