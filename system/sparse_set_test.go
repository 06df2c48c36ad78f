package system

import (
	"testing"

	"github.com/milk9111/tilenav/spatial"
)

func TestSparseSetLifecycle(t *testing.T) {
	cases := []struct {
		name        string
		create      int
		removeIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_remove_middle", 3, 1},
		{"three_remove_last", 3, 2},
		{"none_removed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s SparseSet[string]
			ids := make([]spatial.EntityID, 0, c.create)
			for i := 1; i <= c.create; i++ {
				id := spatial.EntityID(i * 3)
				s.Set(id, string(rune('a'+i)))
				ids = append(ids, id)
			}
			if s.Len() != c.create {
				t.Fatalf("expected %d entries, got %d", c.create, s.Len())
			}
			if c.removeIndex < 0 {
				return
			}

			removed := ids[c.removeIndex]
			s.Remove(removed)
			if s.Has(removed) {
				t.Fatalf("entity %d should be gone", removed)
			}
			if s.Len() != c.create-1 {
				t.Fatalf("expected %d entries, got %d", c.create-1, s.Len())
			}
			for i, id := range ids {
				if id == removed {
					continue
				}
				v, ok := s.Get(id)
				if !ok || v != string(rune('a'+i+1)) {
					t.Fatalf("entity %d lost its value: %q %v", id, v, ok)
				}
			}
			for i, id := range s.Entities() {
				if v, _ := s.Get(id); v != s.Values()[i] {
					t.Fatalf("entities and values out of step")
				}
			}
		})
	}
}

func TestSparseSetUpdateAndInvalid(t *testing.T) {
	var s SparseSet[int]
	s.Set(5, 1)
	s.Set(5, 2)
	if v, _ := s.Get(5); v != 2 || s.Len() != 1 {
		t.Fatalf("set should update in place, got %d (len %d)", v, s.Len())
	}

	s.Set(spatial.InvalidEntity, 9)
	if s.Has(spatial.InvalidEntity) || s.Len() != 1 {
		t.Fatalf("invalid entity must not be stored")
	}
	if _, ok := s.Get(100); ok {
		t.Fatalf("unknown id should miss")
	}
	s.Remove(100)

	s.Clear()
	if s.Len() != 0 || s.Has(5) {
		t.Fatalf("clear should drop everything")
	}
	s.Set(2, 7)
	if v, ok := s.Get(2); !ok || v != 7 {
		t.Fatalf("set after clear failed")
	}

	var none *SparseSet[int]
	if none.Has(1) || none.Len() != 0 || none.Entities() != nil {
		t.Fatalf("nil set should be empty")
	}
}
