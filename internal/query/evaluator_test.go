package query

import "testing"

func TestBoolComputesOnce(t *testing.T) {
	e := NewEvaluator()
	key := Key{Kind: KindModuleAvailable, Decl: 1}

	calls := 0
	compute := func() bool {
		calls++
		return true
	}

	for range 3 {
		if !e.Bool(key, compute) {
			t.Fatal("expected true")
		}
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
	if !e.Cached(key) {
		t.Fatal("key must be cached")
	}
}

func TestBoolDistinctKeys(t *testing.T) {
	e := NewEvaluator()
	calls := 0
	compute := func() bool {
		calls++
		return false
	}

	e.Bool(Key{Kind: KindModuleAvailable, Decl: 1}, compute)
	e.Bool(Key{Kind: KindModuleAvailable, Decl: 2}, compute)
	e.Bool(Key{Kind: KindIsDistributedActor, Decl: 1}, compute)

	if calls != 3 {
		t.Fatalf("distinct keys must compute independently, got %d calls", calls)
	}
	if e.Len() != 3 {
		t.Fatalf("expected 3 cached results, got %d", e.Len())
	}
}

func TestBoolReentrant(t *testing.T) {
	e := NewEvaluator()
	inner := Key{Kind: KindIsDistributedActor, Decl: 2}
	outer := Key{Kind: KindIsDistributedActor, Decl: 1}

	innerCalls := 0
	got := e.Bool(outer, func() bool {
		return e.Bool(inner, func() bool {
			innerCalls++
			return true
		})
	})
	if !got {
		t.Fatal("nested evaluation must propagate results")
	}
	if innerCalls != 1 || !e.Cached(inner) {
		t.Fatalf("inner query must be computed and cached once, calls=%d", innerCalls)
	}
}

func TestBoolCycle(t *testing.T) {
	e := NewEvaluator()
	key := Key{Kind: KindIsDistributedActor, Decl: 1}

	var compute func() bool
	compute = func() bool {
		// Self-referential query answers false instead of recursing.
		return e.Bool(key, compute) || true
	}
	if !e.Bool(key, compute) {
		t.Fatal("outer evaluation must still complete")
	}
	// The final, well-founded answer wins the cache slot.
	if !e.Bool(key, func() bool { t.Fatal("must be cached"); return false }) {
		t.Fatal("cached answer lost")
	}
}

func TestSideEffectAtMostOnce(t *testing.T) {
	e := NewEvaluator()
	key := Key{Kind: KindModuleAvailable, Decl: 7}

	diagnostics := 0
	for range 5 {
		e.Bool(key, func() bool {
			diagnostics++ // stands in for a diagnostic emission
			return false
		})
	}
	if diagnostics != 1 {
		t.Fatalf("side effect fired %d times, want 1", diagnostics)
	}
}
