package engine

import "testing"

func TestRankedOrdersByReliabilityDescending(t *testing.T) {
	r := NewRegistry(map[string]float64{
		"whisper": 0.95,
		"openai":  0.85,
		"local":   0.5,
	})

	ranked := r.Ranked()
	want := []string{"whisper", "openai", "local"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Fatalf("ranked[%d] = %s, want %s", i, ranked[i].Name, name)
		}
	}
}

func TestRankedBreaksTiesByName(t *testing.T) {
	r := NewRegistry(map[string]float64{"b": 0.8, "a": 0.8, "c": 0.8})
	ranked := r.Ranked()
	if ranked[0].Name != "a" || ranked[1].Name != "b" || ranked[2].Name != "c" {
		t.Fatalf("tie order wrong: %+v", ranked)
	}
}

func TestReliabilityClampedToUnitInterval(t *testing.T) {
	r := NewRegistry(map[string]float64{"hot": 1.7, "cold": -0.3})
	if got := r.Reliability("hot"); got != 1 {
		t.Fatalf("Reliability(hot) = %v, want 1", got)
	}
	if got := r.Reliability("cold"); got != 0 {
		t.Fatalf("Reliability(cold) = %v, want 0", got)
	}
}

func TestReliabilityUnknownIsZero(t *testing.T) {
	r := NewRegistry(nil)
	if got := r.Reliability("missing"); got != 0 {
		t.Fatalf("Reliability(missing) = %v, want 0", got)
	}
}
