// Package engine holds the static reliability scores used to order
// STT/TTS backend attempts.
package engine

import "sort"

// Score pairs an engine name with its configured reliability weight.
type Score struct {
	Name        string
	Reliability float64
}

// Registry maps engine names to static reliability scores. Scores are set at
// startup and never mutated afterwards; ordering happens only by sorting a
// snapshot.
type Registry struct {
	scores map[string]float64
}

// NewRegistry creates a registry from a name → reliability mapping.
// Reliability values are clamped to [0, 1].
func NewRegistry(scores map[string]float64) *Registry {
	m := make(map[string]float64, len(scores))
	for name, rel := range scores {
		m[name] = max(0, min(1, rel))
	}
	return &Registry{scores: m}
}

// Reliability returns the configured score for an engine, or 0 if unknown.
func (r *Registry) Reliability(name string) float64 {
	return r.scores[name]
}

// Ranked returns a snapshot of all scores sorted by descending reliability.
// Ties break on name so the ordering is deterministic.
func (r *Registry) Ranked() []Score {
	out := make([]Score, 0, len(r.scores))
	for name, rel := range r.scores {
		out = append(out, Score{Name: name, Reliability: rel})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reliability != out[j].Reliability {
			return out[i].Reliability > out[j].Reliability
		}
		return out[i].Name < out[j].Name
	})
	return out
}
