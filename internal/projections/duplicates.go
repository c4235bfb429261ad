package projections

import (
	"fmt"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// DuplicateGraph is the duplicate-annotation view derived from
// duplicate-detected and duplicate-marked events. A duplicate-marked event
// for the same transaction pair supersedes an earlier duplicate-detected
// one, the same way a later event always wins in a pure fold.
type DuplicateGraph struct {
	byPair        map[string]model.DuplicateAnnotation
	byTransaction map[string][]string // identity -> pair keys
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// BuildDuplicateGraph folds duplicate-detected/duplicate-marked events into
// a graph of annotations keyed by transaction pair.
func BuildDuplicateGraph(events []model.Event) (*DuplicateGraph, error) {
	g := &DuplicateGraph{
		byPair:        make(map[string]model.DuplicateAnnotation),
		byTransaction: make(map[string][]string),
	}
	for i, e := range events {
		switch e.Kind {
		case model.EventDuplicateDetected, model.EventDuplicateMarked:
			ann, err := DecodeDuplicateAnnotation(e.Payload)
			if err != nil {
				return nil, fmt.Errorf("applying event %d (%s): %w", i, e.ID, err)
			}
			key := pairKey(ann.TransactionA, ann.TransactionB)
			if _, exists := g.byPair[key]; !exists {
				g.byTransaction[ann.TransactionA] = append(g.byTransaction[ann.TransactionA], key)
				g.byTransaction[ann.TransactionB] = append(g.byTransaction[ann.TransactionB], key)
			}
			g.byPair[key] = ann
		}
	}
	return g, nil
}

// All returns every annotation currently in the graph.
func (g *DuplicateGraph) All() []model.DuplicateAnnotation {
	out := make([]model.DuplicateAnnotation, 0, len(g.byPair))
	for _, ann := range g.byPair {
		out = append(out, ann)
	}
	return out
}

// For returns every annotation involving a given transaction identity.
func (g *DuplicateGraph) For(identity string) []model.DuplicateAnnotation {
	keys := g.byTransaction[identity]
	out := make([]model.DuplicateAnnotation, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.byPair[k])
	}
	return out
}

// Len returns the number of distinct transaction pairs annotated.
func (g *DuplicateGraph) Len() int { return len(g.byPair) }
