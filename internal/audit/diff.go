package audit

import (
	"reflect"
	"sort"
)

// ======================================================
// DIFF
// ======================================================

// Um campo cujo valor mudou entre dois snapshots.
// Previous/Next são nil quando o campo não existia naquele lado.
type Change struct {
	Field    string
	Previous any
	Next     any
}

// ComputeChanges compara dois snapshots campo a campo.
// Sem um dos lados não há diff possível → lista vazia.
// A ordem de saída é por nome de campo, sempre a mesma para as
// mesmas entradas.
func ComputeChanges(previous, next map[string]any) []Change {
	if previous == nil || next == nil {
		return nil
	}

	keys := make([]string, 0, len(previous)+len(next))
	seen := make(map[string]bool, len(previous)+len(next))

	for k := range previous {
		seen[k] = true
		keys = append(keys, k)
	}
	for k := range next {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var changes []Change
	for _, k := range keys {
		prevVal, prevOK := previous[k]
		nextVal, nextOK := next[k]

		// campo presente só de um lado conta como mudança,
		// mesmo que o valor presente seja nil
		if prevOK && nextOK && reflect.DeepEqual(prevVal, nextVal) {
			continue
		}

		changes = append(changes, Change{
			Field:    k,
			Previous: prevVal,
			Next:     nextVal,
		})
	}

	return changes
}
