package audit

import "encoding/json"

// Campos de bookkeeping que mudam em todo Save e não interessam ao diff
var snapshotSkip = map[string]bool{
	"created_at": true,
	"updated_at": true,
}

// Snapshot captura o estado persistido de uma entidade como mapa
// plano (via ida e volta JSON, a mesma forma que vai pro banco).
// Deve ser chamado ANTES da mutação para o lado "previous" —
// capturar depois produz diffs vazios.
func Snapshot(entity any) map[string]any {
	if entity == nil {
		return nil
	}

	raw, err := json.Marshal(entity)
	if err != nil {
		return nil
	}

	var snap map[string]any
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil
	}

	for k := range snapshotSkip {
		delete(snap, k)
	}

	return snap
}
