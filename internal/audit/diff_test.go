package audit

import (
	"reflect"
	"testing"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

func changeFields(changes []Change) []string {
	fields := make([]string, 0, len(changes))
	for _, ch := range changes {
		fields = append(fields, ch.Field)
	}
	return fields
}

func TestComputeChanges_NilSnapshots(t *testing.T) {
	snap := map[string]any{"status": "pending"}

	if got := ComputeChanges(nil, snap); len(got) != 0 {
		t.Errorf("ComputeChanges(nil, X) = %v, esperava vazio", got)
	}
	if got := ComputeChanges(snap, nil); len(got) != 0 {
		t.Errorf("ComputeChanges(X, nil) = %v, esperava vazio", got)
	}
	if got := ComputeChanges(nil, nil); len(got) != 0 {
		t.Errorf("ComputeChanges(nil, nil) = %v, esperava vazio", got)
	}
}

func TestComputeChanges_OnlyChangedFields(t *testing.T) {
	previous := map[string]any{
		"status":       "pending",
		"quote_amount": "100.00",
		"client_id":    float64(7),
	}
	next := map[string]any{
		"status":       "approved",
		"quote_amount": "150.00",
		"client_id":    float64(7),
	}

	changes := ComputeChanges(previous, next)

	want := []string{"quote_amount", "status"}
	if got := changeFields(changes); !reflect.DeepEqual(got, want) {
		t.Fatalf("campos alterados = %v, esperava %v", got, want)
	}

	for _, ch := range changes {
		switch ch.Field {
		case "status":
			if ch.Previous != "pending" || ch.Next != "approved" {
				t.Errorf("status: %v -> %v", ch.Previous, ch.Next)
			}
		case "quote_amount":
			if ch.Previous != "100.00" || ch.Next != "150.00" {
				t.Errorf("quote_amount: %v -> %v", ch.Previous, ch.Next)
			}
		}
	}
}

func TestComputeChanges_KeyOnlyOnOneSide(t *testing.T) {
	previous := map[string]any{"status": "pending"}
	next := map[string]any{
		"status": "pending",
		"notes":  "pneu dianteiro",
	}

	changes := ComputeChanges(previous, next)

	if len(changes) != 1 {
		t.Fatalf("esperava 1 mudança, veio %d: %v", len(changes), changes)
	}
	if changes[0].Field != "notes" || changes[0].Previous != nil || changes[0].Next != "pneu dianteiro" {
		t.Errorf("mudança inesperada: %+v", changes[0])
	}

	// lado removido também conta
	removed := ComputeChanges(next, previous)
	if len(removed) != 1 || removed[0].Field != "notes" || removed[0].Next != nil {
		t.Errorf("remoção inesperada: %+v", removed)
	}
}

func TestComputeChanges_DeepEquality(t *testing.T) {
	previous := map[string]any{
		"wheels": []any{map[string]any{"size": "17", "damage": "trinca"}},
	}
	next := map[string]any{
		"wheels": []any{map[string]any{"size": "17", "damage": "trinca"}},
	}

	// instâncias diferentes, estrutura igual → sem mudança
	if changes := ComputeChanges(previous, next); len(changes) != 0 {
		t.Fatalf("estruturas iguais geraram diff: %v", changes)
	}

	next["wheels"] = []any{map[string]any{"size": "17", "damage": "empeno"}}
	changes := ComputeChanges(previous, next)
	if len(changes) != 1 || changes[0].Field != "wheels" {
		t.Fatalf("esperava mudança em wheels, veio %v", changes)
	}
}

func TestComputeChanges_Deterministic(t *testing.T) {
	previous := map[string]any{"b": 1.0, "a": 2.0, "c": 3.0}
	next := map[string]any{"b": 9.0, "a": 8.0, "c": 3.0, "d": 4.0}

	first := ComputeChanges(previous, next)
	for i := 0; i < 20; i++ {
		if again := ComputeChanges(previous, next); !reflect.DeepEqual(first, again) {
			t.Fatalf("execução %d divergiu: %v vs %v", i, first, again)
		}
	}

	// saída ordenada por nome de campo
	want := []string{"a", "b", "d"}
	if got := changeFields(first); !reflect.DeepEqual(got, want) {
		t.Errorf("ordem = %v, esperava %v", got, want)
	}
}

func TestSnapshot_PersistedShape(t *testing.T) {
	amount := "150.00"
	quote := models.Quote{
		ID:          3,
		ClientID:    7,
		QuoteAmount: amount,
		Status:      "approved",
	}

	snap := Snapshot(&quote)
	if snap == nil {
		t.Fatal("snapshot nil")
	}

	if snap["status"] != "approved" || snap["quote_amount"] != amount {
		t.Errorf("snapshot inesperado: %v", snap)
	}

	// bookkeeping fora do diff
	if _, ok := snap["created_at"]; ok {
		t.Error("created_at não deveria entrar no snapshot")
	}
	if _, ok := snap["updated_at"]; ok {
		t.Error("updated_at não deveria entrar no snapshot")
	}
}

func TestSnapshot_Nil(t *testing.T) {
	if snap := Snapshot(nil); snap != nil {
		t.Errorf("Snapshot(nil) = %v", snap)
	}
}
