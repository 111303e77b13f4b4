package audit

import (
	"testing"

	"github.com/RodaNovaServices01/wheel-repair-api/internal/models"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name string
		user models.User
		want string
	}{
		{
			name: "nome completo",
			user: models.User{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"},
			want: "Jane Doe",
		},
		{
			name: "sem nome cai pro e-mail",
			user: models.User{Email: "jane@x.com"},
			want: "jane@x.com",
		},
		{
			name: "espaços em branco caem pro e-mail",
			user: models.User{FirstName: "   ", LastName: " ", Email: "jane@x.com"},
			want: "jane@x.com",
		},
		{
			name: "só primeiro nome, sem espaço sobrando",
			user: models.User{FirstName: "Jane", Email: "jane@x.com"},
			want: "Jane",
		},
		{
			name: "só sobrenome",
			user: models.User{LastName: "Doe", Email: "jane@x.com"},
			want: "Doe",
		},
		{
			name: "espaços extras aparados",
			user: models.User{FirstName: " Jane ", LastName: " Doe ", Email: "jane@x.com"},
			want: "Jane Doe",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayName(&tc.user); got != tc.want {
				t.Errorf("DisplayName = %q, esperava %q", got, tc.want)
			}
		})
	}
}

func TestDisplayName_NilUser(t *testing.T) {
	if got := DisplayName(nil); got != "" {
		t.Errorf("DisplayName(nil) = %q", got)
	}
}

func TestActionForStatusChange(t *testing.T) {
	cases := []struct {
		previous string
		next     string
		want     models.AuditAction
	}{
		{"pending", "approved", models.ActionValidated},
		{"pending", "rejected", models.ActionRejected},
		{"confirmed", "completed", models.ActionCompleted},
		{"pending", "cancelled", models.ActionCancelled},
		{"issued", "paid", models.ActionPaid},
		{"pending", "confirmed", models.ActionConfirmed},
		{"pending", "sent", models.ActionUpdated},
		{"draft", "issued", models.ActionUpdated},
		{"pending", "pending", models.ActionUpdated},
	}

	for _, tc := range cases {
		if got := ActionForStatusChange(tc.previous, tc.next); got != tc.want {
			t.Errorf("ActionForStatusChange(%q, %q) = %q, esperava %q",
				tc.previous, tc.next, got, tc.want)
		}
	}
}
