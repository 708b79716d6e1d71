package directory

import (
	"testing"

	"github.com/sivalingapandian/therapist-checkin/internal/apperr"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"bare ten digits", "5551234567", "+15551234567", true},
		{"formatted", "(555) 123-4567", "+15551234567", true},
		{"already has country code", "15551234567", "+15551234567", true},
		{"plus prefix", "+1 555 123 4567", "+15551234567", true},
		{"too short", "12345", "", false},
		{"too long", "155512345678", "", false},
		{"eleven digits without leading one", "25551234567", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			if tt.valid {
				if err != nil {
					t.Fatalf("NormalizePhone(%q) returned error: %v", tt.raw, err)
				}
				if got != tt.want {
					t.Fatalf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("NormalizePhone(%q) = %q, expected validation error", tt.raw, got)
			}
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("expected validation error, got %s", apperr.KindOf(err))
			}
		})
	}
}

func TestCreateTherapistRequestValidate(t *testing.T) {
	valid := CreateTherapistRequest{Name: "Dr. A", Email: "a@x.com", Phone: "5551234567"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, req := range []CreateTherapistRequest{
		{Email: "a@x.com", Phone: "5551234567"},
		{Name: "Dr. A", Phone: "5551234567"},
		{Name: "Dr. A", Email: "a@x.com"},
	} {
		if err := req.Validate(); apperr.KindOf(err) != apperr.KindValidation {
			t.Fatalf("expected validation error for %+v, got %v", req, err)
		}
	}
}

func TestUpdateTherapistFieldsChanges(t *testing.T) {
	name := "Dr. B"
	fields := UpdateTherapistFields{Name: &name}

	changes := fields.Changes()
	if len(changes) != 1 || changes["name"] != "Dr. B" {
		t.Fatalf("unexpected changes: %v", changes)
	}

	if got := (UpdateTherapistFields{}).Changes(); len(got) != 0 {
		t.Fatalf("expected no changes, got %v", got)
	}
}
