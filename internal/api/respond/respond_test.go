package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sivalingapandian/therapist-checkin/internal/apperr"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Validation("bad input"), http.StatusBadRequest},
		{"not found", apperr.NotFound("missing"), http.StatusNotFound},
		{"conflict", apperr.Conflict("taken"), http.StatusConflict},
		{"dependency", apperr.Dependency("down", errors.New("x")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.want {
				t.Fatalf("StatusOf(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, logging.Default(), apperr.Dependency("storage unavailable", errors.New("connection refused to 10.0.0.1")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.1") {
		t.Fatalf("internal details leaked: %s", rec.Body.String())
	}
}

func TestErrorSurfacesClientMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, logging.Default(), apperr.Conflict("this time slot is already booked"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "this time slot is already booked") {
		t.Fatalf("client message missing from body: %s", rec.Body.String())
	}
}
