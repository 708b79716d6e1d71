package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/sivalingapandian/therapist-checkin/internal/apperr"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

// failingRepository returns the configured error from every operation.
type failingRepository struct {
	err error
}

func (r *failingRepository) Put(context.Context, *Therapist) error { return r.err }
func (r *failingRepository) GetByID(context.Context, string) (*Therapist, error) {
	return nil, r.err
}
func (r *failingRepository) ScanAll(context.Context) ([]*Therapist, error) { return nil, r.err }
func (r *failingRepository) UpdateFields(context.Context, string, map[string]string) error {
	return r.err
}
func (r *failingRepository) DeleteByID(context.Context, string) error { return r.err }

func newTestService() (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	return NewService(repo, logging.Default()), repo
}

func TestCreateNormalizesPhone(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateTherapistRequest{
		Name:  "Dr. A",
		Email: "a@x.com",
		Phone: "5551234567",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Phone != "+15551234567" {
		t.Fatalf("expected normalized phone +15551234567, got %s", created.Phone)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}
}

func TestCreateRejectsInvalidPhone(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), CreateTherapistRequest{
		Name:  "Dr. A",
		Email: "a@x.com",
		Phone: "12345",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	all, _ := repo.ScanAll(context.Background())
	if len(all) != 0 {
		t.Fatal("no record should be persisted on validation failure")
	}
}

func TestCreateDuplicateNameIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateTherapistRequest{Name: "Dr. A", Email: "a@x.com", Phone: "5551234567"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(ctx, CreateTherapistRequest{Name: "dr. a", Email: "other@x.com", Phone: "5559876543"})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateStorageFailureIsDependencyError(t *testing.T) {
	svc := NewService(&failingRepository{err: errors.New("dynamo down")}, logging.Default())

	_, err := svc.Create(context.Background(), CreateTherapistRequest{Name: "Dr. A", Email: "a@x.com", Phone: "5551234567"})
	if apperr.KindOf(err) != apperr.KindDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestGetAbsentIsNotAnError(t *testing.T) {
	svc, _ := newTestService()

	therapist, err := svc.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if therapist != nil {
		t.Fatal("expected nil for an unknown id")
	}
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateTherapistRequest{Name: "Dr. A", Email: "a@x.com", Phone: "5551234567"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	email := "new@x.com"
	if err := svc.Update(ctx, created.ID, UpdateTherapistFields{Email: &email}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, _ := svc.Get(ctx, created.ID)
	if got.Email != "new@x.com" {
		t.Fatalf("expected updated email, got %s", got.Email)
	}
	if got.Name != "Dr. A" || got.Phone != "+15551234567" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestUpdateWithNoFieldsIsANoOp(t *testing.T) {
	svc := NewService(&failingRepository{err: errors.New("should not be called")}, logging.Default())

	if err := svc.Update(context.Background(), "some-id", UpdateTherapistFields{}); err != nil {
		t.Fatalf("empty update must succeed without touching storage: %v", err)
	}
}

// Renames are intentionally not re-checked against existing names; this pins
// the known gap rather than papering over it.
func TestUpdateDoesNotRecheckNameUniqueness(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, _ := svc.Create(ctx, CreateTherapistRequest{Name: "Dr. A", Email: "a@x.com", Phone: "5551234567"})
	second, _ := svc.Create(ctx, CreateTherapistRequest{Name: "Dr. B", Email: "b@x.com", Phone: "5559876543"})

	name := "Dr. A"
	if err := svc.Update(ctx, second.ID, UpdateTherapistFields{Name: &name}); err != nil {
		t.Fatalf("rename to an existing name is allowed on update: %v", err)
	}

	got, _ := svc.Get(ctx, second.ID)
	if got.Name != first.Name {
		t.Fatalf("expected duplicate name to be stored, got %s", got.Name)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, CreateTherapistRequest{Name: "Dr. A", Email: "a@x.com", Phone: "5551234567"})

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("second delete must succeed: %v", err)
	}
	if err := svc.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("deleting an unknown id must succeed: %v", err)
	}
}
