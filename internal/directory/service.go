package directory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sivalingapandian/therapist-checkin/internal/apperr"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

// Service owns therapist identity: validation, phone normalization and the
// case-insensitive name uniqueness rule.
type Service struct {
	repo   Repository
	logger *logging.Logger
	newID  func() string
}

// NewService creates the directory service.
func NewService(repo Repository, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// List returns every registered therapist.
func (s *Service) List(ctx context.Context) ([]*Therapist, error) {
	therapists, err := s.repo.ScanAll(ctx)
	if err != nil {
		s.logger.Error("directory: list failed", "error", err)
		return nil, apperr.Dependency("failed to list therapists", err)
	}
	return therapists, nil
}

// Get returns a therapist by id, or nil when the id is unknown. Absence is a
// normal outcome here; callers decide whether it is an error.
func (s *Service) Get(ctx context.Context, id string) (*Therapist, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("directory: get failed", "error", err, "therapist_id", id)
		return nil, apperr.Dependency("failed to load therapist", err)
	}
	return t, nil
}

// Create registers a therapist. The phone number is normalized to E.164 and
// the name must be unique among existing therapists, compared
// case-insensitively. The uniqueness check is read-then-write: two concurrent
// creates with the same name can both pass it.
func (s *Service) Create(ctx context.Context, req CreateTherapistRequest) (*Therapist, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	phone, err := NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ScanAll(ctx)
	if err != nil {
		s.logger.Error("directory: duplicate scan failed", "error", err)
		return nil, apperr.Dependency("failed to check existing therapists", err)
	}
	for _, t := range existing {
		if strings.EqualFold(t.Name, req.Name) {
			return nil, apperr.Conflict("a therapist with this name already exists")
		}
	}

	therapist := &Therapist{
		ID:    s.newID(),
		Name:  req.Name,
		Email: req.Email,
		Phone: phone,
	}
	if err := s.repo.Put(ctx, therapist); err != nil {
		s.logger.Error("directory: create failed", "error", err, "therapist_id", therapist.ID)
		return nil, apperr.Dependency("failed to create therapist", err)
	}

	s.logger.Info("therapist created", "therapist_id", therapist.ID, "name", therapist.Name)
	return therapist, nil
}

// Update applies the supplied fields to an existing record. Absent fields are
// left unchanged and the id is never mutated. Supplying no fields is a
// successful no-op. Name changes are not re-checked for uniqueness and phone
// changes are stored as given.
func (s *Service) Update(ctx context.Context, id string, fields UpdateTherapistFields) error {
	if id == "" {
		return apperr.Validation("therapist id is required")
	}
	changes := fields.Changes()
	if len(changes) == 0 {
		return nil
	}
	if err := s.repo.UpdateFields(ctx, id, changes); err != nil {
		s.logger.Error("directory: update failed", "error", err, "therapist_id", id)
		return apperr.Dependency("failed to update therapist", err)
	}
	s.logger.Info("therapist updated", "therapist_id", id)
	return nil
}

// Delete removes a therapist. Deleting an unknown id succeeds; callers that
// need existence confirmation should Get first.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Validation("therapist id is required")
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.logger.Error("directory: delete failed", "error", err, "therapist_id", id)
		return apperr.Dependency("failed to delete therapist", err)
	}
	s.logger.Info("therapist deleted", "therapist_id", id)
	return nil
}
