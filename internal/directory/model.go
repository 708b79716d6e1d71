package directory

import (
	"strings"

	"github.com/sivalingapandian/therapist-checkin/internal/apperr"
)

// Therapist is a bookable provider in the directory.
type Therapist struct {
	ID    string `dynamodbav:"id" json:"id"`
	Name  string `dynamodbav:"name" json:"name"`
	Email string `dynamodbav:"email" json:"email"`
	Phone string `dynamodbav:"phone" json:"phone"`
}

// CreateTherapistRequest is the payload for registering a therapist.
type CreateTherapistRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks the required fields.
func (r *CreateTherapistRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Phone == "" {
		return apperr.Validation("missing required fields: name, email, and phone are required")
	}
	return nil
}

// UpdateTherapistFields carries a partial update. Nil pointers mean "leave
// unchanged"; the record id is never updatable.
type UpdateTherapistFields struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Changes returns only the fields actually supplied.
func (f UpdateTherapistFields) Changes() map[string]string {
	changes := make(map[string]string)
	if f.Name != nil {
		changes["name"] = *f.Name
	}
	if f.Email != nil {
		changes["email"] = *f.Email
	}
	if f.Phone != nil {
		changes["phone"] = *f.Phone
	}
	return changes
}

// NormalizePhone converts a US phone number to E.164: non-digits are
// stripped, a leading country code "1" is added when absent, and the result
// must be exactly 11 digits.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	phone := digits.String()
	if !strings.HasPrefix(phone, "1") {
		phone = "1" + phone
	}
	if len(phone) != 11 {
		return "", apperr.Validation("invalid phone number format: please provide a valid US phone number")
	}
	return "+" + phone, nil
}
