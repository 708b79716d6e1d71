package scheduling

import "github.com/sivalingapandian/therapist-checkin/internal/apperr"

// Status is the lifecycle state of a scheduled appointment. A slot is only
// blocked while its appointment is scheduled; completed and cancelled slots
// are bookable again.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Appointment is a booked slot for a therapist. The same entity, with the
// slot fields empty and CheckInTime set, records a patient check-in; check-in
// records are not slot-bound and never conflict.
type Appointment struct {
	ID            string `dynamodbav:"id" json:"id"`
	PatientName   string `dynamodbav:"patientName,omitempty" json:"patientName,omitempty"`
	TherapistID   string `dynamodbav:"therapistId" json:"therapistId"`
	TherapistName string `dynamodbav:"therapistName" json:"therapistName"`
	Date          string `dynamodbav:"date,omitempty" json:"date,omitempty"`
	TimeSlot      string `dynamodbav:"timeSlot,omitempty" json:"timeSlot,omitempty"`
	Status        Status `dynamodbav:"status,omitempty" json:"status,omitempty"`
	CheckInTime   string `dynamodbav:"checkInTime,omitempty" json:"checkInTime,omitempty"`
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"`
}

// IsCheckIn reports whether the record is a check-in rather than a booking.
func (a *Appointment) IsCheckIn() bool {
	return a.CheckInTime != ""
}

// CreateAppointmentRequest is the payload for booking a slot.
type CreateAppointmentRequest struct {
	PatientName string `json:"patientName"`
	TherapistID string `json:"therapistId"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
}

// Validate checks the required fields.
func (r *CreateAppointmentRequest) Validate() error {
	if r.PatientName == "" || r.TherapistID == "" || r.Date == "" || r.TimeSlot == "" {
		return apperr.Validation("missing required fields: patientName, therapistId, date, and timeSlot are required")
	}
	return nil
}

// CreateCheckInRequest is the payload for recording a patient arrival.
// CheckInTime defaults to the current time when omitted.
type CreateCheckInRequest struct {
	TherapistID string `json:"therapistId"`
	CheckInTime string `json:"checkInTime"`
}

// Validate checks the required fields.
func (r *CreateCheckInRequest) Validate() error {
	if r.TherapistID == "" {
		return apperr.Validation("therapist id is required")
	}
	return nil
}
