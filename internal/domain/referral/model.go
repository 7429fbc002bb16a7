package referral

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle statuses. A referral starts at StatusPendingConsent and only
// reaches StatusPendingReview once the subject records consent; the remaining
// statuses are staff-driven with no enforced ordering.
const (
	StatusPendingConsent    = "Pending Consent"
	StatusPendingReview     = "Pending Review"
	StatusContacted         = "Contacted"
	StatusFollowUpScheduled = "Follow-up Scheduled"
	StatusClosed            = "Closed"
)

// Consent states.
const (
	ConsentPending  = "pending"
	ConsentAgreed   = "agreed"
	ConsentDeclined = "declined"
)

// Contact methods the subject can choose at consent time.
const (
	ContactWhatsApp = "whatsapp"
	ContactEmail    = "email"
)

// Referral maps to the referral table. It is created by a screening
// submission whose evaluation warrants one, and is invisible to staff lists
// until consent_status becomes agreed.
type Referral struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientName     string     `db:"patient_name" json:"patient_name"`
	PhoneNumber     *string    `db:"phone_number" json:"phone_number,omitempty"`
	Email           *string    `db:"email" json:"email,omitempty"`
	Type            string     `db:"type" json:"type"`
	ScreeningID     uuid.UUID  `db:"screening_id" json:"screening_id"`
	UserID          string     `db:"user_id" json:"user_id"`
	ReferralMessage string     `db:"referral_message" json:"referral_message"`
	ConsentStatus   string     `db:"consent_status" json:"consent_status"`
	Region          *string    `db:"region" json:"region,omitempty"`
	Constituency    *string    `db:"constituency" json:"constituency,omitempty"`
	Facility        *string    `db:"facility" json:"facility,omitempty"`
	ContactMethod   *string    `db:"contact_method" json:"contact_method,omitempty"`
	Status          string     `db:"status" json:"status"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	Services        []string   `db:"services" json:"services"`
	AppointmentAt   *time.Time `db:"appointment_at" json:"appointment_at,omitempty"`
	ReferralDate    time.Time  `db:"referral_date" json:"referral_date"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
