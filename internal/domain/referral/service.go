package referral

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/carelink/carelink/internal/domain/apperr"
	"github.com/carelink/carelink/internal/platform/notification"
	"github.com/carelink/carelink/internal/platform/websocket"
)

// RouteValidator checks a submitted region/constituency/facility triple
// against the reference data. Satisfied by facility.Service.
type RouteValidator interface {
	ValidateRoute(region, constituency, facility string) error
}

// Notifier queues an outbound message on a template. Satisfied by
// notification.NotificationManager.
type Notifier interface {
	SendFromTemplate(ctx context.Context, templateID string, data map[string]string, recipient string) (*notification.Notification, error)
}

type Service struct {
	referrals Repository
	routes    RouteValidator
	events    websocket.EventPublisher
	notifier  Notifier
}

func NewService(referrals Repository, routes RouteValidator) *Service {
	return &Service{referrals: referrals, routes: routes}
}

// SetEventPublisher attaches an optional live-update publisher.
func (s *Service) SetEventPublisher(pub websocket.EventPublisher) {
	s.events = pub
}

// SetNotifier attaches an optional outbound notifier.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

var validStatuses = map[string]bool{
	StatusPendingReview:     true,
	StatusContacted:         true,
	StatusFollowUpScheduled: true,
	StatusClosed:            true,
}

var validContactMethods = map[string]bool{
	ContactWhatsApp: true,
	ContactEmail:    true,
}

var validTypes = map[string]bool{
	"hiv":  true,
	"gbv":  true,
	"prep": true,
	"sti":  true,
}

// Create persists a new referral in its initial state. Called by the
// screening pipeline inside the submission transaction.
func (s *Service) Create(ctx context.Context, r *Referral) error {
	if r.PatientName == "" {
		return apperr.NewValidationError("patient_name", "patient name is required")
	}
	if !validTypes[r.Type] {
		return apperr.NewValidationError("type", "invalid referral type: "+r.Type)
	}
	r.ConsentStatus = ConsentPending
	r.Status = StatusPendingConsent
	if r.ReferralDate.IsZero() {
		r.ReferralDate = time.Now().UTC()
	}
	return s.referrals.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Referral, error) {
	r, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFoundError("referral", id.String())
	}
	return r, nil
}

// ConsentRequest is the routing selection submitted with the subject's
// consent decision.
type ConsentRequest struct {
	Region        string `json:"region"`
	Constituency  string `json:"constituency"`
	Facility      string `json:"facility"`
	ContactMethod string `json:"contact_method"`
}

// RecordConsent validates the routing selection and flips the referral from
// pending to agreed. Validation fails fast: structural presence, referral
// existence, consent still pending, the email-contact guard, then routing
// triple consistency. On success the referral becomes visible to staff
// lists and a confirmation is queued on the chosen contact method.
func (s *Service) RecordConsent(ctx context.Context, id uuid.UUID, req ConsentRequest) (*Referral, error) {
	if req.Region == "" {
		return nil, apperr.NewValidationError("region", "region is required")
	}
	if req.Constituency == "" {
		return nil, apperr.NewValidationError("constituency", "constituency is required")
	}
	if req.Facility == "" {
		return nil, apperr.NewValidationError("facility", "facility is required")
	}
	if req.ContactMethod == "" {
		return nil, apperr.NewValidationError("contactMethod", "contact method is required")
	}
	if !validContactMethods[req.ContactMethod] {
		return nil, apperr.NewValidationError("contactMethod", "invalid contact method: "+req.ContactMethod)
	}

	existing, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFoundError("referral", id.String())
	}
	if existing.ConsentStatus != ConsentPending {
		return nil, apperr.NewPreconditionError("consent", "consent has already been recorded for this referral")
	}
	if req.ContactMethod == ContactEmail && (existing.Email == nil || *existing.Email == "") {
		return nil, apperr.NewPreconditionError("contactMethod",
			"no email address on file for this referral, please choose another contact method")
	}
	if err := s.routes.ValidateRoute(req.Region, req.Constituency, req.Facility); err != nil {
		return nil, err
	}

	ok, err := s.referrals.RecordConsent(ctx, id, req.Region, req.Constituency, req.Facility, req.ContactMethod)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race with a concurrent consent on the same referral.
		return nil, apperr.NewPreconditionError("consent", "consent has already been recorded for this referral")
	}

	updated, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "referral.consented", updated)
	s.notifyConsent(ctx, updated)
	return updated, nil
}

// UpdateStatus performs a staff transition among the post-routing statuses.
// The referral must have recorded consent; no ordering is enforced between
// the statuses themselves, moving backward is allowed.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string, services []string) (*Referral, error) {
	if !validStatuses[status] {
		return nil, apperr.NewValidationError("status", "invalid status: "+status)
	}
	existing, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFoundError("referral", id.String())
	}
	if existing.ConsentStatus != ConsentAgreed {
		return nil, apperr.NewPreconditionError("consent",
			"referral is awaiting the subject's consent and cannot be progressed")
	}
	if err := s.referrals.UpdateStatus(ctx, id, status, notes, services); err != nil {
		return nil, err
	}
	updated, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "referral.updated", updated)
	return updated, nil
}

// ScheduleAppointment sets or overwrites the appointment time. Scheduling and
// status are independent axes; this never changes the status.
func (s *Service) ScheduleAppointment(ctx context.Context, id uuid.UUID, at time.Time) (*Referral, error) {
	if at.IsZero() {
		return nil, apperr.NewValidationError("appointment_at", "appointment time is required")
	}
	if _, err := s.referrals.GetByID(ctx, id); err != nil {
		return nil, apperr.NewNotFoundError("referral", id.String())
	}
	if err := s.referrals.SetAppointment(ctx, id, at); err != nil {
		return nil, err
	}
	updated, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "referral.updated", updated)
	s.notifyAppointment(ctx, updated)
	return updated, nil
}

// Delete removes the referral permanently. The originating screening record
// is kept as an immutable audit record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.referrals.GetByID(ctx, id); err != nil {
		return apperr.NewNotFoundError("referral", id.String())
	}
	if err := s.referrals.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "referral.deleted", &Referral{ID: id})
	return nil
}

// ListConsented returns referrals visible to staff: only those whose subject
// has agreed to be referred.
func (s *Service) ListConsented(ctx context.Context, limit, offset int) ([]*Referral, int, error) {
	return s.referrals.ListConsented(ctx, limit, offset)
}

func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Referral, int, error) {
	return s.referrals.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) publish(ctx context.Context, eventType string, r *Referral) {
	if s.events == nil {
		return
	}
	data, _ := json.Marshal(r)
	_ = s.events.Publish(ctx, websocket.Event{
		Type:         eventType,
		Topic:        websocket.TopicReferrals,
		ResourceType: "referral",
		ResourceID:   r.ID.String(),
		Timestamp:    time.Now().UTC(),
		Data:         data,
	})
}

func (s *Service) notifyConsent(ctx context.Context, r *Referral) {
	if s.notifier == nil {
		return
	}
	templateID, recipient, ok := s.contactTarget(r, "referral-consent-received")
	if !ok {
		return
	}
	_, _ = s.notifier.SendFromTemplate(ctx, templateID, map[string]string{
		"patient_name": r.PatientName,
		"facility":     strVal(r.Facility),
	}, recipient)
}

func (s *Service) notifyAppointment(ctx context.Context, r *Referral) {
	if s.notifier == nil || r.AppointmentAt == nil {
		return
	}
	templateID, recipient, ok := s.contactTarget(r, "referral-appointment-scheduled")
	if !ok {
		return
	}
	_, _ = s.notifier.SendFromTemplate(ctx, templateID, map[string]string{
		"patient_name": r.PatientName,
		"facility":     strVal(r.Facility),
		"date":         r.AppointmentAt.Format("2006-01-02"),
		"time":         r.AppointmentAt.Format("15:04"),
	}, recipient)
}

// contactTarget resolves the template variant and recipient for the
// referral's chosen contact method.
func (s *Service) contactTarget(r *Referral, baseTemplate string) (string, string, bool) {
	if r.ContactMethod == nil {
		return "", "", false
	}
	switch *r.ContactMethod {
	case ContactEmail:
		if r.Email == nil || *r.Email == "" {
			return "", "", false
		}
		return baseTemplate, *r.Email, true
	case ContactWhatsApp:
		if r.PhoneNumber == nil || *r.PhoneNumber == "" {
			return "", "", false
		}
		return baseTemplate + "-whatsapp", *r.PhoneNumber, true
	}
	return "", "", false
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
