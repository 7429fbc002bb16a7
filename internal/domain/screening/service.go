package screening

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carelink/carelink/internal/domain/apperr"
	"github.com/carelink/carelink/internal/domain/referral"
	"github.com/carelink/carelink/internal/platform/notification"
	"github.com/carelink/carelink/internal/platform/websocket"
)

// TxRunner runs a function inside one storage transaction. Satisfied by
// db.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReferralCreator materializes the referral a warranted screening produces.
// Satisfied by referral.Service.
type ReferralCreator interface {
	Create(ctx context.Context, r *referral.Referral) error
}

// Notifier queues an outbound message on a template. Satisfied by
// notification.NotificationManager.
type Notifier interface {
	SendFromTemplate(ctx context.Context, templateID string, data map[string]string, recipient string) (*notification.Notification, error)
}

type Service struct {
	screenings Repository
	referrals  ReferralCreator
	tx         TxRunner
	events     websocket.EventPublisher
	notifier   Notifier
}

func NewService(screenings Repository, referrals ReferralCreator, tx TxRunner) *Service {
	return &Service{screenings: screenings, referrals: referrals, tx: tx}
}

// SetEventPublisher attaches an optional live-update publisher.
func (s *Service) SetEventPublisher(pub websocket.EventPublisher) {
	s.events = pub
}

// SetNotifier attaches an optional outbound notifier.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// -- Validation --

var validYesNo = map[string]bool{
	"yes": true,
	"no":  true,
}

var validSexualActivity = map[string]bool{
	"yes":               true,
	"no":                true,
	"prefer_not_to_say": true,
}

var validTestingHistory = map[string]bool{
	"never_tested":      true,
	"tested_negative":   true,
	"tested_positive":   true,
	"prefer_not_to_say": true,
}

var validTimeline = map[string]bool{
	TimelineWithin72Hours: true,
	TimelineWithin5Days:   true,
	TimelineOver5Days:     true,
	TimelineNoHistory:     true,
}

var validEmotionalViolence = map[string]bool{
	"mocked":     true,
	"insulted":   true,
	"threatened": true,
	"isolated":   true,
	"controlled": true,
	"no":         true,
}

var validPhysicalViolence = map[string]bool{
	"slapped":     true,
	"beaten":      true,
	"choked":      true,
	"weapon_used": true,
	"no":          true,
}

var validSexualViolence = map[string]bool{
	"forced_sex":           true,
	"attempted_forced_sex": true,
	"unwanted_touching":    true,
	"no":                   true,
}

func validateIdentity(id *Identity) error {
	if strings.TrimSpace(id.Name) == "" {
		return apperr.NewValidationError("name", "name is required")
	}
	if id.Age != nil && *id.Age <= 0 {
		return apperr.NewValidationError("age", "age must be a positive number")
	}
	return nil
}

func validateEnum(field, value string, valid map[string]bool) error {
	if value == "" {
		return apperr.NewValidationError(field, field+" is required")
	}
	if !valid[value] {
		return apperr.NewValidationError(field, "invalid value for "+field+": "+value)
	}
	return nil
}

// validateCheckboxSet enforces membership and the mutually exclusive "no"
// sentinel: "no" means none of the other codes may be selected.
func validateCheckboxSet(field string, values []string, valid map[string]bool) error {
	if len(values) == 0 {
		return apperr.NewValidationError(field, field+" is required")
	}
	hasNo := false
	for _, v := range values {
		if !valid[v] {
			return apperr.NewValidationError(field, "invalid value for "+field+": "+v)
		}
		if v == "no" {
			hasNo = true
		}
	}
	if hasNo && len(values) > 1 {
		return apperr.NewValidationError(field, `"no" cannot be combined with other answers for `+field)
	}
	return nil
}

func validateHIV(a *HIVAnswers) error {
	if err := validateEnum("sexual_activity", a.SexualActivity, validSexualActivity); err != nil {
		return err
	}
	return validateEnum("testing_history", a.TestingHistory, validTestingHistory)
}

func validateGBV(a *GBVAnswers) error {
	if err := validateCheckboxSet("emotional_violence", a.EmotionalViolence, validEmotionalViolence); err != nil {
		return err
	}
	if err := validateCheckboxSet("physical_violence", a.PhysicalViolence, validPhysicalViolence); err != nil {
		return err
	}
	if err := validateCheckboxSet("sexual_violence", a.SexualViolence, validSexualViolence); err != nil {
		return err
	}
	if err := validateEnum("suicide_attempt", a.SuicideAttempt, validYesNo); err != nil {
		return err
	}
	if err := validateEnum("serious_injury", a.SeriousInjury, validYesNo); err != nil {
		return err
	}
	return validateEnum("sexual_violence_timeline", a.SexualViolenceTimeline, validTimeline)
}

func validatePrEP(a *PrEPAnswers) error {
	fields := []struct {
		name  string
		value string
	}{
		{"sex_without_condom", a.SexWithoutCondom},
		{"multiple_partners", a.MultiplePartners},
		{"partner_living_with_hiv", a.PartnerLivingWithHIV},
		{"partner_status_unknown", a.PartnerStatusUnknown},
		{"recent_sti", a.RecentSTI},
		{"shared_needles", a.SharedNeedles},
		{"transactional_sex", a.TransactionalSex},
		{"recent_pep", a.RecentPEP},
		{"alcohol_before_sex", a.AlcoholBeforeSex},
	}
	for _, f := range fields {
		if err := validateEnum(f.name, f.value, validYesNo); err != nil {
			return err
		}
	}
	return nil
}

func validateSTI(a *STIAnswers) error {
	fields := []struct {
		name  string
		value string
	}{
		{"unusual_discharge", a.UnusualDischarge},
		{"genital_sores", a.GenitalSores},
		{"pain_during_urination", a.PainDuringUrination},
		{"partner_diagnosed", a.PartnerDiagnosed},
	}
	for _, f := range fields {
		if err := validateEnum(f.name, f.value, validYesNo); err != nil {
			return err
		}
	}
	return nil
}

// -- Submission --

func (s *Service) SubmitHIV(ctx context.Context, userID string, sub *HIVScreening) (*SubmitResult, error) {
	if err := validateIdentity(&sub.Identity); err != nil {
		return nil, err
	}
	if err := validateHIV(&sub.HIVAnswers); err != nil {
		return nil, err
	}
	rec := EvaluateHIV(&sub.HIVAnswers, sub.Name)
	return s.submit(ctx, userID, KindHIV, sub.Identity, sub.HIVAnswers, rec)
}

func (s *Service) SubmitGBV(ctx context.Context, userID string, sub *GBVScreening) (*SubmitResult, error) {
	if err := validateIdentity(&sub.Identity); err != nil {
		return nil, err
	}
	if err := validateGBV(&sub.GBVAnswers); err != nil {
		return nil, err
	}
	rec := EvaluateGBV(&sub.GBVAnswers, sub.Name)
	return s.submit(ctx, userID, KindGBV, sub.Identity, sub.GBVAnswers, rec)
}

func (s *Service) SubmitPrEP(ctx context.Context, userID string, sub *PrEPScreening) (*SubmitResult, error) {
	if err := validateIdentity(&sub.Identity); err != nil {
		return nil, err
	}
	if err := validatePrEP(&sub.PrEPAnswers); err != nil {
		return nil, err
	}
	rec := EvaluatePrEP(&sub.PrEPAnswers, sub.Name)
	return s.submit(ctx, userID, KindPrEP, sub.Identity, sub.PrEPAnswers, rec)
}

func (s *Service) SubmitSTI(ctx context.Context, userID string, sub *STIScreening) (*SubmitResult, error) {
	if err := validateIdentity(&sub.Identity); err != nil {
		return nil, err
	}
	if err := validateSTI(&sub.STIAnswers); err != nil {
		return nil, err
	}
	rec := EvaluateSTI(&sub.STIAnswers, sub.Name)
	return s.submit(ctx, userID, KindSTI, sub.Identity, sub.STIAnswers, rec)
}

// submit writes the screening and, when the recommendation warrants one, the
// referral in a single transaction. A failed referral write rolls back the
// screening, so no orphan screening records are left behind.
func (s *Service) submit(ctx context.Context, userID, kind string, ident Identity, answers interface{}, rec Recommendation) (*SubmitResult, error) {
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}
	scr := &Screening{Identity: ident, UserID: userID, Answers: raw}

	var ref *referral.Referral
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.screenings.Create(ctx, kind, scr); err != nil {
			return fmt.Errorf("create screening: %w", err)
		}
		if !rec.ReferralWarranted {
			return nil
		}
		ref = &referral.Referral{
			PatientName:     ident.Name,
			PhoneNumber:     ident.PhoneNumber,
			Email:           ident.Email,
			Type:            kind,
			ScreeningID:     scr.ID,
			UserID:          userID,
			ReferralMessage: rec.Message,
		}
		if len(rec.UrgencyNotes) > 0 {
			notes := strings.Join(rec.UrgencyNotes, " ")
			ref.Notes = &notes
		}
		if err := s.referrals.Create(ctx, ref); err != nil {
			return fmt.Errorf("create referral: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{ScreeningID: scr.ID, Message: rec.Message}
	if ref != nil {
		result.ReferralID = &ref.ID
		result.ReferralMessage = ref.ReferralMessage
	}

	s.publish(ctx, scr, kind)
	s.thank(ctx, &ident, kind, rec.Message)
	return result, nil
}

func (s *Service) publish(ctx context.Context, scr *Screening, kind string) {
	if s.events == nil {
		return
	}
	data, _ := json.Marshal(scr)
	_ = s.events.Publish(ctx, websocket.Event{
		Type:         "screening.created",
		Topic:        websocket.TopicScreenings,
		ResourceType: "screening_" + kind,
		ResourceID:   scr.ID.String(),
		Timestamp:    time.Now().UTC(),
		Data:         data,
	})
}

func (s *Service) thank(ctx context.Context, ident *Identity, kind, guidance string) {
	if s.notifier == nil || ident.Email == nil || *ident.Email == "" {
		return
	}
	_, _ = s.notifier.SendFromTemplate(ctx, "screening-thank-you", map[string]string{
		"patient_name":   ident.Name,
		"screening_kind": strings.ToUpper(kind),
		"guidance":       guidance,
	}, *ident.Email)
}

// -- Staff reads --

func (s *Service) Get(ctx context.Context, kind string, id uuid.UUID) (*Screening, error) {
	if _, ok := kindTables[kind]; !ok {
		return nil, apperr.NewValidationError("kind", "invalid screening kind: "+kind)
	}
	scr, err := s.screenings.GetByID(ctx, kind, id)
	if err != nil {
		return nil, apperr.NewNotFoundError("screening", id.String())
	}
	return scr, nil
}

func (s *Service) List(ctx context.Context, kind string, limit, offset int) ([]*Screening, int, error) {
	if _, ok := kindTables[kind]; !ok {
		return nil, 0, apperr.NewValidationError("kind", "invalid screening kind: "+kind)
	}
	return s.screenings.List(ctx, kind, limit, offset)
}
