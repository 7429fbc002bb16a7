package screening

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Screening kinds. Each kind has its own answer set and its own table;
// no two kinds share a stored record.
const (
	KindHIV  = "hiv"
	KindGBV  = "gbv"
	KindPrEP = "prep"
	KindSTI  = "sti"
)

// Identity carries the subject fields shared by every screening kind.
// Only the name is required; contact fields feed the referral record.
type Identity struct {
	Name        string  `json:"name"`
	Age         *int    `json:"age,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// HIVAnswers holds the HIV self-assessment answers.
type HIVAnswers struct {
	SexualActivity string `json:"sexual_activity"`
	TestingHistory string `json:"testing_history"`
}

// GBVAnswers holds the gender-based violence screening answers. The three
// violence fields are checkbox sets where "no" is a mutually exclusive
// sentinel; the remaining fields drive the urgency escalation.
type GBVAnswers struct {
	EmotionalViolence      []string `json:"emotional_violence"`
	PhysicalViolence       []string `json:"physical_violence"`
	SexualViolence         []string `json:"sexual_violence"`
	SuicideAttempt         string   `json:"suicide_attempt"`
	SeriousInjury          string   `json:"serious_injury"`
	SexualViolenceTimeline string   `json:"sexual_violence_timeline"`
}

// PrEPAnswers holds the nine yes/no risk-factor questions for pre-exposure
// prophylaxis eligibility.
type PrEPAnswers struct {
	SexWithoutCondom     string `json:"sex_without_condom"`
	MultiplePartners     string `json:"multiple_partners"`
	PartnerLivingWithHIV string `json:"partner_living_with_hiv"`
	PartnerStatusUnknown string `json:"partner_status_unknown"`
	RecentSTI            string `json:"recent_sti"`
	SharedNeedles        string `json:"shared_needles"`
	TransactionalSex     string `json:"transactional_sex"`
	RecentPEP            string `json:"recent_pep"`
	AlcoholBeforeSex     string `json:"alcohol_before_sex"`
}

func (a *PrEPAnswers) riskFactors() []string {
	return []string{
		a.SexWithoutCondom, a.MultiplePartners, a.PartnerLivingWithHIV,
		a.PartnerStatusUnknown, a.RecentSTI, a.SharedNeedles,
		a.TransactionalSex, a.RecentPEP, a.AlcoholBeforeSex,
	}
}

// STIAnswers holds the four yes/no symptom questions.
type STIAnswers struct {
	UnusualDischarge    string `json:"unusual_discharge"`
	GenitalSores        string `json:"genital_sores"`
	PainDuringUrination string `json:"pain_during_urination"`
	PartnerDiagnosed    string `json:"partner_diagnosed"`
}

func (a *STIAnswers) riskFactors() []string {
	return []string{a.UnusualDischarge, a.GenitalSores, a.PainDuringUrination, a.PartnerDiagnosed}
}

// Per-kind submission payloads: identity plus the kind's answer set.

type HIVScreening struct {
	Identity
	HIVAnswers
}

type GBVScreening struct {
	Identity
	GBVAnswers
}

type PrEPScreening struct {
	Identity
	PrEPAnswers
}

type STIScreening struct {
	Identity
	STIAnswers
}

// Classifications produced by the evaluators.
const (
	ClassInformational         = "informational"
	ClassUrgent                = "urgent"
	ClassRoutine               = "routine"
	ClassEligible              = "eligible"
	ClassNotEligible           = "not_eligible"
	ClassAssessmentRecommended = "assessment_recommended"
	ClassNoImmediateRisk       = "no_immediate_risk"
)

// Recommendation is the evaluator output for one screening. It is rendered
// to the subject and drives referral creation; it is never persisted on its
// own.
type Recommendation struct {
	Classification    string   `json:"classification"`
	Message           string   `json:"message"`
	ReferralWarranted bool     `json:"referral_warranted"`
	UrgencyNotes      []string `json:"urgency_notes,omitempty"`
}

// Screening is the persisted record of one completed questionnaire. It is
// written once at submission time and never mutated afterward.
type Screening struct {
	ID uuid.UUID `db:"id" json:"id"`
	Identity
	Kind      string          `db:"-" json:"kind"`
	UserID    string          `db:"user_id" json:"user_id"`
	Answers   json.RawMessage `db:"answers" json:"answers"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// SubmitResult is returned to the caller after a successful submission.
type SubmitResult struct {
	ScreeningID     uuid.UUID  `json:"screening_id"`
	Message         string     `json:"message"`
	ReferralID      *uuid.UUID `json:"referral_id,omitempty"`
	ReferralMessage string     `json:"referral_message,omitempty"`
}
