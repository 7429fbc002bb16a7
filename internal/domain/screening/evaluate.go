package screening

import "strings"

// Evaluators are pure: same answers in, same recommendation out. They never
// touch storage and have no failure path of their own; validation happens in
// the service before they run.

// -- HIV --

type hivKey struct {
	SexualActivity string
	TestingHistory string
}

var hivMessages = map[hivKey]string{
	{"yes", "never_tested"}:    "an HIV test is recommended for you. Free testing and counselling are available at your nearest health facility.",
	{"yes", "tested_positive"}: "staying on treatment keeps you healthy and protects your partners. Please keep attending your care appointments and reach out to your facility if you have missed any.",
	{"yes", "tested_negative"}: "that is a good result. Since you are sexually active, re-testing every 3 to 6 months is recommended to stay sure of your status.",
	{"no", "never_tested"}:     "knowing your status is still valuable. Learning about HIV prevention now means you can protect yourself and others in the future.",
}

const hivDefaultMessage = "based on your answers, no immediate referral is indicated. Keep protecting yourself and test regularly."

// EvaluateHIV selects guidance from a fixed decision table. HIV screenings
// are advisory only and never produce a referral.
func EvaluateHIV(a *HIVAnswers, name string) Recommendation {
	msg, ok := hivMessages[hivKey{a.SexualActivity, a.TestingHistory}]
	if !ok {
		msg = hivDefaultMessage
	}
	return Recommendation{
		Classification:    ClassInformational,
		Message:           name + ", " + msg,
		ReferralWarranted: false,
	}
}

// -- GBV --

// Timeline codes for the most recent sexual violence exposure.
const (
	TimelineWithin72Hours = "le_72_hr"
	TimelineWithin5Days   = "gt_72_le_120_hr"
	TimelineOver5Days     = "gt_120_hr"
	TimelineNoHistory     = "no_history"
)

type gbvEscalation struct {
	fired    func(*GBVAnswers) bool
	note     string
	guidance string
}

var gbvEscalations = []gbvEscalation{
	{
		fired:    func(a *GBVAnswers) bool { return a.SuicideAttempt == "yes" },
		note:     "Suicide/self-harm thoughts indicated.",
		guidance: "please talk to someone you trust today, and know that free confidential counselling is available at your nearest facility.",
	},
	{
		fired:    func(a *GBVAnswers) bool { return a.SeriousInjury == "yes" },
		note:     "Serious injury requires urgent medical attention.",
		guidance: "please seek medical care for your injuries as soon as possible.",
	},
	{
		fired: func(a *GBVAnswers) bool {
			return a.SexualViolenceTimeline == TimelineWithin72Hours || a.SexualViolenceTimeline == TimelineWithin5Days
		},
		note:     "Recent sexual violence exposure (within 5 days).",
		guidance: "because the exposure is recent, time-sensitive medical care (including HIV prevention medicine) is still possible. Please go to a health facility urgently.",
	},
}

const gbvRoutineMessage = "thank you for sharing. What happened to you is not your fault, and support is available. A healthcare worker can connect you with counselling and protection services."

// EvaluateGBV runs the three escalation predicates. Any hit makes the
// screening urgent; every GBV screening warrants a referral regardless,
// with urgency only shaping the message and notes.
func EvaluateGBV(a *GBVAnswers, name string) Recommendation {
	var notes []string
	var fragments []string
	for _, esc := range gbvEscalations {
		if esc.fired(a) {
			notes = append(notes, esc.note)
			fragments = append(fragments, esc.guidance)
		}
	}
	rec := Recommendation{
		Classification:    ClassRoutine,
		Message:           name + ", " + gbvRoutineMessage,
		ReferralWarranted: true,
	}
	if len(notes) > 0 {
		rec.Classification = ClassUrgent
		rec.Message = name + ", " + strings.Join(fragments, " ")
		rec.UrgencyNotes = notes
	}
	return rec
}

// -- PrEP --

const (
	prepEligibleMessage    = "based on your answers you may benefit from PrEP, a daily pill that prevents HIV. A healthcare worker can assess you and start you safely."
	prepNotEligibleMessage = "based on your answers PrEP is not indicated for you right now. Keep using the prevention methods that work for you, and re-take this assessment if your situation changes."
)

// EvaluatePrEP gates on the nine risk-factor answers: any "yes" makes the
// subject eligible and warrants a referral.
func EvaluatePrEP(a *PrEPAnswers, name string) Recommendation {
	if anyYes(a.riskFactors()) {
		return Recommendation{
			Classification:    ClassEligible,
			Message:           name + ", " + prepEligibleMessage,
			ReferralWarranted: true,
		}
	}
	return Recommendation{
		Classification:    ClassNotEligible,
		Message:           name + ", " + prepNotEligibleMessage,
		ReferralWarranted: false,
	}
}

// -- STI --

const (
	stiAssessmentMessage = "your answers suggest you should be assessed for a sexually transmitted infection. Most STIs are easy to treat once diagnosed; please visit a facility soon."
	stiNoRiskMessage     = "your answers do not suggest an immediate STI risk. Keep protecting yourself, and come back to this assessment if symptoms appear."
)

// EvaluateSTI gates on the four symptom answers the same way.
func EvaluateSTI(a *STIAnswers, name string) Recommendation {
	if anyYes(a.riskFactors()) {
		return Recommendation{
			Classification:    ClassAssessmentRecommended,
			Message:           name + ", " + stiAssessmentMessage,
			ReferralWarranted: true,
		}
	}
	return Recommendation{
		Classification:    ClassNoImmediateRisk,
		Message:           name + ", " + stiNoRiskMessage,
		ReferralWarranted: false,
	}
}

func anyYes(values []string) bool {
	for _, v := range values {
		if v == "yes" {
			return true
		}
	}
	return false
}
