// Package onboarding sequences the first-run wizard. The flow is strictly
// linear; each step writes one field of the profile through the engine, and
// "back" is implemented by unsetting the field the step ahead wrote, not by
// keeping independent history.
package onboarding

import (
	"habitquest/internal/domain"
	"habitquest/internal/engine"
)

// Step names one screen of the wizard.
type Step string

const (
	StepWelcome    Step = "welcome"
	StepProfile    Step = "profile"
	StepCommitment Step = "commitment"
	StepArchetype  Step = "archetype"
	StepDifficulty Step = "difficulty"
	StepCustomize  Step = "customize-habits"
	StepDone       Step = "done"
)

// Flow drives the wizard against the engine's profile state. The current
// step is derived from which fields are set, so an interrupted onboarding
// resumes where it left off; only the welcome screen is session-local.
type Flow struct {
	eng      *engine.Engine
	welcomed bool
}

// NewFlow creates a controller over the given engine.
func NewFlow(eng *engine.Engine) *Flow {
	return &Flow{eng: eng}
}

// Current derives the active step. A profile with at least one habit is done:
// habits are the sole onboarding-complete signal, so the whole flow is
// skipped for returning users.
func (f *Flow) Current() Step {
	snap := f.eng.Snapshot()
	switch {
	case snap.HasOnboarded():
		return StepDone
	case !f.welcomed && snap.Username == "":
		return StepWelcome
	case snap.Username == "":
		return StepProfile
	case !snap.Commitment.Ready:
		return StepCommitment
	case snap.Archetype == "":
		return StepArchetype
	case snap.Difficulty == "":
		return StepDifficulty
	default:
		return StepCustomize
	}
}

// Snapshot exposes the profile state captured so far, for rendering step
// content such as the chosen archetype's habit templates.
func (f *Flow) Snapshot() *domain.Profile {
	return f.eng.Snapshot()
}

// Begin acknowledges the welcome screen.
func (f *Flow) Begin() {
	f.welcomed = true
}

// SetName completes the profile step.
func (f *Flow) SetName(name string) {
	if name == "" {
		return
	}
	f.eng.SetUsername(name)
}

// SetCommitment completes the commitment questionnaire. Answers with
// Ready=false are treated as not submitted.
func (f *Flow) SetCommitment(answers domain.CommitmentAnswers) {
	f.eng.SetCommitment(answers)
}

// ChooseArchetype completes the persona step; unknown ids are ignored.
func (f *Flow) ChooseArchetype(a domain.Archetype) {
	if _, ok := domain.ArchetypeByID(a); !ok {
		return
	}
	f.eng.SetArchetype(a)
}

// ChooseDifficulty completes the difficulty step.
func (f *Flow) ChooseDifficulty(d domain.Difficulty) {
	switch d {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyExtreme:
		f.eng.SetDifficulty(d)
	}
}

// ConfirmHabits seeds the roster and finishes the flow.
func (f *Flow) ConfirmHabits(templates []domain.HabitTemplate) {
	f.eng.InitializeHabits(templates)
}

// Back steps to the previous screen by clearing the field the current
// position depends on. From the profile step it returns to welcome.
func (f *Flow) Back() {
	switch f.Current() {
	case StepProfile:
		f.welcomed = false
	case StepCommitment:
		f.eng.SetUsername("")
	case StepArchetype:
		f.eng.SetCommitment(domain.CommitmentAnswers{})
	case StepDifficulty:
		f.eng.SetArchetype("")
	case StepCustomize:
		f.eng.SetDifficulty("")
	}
}

// Abort wipes everything captured so far and returns to the welcome screen.
// Used when the user bails out of the commitment questionnaire.
func (f *Flow) Abort() {
	f.eng.Reset()
	f.welcomed = false
}
