package reconcile

import "github.com/desertthunder/lvx/internal/models"

// Resolve derives the outcome of a catalog entry judged on target against its matched record.
//
// A failed attempt outranks a clear, which outranks everything else. For [models.ModeBoth]
// one failed column is enough for revenge, while a clear requires both columns cleared.
func Resolve(target models.Mode, rec *models.PersonalRecord) models.Outcome {
	if rec == nil {
		return models.OutcomeUnplayed
	}

	if target != models.ModeBoth {
		return single(rec.StatusFor(target))
	}

	challenge, expert := rec.Challenge, rec.Expert
	switch {
	case challenge == models.ClearStatusFailed || expert == models.ClearStatusFailed:
		return models.OutcomeRevenge
	case challenge == models.ClearStatusCleared && expert == models.ClearStatusCleared:
		return models.OutcomeCleared
	default:
		return models.OutcomeUnplayed
	}
}

func single(s models.ClearStatus) models.Outcome {
	switch s {
	case models.ClearStatusFailed:
		return models.OutcomeRevenge
	case models.ClearStatusCleared:
		return models.OutcomeCleared
	default:
		return models.OutcomeUnplayed
	}
}
