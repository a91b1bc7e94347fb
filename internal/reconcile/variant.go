package reconcile

import (
	"strings"

	"github.com/desertthunder/lvx/internal/models"
)

// ClassifyVariant reports which status column(s) apply to raw using [DefaultRules].
func ClassifyVariant(raw string) models.Mode {
	return defaultRules.ClassifyVariant(raw)
}

// ClassifyVariant inspects the raw, un-normalized title for a difficulty marker.
//
// The challenge marker is checked first, so a title carrying both markers is judged on the challenge column.
func (r Rules) ClassifyVariant(raw string) models.Mode {
	switch {
	case r.challenge != "" && strings.Contains(raw, r.challenge):
		return models.ModeChallenge
	case r.expert != "" && strings.Contains(raw, r.expert):
		return models.ModeExpert
	default:
		return models.ModeBoth
	}
}
