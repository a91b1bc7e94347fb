package tables

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/shared"
)

// ParseClearStatus maps scraped status text to a [models.ClearStatus].
//
// Both the site's Japanese labels ("クリア済み", "未クリア(E)", "未プレイ", "データなし") and
// the English vocabulary ("cleared", "failed_clear", "not_played", "no_data", "n/a") are
// understood. Unrecognized text yields [models.ClearStatusNoData] and an error wrapping
// [shared.ErrMalformedRow]; callers treat that error as a diagnostic.
func ParseClearStatus(raw string) (models.ClearStatus, error) {
	s := strings.ToLower(strings.TrimSpace(norm.NFKC.String(raw)))

	switch {
	case s == "":
		return models.ClearStatusNoData, nil
	case strings.Contains(s, "未クリア"):
		return models.ClearStatusFailed, nil
	}

	switch s {
	case "クリア済み", "クリア", "cleared", "clear":
		return models.ClearStatusCleared, nil
	case "failed_clear", "failed_cleared_attempt", "failed":
		return models.ClearStatusFailed, nil
	case "未プレイ", "not_played", "unplayed":
		return models.ClearStatusNotPlayed, nil
	case "データなし", "no_data", "n/a", "na", "-":
		return models.ClearStatusNoData, nil
	}

	return models.ClearStatusNoData, fmt.Errorf("%w: unrecognized status %q", shared.ErrMalformedRow, raw)
}
