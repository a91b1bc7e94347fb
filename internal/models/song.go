package models

// CatalogEntry is one tier-eligible song as listed by the authoritative source.
//
// RawTitle is kept exactly as scraped and may carry a trailing difficulty marker, e.g. "Song Name(鬼)".
type CatalogEntry struct {
	RawTitle string `json:"title"`
}

// PersonalRecord is one song's clear state as scraped from the player's account.
//
// A column missing from the source table is represented by [ClearStatusNoData].
type PersonalRecord struct {
	Title     string      `json:"title"`
	Challenge ClearStatus `json:"challenge"`
	Expert    ClearStatus `json:"expert"`
}

// StatusFor returns the clear status recorded for a single difficulty mode.
// [ModeBoth] has no column of its own and always reports [ClearStatusNoData].
func (r PersonalRecord) StatusFor(m Mode) ClearStatus {
	switch m {
	case ModeChallenge:
		return r.Challenge
	case ModeExpert:
		return r.Expert
	default:
		return ClearStatusNoData
	}
}

// Mode identifies which status column(s) a catalog entry is judged on.
type Mode int

const (
	ModeBoth      Mode = iota // no marker: both columns are consulted
	ModeChallenge             // "(鬼)" marker, CHALLENGE column
	ModeExpert                // "(激)" marker, EXPERT column
)

func (m Mode) String() string {
	switch m {
	case ModeChallenge:
		return "challenge"
	case ModeExpert:
		return "expert"
	default:
		return "both"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ClearStatus is the closed vocabulary of a single status column.
type ClearStatus int

const (
	ClearStatusNoData    ClearStatus = iota // column absent, empty or unrecognized
	ClearStatusCleared                      // cleared at least once
	ClearStatusFailed                       // attempted, best result is a failed clear
	ClearStatusNotPlayed                    // chart exists but was never played
)

func (s ClearStatus) String() string {
	switch s {
	case ClearStatusCleared:
		return "cleared"
	case ClearStatusFailed:
		return "failed_cleared_attempt"
	case ClearStatusNotPlayed:
		return "not_played"
	default:
		return "no_data"
	}
}

func (s ClearStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is the partition a catalog entry falls into after reconciliation.
type Outcome int

const (
	OutcomeUnplayed Outcome = iota
	OutcomeRevenge
	OutcomeCleared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRevenge:
		return "revenge"
	case OutcomeCleared:
		return "cleared"
	default:
		return "unplayed"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Titles returns the raw titles of entries, in order.
func Titles(entries []CatalogEntry) []string {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.RawTitle
	}
	return titles
}
