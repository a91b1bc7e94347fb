package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Workout is one play session logged by the player.
//
// Calories are entered as shown by the cabinet's workout mode, so they are trusted as-is.
type Workout struct {
	id        string
	sequence  int
	playedOn  time.Time
	songs     int
	kcal      float64
	note      string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewWorkout creates a [Workout] for the given day. The time of day is discarded.
func NewWorkout(sequence int, playedOn time.Time, songs int, kcal float64, note string) *Workout {
	now := time.Now()
	return &Workout{
		sequence:  sequence,
		playedOn:  TruncateDay(playedOn),
		songs:     songs,
		kcal:      kcal,
		note:      note,
		createdAt: now,
		updatedAt: now,
	}
}

func (w *Workout) ID() string            { return w.id }
func (w *Workout) Sequence() int         { return w.sequence }
func (w *Workout) PlayedOn() time.Time   { return w.playedOn }
func (w *Workout) Songs() int            { return w.songs }
func (w *Workout) Kcal() float64         { return w.kcal }
func (w *Workout) Note() string          { return w.note }
func (w *Workout) CreatedAt() time.Time  { return w.createdAt }
func (w *Workout) UpdatedAt() time.Time  { return w.updatedAt }
func (w *Workout) DeletedAt() *time.Time { return w.deletedAt }

func (w *Workout) SetID(id string)           { w.id = id }
func (w *Workout) SetSequence(seq int)       { w.sequence = seq }
func (w *Workout) SetSongs(n int)            { w.songs = n }
func (w *Workout) SetKcal(kcal float64)      { w.kcal = kcal }
func (w *Workout) SetNote(note string)       { w.note = note }
func (w *Workout) SetCreatedAt(t time.Time)  { w.createdAt = t }
func (w *Workout) SetUpdatedAt(t time.Time)  { w.updatedAt = t }
func (w *Workout) SetDeletedAt(t *time.Time) { w.deletedAt = t }
func (w *Workout) SetPlayedOn(t time.Time)   { w.playedOn = TruncateDay(t) }
func (w *Workout) IsDeleted() bool           { return w.deletedAt != nil }

// Validate checks the session has a day, a non-negative song count and non-negative calories.
func (w *Workout) Validate() error {
	if w.playedOn.IsZero() {
		return fmt.Errorf("played_on is required")
	}
	if w.songs < 0 {
		return fmt.Errorf("songs must not be negative: %d", w.songs)
	}
	if w.kcal < 0 {
		return fmt.Errorf("kcal must not be negative: %.1f", w.kcal)
	}
	return nil
}

// MarshalJSON encodes the workout with its day as YYYY-MM-DD.
func (w *Workout) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Sequence  int       `json:"sequence"`
		PlayedOn  string    `json:"played_on"`
		Songs     int       `json:"songs"`
		Kcal      float64   `json:"kcal"`
		Note      string    `json:"note,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}{w.id, w.sequence, w.playedOn.Format(time.DateOnly), w.songs, w.kcal, w.note, w.createdAt})
}

// WorkoutSummary aggregates a set of workouts.
type WorkoutSummary struct {
	Sessions      int       `json:"sessions"`
	Songs         int       `json:"songs"`
	TotalKcal     float64   `json:"total_kcal"`
	AvgKcal       float64   `json:"avg_kcal_per_session"`
	BestDay       time.Time `json:"best_day"`
	BestDayKcal   float64   `json:"best_day_kcal"`
	WindowDays    int       `json:"window_days"`
	WindowKcal    float64   `json:"window_kcal"`
	WindowSongs   int       `json:"window_songs"`
	FirstPlayedOn time.Time `json:"first_played_on"`
	LastPlayedOn  time.Time `json:"last_played_on"`
}

// Summarize aggregates workouts. The trailing window covers windowDays days ending at now (inclusive).
func Summarize(workouts []*Workout, now time.Time, windowDays int) WorkoutSummary {
	s := WorkoutSummary{WindowDays: windowDays}
	if len(workouts) == 0 {
		return s
	}

	today := TruncateDay(now)
	windowStart := today.AddDate(0, 0, -(windowDays - 1))
	perDay := make(map[time.Time]float64)

	for _, w := range workouts {
		s.Sessions++
		s.Songs += w.Songs()
		s.TotalKcal += w.Kcal()

		day := w.PlayedOn()
		perDay[day] += w.Kcal()

		if s.FirstPlayedOn.IsZero() || day.Before(s.FirstPlayedOn) {
			s.FirstPlayedOn = day
		}
		if day.After(s.LastPlayedOn) {
			s.LastPlayedOn = day
		}
		if windowDays > 0 && !day.Before(windowStart) && !day.After(today) {
			s.WindowKcal += w.Kcal()
			s.WindowSongs += w.Songs()
		}
	}

	for day, kcal := range perDay {
		if kcal > s.BestDayKcal || (kcal == s.BestDayKcal && day.Before(s.BestDay)) {
			s.BestDay = day
			s.BestDayKcal = kcal
		}
	}

	s.AvgKcal = s.TotalKcal / float64(s.Sessions)
	return s
}

// TruncateDay drops the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
