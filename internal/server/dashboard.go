package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/shared"
	"github.com/desertthunder/lvx/internal/tasks"
)

// SnapshotSource provides the reconciliation of the current inputs.
//
// Implemented by [tasks.Pipeline].
type SnapshotSource interface {
	Current(ctx context.Context) (*models.Snapshot, error)
}

// WorkoutStore is the subset of the workout repository the dashboard needs.
type WorkoutStore interface {
	Create(w *models.Workout) error
	List(criteria map[string]any) ([]*models.Workout, error)
	Summary(now time.Time, windowDays int) (models.WorkoutSummary, error)
}

// DashboardOpts configures a [Dashboard].
type DashboardOpts struct {
	Tier       string
	WindowDays int
	Rand       *rand.Rand       // Source for /api/pick; nil uses the global source
	Now        func() time.Time // Clock for workout defaults and summaries
}

// Dashboard serves the JSON API consumed by the dashboard.
type Dashboard struct {
	snapshots  SnapshotSource
	workouts   WorkoutStore
	logger     *log.Logger
	tier       string
	windowDays int
	now        func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDashboard creates a [Dashboard] handler.
func NewDashboard(snapshots SnapshotSource, workouts WorkoutStore, logger *log.Logger, opts DashboardOpts) *Dashboard {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Dashboard{
		snapshots:  snapshots,
		workouts:   workouts,
		logger:     logger,
		tier:       opts.Tier,
		windowDays: opts.WindowDays,
		now:        opts.Now,
		rng:        opts.Rand,
	}
}

// Routes implements [Handler].
func (d *Dashboard) Routes() []string {
	return []string{
		"GET /health",
		"GET /api/summary",
		"GET /api/revenge",
		"GET /api/unplayed",
		"GET /api/pick",
		"GET /api/workouts",
		"POST /api/workouts",
		"GET /api/workouts/summary",
	}
}

// ServeHTTP dispatches on the matched route pattern.
func (d *Dashboard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case "GET /health":
		d.respond(w, http.StatusOK, map[string]string{"status": "ok"})
	case "GET /api/summary":
		d.summary(w, r)
	case "GET /api/revenge":
		d.list(w, r, (*models.Snapshot).Revenge)
	case "GET /api/unplayed":
		d.list(w, r, (*models.Snapshot).Unplayed)
	case "GET /api/pick":
		d.pick(w, r)
	case "GET /api/workouts":
		d.listWorkouts(w, r)
	case "POST /api/workouts":
		d.createWorkout(w, r)
	case "GET /api/workouts/summary":
		d.workoutSummary(w, r)
	default:
		d.respond(w, http.StatusNotFound, errorBody("not found"))
	}
}

// SummaryResponse is the body of GET /api/summary.
type SummaryResponse struct {
	Tier        string    `json:"tier"`
	Total       int       `json:"total"`
	Cleared     int       `json:"cleared"`
	Revenge     int       `json:"revenge"`
	Unplayed    int       `json:"unplayed"`
	ClearRate   float64   `json:"clear_rate"`
	InputHash   string    `json:"input_hash"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ListResponse is the body of the revenge and unplayed endpoints.
type ListResponse struct {
	Count  int      `json:"count"`
	Titles []string `json:"titles"`
}

// WorkoutRequest is the body of POST /api/workouts. PlayedOn defaults to today.
type WorkoutRequest struct {
	PlayedOn string  `json:"played_on"`
	Songs    int     `json:"songs"`
	Kcal     float64 `json:"kcal"`
	Note     string  `json:"note"`
}

func (d *Dashboard) summary(w http.ResponseWriter, r *http.Request) {
	snap, ok := d.current(w, r)
	if !ok {
		return
	}

	resp := SummaryResponse{
		Tier:        d.tier,
		Total:       snap.Total(),
		Cleared:     snap.Cleared(),
		Revenge:     len(snap.Revenge()),
		Unplayed:    len(snap.Unplayed()),
		InputHash:   snap.InputHash(),
		GeneratedAt: snap.UpdatedAt(),
	}
	if resp.Total > 0 {
		resp.ClearRate = float64(resp.Cleared) / float64(resp.Total) * 100
	}
	d.respond(w, http.StatusOK, resp)
}

func (d *Dashboard) list(w http.ResponseWriter, r *http.Request, titles func(*models.Snapshot) []string) {
	snap, ok := d.current(w, r)
	if !ok {
		return
	}

	items := titles(snap)
	if items == nil {
		items = []string{}
	}
	d.respond(w, http.StatusOK, ListResponse{Count: len(items), Titles: items})
}

func (d *Dashboard) pick(w http.ResponseWriter, r *http.Request) {
	snap, ok := d.current(w, r)
	if !ok {
		return
	}

	var entries []models.CatalogEntry
	switch from := r.URL.Query().Get("list"); from {
	case "", "revenge":
		entries = snap.RevengeEntries()
	case "unplayed":
		entries = snap.UnplayedEntries()
	default:
		d.fail(w, fmt.Errorf("%w: list must be revenge or unplayed, got %q", shared.ErrInvalidArgument, from))
		return
	}

	d.mu.Lock()
	res, err := tasks.Pick(d.rng, entries)
	d.mu.Unlock()
	if err != nil {
		d.fail(w, err)
		return
	}
	d.respond(w, http.StatusOK, res)
}

func (d *Dashboard) listWorkouts(w http.ResponseWriter, r *http.Request) {
	criteria := map[string]any{}
	q := r.URL.Query()

	for _, key := range []string{"from", "to"} {
		if v := q.Get(key); v != "" {
			day, err := time.Parse(time.DateOnly, v)
			if err != nil {
				d.fail(w, fmt.Errorf("%w: %s must be YYYY-MM-DD", shared.ErrInvalidArgument, key))
				return
			}
			criteria[key] = day
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			d.fail(w, fmt.Errorf("%w: limit must be a non-negative integer", shared.ErrInvalidArgument))
			return
		}
		criteria["limit"] = n
	}

	workouts, err := d.workouts.List(criteria)
	if err != nil {
		d.fail(w, err)
		return
	}
	if workouts == nil {
		workouts = []*models.Workout{}
	}
	d.respond(w, http.StatusOK, workouts)
}

func (d *Dashboard) createWorkout(w http.ResponseWriter, r *http.Request) {
	var req WorkoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		d.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	playedOn := d.now()
	if req.PlayedOn != "" {
		day, err := time.Parse(time.DateOnly, req.PlayedOn)
		if err != nil {
			d.fail(w, fmt.Errorf("%w: played_on must be YYYY-MM-DD", shared.ErrInvalidInput))
			return
		}
		playedOn = day
	}

	workout := models.NewWorkout(0, playedOn, req.Songs, req.Kcal, req.Note)
	if err := d.workouts.Create(workout); err != nil {
		d.fail(w, err)
		return
	}
	d.logger.Info("workout logged", "sequence", workout.Sequence(), "kcal", workout.Kcal())
	d.respond(w, http.StatusCreated, workout)
}

func (d *Dashboard) workoutSummary(w http.ResponseWriter, r *http.Request) {
	days := d.windowDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			d.fail(w, fmt.Errorf("%w: days must be a non-negative integer", shared.ErrInvalidArgument))
			return
		}
		days = n
	}

	summary, err := d.workouts.Summary(d.now(), days)
	if err != nil {
		d.fail(w, err)
		return
	}
	d.respond(w, http.StatusOK, summary)
}

func (d *Dashboard) current(w http.ResponseWriter, r *http.Request) (*models.Snapshot, bool) {
	snap, err := d.snapshots.Current(r.Context())
	if err != nil {
		d.fail(w, err)
		return nil, false
	}
	return snap, true
}

// fail maps sentinel errors to status codes.
func (d *Dashboard) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrInputMissing):
		status = http.StatusServiceUnavailable
	case errors.Is(err, shared.ErrEmptyTable), errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrWorkoutNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrInvalidArgument):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		d.logger.Error("request failed", "error", err)
	}
	d.respond(w, status, errorBody(err.Error()))
}

// respond writes v as the JSON body. The status line is already sent when encoding
// fails, so the failure can only be logged.
func (d *Dashboard) respond(w http.ResponseWriter, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		d.logger.Debug("failed to write response", "status", status, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return shared.WriteJSON(w, v)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
