package ui

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/reconcile"
	"github.com/desertthunder/lvx/internal/shared"
	"github.com/desertthunder/lvx/internal/tables"
	"github.com/desertthunder/lvx/internal/tasks"
)

type fakeAnalyzer struct {
	result *tasks.AnalyzeResult
	err    error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, opts tasks.AnalyzeOpts, progress chan<- tasks.ProgressUpdate) (*tasks.AnalyzeResult, error) {
	progress <- tasks.ProgressUpdate{Phase: tasks.LoadTables, Step: 1, Total: 1, Message: "Loading..."}
	return f.result, f.err
}

type fakeWorkouts struct {
	summary models.WorkoutSummary
}

func (f *fakeWorkouts) Summary(now time.Time, windowDays int) (models.WorkoutSummary, error) {
	s := f.summary
	s.WindowDays = windowDays
	return s, nil
}

func scenarioResult(catalog ...string) *tasks.AnalyzeResult {
	entries := make([]models.CatalogEntry, len(catalog))
	for i, title := range catalog {
		entries[i] = models.CatalogEntry{RawTitle: title}
	}
	records := []models.PersonalRecord{
		{Title: "Alpha", Expert: models.ClearStatusCleared},
		{Title: "Beta", Challenge: models.ClearStatusFailed},
	}
	return &tasks.AnalyzeResult{
		Tables: &tables.Tables{Catalog: entries, Records: records},
		Result: reconcile.Reconcile(entries, records),
	}
}

// drive feeds command results back into the model until it settles.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()

	for range 20 {
		if cmd == nil {
			return
		}
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
	}
	t.Fatal("model did not settle")
}

func press(m *Model, keys string) tea.Cmd {
	var msg tea.KeyMsg
	switch keys {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func newTestModel(t *testing.T, a Analyzer) *Model {
	t.Helper()

	m := NewModel(context.Background(), a, &fakeWorkouts{summary: models.WorkoutSummary{
		Sessions:    2,
		Songs:       20,
		TotalKcal:   360.5,
		AvgKcal:     180.25,
		BestDay:     time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		BestDayKcal: 210.5,
		WindowKcal:  150,
		WindowSongs: 8,
	}}, Options{Tier: "Lv18", WindowDays: 7, Rand: rand.New(rand.NewPCG(3, 4))})

	drive(t, m, m.Init())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func titles(m *Model, tab Tab) []string {
	var out []string
	for _, item := range m.lists[tab].Items() {
		out = append(out, item.(songItem).Title())
	}
	return out
}

func TestModel_Loads(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{result: scenarioResult("Alpha(激)", "Beta(鬼)", "Gamma")})

	if m.view != ListView {
		t.Fatalf("view = %v, want ListView", m.view)
	}
	if got := titles(m, RevengeTab); !slices.Equal(got, []string{"Beta(鬼)"}) {
		t.Errorf("revenge items = %v", got)
	}
	if got := titles(m, UnplayedTab); !slices.Equal(got, []string{"Gamma"}) {
		t.Errorf("unplayed items = %v", got)
	}

	view := m.View()
	for _, want := range []string{"Revenge", "3 songs", "1 cleared", "Beta(鬼)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_TabAndSpin(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{result: scenarioResult("Alpha(激)", "Beta(鬼)", "Gamma", "Delta")})

	press(m, "tab")
	if m.tab != UnplayedTab {
		t.Fatalf("tab = %v, want Unplayed", m.tab)
	}

	press(m, "s")
	if m.view != PickView {
		t.Fatalf("view = %v, want PickView", m.view)
	}
	if m.pick == nil || !slices.Contains([]string{"Gamma", "Delta"}, m.pick.Entry.RawTitle) {
		t.Errorf("pick = %+v, want an unplayed song", m.pick)
	}
	if !strings.Contains(m.View(), m.pick.Entry.RawTitle) {
		t.Errorf("pick view = %q", m.View())
	}

	press(m, "esc")
	if m.view != ListView {
		t.Errorf("view = %v after esc, want ListView", m.view)
	}
}

func TestModel_SpinEmptyList(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{result: scenarioResult("Gamma")})

	press(m, "s")
	if m.view != PickView {
		t.Fatalf("view = %v, want PickView", m.view)
	}
	if !errors.Is(m.err, shared.ErrEmptyTable) {
		t.Errorf("err = %v, want ErrEmptyTable", m.err)
	}
	if !strings.Contains(m.View(), "Nothing to spin") {
		t.Errorf("view = %q", m.View())
	}
}

func TestModel_Workouts(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{result: scenarioResult("Gamma")})

	drive(t, m, press(m, "w"))
	if m.view != WorkoutView {
		t.Fatalf("view = %v, want WorkoutView", m.view)
	}

	view := m.View()
	for _, want := range []string{"Sessions: 2", "360.5 kcal", "2026-10-15", "Last 7 days: 150.0 kcal"} {
		if !strings.Contains(view, want) {
			t.Errorf("workout view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_AnalyzeError(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{err: errors.New("input table missing: catalog")})

	if m.view != ListView {
		t.Fatalf("view = %v, want ListView", m.view)
	}
	if !strings.Contains(m.View(), "input table missing") {
		t.Errorf("view = %q", m.View())
	}

	// Spinning without a result is ignored.
	press(m, "s")
	if m.view != ListView {
		t.Errorf("view = %v, want ListView", m.view)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{result: scenarioResult("Gamma")})

	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestSongItem_Description(t *testing.T) {
	tc := []struct {
		name string
		c    reconcile.Classification
		want string
	}{
		{
			name: "no record",
			c:    reconcile.Classification{Target: models.ModeBoth},
			want: "both • no record",
		},
		{
			name: "single mode",
			c: reconcile.Classification{
				Target: models.ModeChallenge,
				Record: &models.PersonalRecord{Challenge: models.ClearStatusFailed},
			},
			want: "challenge • failed_cleared_attempt",
		},
		{
			name: "both modes",
			c: reconcile.Classification{
				Target: models.ModeBoth,
				Record: &models.PersonalRecord{Challenge: models.ClearStatusNotPlayed, Expert: models.ClearStatusCleared},
			},
			want: "challenge not_played • expert cleared",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := (songItem{c: tt.c}).Description(); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}
