package ui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	ListView
	PickView
	WorkoutView
)

// Tab selects which list the [ListView] shows.
type Tab int

const (
	RevengeTab Tab = iota
	UnplayedTab
)

func (t Tab) String() string {
	if t == UnplayedTab {
		return "Unplayed"
	}
	return "Revenge"
}

// Analyzer runs a reconciliation. Implemented by [tasks.Pipeline].
type Analyzer interface {
	Analyze(ctx context.Context, opts tasks.AnalyzeOpts, progress chan<- tasks.ProgressUpdate) (*tasks.AnalyzeResult, error)
}

// WorkoutSummarizer aggregates the workout log. Implemented by repositories.WorkoutRepository.
type WorkoutSummarizer interface {
	Summary(now time.Time, windowDays int) (models.WorkoutSummary, error)
}

// Options configures a [Model].
type Options struct {
	Tier       string
	WindowDays int
	Rand       *rand.Rand
	Now        func() time.Time
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	analyzer     Analyzer
	workouts     WorkoutSummarizer
	opts         Options
	width        int
	height       int
	tab          Tab
	lists        [2]list.Model
	result       *tasks.AnalyzeResult
	pick         *tasks.PickResult
	summary      models.WorkoutSummary
	progressChan chan tasks.ProgressUpdate
	done         chan Msg
	progress     tasks.ProgressUpdate
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies. workouts may be nil.
func NewModel(ctx context.Context, analyzer Analyzer, workouts WorkoutSummarizer, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Model{
		ctx:      ctx,
		view:     LoadingView,
		analyzer: analyzer,
		workouts: workouts,
		opts:     opts,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by reconciling the current inputs.
func (m *Model) Init() tea.Cmd {
	return m.startAnalyze()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.result != nil {
			for i := range m.lists {
				m.lists[i].SetSize(msg.Width-4, msg.Height-8)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgAnalyzeComplete:
		data := msg.data.(analyzeComplete)
		m.progressChan = nil
		m.done = nil
		m.err = data.err
		if data.err != nil {
			m.view = ListView
			return m, nil
		}
		m.setResult(data.result)
		m.view = ListView
		return m, nil

	case MsgSummaryFetched:
		data := msg.data.(summaryFetched)
		m.err = data.err
		m.summary = data.summary
		m.view = WorkoutView
		return m, nil
	}
	return m, nil
}

func (m *Model) setResult(res *tasks.AnalyzeResult) {
	m.result = res
	m.pick = nil

	lists := [2]struct {
		tab   Tab
		items []list.Item
	}{
		{RevengeTab, itemsFor(res.Result, models.OutcomeRevenge)},
		{UnplayedTab, itemsFor(res.Result, models.OutcomeUnplayed)},
	}
	for _, l := range lists {
		lm := list.New(l.items, list.NewDefaultDelegate(), 0, 0)
		lm.Title = fmt.Sprintf("%s %s (%d)", m.opts.Tier, l.tab, len(l.items))
		lm.SetShowHelp(false)
		lm.SetSize(max(m.width-4, 0), max(m.height-8, 0))
		m.lists[l.tab] = lm
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoadingView:
		return m.renderLoading()
	case ListView:
		return m.renderList()
	case PickView:
		return m.renderPick()
	case WorkoutView:
		return m.renderWorkouts()
	default:
		return ""
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.view == ListView && m.result != nil && m.lists[m.tab].FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case m.view == LoadingView:
		return m, nil
	case key.Matches(msg, m.keys.back):
		if m.view != ListView {
			m.view = ListView
			return m, nil
		}
	case key.Matches(msg, m.keys.refresh):
		m.view = LoadingView
		m.err = nil
		return m, m.startAnalyze()
	case key.Matches(msg, m.keys.workouts):
		return m, m.fetchSummary()
	case m.result == nil:
		return m, nil
	case key.Matches(msg, m.keys.tab):
		m.tab = 1 - m.tab
		m.view = ListView
		return m, nil
	case key.Matches(msg, m.keys.spin):
		m.spin()
		return m, nil
	}

	return m.updateList(msg)
}

// spin draws a random entry from the current tab.
func (m *Model) spin() {
	entries := m.result.Result.Revenge
	if m.tab == UnplayedTab {
		entries = m.result.Result.Unplayed
	}
	res, err := tasks.Pick(m.opts.Rand, entries)
	m.pick = res
	m.err = err
	m.view = PickView
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != ListView || m.result == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.lists[m.tab], cmd = m.lists[m.tab].Update(msg)
	return m, cmd
}

func (m *Model) startAnalyze() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan Msg, 1)
	m.progressChan = progress
	m.done = done

	go func() {
		result, err := m.analyzer.Analyze(m.ctx, tasks.AnalyzeOpts{}, progress)
		done <- analyzeCompleteMsg(result, err)
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.done
	return func() tea.Msg {
		if progress == nil {
			return nil
		}
		update, ok := <-progress
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) fetchSummary() tea.Cmd {
	workouts, now, days := m.workouts, m.opts.Now(), m.opts.WindowDays
	return func() tea.Msg {
		if workouts == nil {
			return summaryFetchedMsg(models.WorkoutSummary{WindowDays: days}, nil)
		}
		summary, err := workouts.Summary(now, days)
		return summaryFetchedMsg(summary, err)
	}
}

func (m *Model) renderLoading() string {
	title := styles.title.Render(fmt.Sprintf("Reconciling %s", m.opts.Tier))
	msg := m.progress.Message
	if msg == "" {
		msg = "Loading tables..."
	}
	return fmt.Sprintf("%s\n\n%s", title, msg)
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, t := range []Tab{RevengeTab, UnplayedTab} {
		style := styles.tab
		if t == m.tab {
			style = styles.active
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return strings.Join(tabs, " ")
}

func (m *Model) renderList() string {
	if m.err != nil {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.workouts, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}
	if m.result == nil {
		return m.renderLoading()
	}

	res := m.result.Result
	stats := styles.help.Render(fmt.Sprintf("%d songs • %d cleared • %d revenge • %d unplayed",
		res.Total(), res.Cleared, len(res.Revenge), len(res.Unplayed)))

	var issues string
	if n := len(m.result.Tables.Issues); n > 0 {
		issues = "\n" + styles.warn.Render(fmt.Sprintf("%d malformed row(s) read as no data", n))
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n%s%s\n\n%s\n\n%s", m.renderTabs(), stats, issues, m.lists[m.tab].View(), helpView)
}

func (m *Model) renderPick() string {
	helpKeys := []key.Binding{m.keys.spin, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.warn.Render(fmt.Sprintf("Nothing to spin on the %s list.", strings.ToLower(m.tab.String()))), helpView)
	}

	title := styles.title.Render(fmt.Sprintf("Roulette: %s", m.tab))
	song := styles.ok.Render("→ " + m.pick.Entry.RawTitle)
	info := fmt.Sprintf("\n%d song(s) on the list", m.pick.Remaining)
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, song, info, helpView)
}

func (m *Model) renderWorkouts() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}

	s := m.summary
	title := styles.title.Render("Workout Summary")
	if s.Sessions == 0 {
		return fmt.Sprintf("%s\n%s\n\n%s", title, styles.help.Render("No workouts logged yet."), helpView)
	}

	info := fmt.Sprintf(
		"Sessions: %d\nSongs: %d\nTotal: %.1f kcal\nAverage: %.1f kcal/session\nBest day: %s (%.1f kcal)\nLast %d days: %.1f kcal over %d songs",
		s.Sessions,
		s.Songs,
		s.TotalKcal,
		s.AvgKcal,
		s.BestDay.Format(time.DateOnly),
		s.BestDayKcal,
		s.WindowDays,
		s.WindowKcal,
		s.WindowSongs,
	)
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
