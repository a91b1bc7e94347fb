package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lvx/internal/models"
	"github.com/desertthunder/lvx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgAnalyzeComplete
	MsgSummaryFetched
)

type analyzeComplete struct {
	result *tasks.AnalyzeResult
	err    error
}

type summaryFetched struct {
	summary models.WorkoutSummary
	err     error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// analyzeCompleteMsg is the constructor for [MsgAnalyzeComplete]
func analyzeCompleteMsg(result *tasks.AnalyzeResult, err error) Msg {
	return Msg{kind: MsgAnalyzeComplete, data: analyzeComplete{result, err}}
}

// summaryFetchedMsg is the constructor for [MsgSummaryFetched]
func summaryFetchedMsg(summary models.WorkoutSummary, err error) Msg {
	return Msg{kind: MsgSummaryFetched, data: summaryFetched{summary, err}}
}
