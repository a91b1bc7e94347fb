// Package ui implements an interactive terminal dashboard using bubbletea's Elm architecture.
//
// The TUI has four views:
//  1. [LoadingView] : reconciliation progress streamed from the analyze pipeline
//  2. [ListView] : revenge and unplayed lists, switched with tab, filterable with /
//  3. [PickView] : roulette result drawn from the current list
//  4. [WorkoutView] : calorie summary from the workout log
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the [Analyzer], so the UI never blocks on the pipeline.
//
// Keyboard navigation uses vim-style bindings (j/k, tab, s, w, r, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
