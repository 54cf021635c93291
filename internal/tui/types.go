package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/alanpramil7/underdog/internal/yt"
	"github.com/alanpramil7/underdog/internal/yt/services"
)

// Runner executes one underdog search
type Runner interface {
	Run(ctx context.Context, params yt.QueryParameters) ([]yt.QualifyingRecord, error)
}

// AppState represents the current state of the application
type AppState int

const (
	StateNormal AppState = iota
	StateForm
	StateLoading
)

// Form field order
const (
	fieldQuery = iota
	fieldMaxResults
	fieldMaxViews
	fieldMaxSubs
	fieldDaysAgo
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Search Query",
	"Max Results",
	"Max Views",
	"Max Subscribers",
	"Posted in last (days)",
}

// AppModel represents the app state
type AppModel struct {
	ctx      context.Context
	pipeline Runner

	state   AppState
	inputs  [fieldCount]textinput.Model
	focused int
	spinner spinner.Model
	// stage of the in-flight search, fed from progress
	stage    services.Stage
	progress <-chan services.Stage

	results viewport.Model
	records []yt.QualifyingRecord
	// query of the last completed search, shown in the results title
	lastQuery string
	searched  bool
	selected  int

	width, height int
	err           error
}

// Custom messages for async operations
type searchCompleteMsg struct {
	query   string
	records []yt.QualifyingRecord
}

type searchErrorMsg struct {
	err error
}

type stageMsg struct {
	stage services.Stage
}
