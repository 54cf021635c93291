package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alanpramil7/underdog/internal/output"
	"github.com/alanpramil7/underdog/internal/yt"
	"github.com/alanpramil7/underdog/internal/yt/services"
)

const (
	queryCharLimit  = 100
	numberCharLimit = 7
	inputWidth      = 30
	linesPerItem    = 2
	maxTitleWidth   = 60
)

// UI color constants
const (
	colorPrimary   = "#00D9FF"
	colorSecondary = "#BD93F9"
	colorText      = "#F8F8F2"
	colorMuted     = "#6272A4"
	colorBorder    = "#3C3C3C"
	colorError     = "#FF5555"
	colorWarning   = "#FFB86C"
	colorSuccess   = "#50FA7B"
	colorHelp      = "#626262"
)

var (
	leftPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)

	rightPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorPrimary)).
			Padding(1, 3).
			Margin(1, 0)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Width(24)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color(colorPrimary)).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorHelp))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true).
			MarginBottom(1).
			PaddingLeft(1)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorHelp)).
			Italic(true).
			Align(lipgloss.Center).
			MarginTop(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError)).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess)).
			Bold(true)
)

// NewApp creates the form application. defaults pre-fill the form fields.
func NewApp(pipeline Runner, defaults yt.QueryParameters) *AppModel {
	var inputs [fieldCount]textinput.Model
	values := [fieldCount]string{
		defaults.Query,
		strconv.Itoa(defaults.MaxResults),
		strconv.Itoa(defaults.MaxViews),
		strconv.Itoa(defaults.MaxSubs),
		strconv.Itoa(defaults.DaysAgo),
	}
	for i := range inputs {
		in := textinput.New()
		in.Prompt = "› "
		in.Width = inputWidth
		in.CharLimit = numberCharLimit
		if i == fieldQuery {
			in.CharLimit = queryCharLimit
		}
		in.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary))
		in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText))
		in.SetValue(values[i])
		inputs[i] = in
	}
	inputs[fieldQuery].Placeholder = "Enter search query..."
	inputs[fieldQuery].Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	resultsViewport := viewport.New(0, 0)
	resultsViewport.MouseWheelEnabled = true

	return &AppModel{
		ctx:      context.Background(),
		pipeline: pipeline,
		state:    StateForm,
		inputs:   inputs,
		spinner:  s,
		results:  resultsViewport,
	}
}

// WithContext sets the context searches run under
func (m *AppModel) WithContext(ctx context.Context) *AppModel {
	m.ctx = ctx
	return m
}

// WithProgress makes the loading view follow the stages sent on ch
func (m *AppModel) WithProgress(ch <-chan services.Stage) *AppModel {
	m.progress = ch
	return m
}

func (m *AppModel) Init() tea.Cmd {
	if m.progress == nil {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.waitForStage())
}

// waitForStage blocks on the progress channel; each stageMsg re-arms it
func (m *AppModel) waitForStage() tea.Cmd {
	ch := m.progress
	return func() tea.Msg {
		stage, ok := <-ch
		if !ok {
			return nil
		}
		return stageMsg{stage}
	}
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		leftWidth := int(float64(msg.Width)*0.5) - 6
		panelHeight := msg.Height - 6

		m.results = viewport.New(max(leftWidth-4, 0), max(panelHeight-2, 0))
		m.results.MouseWheelEnabled = true
		m.updateResultsViewport()

	case tea.KeyMsg:
		switch m.state {
		case StateNormal:
			return m.handleNormalKeys(msg)
		case StateForm:
			return m.handleFormKeys(msg)
		case StateLoading:
			return m.handleLoadingKeys(msg)
		}

	case searchCompleteMsg:
		m.state = StateNormal
		m.records = msg.records
		m.lastQuery = msg.query
		m.searched = true
		m.selected = 0
		m.err = nil
		m.updateResultsViewport()

	case searchErrorMsg:
		m.state = StateForm
		m.err = msg.err
		return m, m.inputs[m.focused].Focus()

	case stageMsg:
		if m.state == StateLoading {
			m.stage = msg.stage
		}
		if m.progress == nil {
			return m, nil
		}
		return m, m.waitForStage()

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/", "s":
		m.state = StateForm
		m.err = nil
		return m, m.inputs[m.focused].Focus()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.updateResultsViewport()
		}
	case "down", "j":
		if m.selected < len(m.records)-1 {
			m.selected++
			m.updateResultsViewport()
		}
	}
	return m, nil
}

func (m *AppModel) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if !m.searched {
			return m, tea.Quit
		}
		m.state = StateNormal
		m.inputs[m.focused].Blur()
		return m, nil
	case "tab", "down":
		return m, m.focus((m.focused + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.focus((m.focused + fieldCount - 1) % fieldCount)
	case "enter":
		if m.focused < fieldCount-1 {
			return m, m.focus(m.focused + 1)
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	default:
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
}

// While a search is in flight the trigger is disabled; only quitting works
func (m *AppModel) handleLoadingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, nil
}

func (m *AppModel) focus(i int) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = i
	return m.inputs[i].Focus()
}

func (m *AppModel) submit() (tea.Model, tea.Cmd) {
	params, err := m.formParams()
	if err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	m.state = StateLoading
	m.stage = services.StageSearching
	m.inputs[m.focused].Blur()
	return m, tea.Batch(m.performSearch(params), m.spinner.Tick)
}

// formParams parses and validates the form fields
func (m *AppModel) formParams() (yt.QueryParameters, error) {
	var values [fieldCount]string
	for i, in := range m.inputs {
		values[i] = in.Value()
	}
	return parseForm(values)
}

func parseForm(values [fieldCount]string) (yt.QueryParameters, error) {
	params := yt.QueryParameters{Query: strings.TrimSpace(values[fieldQuery])}

	numbers := []struct {
		field int
		dst   *int
	}{
		{fieldMaxResults, &params.MaxResults},
		{fieldMaxViews, &params.MaxViews},
		{fieldMaxSubs, &params.MaxSubs},
		{fieldDaysAgo, &params.DaysAgo},
	}
	for _, n := range numbers {
		v, err := strconv.Atoi(strings.TrimSpace(values[n.field]))
		if err != nil {
			return params, fmt.Errorf("%s must be a whole number", fieldLabels[n.field])
		}
		*n.dst = v
	}

	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}

func (m *AppModel) performSearch(params yt.QueryParameters) tea.Cmd {
	return func() tea.Msg {
		records, err := m.pipeline.Run(m.ctx, params)
		if err != nil {
			return searchErrorMsg{fmt.Errorf("search failed: %w", err)}
		}
		return searchCompleteMsg{query: params.Query, records: records}
	}
}

func (m *AppModel) updateResultsViewport() {
	var b strings.Builder
	for i, r := range m.records {
		counts := fmt.Sprintf("%d views | %d subs", r.ViewCount, r.SubscriberCount)
		if i == m.selected {
			indicator := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary)).Render("▶ ")
			title := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary)).Bold(true).
				Render(output.Truncate(r.Title, maxTitleWidth))
			stats := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary)).Italic(true).
				Render(counts)
			fmt.Fprintf(&b, "%s%s\n  %s\n", indicator, title, stats)
		} else {
			title := lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)).
				Render(output.Truncate(r.Title, maxTitleWidth))
			stats := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).
				Render(counts)
			fmt.Fprintf(&b, "  %s\n  %s\n", title, stats)
		}
	}
	m.results.SetContent(b.String())

	// keep selected visible
	start := m.selected * linesPerItem
	end := start + linesPerItem - 1
	visible := m.results.VisibleLineCount()

	if start < m.results.YOffset {
		m.results.SetYOffset(start)
	} else if end >= m.results.YOffset+visible {
		m.results.SetYOffset(end - visible + 1)
	}
}

func (m *AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.state == StateForm || m.state == StateLoading {
		return m.formView()
	}

	leftWidth := int(float64(m.width)*0.5) - 1
	rightWidth := m.width - leftWidth - 4
	panelHeight := m.height - 4

	var leftContent string
	if len(m.records) == 0 {
		leftContent = emptyStateStyle.
			Width(leftWidth - 4).
			Height(panelHeight - 4).
			Render("No results found with the given filters.\n\nPress '/' or 's' to search again")
	} else {
		title := titleStyle.Render(fmt.Sprintf("Found %d qualifying videos for %q", len(m.records), m.lastQuery))
		leftContent = title + "\n" + m.results.View()
	}
	leftPanel := leftPanelStyle.
		Width(leftWidth).
		Height(panelHeight).
		Render(leftContent)

	rightTitle := titleStyle.Render("Details")
	var rightContent string
	if m.selected >= 0 && m.selected < len(m.records) {
		r := m.records[m.selected]
		rightContent = fmt.Sprintf(
			"%s\n\nViews: %s\n\nSubscribers: %s\n\nVideo ID: %s\n\nThumbnail URL: %s\n\nURL: %s",
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorPrimary)).Render(r.Title),
			lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary)).Render(strconv.FormatUint(r.ViewCount, 10)),
			lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary)).Render(strconv.FormatUint(r.SubscriberCount, 10)),
			lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render(r.VideoID),
			lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render(r.ThumbnailURL),
			lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render(r.URL),
		)
	} else {
		rightContent = emptyStateStyle.Render("No video selected")
	}

	rightPanel := rightPanelStyle.
		Width(rightWidth).
		Height(panelHeight).
		Render(rightTitle + "\n" + rightContent)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
	help := helpStyle.Render("'/' new search  •  ↑↓ navigate  •  q quit")
	return mainView + "\n" + help
}

func (m *AppModel) formView() string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("Underdog YouTube Finder"))
	b.WriteString("\n")
	for i := range m.inputs {
		label := labelStyle
		if i == m.focused && m.state == StateForm {
			label = focusedLabelStyle
		}
		fmt.Fprintf(&b, "%s %s\n", label.Render(fieldLabels[i]), m.inputs[i].View())
	}
	b.WriteString("\n")

	switch {
	case m.state == StateLoading:
		fmt.Fprintf(&b, "%s %s", m.spinner.View(), loadingStyle.Render(m.loadingText()))
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.searched:
		b.WriteString(successStyle.Render(fmt.Sprintf("Last search found %d qualifying videos.", len(m.records))))
	default:
		b.WriteString(helpStyle.Italic(true).Render("↹ next field  •  ↵ on last field or ctrl+s to search  •  esc back"))
	}

	modal := modalStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *AppModel) loadingText() string {
	switch m.stage {
	case services.StageFetchingStats:
		return "Fetching stats..."
	case services.StageFiltering:
		return "Filtering results..."
	default:
		return fmt.Sprintf("Searching '%s'...", strings.TrimSpace(m.inputs[fieldQuery].Value()))
	}
}
