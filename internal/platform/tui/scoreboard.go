package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ice-jumper/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 70 // Minimum width to show the view list sidebar
	sidebarWidth       = 20 // Width of the view list sidebar
)

// boardView is one page of the scoreboard.
type boardView int

const (
	viewHighScores boardView = iota
	viewSaves
	viewStats
)

func (v boardView) String() string {
	switch v {
	case viewSaves:
		return "Saved Games"
	case viewStats:
		return "Statistics"
	default:
		return "High Scores"
	}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextView key.Binding
	PrevView key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev view"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next view"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	views       []boardView
	viewCursor  int
	backend     storage.Backend
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show the view list sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(backend storage.Backend, width, height int) ScoreboardModel {
	views := []boardView{viewHighScores, viewSaves}
	if _, ok := backend.(storage.HistoryRepository); ok {
		views = append(views, viewStats)
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		views:       views,
		backend:     backend,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

func (m *ScoreboardModel) current() boardView {
	return m.views[m.viewCursor]
}

// columns returns the table columns of the current view.
func (m *ScoreboardModel) columns() []table.Column {
	switch m.current() {
	case viewSaves:
		return []table.Column{
			{Title: "Name", Width: 14},
			{Title: "Level", Width: 6},
			{Title: "Lives", Width: 6},
			{Title: "Score", Width: 8},
		}
	case viewStats:
		return []table.Column{
			{Title: "Stat", Width: 14},
			{Title: "Value", Width: 20},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: 14},
			{Title: "Score", Width: 10},
		}
	}
}

// createTable creates a new table for the current view.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 5)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the rows of the current view from the backend.
func (m *ScoreboardModel) load() {
	m.table = m.createTable()
	m.rows, m.loadErr = viewRows(m.backend, m.current())
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

// viewRows builds the table rows of a view. Missing files are shown as empty.
func viewRows(backend storage.Backend, v boardView) ([]table.Row, error) {
	if backend == nil {
		return nil, nil
	}

	switch v {
	case viewSaves:
		saves, err := backend.Saves()
		if err != nil {
			return nil, ignoreMissing(err)
		}
		rows := make([]table.Row, len(saves))
		for i, s := range saves {
			rows[i] = table.Row{s.PlayerName, strconv.Itoa(s.Level), strconv.Itoa(s.Lives), strconv.Itoa(s.Score)}
		}
		return rows, nil

	case viewStats:
		h, ok := backend.(storage.HistoryRepository)
		if !ok {
			return nil, nil
		}
		st, err := h.Stats()
		if err != nil {
			return nil, err
		}
		if st.Games == 0 {
			return nil, nil
		}
		last := "-"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Local().Format("Jan 02 15:04")
		}
		return []table.Row{
			{"Games", strconv.Itoa(st.Games)},
			{"Wins", strconv.Itoa(st.Wins)},
			{"Best score", strconv.Itoa(st.HighScore)},
			{"Average", fmt.Sprintf("%.1f", st.AvgScore)},
			{"Last played", last},
		}, nil

	default:
		scores, err := backend.LoadTop10()
		if err != nil {
			return nil, ignoreMissing(err)
		}
		rows := make([]table.Row, len(scores))
		for i, s := range scores {
			rows[i] = table.Row{fmt.Sprintf("#%d", i+1), s.PlayerName, strconv.Itoa(s.Score)}
		}
		return rows, nil
	}
}

func ignoreMissing(err error) error {
	if storage.IsMissing(err) {
		return nil
	}
	return err
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView), key.Matches(msg, m.keys.Right):
			m.viewCursor = (m.viewCursor + 1) % len(m.views)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView), key.Matches(msg, m.keys.Left):
			m.viewCursor--
			if m.viewCursor < 0 {
				m.viewCursor = len(m.views) - 1
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("ICE JUMPER - %s", strings.ToUpper(m.current().String()))
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a sidebar listing the views.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range m.views {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.viewCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + v.String()))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current view name above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	b.WriteString(centerText(fmt.Sprintf("< %s >", m.current()), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return failureStyle.Padding(2, 4).Render("ERROR: " + m.loadErr.Error())
	}
	if len(m.rows) == 0 {
		if m.current() == viewSaves {
			return emptyStyle.Render("No saved games.")
		}
		return emptyStyle.Render("No scores recorded yet.\nFinish all levels to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(backend storage.Backend, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(backend, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
