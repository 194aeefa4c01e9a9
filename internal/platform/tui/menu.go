package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ice-jumper/internal/core"
)

// MenuChoice is what the player picked on the title screen.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var menuItems = []MenuItem{
	{Choice: ChoicePlay, Title: "Play"},
	{Choice: ChoiceScores, Title: "High Scores"},
	{Choice: ChoiceQuit, Title: "Quit"},
}

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when user selects an entry
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     menuItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{logoView(m.width), ""}
	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = successStyle.Render("> " + item.Title)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", mutedStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"))

	return prompt(m.width, m.height, lines...)
}

// Choice returns the selected entry, or ChoiceQuit if none was selected.
func (m MenuModel) Choice() MenuChoice {
	if m.selected == nil || m.quitting {
		return ChoiceQuit
	}
	return m.selected.Choice
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	return MenuResult{Choice: m.Choice(), Config: m.Config()}, nil
}

// logo is the title art: 2 is bank, 1 is ice and 0 is water.
var logo = []string{
	"22222222222222222222222222222222222222222222222222222222222222222222222222222222222",
	"20000000000000000000000000000000000000000000000000000000000000000000000000000000002",
	"20011111000011110001111100000011111000100001000110001100011111000011111000111110002",
	"20000100000100000001000000000000100000100001000101010100010000100010000000100001002",
	"20000100000100000001110000000000100000100001000100100100011111000011100000111110002",
	"20000100000100000001000000000100100000100001000100000100010000000010000000100100002",
	"20011111000011110001111100000011000000011110000100000100010000000011111000100011002",
	"20000000000000000000000000000000000000000000000000000000000000000000000000000000002",
	"22222222222222222222222222222222222222222222222222222222222222222222222222222222222",
}

// logoView paints the title art with the board colours. Terminals narrower
// than the art get a plain title.
func logoView(width int) string {
	if width > 0 && width < len(logo[0]) {
		return titleStyle.Render("I C E   J U M P E R")
	}
	s := core.NewScreen(len(logo[0]), len(logo))
	for y, row := range logo {
		for x, c := range row {
			bg := core.ColorDarkBlue
			switch c {
			case '2':
				bg = core.ColorDarkGreen
			case '1':
				bg = core.ColorCyan
			}
			s.Paint(x, y, bg)
		}
	}
	return RenderScreen(s)
}
