package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ice-jumper/internal/core"
	"github.com/vovakirdan/ice-jumper/internal/games/icejumper"
	"github.com/vovakirdan/ice-jumper/internal/logging"
	"github.com/vovakirdan/ice-jumper/internal/storage"
)

// introDuration is how long the level number is shown before play starts.
const introDuration = 1500 * time.Millisecond

type phase int

const (
	phaseName       phase = iota // Name entry
	phaseLoadPrompt              // Offer to load a save
	phaseIntro                   // Level number and countdown
	phasePlaying
	phaseFailed   // Attempt lost, lives remain
	phaseComplete // Level won, offer to save
	phaseNext     // Waiting to start the next level
	phaseGameOver // Session won or lost
)

// Options configures the game model.
type Options struct {
	Params  icejumper.Params
	Backend storage.Backend // May be nil
	Logger  *log.Logger
	Runtime core.RuntimeConfig
	Name    string // Skips name entry when set
}

// Model is the Bubble Tea model for a game of Ice Jumper.
type Model struct {
	opts   Options
	keys   *KeyMapper
	help   help.Model
	hints  GameKeyMap
	input  textinput.Model
	board  *Board
	logger *log.Logger

	session *icejumper.Session
	sim     *icejumper.Simulator
	save    storage.SaveRecord

	phase     phase
	outcome   icejumper.Outcome
	introLeft time.Duration
	lastTick  time.Time
	seed      int64
	notice    string // Persistence errors and other one-line messages
	width     int
	height    int
	quitting  bool
}

// NewModel creates a new Bubble Tea model.
func NewModel(opts Options) Model {
	// Use time-based seed if not specified
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = "NAME"
	ti.CharLimit = 20
	ti.Width = 20
	ti.Focus()

	m := Model{
		opts:   opts,
		keys:   NewKeyMapper(),
		help:   help.New(),
		hints:  DefaultGameKeyMap(),
		input:  ti,
		board:  NewBoard(),
		logger: logger,
		seed:   seed,
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
	if name := storage.NormalizeName(opts.Name); name != "" {
		m = m.startSession(name)
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.opts.Runtime.TickRate))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.phase == phaseName {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input for the current phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.phase == phaseName {
		return m.handleNameKey(msg)
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.phase {
	case phaseLoadPrompt:
		switch action {
		case core.ActionYes:
			if err := m.session.Resume(m.save); err != nil {
				m.logger.Warn("cannot resume save", "error", err)
				m.notice = "ERROR: the save is damaged, starting a new game"
			}
			m = m.beginIntro()
		case core.ActionNo:
			m = m.beginIntro()
		}

	case phasePlaying:
		if dir, ok := ActionDirection(action); ok {
			m.sim.Move(dir)
			if m.sim.Done() {
				m = m.finishAttempt()
			}
		}

	case phaseFailed, phaseNext:
		m = m.beginIntro()

	case phaseComplete:
		switch action {
		case core.ActionYes:
			if err := m.session.SaveProgress(); err != nil {
				m.notice = persistNotice(err)
			}
			m.phase = phaseNext
		case core.ActionNo:
			m.phase = phaseNext
		}

	case phaseGameOver:
		if action == core.ActionConfirm {
			m.seed++
			m = m.resetToName()
		}
	}

	return m, nil
}

// handleNameKey feeds the text input until a name is confirmed.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		name := storage.NormalizeName(m.input.Value())
		if name == "" {
			return m, nil
		}
		m = m.startSession(name)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleTick advances the intro countdown or the running attempt.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Duration(0)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	switch m.phase {
	case phaseIntro:
		m.introLeft -= dt
		if m.introLeft <= 0 {
			m.sim = m.session.NewAttempt(m.board)
			m.phase = phasePlaying
		}

	case phasePlaying:
		m.sim.Tick(dt)
		if m.sim.Done() {
			m = m.finishAttempt()
		}
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// startSession creates the session for name and checks for a save.
func (m Model) startSession(name string) Model {
	opts := []icejumper.SessionOption{icejumper.WithLogger(m.logger)}
	if b := m.opts.Backend; b != nil {
		opts = append(opts, icejumper.WithScores(b), icejumper.WithSaves(b))
		if h, ok := b.(storage.HistoryRepository); ok {
			opts = append(opts, icejumper.WithHistory(h))
		}
	}
	m.session = icejumper.NewSession(m.opts.Params, name, m.seed, opts...)
	m.notice = ""

	rec, ok, err := m.session.FindSave()
	switch {
	case err != nil:
		m.logger.Warn("cannot read saves", "error", err)
		m.notice = persistNotice(err)
	case ok:
		m.save = rec
		m.phase = phaseLoadPrompt
		return m
	}
	return m.beginIntro()
}

func (m Model) beginIntro() Model {
	m.phase = phaseIntro
	m.introLeft = introDuration
	return m
}

// finishAttempt records the outcome and picks the next phase.
func (m Model) finishAttempt() Model {
	m.outcome = m.sim.Outcome()
	state := m.session.Record(m.outcome)

	switch {
	case state != icejumper.SessionPlaying:
		m.phase = phaseGameOver
		if errs := m.session.PersistErrors(); len(errs) > 0 {
			m.notice = persistNotice(errs[len(errs)-1])
		}
	case m.outcome.Completed:
		m.phase = phaseComplete
	default:
		m.phase = phaseFailed
	}
	return m
}

func (m Model) resetToName() Model {
	m.session = nil
	m.sim = nil
	m.notice = ""
	m.phase = phaseName
	m.input.Reset()
	m.input.Focus()
	return m
}

// persistNotice turns a storage error into the prompt shown to the player.
func persistNotice(err error) string {
	for _, sentinel := range []error{
		storage.ErrMissingSaveFile,
		storage.ErrMissingSaveDirectory,
		storage.ErrMissingScoreFile,
		storage.ErrMissingScoreDirectory,
	} {
		if errors.Is(err, sentinel) {
			return "ERROR: The " + sentinel.Error() + "!"
		}
	}
	return "ERROR: " + err.Error()
}

// saveScreenshot saves the current board to a file.
func (m *Model) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".icejumper", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("level%d_%s.txt", m.levelNumber(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.board.Screen().String()), 0o600)
}

func (m Model) levelNumber() int {
	if m.session == nil {
		return 0
	}
	return m.session.Level()
}

// View renders the current phase.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseName:
		return prompt(m.width, m.height,
			successStyle.Render("WELCOME TO ICE JUMPER!"),
			"",
			"ENTER YOUR NAME: "+m.input.View(),
			"",
			m.noticeView(),
		)

	case phaseLoadPrompt:
		return prompt(m.width, m.height,
			successStyle.Render("Would you like to load your previous save?"),
			fmt.Sprintf("LEVEL %d | LIVES %d | SCORES %d", m.save.Level, m.save.Lives, m.save.Score),
			"",
			"Y/N",
		)

	case phaseIntro:
		count := int((m.introLeft+500*time.Millisecond-1)/(500*time.Millisecond))
		return prompt(m.width, m.height,
			logoView(m.width),
			"",
			successStyle.Render("LEVEL "+strconv.Itoa(m.session.Level())),
			"",
			strconv.Itoa(max(count, 1)),
			m.noticeView(),
		)

	case phasePlaying:
		return RenderScreen(m.board.Screen()) + "\n" + mutedStyle.Render(m.help.View(m.hints))

	case phaseFailed:
		reason := "YOU FELL INTO THE RIVER"
		if m.outcome.Reason == icejumper.FailTimedOut {
			reason = "TIME IS UP"
		}
		return prompt(m.width, m.height,
			failureStyle.Render("LEVEL FAILED!"),
			reason,
			fmt.Sprintf("LIVES LEFT: %d", m.session.Player().Lives),
			"",
			"PRESS ANY KEY TO RESTART LEVEL",
		)

	case phaseComplete:
		return prompt(m.width, m.height,
			successStyle.Render("LEVEL COMPLETE!"),
			fmt.Sprintf("TIME BONUS: %d", m.outcome.Bonus),
			"",
			"Would you like to save your progress?(Y/N)",
		)

	case phaseNext:
		return prompt(m.width, m.height,
			"PRESS ANY KEY TO PLAY NEXT LEVEL",
			fmt.Sprintf("SCORES: %d", m.session.Player().Score),
			m.noticeView(),
		)

	case phaseGameOver:
		return m.gameOverView()
	}

	return ""
}

func (m Model) gameOverView() string {
	p := m.session.Player()
	if m.session.State() == icejumper.SessionLost {
		return prompt(m.width, m.height,
			failureStyle.Render("GAME OVER!"),
			fmt.Sprintf("YOUR SCORE: %d", p.Score),
			"",
			mutedStyle.Render("enter: new game  q: quit"),
		)
	}

	res, _ := m.session.HighScore()
	if res.Rank < 0 {
		return prompt(m.width, m.height,
			successStyle.Render("SUCCESS!!!"),
			fmt.Sprintf("YOUR SCORE: %d", p.Score),
			m.noticeView(),
			"",
			mutedStyle.Render("enter: new game  q: quit"),
		)
	}

	lines := []string{titleStyle.Render("CONGRATULATIONS!!!"), ""}
	lines = append(lines, highScoreLines(res.Table, res.Rank)...)
	lines = append(lines, m.noticeView(), "", mutedStyle.Render("enter: new game  q: quit"))
	return prompt(m.width, m.height, lines...)
}

// highScoreLines renders "1. NAME -> score" lines, highlighting rank.
func highScoreLines(table []storage.HighScoreEntry, rank int) []string {
	lines := make([]string, 0, len(table))
	for i, e := range table {
		line := fmt.Sprintf("%2d. %-12s -> %d", i+1, e.PlayerName, e.Score)
		if i == rank {
			line = rankStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

func (m Model) noticeView() string {
	if m.notice == "" {
		return ""
	}
	return failureStyle.Render(m.notice)
}

// Run starts the Bubble Tea program for one or more games.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
