package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruitdrop/internal/registry"
	"github.com/vovakirdan/fruitdrop/internal/storage"
)

const (
	statsPanelWidth = 28  // right-hand panel with mode stats and the selected round
	minWidthForDesk = 90  // below this the panel folds into one line
	maxScores       = 100 // rows loaded per mode
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextMode, k.PrevMode}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the leaderboard of each mode with its stats and
// the details of the highlighted round.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	store     *storage.Store
	rankNames []string // fruit names by rank
	rounds    []storage.RoundResult
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode. store
// may be nil; the board is then empty.
func NewScoreboardModel(store *storage.Store, rankNames []string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:     registry.List(),
		store:     store,
		rankNames: rankNames,
		keys:      DefaultScoreboardKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

// wide reports whether the stats panel fits beside the table.
func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForDesk
}

func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Top fruit", Width: 10},
		{Title: "Merges", Width: 6},
		{Title: "Combo", Width: 5},
		{Title: "Date", Width: 12},
	}
	room := m.width - 6
	if m.wide() {
		room -= statsPanelWidth + 2
	}
	if room < 56 {
		columns = columns[:3]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-11)),
	)

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

// load reads the rounds and stats of the current mode.
func (m *ScoreboardModel) load() {
	m.rounds, m.stats = nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
		if rounds, err := m.store.TopScores(id, maxScores); err == nil {
			m.rounds = rounds
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	cols := len(m.table.Columns())
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			m.fruit(r.TopRank),
			fmt.Sprintf("%d", r.Merges),
			fmt.Sprintf("x%d", r.MaxCombo),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
		rows[i] = row[:cols]
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// fruit returns the name of rank, "-" when no fruit was reached.
func (m ScoreboardModel) fruit(rank int) string {
	if rank < 0 || rank >= len(m.rankNames) {
		return "-"
	}
	return m.rankNames[rank]
}

// cycle moves to the next (+1) or previous (-1) mode.
func (m *ScoreboardModel) cycle(step int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + step + len(m.modes)) % len(m.modes)
	m.load()
}

// Init initializes the scoreboard.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("HIGH SCORES")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var body string
	if m.wide() {
		panel := box.Width(statsPanelWidth).Render(m.statsPanel())
		body = lipgloss.JoinHorizontal(lipgloss.Top, box.Render(m.tableView()), "  ", panel)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center, box.Render(m.tableView()), m.statsLine())
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		centerText(title, m.width),
		"",
		centerText(m.tabs(), m.width),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body),
		"",
		dim.Render(m.help.View(m.keys)),
	)
}

// tabs renders the mode selector.
func (m ScoreboardModel) tabs() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)

	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = active.Render(g.Title)
		} else {
			tabs[i] = idle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) tableView() string {
	if len(m.rounds) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No rounds recorded yet.\nDrop some fruit to set a high score!")
	}
	return m.table.View()
}

// statsPanel lists the mode stats and the highlighted round.
func (m ScoreboardModel) statsPanel() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	head := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(head.Render("Mode"))
	b.WriteString("\n")
	if m.stats == nil || m.stats.GamesCount == 0 {
		b.WriteString(label.Render("no games yet"))
	} else {
		fmt.Fprintf(&b, "%s %d\n", label.Render("games     "), m.stats.GamesCount)
		fmt.Fprintf(&b, "%s %d\n", label.Render("best      "), m.stats.HighScore)
		fmt.Fprintf(&b, "%s %.0f\n", label.Render("average   "), m.stats.AvgScore)
		fmt.Fprintf(&b, "%s x%d\n", label.Render("best combo"), m.stats.BestCombo)
		fmt.Fprintf(&b, "%s %s\n", label.Render("top fruit "), m.fruit(m.stats.TopRank))
		fmt.Fprintf(&b, "%s %s", label.Render("last      "), m.stats.LastPlayed.Format("Jan 02 15:04"))
	}

	if r, ok := m.highlighted(); ok {
		b.WriteString("\n\n")
		b.WriteString(head.Render("Round"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %d\n", label.Render("score     "), r.Score)
		fmt.Fprintf(&b, "%s %d\n", label.Render("merges    "), r.Merges)
		fmt.Fprintf(&b, "%s %d\n", label.Render("continues "), r.Continues)
		fmt.Fprintf(&b, "%s %s", label.Render("id        "), shortID(r.RoundID))
	}
	return b.String()
}

// statsLine is the folded stats panel of narrow terminals.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(fmt.Sprintf(
		"games %d | best %d | avg %.0f | combo x%d",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.BestCombo))
}

func (m ScoreboardModel) highlighted() (storage.RoundResult, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rounds) {
		return storage.RoundResult{}, false
	}
	return m.rounds[i], true
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program. It reports whether
// the user went back rather than quit.
func RunScoreboard(store *storage.Store, rankNames []string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, rankNames, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
