package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/spend/internal/report"
	"github.com/Veraticus/spend/internal/tui/themes"
)

// ErrNoSource is returned when the dashboard has nothing to read from.
var ErrNoSource = errors.New("dashboard requires a ledger source")

// Rows taken by everything above and below the recent table.
const chromeHeight = 22

// Model is the dashboard state.
type Model struct {
	ctx         context.Context
	source      Source
	err         error
	now         func() time.Time
	status      string
	ledger      report.Ledger
	keys        KeyMap
	theme       themes.Theme
	table       table.Model
	bar         progress.Model
	help        help.Model
	width       int
	height      int
	recentLimit int
	pinnedTheme bool
	loaded      bool
	quitting    bool
}

// New creates the dashboard model.
func New(ctx context.Context, source Source, opts ...Option) (Model, error) {
	if source == nil {
		return Model{}, ErrNoSource
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := Model{
		ctx:         ctx,
		source:      source,
		now:         cfg.Now,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		recentLimit: cfg.RecentLimit,
		table: table.New(
			table.WithColumns(recentColumns(cfg.Width)),
			table.WithFocused(true),
		),
		bar: progress.New(progress.WithoutPercentage()),
	}

	m.theme = themes.Light
	if cfg.Theme != nil {
		m.theme = *cfg.Theme
		m.pinnedTheme = true
	}
	m.applyTheme()
	m.resize(cfg.Width, cfg.Height)

	return m, nil
}

// Init loads the ledger.
func (m Model) Init() tea.Cmd {
	return m.loadLedger()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ledgerLoadedMsg:
		m.ledger = msg.ledger
		m.loaded = true
		if !m.pinnedTheme {
			m.theme = themes.For(msg.ledger.Settings.Theme)
			m.applyTheme()
		}
		m.table.SetRows(m.recentRows())
		m.table.GotoTop()
		return m, nil

	case budgetsRefreshedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("refresh budgets: %w", msg.err)
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Refreshed budgets (%d changed)", msg.changed)
		return m, m.loadLedger()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.status = "Refreshing budgets..."
		return m, m.refreshBudgets()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.bar.Width = min(max(width/3, 10), 40)
	m.table.SetColumns(recentColumns(width))
	m.table.SetWidth(max(width-4, 20))
	m.table.SetHeight(max(height-chromeHeight, 3))
}

func (m *Model) applyTheme() {
	styles := table.DefaultStyles()
	styles.Header = m.theme.TableHeader
	styles.Selected = m.theme.TableSelected
	m.table.SetStyles(styles)

	m.bar.EmptyColor = string(m.theme.BarEmpty)
	m.bar.FullColor = string(m.theme.Primary)
}

func (m Model) recentRows() []table.Row {
	currency := m.ledger.Settings.Currency
	recent := report.Recent(m.ledger.Expenses, m.recentLimit)
	rows := make([]table.Row, 0, len(recent))
	for _, e := range recent {
		rows = append(rows, table.Row{
			e.Date.String(),
			e.Description,
			m.ledger.CategoryName(e.CategoryID),
			report.FormatCurrency(e.Amount, currency),
		})
	}
	return rows
}

func recentColumns(width int) []table.Column {
	description := max(width-4-10-16-14-8, 16)
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Description", Width: description},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 14},
	}
}
