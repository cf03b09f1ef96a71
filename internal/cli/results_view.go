package cli

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/natasilva/task-tracker-front/internal/fetch"
)

const resultsFetchKey = "results"

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

type resultsLoadedMsg struct {
	ticket fetch.Ticket
	rows   []api.Result
	err    error
}

// resultSelection is the day picked in the results list.
type resultSelection struct {
	day calendar.Date
	id  api.ID
}

type resultsModel struct {
	ctx      context.Context
	client   resultsFetcher
	latest   *fetch.Latest
	userID   api.ID
	workdays *calendar.Workdays
	today    calendar.Date

	rng      calendar.Range
	days     resultDays
	entries  []calendar.DayEntry
	expected map[calendar.Date]bool
	notice   *calendar.Notice
	loading  bool
	err      error

	cursor     int
	scrollY    int
	termHeight int
	selected   *resultSelection
}

func newResultsModel(ctx context.Context, client resultsFetcher, opts resultsOptions) resultsModel {
	return resultsModel{
		ctx:        ctx,
		client:     client,
		latest:     &fetch.Latest{},
		userID:     opts.userID,
		workdays:   opts.workdays,
		today:      calendar.Today(opts.now),
		rng:        opts.rng,
		loading:    true,
		termHeight: 24,
	}
}

func (m resultsModel) Init() tea.Cmd {
	_, cmd := m.fetch()
	return cmd
}

// fetch starts loading the current range. A running request for an older
// range is canceled and its response dropped.
func (m resultsModel) fetch() (resultsModel, tea.Cmd) {
	ctx, ticket := m.latest.Begin(m.ctx, resultsFetchKey)
	m.loading = true

	client := m.client
	q := resultsQuery(m.userID, m.rng)
	return m, func() tea.Msg {
		rows, err := client.Results(ctx, q)
		return resultsLoadedMsg{ticket: ticket, rows: rows, err: err}
	}
}

func (m resultsModel) apply(msg resultsLoadedMsg) resultsModel {
	current := m.latest.End(msg.ticket)
	m.loading = m.latest.Pending(resultsFetchKey)
	if !current {
		return m
	}

	if msg.err != nil {
		m.err = msg.err
		m.entries = nil
		m.notice = nil
		return m
	}

	days, err := buildResultDays(msg.rows)
	if err != nil {
		m.err = err
		m.entries = nil
		return m
	}

	m.err = nil
	m.days = days
	m.entries = days.entries
	m.notice = days.notice()
	m.expected = m.workdays.Expected(*m.rng.Start, *m.rng.End)
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m.ensureCursorVisible()
}

func (m resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		return m.apply(msg), nil
	case tea.WindowSizeMsg:
		m.termHeight = msg.Height
		return m.ensureCursorVisible(), nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				m = m.ensureCursorVisible()
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m = m.ensureCursorVisible()
			}
		case "[", "left", "h":
			m.rng = shiftMonth(m.rng, -1)
			m.cursor, m.scrollY = 0, 0
			return m.fetch()
		case "]", "right", "l":
			m.rng = shiftMonth(m.rng, 1)
			m.cursor, m.scrollY = 0, 0
			return m.fetch()
		case "t":
			m.rng.RegisteredOnly = !m.rng.RegisteredOnly
			m.cursor, m.scrollY = 0, 0
			return m.fetch()
		case "enter":
			if m.loading || m.err != nil || len(m.entries) == 0 {
				return m, nil
			}
			e := m.entries[m.cursor]
			m.selected = &resultSelection{day: e.Date, id: m.days.firstID(e.ID)}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m resultsModel) visibleRows() int {
	// header(2) + notice(1) + footer(2)
	available := m.termHeight - 5
	if available < 1 {
		return 1
	}
	return available
}

func (m resultsModel) ensureCursorVisible() resultsModel {
	if m.cursor < m.scrollY {
		m.scrollY = m.cursor
	}
	if m.cursor >= m.scrollY+m.visibleRows() {
		m.scrollY = m.cursor - m.visibleRows() + 1
	}
	if m.scrollY < 0 {
		m.scrollY = 0
	}
	return m
}

func (m resultsModel) View() string {
	var b strings.Builder

	title := "Results " + rangeLabel(m.rng)
	if m.rng.RegisteredOnly {
		title += " (registered only)"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(Info("loading..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(Error(m.err.Error()))
		b.WriteString("\n")
	case m.notice != nil:
		b.WriteString(noticeLine(m.notice))
		b.WriteString("\n")
	}

	if !m.loading && m.err == nil {
		end := m.scrollY + m.visibleRows()
		if end > len(m.entries) {
			end = len(m.entries)
		}
		for i := m.scrollY; i < end; i++ {
			line := dayLine(m.entries[i], m.days, m.expected, m.today)
			if i == m.cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ move  [/] month  t registered only  enter open  q back"))
	return b.String()
}
