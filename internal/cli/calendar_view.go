package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/natasilva/task-tracker-front/internal/calendar"
)

type calendarModel struct {
	all      []calendar.DayEntry
	idx      *calendar.Index
	rng      calendar.Range
	workdays *calendar.Workdays
	today    calendar.Date

	entries  []calendar.DayEntry
	expected map[calendar.Date]bool
	notice   *calendar.Notice

	cursor     int
	scrollY    int
	termHeight int
	footerMsg  string
}

func newCalendarModel(all []calendar.DayEntry, idx *calendar.Index, opts calendarOptions) calendarModel {
	m := calendarModel{
		all:        all,
		idx:        idx,
		rng:        opts.rng,
		workdays:   opts.workdays,
		today:      calendar.Today(opts.now),
		termHeight: 24,
	}
	return m.refilter().startAtToday()
}

// refilter recomputes the visible entries from the full list.
func (m calendarModel) refilter() calendarModel {
	res := calendar.Filter(m.idx.Apply(m.all), m.rng, m.idx)
	m.entries = res.Entries
	m.notice = res.Notice
	m.expected = nil
	if len(m.entries) > 0 {
		m.expected = m.workdays.Expected(m.entries[0].Date, m.entries[len(m.entries)-1].Date)
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m.ensureCursorVisible()
}

// startAtToday moves the cursor to today when it is listed.
func (m calendarModel) startAtToday() calendarModel {
	for i, e := range m.entries {
		if e.Date.Equal(m.today) {
			m.cursor = i
			break
		}
	}
	return m.ensureCursorVisible()
}

func (m calendarModel) Init() tea.Cmd {
	return nil
}

func (m calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termHeight = msg.Height
		return m.ensureCursorVisible(), nil
	case tea.KeyMsg:
		m.footerMsg = ""
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "pgdown":
			m.cursor += m.visibleRows()
			if m.cursor > len(m.entries)-1 {
				m.cursor = len(m.entries) - 1
			}
		case "pgup":
			m.cursor -= m.visibleRows()
			if m.cursor < 0 {
				m.cursor = 0
			}
		case ".":
			m = m.startAtToday()
		case "r", "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			e := m.entries[m.cursor]
			if err := m.idx.Register(e.ID); err != nil {
				m.footerMsg = Error(err.Error())
				return m, nil
			}
			m.footerMsg = Success("registered " + calendar.FormatDisplay(e.Date))
			return m.refilter(), nil
		case "o":
			m.rng.RegisteredOnly = !m.rng.RegisteredOnly
			m.cursor = 0
			return m.refilter(), nil
		}
		return m.ensureCursorVisible(), nil
	}
	return m, nil
}

func (m calendarModel) visibleRows() int {
	available := m.termHeight - 5
	if available < 1 {
		return 1
	}
	return available
}

func (m calendarModel) ensureCursorVisible() calendarModel {
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

func (m calendarModel) View() string {
	var b strings.Builder

	title := "Calendar " + rangeLabel(m.rng)
	if m.rng.RegisteredOnly {
		title += " (registered only)"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")
	if m.notice != nil {
		b.WriteString(noticeLine(m.notice))
		b.WriteString("\n")
	}

	end := m.scrollY + m.visibleRows()
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.scrollY; i < end; i++ {
		line := calendarLine(m.entries[i], m.expected, m.today)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.footerMsg != "" {
		b.WriteString(m.footerMsg)
		b.WriteString("  ")
	}
	b.WriteString(footerStyle.Render("↑/↓ move  . today  r register  o registered only  q done"))
	return b.String()
}
