package tui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pranshuparmar/procdump/internal/output"
	"github.com/pranshuparmar/procdump/internal/proc"
	"github.com/pranshuparmar/procdump/internal/report"
	"github.com/pranshuparmar/procdump/pkg/model"
)

const refreshInterval = 2 * time.Second

// chromeHeight is the number of lines drawn around the active tab.
const chromeHeight = 9

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var bannerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("160")).
	Bold(true).
	Padding(0, 1)

var activeTabStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57")).
	Bold(true)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("57")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tabStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("240"))
)

type tab struct {
	title   string
	section string
	// key selects the tab directly.
	key string
}

// Maps and Mem share a first letter, as do Tree and Task: the second
// of each pair is selected with the upper case letter.
var tabs = []tab{
	{title: "Env", section: report.SectionEnv, key: "e"},
	{title: "Net", section: report.SectionNet, key: "n"},
	{title: "Maps", section: report.SectionMaps, key: "m"},
	{title: "Files", section: report.SectionFiles, key: "f"},
	{title: "Limits", section: report.SectionLimits, key: "l"},
	{title: "Tree", section: report.SectionTree, key: "t"},
	{title: "CGroups", section: report.SectionCgroups, key: "c"},
	{title: "IO", section: report.SectionIO, key: "i"},
	{title: "Mem", section: report.SectionMem, key: "M"},
	{title: "Task", section: report.SectionTasks, key: "T"},
}

func tabIndex(section string) int {
	for i, t := range tabs {
		if t.section == section {
			return i
		}
	}
	return 0
}

type tickMsg time.Time

// reportMsg carries a finished refresh. tab and pid identify what was
// asked for so late results of an earlier selection can be dropped.
type reportMsg struct {
	tab    int
	pid    int
	report *model.Report
	err    error
}

type tuiModel struct {
	ctx  context.Context
	src  report.Source
	pid  int
	tab  int
	opts report.Options

	paused bool
	// report is the last successful refresh of the active tab.
	report *model.Report
	err    error
	// focusPending places the tree cursor on the target once rows arrive.
	focusPending bool

	viewport viewport.Model
	table    table.Model
	width    int
	height   int

	// fatal is set when the model recovered from a panic.
	fatal error
}

// Options configure the interactive mode.
type Options struct {
	// Section is the tab shown first.
	Section    string
	MapsDetail bool
	TreeAll    bool
}

func initialModel(ctx context.Context, src report.Source, pid int, opts Options) tuiModel {
	m := tuiModel{
		ctx:          ctx,
		src:          src,
		pid:          pid,
		tab:          tabIndex(opts.Section),
		opts:         report.Options{MapsDetail: opts.MapsDetail, TreeAll: opts.TreeAll},
		focusPending: true,
		viewport:     viewport.New(80, 20),
	}
	m.initTable()
	return m
}

func (m *tuiModel) initTable() {
	procWidth := m.width - 28
	if procWidth < 30 {
		procWidth = 30
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "PID", Width: 8},
			{Title: "User", Width: 12},
			{Title: "Process Tree", Width: procWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(m.bodyHeight()),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(true)
	t.SetStyles(s)

	m.table = t
}

func (m tuiModel) bodyHeight() int {
	if h := m.height - chromeHeight; h > 3 {
		return h
	}
	return 3
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(tick(), m.refresh())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh collects the header and the active tab in the background.
func (m tuiModel) refresh() tea.Cmd {
	ctx, src, pid, tab := m.ctx, m.src, m.pid, m.tab
	opts := m.opts
	opts.Sections = map[string]bool{tabs[tab].section: true}
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("panic while collecting", zap.Int("pid", pid), zap.Any("panic", r), zap.Stack("stack"))
				msg = reportMsg{tab: tab, pid: pid, err: fmt.Errorf("collecting: %v", r)}
			}
		}()
		r, err := report.Collect(ctx, src, pid, opts)
		return reportMsg{tab: tab, pid: pid, report: r, err: err}
	}
}

func (m tuiModel) Update(msg tea.Msg) (out tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("panic in interactive mode", zap.Any("panic", r), zap.Stack("stack"))
			m.fatal = fmt.Errorf("interactive mode: %v", r)
			out, cmd = m, tea.Quit
		}
	}()
	return m.update(msg)
}

func (m tuiModel) update(msg tea.Msg) (tuiModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right":
			return m.selectTab((m.tab + 1) % len(tabs))
		case "shift+tab", "left":
			return m.selectTab((m.tab + len(tabs) - 1) % len(tabs))
		case "p":
			m.paused = !m.paused
			return m, nil
		case "d":
			if tabs[m.tab].section == report.SectionMaps {
				m.opts.MapsDetail = !m.opts.MapsDetail
				return m, m.refresh()
			}
		case "ctrl+t":
			if tabs[m.tab].section == report.SectionTree {
				m.opts.TreeAll = !m.opts.TreeAll
				m.focusPending = true
				return m, m.refresh()
			}
		case "enter":
			if tabs[m.tab].section == report.SectionTree {
				return m.retarget()
			}
		case "home":
			if !m.onTable() {
				m.viewport.GotoTop()
				return m, nil
			}
		case "end":
			if !m.onTable() {
				m.viewport.GotoBottom()
				return m, nil
			}
		}
		for i, t := range tabs {
			if key == t.key {
				return m.selectTab(i)
			}
		}
	case tickMsg:
		if m.paused {
			return m, tick()
		}
		return m, tea.Batch(tick(), m.refresh())
	case reportMsg:
		if msg.tab != m.tab || msg.pid != m.pid {
			return m, nil
		}
		if msg.err != nil {
			// keep showing the last report below the banner
			m.err = msg.err
			return m, nil
		}
		report.Rates(m.report, msg.report)
		m.report = msg.report
		m.err = nil
		m.updateContent()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = m.bodyHeight()
		cursor := m.table.Cursor()
		rows := m.table.Rows()
		m.initTable()
		m.table.SetRows(rows)
		m.table.SetCursor(cursor)
		return m, nil
	}

	if m.onTable() {
		m.table, cmd = m.table.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m tuiModel) selectTab(i int) (tuiModel, tea.Cmd) {
	if i == m.tab {
		return m, nil
	}
	m.tab = i
	m.viewport.GotoTop()
	m.viewport.SetContent("")
	if tabs[i].section == report.SectionTree {
		m.focusPending = true
	}
	return m, m.refresh()
}

// retarget makes the selected process of the tree the new target.
func (m tuiModel) retarget() (tuiModel, tea.Cmd) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return m, nil
	}
	pid, err := strconv.Atoi(row[0])
	if err != nil || pid <= 0 || pid == m.pid {
		return m, nil
	}
	zap.S().Debugw("switching target", "from", m.pid, "to", pid)
	m.pid = pid
	m.report = nil
	m.err = nil
	m.focusPending = true
	return m, m.refresh()
}

// onTable reports whether the tree table is shown instead of the viewport.
func (m tuiModel) onTable() bool {
	return tabs[m.tab].section == report.SectionTree && m.report != nil && m.report.Tree.OK()
}

func (m *tuiModel) updateContent() {
	if m.report == nil {
		return
	}
	if m.onTable() {
		rows := make([]table.Row, 0, len(m.report.Tree.Value))
		focus := -1
		for i, e := range m.report.Tree.Value {
			rows = append(rows, table.Row{
				strconv.Itoa(e.PID),
				output.SanitizeCell(e.User),
				e.Prefix + output.SanitizeCell(e.Command),
			})
			if e.Focus {
				focus = i
			}
		}
		m.table.SetRows(rows)
		if m.focusPending && focus >= 0 {
			m.table.SetCursor(focus)
			m.focusPending = false
		}
		return
	}

	var buf bytes.Buffer
	output.RenderSection(&buf, m.report, tabs[m.tab].section, true)
	m.viewport.SetContent(strings.TrimPrefix(buf.String(), "\n"))
}

func (m tuiModel) View() string {
	var b strings.Builder

	title := "procdump"
	if m.paused {
		title += " (PAUSED)"
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(m.headerView() + "\n\n")

	for i, t := range tabs {
		style := tabStyle
		if i == m.tab {
			style = activeTabStyle
		}
		b.WriteString(style.Render(t.title))
		b.WriteString(" ")
	}
	b.WriteString(dimStyle.Render(m.modeView()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(bannerStyle.Render(fmt.Sprintf("pid %d: %s", m.pid, proc.Reason(m.err))) + "\n")
	} else {
		b.WriteString("\n")
	}

	switch {
	case m.onTable():
		b.WriteString(baseStyle.Render(m.table.View()) + "\n")
	case m.report == nil && m.err == nil:
		b.WriteString(dimStyle.Render("  loading...") + "\n")
	default:
		b.WriteString(m.viewport.View() + "\n")
	}

	help := "\n  q: quit • tab/←/→: tabs • e n m f l t c i M T: jump • p: pause"
	switch tabs[m.tab].section {
	case report.SectionMaps:
		help += " • d: detail"
	case report.SectionTree:
		help += " • enter: inspect • ctrl+t: all/focus"
	}
	b.WriteString(dimStyle.Render(help) + "\n")

	return b.String()
}

func (m tuiModel) headerView() string {
	if m.report == nil {
		return fmt.Sprintf("pid %d", m.pid)
	}
	h := m.report.Process
	if m.report.HeaderErr != nil {
		return fmt.Sprintf("pid %d  header unavailable: %s", h.PID, proc.Reason(m.report.HeaderErr))
	}
	cpu := output.FormatDuration(h.CPUTime())
	if m.report.CPUPercent > 0 {
		cpu += fmt.Sprintf(" (%.1f%%)", m.report.CPUPercent)
	}
	return output.SanitizeCell(fmt.Sprintf("pid %d (%s)  user %s  state %s  threads %d  cpu %s  rss %s",
		h.PID, h.Command, h.User, h.State, h.Threads, cpu, output.FormatBytes(h.ResidentBytes)))
}

func (m tuiModel) modeView() string {
	switch tabs[m.tab].section {
	case report.SectionMaps:
		if m.opts.MapsDetail {
			return "  Detail: on"
		}
		return "  Detail: off"
	case report.SectionTree:
		if m.opts.TreeAll {
			return "  Showing: all processes"
		}
		return "  Showing: target"
	}
	return ""
}

// Run shows pid interactively until the user quits.
func Run(ctx context.Context, src report.Source, pid int, opts Options) error {
	p := tea.NewProgram(initialModel(ctx, src, pid, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		zap.L().Error("interactive mode stopped", zap.Error(err))
		return err
	}
	if m, ok := final.(tuiModel); ok && m.fatal != nil {
		return m.fatal
	}
	return nil
}
