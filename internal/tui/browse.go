package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dialogkit/topiclint/pkg/topic"
	"github.com/dialogkit/topiclint/pkg/topic/diag"
	pkgtui "github.com/dialogkit/topiclint/pkg/tui"
)

// Model is the topic browser: a scrollable tree of the topic on the left
// and the findings for the selected row on the right.
type Model struct {
	filename string
	rows     []Row
	diags    []diag.Diagnostic
	byPath   map[string][]diag.Diagnostic

	cursor int
	offset int
	width  int
	height int

	keys pkgtui.CommonKeys
	help pkgtui.HelpOverlay
}

// NewModel builds a browser for the given document and its diagnostics.
// doc may be nil when the file failed validation; the browser then shows
// the findings list alone.
func NewModel(filename string, doc *topic.Document, diags []diag.Diagnostic) *Model {
	byPath := make(map[string][]diag.Diagnostic)
	for _, d := range diags {
		byPath[d.Path] = append(byPath[d.Path], d)
	}
	return &Model{
		filename: filename,
		rows:     Flatten(doc),
		diags:    diags,
		byPath:   byPath,
		keys:     pkgtui.NewCommonKeys(),
		help:     pkgtui.NewHelpOverlay(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case pkgtui.ToggleHelpMsg:
		m.help.Toggle()
		return m, nil

	case tea.KeyMsg:
		if cmd := pkgtui.HandleCommon(msg, m.keys); cmd != nil {
			return m, cmd
		}
		if m.help.Visible {
			m.help.Visible = false
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.NavDown):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.NavUp):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
			m.clampScroll()
		case key.Matches(msg, m.keys.Bottom):
			m.cursor = len(m.rows) - 1
			m.clampScroll()
		case key.Matches(msg, m.keys.Next):
			m.jumpFinding(1)
		case key.Matches(msg, m.keys.Prev):
			m.jumpFinding(-1)
		case key.Matches(msg, m.keys.Back):
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.clampScroll()
}

// jumpFinding moves the cursor to the next or previous row that has a
// diagnostic attached, wrapping around.
func (m *Model) jumpFinding(dir int) {
	if len(m.rows) == 0 {
		return
	}
	for i := 1; i <= len(m.rows); i++ {
		idx := (m.cursor + dir*i + len(m.rows)*i) % len(m.rows)
		if len(m.byPath[m.rows[idx].Path]) > 0 {
			m.cursor = idx
			m.clampScroll()
			return
		}
	}
}

func (m *Model) clampScroll() {
	visible := m.treeHeight()
	if visible <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// treeHeight is the number of rows the tree pane can show, after the
// header and footer bars and the pane borders.
func (m *Model) treeHeight() int {
	return m.height - 6
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(pkgtui.HeaderStyle.Width(m.width).Render("topiclint · " + m.filename))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(m.renderFindingsOnly())
	} else {
		b.WriteString(m.renderSplit())
	}

	b.WriteString("\n")
	b.WriteString(pkgtui.FooterStyle.Width(m.width).Render(m.statusLine()))

	if m.help.Visible {
		b.WriteString("\n")
		b.WriteString(m.help.Render(m.keys, nil, m.width))
	}

	return b.String()
}

// renderSplit renders the tree pane and the detail pane side by side. The
// tree pane holds the cursor, so it gets the focused border.
func (m *Model) renderSplit() string {
	treeWidth := m.width*3/5 - 2
	detailWidth := m.width - treeWidth - 4

	tree := pkgtui.PaneFocusedStyle.
		Width(treeWidth).
		Height(m.treeHeight()).
		Render(m.renderTree(treeWidth))
	detail := pkgtui.PaneUnfocusedStyle.
		Width(detailWidth).
		Height(m.treeHeight()).
		Render(m.renderDetail(detailWidth))

	return lipgloss.JoinHorizontal(lipgloss.Top, tree, detail)
}

func (m *Model) renderTree(width int) string {
	visible := m.treeHeight()
	if visible <= 0 {
		visible = len(m.rows)
	}

	var lines []string
	for i := m.offset; i < len(m.rows) && i < m.offset+visible; i++ {
		row := m.rows[i]
		marker := "  "
		if ds := m.byPath[row.Path]; len(ds) > 0 {
			if diag.HasErrors(ds) {
				marker = pkgtui.SeverityErrorStyle.Render("✗ ")
			} else {
				marker = pkgtui.SeverityWarningStyle.Render("! ")
			}
		}
		label := strings.Repeat("  ", row.Depth) + row.Label
		label = truncate(label, width-3)
		if i == m.cursor {
			lines = append(lines, marker+pkgtui.SelectedStyle.Render(label))
		} else {
			lines = append(lines, marker+pkgtui.UnselectedStyle.Render(label))
		}
	}
	return strings.Join(lines, "\n")
}

// renderDetail shows the selected row's path, kind, and its findings.
func (m *Model) renderDetail(width int) string {
	if m.cursor >= len(m.rows) {
		return ""
	}
	row := m.rows[m.cursor]

	var lines []string
	lines = append(lines, pkgtui.TitleStyle.Render("Node"))
	if row.Kind != "" {
		lines = append(lines, pkgtui.LabelStyle.Render("kind: ")+row.Kind)
	}
	if row.Path != "" {
		lines = append(lines, pkgtui.LabelStyle.Render("path: ")+truncate(row.Path, width-8))
	}
	lines = append(lines, "")

	ds := m.byPath[row.Path]
	if len(ds) == 0 {
		lines = append(lines, pkgtui.SeverityOKStyle.Render("no findings"))
	} else {
		lines = append(lines, pkgtui.SubtitleStyle.Render("Findings"))
		for _, d := range ds {
			lines = append(lines, renderFinding(d, width))
		}
	}
	return strings.Join(lines, "\n")
}

// renderFindingsOnly lists all diagnostics when there is no tree to show,
// which happens when parsing or root validation failed.
func (m *Model) renderFindingsOnly() string {
	var lines []string
	lines = append(lines, pkgtui.TitleStyle.Render("Findings"))
	lines = append(lines, "")
	if len(m.diags) == 0 {
		lines = append(lines, pkgtui.SeverityOKStyle.Render("no findings"))
	}
	for _, d := range m.diags {
		lines = append(lines, renderFinding(d, m.width-4))
	}
	return pkgtui.PanelStyle.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}

func renderFinding(d diag.Diagnostic, width int) string {
	sev := pkgtui.SeverityWarningStyle.Render(d.Severity.String())
	if d.Severity == diag.Error {
		sev = pkgtui.SeverityErrorStyle.Render(d.Severity.String())
	}
	line := sev + " [" + d.Code + "] " + d.Message
	return truncate(line, width)
}

func (m *Model) statusLine() string {
	errs, warns := 0, 0
	for _, d := range m.diags {
		if d.Severity == diag.Error {
			errs++
		} else {
			warns++
		}
	}
	summary := fmt.Sprintf("%d errors, %d warnings", errs, warns)
	if errs == 0 && warns == 0 {
		summary = "clean"
	}
	return fmt.Sprintf("%s · %d/%d · j/k move  n/p findings  ? help  q quit",
		summary, m.cursor+1, len(m.rows))
}
