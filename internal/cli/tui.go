package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/halvard/deckard/pkg/deck"
	"github.com/halvard/deckard/pkg/nav"
	"github.com/halvard/deckard/pkg/render"
	"github.com/halvard/deckard/pkg/theme"
)

// Presenter styles
var (
	footerStyle  = lipgloss.NewStyle().Foreground(colorDim)
	promptStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	badPathStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// PresenterModel - Interactive slide presentation
// =============================================================================

// PresenterModel is the bubbletea model driving a presentation. It owns a
// navigation controller and redraws the current slide after every keypress.
type PresenterModel struct {
	Doc     *deck.Document
	Ctrl    *nav.Controller
	Theme   theme.Theme
	BaseDir string

	Width  int
	Height int

	jumping   bool
	jumpInput string
	jumpErr   string

	showOutline bool
	showHelp    bool
}

// NewPresenterModel creates a presenter over an already-parsed deck.
func NewPresenterModel(doc *deck.Document, ctrl *nav.Controller, th theme.Theme, baseDir string) PresenterModel {
	return PresenterModel{
		Doc:     doc,
		Ctrl:    ctrl,
		Theme:   th,
		BaseDir: baseDir,
		Width:   render.DefaultWidth,
	}
}

func (m PresenterModel) Init() tea.Cmd {
	return nil
}

func (m PresenterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.jumping {
			return m.updateJump(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", " ", "enter", "n", "j", "down":
			m.Ctrl.Advance()
		case "left", "backspace", "p", "k", "up":
			m.Ctrl.Retreat()
		case "home", "0":
			m.Ctrl.First()
		case "end", "G":
			m.Ctrl.Last()
		case "g":
			m.jumping = true
			m.jumpInput = ""
			m.jumpErr = ""
		case "o":
			m.showOutline = !m.showOutline
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

// updateJump handles keys while the jump prompt is open. Digits and dots
// build up a slide path; enter commits, esc cancels.
func (m PresenterModel) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.jumping = false
	case "enter":
		path, err := deck.ParsePath(m.jumpInput)
		if err == nil {
			err = m.Ctrl.JumpTo(path)
		}
		if err != nil {
			m.jumpErr = fmt.Sprintf("no slide at %q", m.jumpInput)
			return m, nil
		}
		m.jumping = false
	case "backspace":
		if len(m.jumpInput) > 0 {
			m.jumpInput = m.jumpInput[:len(m.jumpInput)-1]
		}
	default:
		s := msg.String()
		if len(s) == 1 && (s == "." || (s[0] >= '0' && s[0] <= '9')) {
			m.jumpInput += s
			m.jumpErr = ""
		}
	}
	return m, nil
}

func (m PresenterModel) View() string {
	if m.showOutline {
		return m.outlineView()
	}

	cur := m.Ctrl.Cursor()
	frame := render.Render(m.Ctrl.Node(), cur.Fragment, render.Options{
		Width:   m.contentWidth(),
		Theme:   m.Theme,
		BaseDir: m.BaseDir,
	})

	var b strings.Builder
	b.WriteString(frame.String())
	b.WriteString("\n\n")
	b.WriteString(m.footerView(frame))
	return b.String()
}

// contentWidth leaves a small right margin so wrapped lines never touch the
// terminal edge.
func (m PresenterModel) contentWidth() int {
	if m.Width <= 0 {
		return render.DefaultWidth
	}
	w := m.Width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m PresenterModel) footerView(frame render.Frame) string {
	if m.jumping {
		line := promptStyle.Render("jump to: ") + m.jumpInput + promptStyle.Render("▌")
		if m.jumpErr != "" {
			line += "  " + badPathStyle.Render(m.jumpErr)
		}
		return line
	}

	cur := m.Ctrl.Cursor()
	current, total := m.Ctrl.Position()
	parts := []string{
		fmt.Sprintf("slide %d/%d", current, total),
		cur.Path.String(),
	}
	if frame.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d revealed", frame.Revealed, frame.Total))
	}
	line := footerStyle.Render(strings.Join(parts, "  ·  "))
	if m.showHelp {
		line += "\n" + footerStyle.Render("→/space advance  ←/backspace back  g jump  o outline  home/end first/last  q quit")
	} else {
		line += footerStyle.Render("  ·  ? help")
	}
	return line
}

// outlineView draws the full slide tree as a table, marking the current
// slide with a pointer.
func (m PresenterModel) outlineView() string {
	cur := m.Ctrl.Cursor()

	rows := [][]string{}
	m.Doc.Walk(func(n *deck.SlideNode, p deck.Path) {
		marker := "  "
		if p.Equal(cur.Path) {
			marker = "▸ "
		}
		title := n.Title
		if title == "" {
			title = "(untitled)"
		}
		indent := strings.Repeat("  ", n.Depth)
		rows = append(rows, []string{
			marker,
			p.String(),
			indent + title,
			fmt.Sprintf("%d", n.FragmentCount()),
		})
	})

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Path", "Slide", "Fragments").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(rows) && rows[row][0] == "▸ " {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Outline"))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("o close  q quit"))
	b.WriteString("\n\n")
	b.WriteString(t.Render())
	return b.String()
}
