package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlink/internal/domain"
	"gitlink/internal/link"
	"gitlink/internal/model"
	"gitlink/internal/notify"
)

// — state ———————————————————————————————————————————————————————————————————

type appState int

const (
	stateEditing appState = iota
	stateResolving
	stateResult
)

const (
	fieldFile = iota
	fieldLine
)

// — styles ——————————————————————————————————————————————————————————————————

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	dimStyle   = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	labelStyle = lipgloss.NewStyle().Faint(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 3)
)

// — spinner —————————————————————————————————————————————————————————————————

var spinnerFrames = []string{"|", "/", "-", "\\"}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// — messages ————————————————————————————————————————————————————————————————

type linkResolvedMsg struct {
	link string
	err  error
}

type browserOpenedMsg struct {
	err error
}

// Generator produces a link without notifying; *link.Service satisfies it.
type Generator interface {
	Generate(ctx context.Context, ec model.EditorContext) (string, error)
}

// — model ———————————————————————————————————————————————————————————————————

type Model struct {
	gen     Generator
	open    notify.URLOpener
	copied  bool // whether a generated link lands on the clipboard
	folders []string

	state        appState
	inputs       []textinput.Model
	focus        int
	inputErr     string
	spinnerFrame int

	link       string
	err        error
	browserErr error
}

// New builds the interactive model. file and line prefill the inputs.
func New(gen Generator, open notify.URLOpener, copied bool, ec model.EditorContext) Model {
	file := textinput.New()
	file.Placeholder = "path/to/file.go"
	file.Prompt = ""
	file.SetValue(ec.FilePath)
	file.Focus()

	line := textinput.New()
	line.Placeholder = "1"
	line.Prompt = ""
	line.CharLimit = 9
	if ec.CursorLine >= 0 {
		line.SetValue(strconv.Itoa(ec.CursorLine + 1))
	}

	return Model{
		gen:     gen,
		open:    open,
		copied:  copied,
		folders: ec.WorkspaceFolders,
		inputs:  []textinput.Model{file, line},
	}
}

// — commands ————————————————————————————————————————————————————————————————

func generateCmd(gen Generator, ec model.EditorContext) tea.Cmd {
	return func() tea.Msg {
		l, err := gen.Generate(context.Background(), ec)
		return linkResolvedMsg{link: l, err: err}
	}
}

func openURLCmd(open notify.URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg{err: open(url)}
	}
}

// editorContext turns the inputs into an EditorContext.
func (m Model) editorContext() (model.EditorContext, error) {
	file := strings.TrimSpace(m.inputs[fieldFile].Value())
	if file != "" {
		abs, err := filepath.Abs(file)
		if err != nil {
			return model.EditorContext{}, err
		}
		file = abs
	}

	line, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldLine].Value()))
	if err != nil || line < 1 {
		return model.EditorContext{}, fmt.Errorf("line must be a positive number")
	}

	return model.EditorContext{
		FilePath:         file,
		CursorLine:       line - 1,
		WorkspaceFolders: m.folders,
	}, nil
}

// — tea.Model ———————————————————————————————————————————————————————————————

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.state != stateResolving {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		return m, tickCmd()

	case linkResolvedMsg:
		m.state = stateResult
		m.link = msg.link
		m.err = msg.err
		m.browserErr = nil
		return m, nil

	case browserOpenedMsg:
		m.browserErr = msg.err
		return m, nil
	}

	switch m.state {
	case stateResolving:
		return m.updateResolving(msg)
	case stateResult:
		return m.updateResult(msg)
	default:
		return m.updateEditing(msg)
	}
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			return m, m.inputs[m.focus].Focus()
		case "enter":
			ec, err := m.editorContext()
			if err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			m.inputErr = ""
			m.state = stateResolving
			return m, tea.Batch(generateCmd(m.gen, ec), tickCmd())
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateResolving(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "o":
			if m.link != "" && m.open != nil {
				return m, openURLCmd(m.open, m.link)
			}
			return m, nil
		case "e", "esc":
			m.state = stateEditing
			return m, m.inputs[m.focus].Focus()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Git Link") + "\n\n")
	b.WriteString(labelStyle.Render("File  ") + m.inputs[fieldFile].View() + "\n")
	b.WriteString(labelStyle.Render("Line  ") + m.inputs[fieldLine].View() + "\n")

	if m.inputErr != "" {
		b.WriteString("\n" + errStyle.Render(m.inputErr) + "\n")
	}

	switch m.state {
	case stateResolving:
		b.WriteString("\n" + dimStyle.Render("Resolving "+spinnerFrames[m.spinnerFrame]) + "\n")
	case stateResult:
		b.WriteString("\n" + m.renderResult() + "\n")
	}

	b.WriteString("\n" + dimStyle.Render(m.helpText()))
	return frameStyle.Render(b.String()) + "\n"
}

// — layout helpers ——————————————————————————————————————————————————————————

func (m Model) renderResult() string {
	if m.err != nil {
		return errStyle.Render(domain.Message(m.err))
	}
	s := okStyle.Render(link.InfoMessage(m.link, m.copied))
	if m.browserErr != nil {
		s += "\n" + errStyle.Render("Could not open browser: "+m.browserErr.Error())
	}
	return s
}

func (m Model) helpText() string {
	switch m.state {
	case stateResolving:
		return "ctrl+c quit"
	case stateResult:
		if m.link != "" && m.open != nil {
			return "o open in browser   e edit   q quit"
		}
		return "e edit   q quit"
	default:
		return "Tab switch field   Enter generate   Esc quit"
	}
}
