package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/internal/service/ui"
)

var (
	titleStyle = ui.HeaderStyle
	itemStyle  = ui.ItemStyle
	selStyle   = ui.SelectedStyle
	errorStyle = ui.ErrorStyle
	descStyle  = ui.DescStyle
)

// Step represents a single step in the installation wizard
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

func getSteps() []Step {
	return []Step{
		NewProviderStep(),
		NewAPIKeyStep(),
		NewModelStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramUsernameStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(),
		NewSeedKnowledgeStep(),
	}
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type modelsMsg []list.Item
type errMsg error
type nextMsg struct{}

// model drives the steps in order. A step reports completion by returning nil from Update.
type model struct {
	steps    []Step
	current  int
	state    *InstallState
	quitting bool
	err      error
	width    int
	height   int
}

func initialModel() model {
	return newModel(getSteps(), NewInstallState())
}

func newModel(steps []Step, state *InstallState) model {
	return model{steps: steps, state: state}
}

func (m model) done() bool {
	return m.current >= len(m.steps)
}

func (m model) Init() tea.Cmd {
	if m.done() {
		return nil
	}
	return m.steps[m.current].Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case errMsg:
		m.err = msg
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.quitting || m.done() {
		return m, tea.Quit
	}

	step, cmd := m.steps[m.current].Update(msg, m.state, m.width, m.height)
	if step != nil {
		m.steps[m.current] = step
		return m, cmd
	}

	m.current++
	if m.done() {
		return m, tea.Quit
	}
	return m, m.steps[m.current].Init()
}

func (m model) View() string {
	switch {
	case m.quitting:
		return "Installation cancelled.\n"
	case m.err != nil:
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(press ctrl+c to quit)\n"
	case m.done():
		return "Configuration complete!\n"
	}

	header := titleStyle.Render("Installing "+core.HeroName+" 🎮") +
		descStyle.Render(fmt.Sprintf("  step %d/%d", m.current+1, len(m.steps)))
	return header + "\n\n" + m.steps[m.current].View(m.state)
}

// RunWizard starts the TUI
func RunWizard() (*InstallState, error) {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if finalModel.quitting {
		return nil, fmt.Errorf("installation interrupted")
	}

	return finalModel.state, nil
}
