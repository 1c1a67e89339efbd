package installer

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values and final env var formatting
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	telegram := state.UsesTelegram() && state.EnvVars[envToken] != ""
	state.EnvVars[envTelegram] = strconv.FormatBool(telegram)
	state.EnvVars[envCLI] = strconv.FormatBool(!telegram)

	if state.EnvVars[envProvider] == "" {
		state.EnvVars[envProvider] = state.Provider()
	}
	if state.EnvVars[envDebug] == "" {
		state.EnvVars[envDebug] = "0"
	}
	if state.EnvVars[envAPIKey] == "" {
		delete(state.EnvVars, envAPIKey)
	}
}
