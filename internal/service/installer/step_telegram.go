package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TelegramTokenStep collects the Telegram bot token
type TelegramTokenStep struct {
	input textinput.Model
}

func NewTelegramTokenStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "123456789:ABCDEF..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &TelegramTokenStep{
		input: ti,
	}
}

func (s *TelegramTokenStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TelegramTokenStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !state.UsesTelegram() {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && s.input.Value() != "" {
			state.EnvVars[envToken] = strings.TrimSpace(s.input.Value())
			return nil, nil
		}
	}
	return s, cmd
}

func (s *TelegramTokenStep) View(state *InstallState) string {
	return "Enter your Telegram Bot Token (from @BotFather):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// TelegramUsernameStep collects the bot's @username used to detect mentions in groups.
type TelegramUsernameStep struct {
	input textinput.Model
}

func NewTelegramUsernameStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Placeholder = "@my_hero_bot"
	ti.EchoMode = textinput.EchoNormal

	return &TelegramUsernameStep{
		input: ti,
	}
}

func (s *TelegramUsernameStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TelegramUsernameStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !state.UsesTelegram() {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			if name := strings.TrimPrefix(strings.TrimSpace(s.input.Value()), "@"); name != "" {
				state.EnvVars[envUsername] = name
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *TelegramUsernameStep) View(state *InstallState) string {
	return "Enter your bot's username (optional, detected automatically):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
