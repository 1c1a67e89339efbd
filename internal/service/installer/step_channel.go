package installer

const (
	channelTelegram = "Telegram"
	channelConsole  = "Console"
)

func NewChannelStep() Step {
	return &choiceStep{
		title:   "Select your Chat Channel:",
		choices: []string{channelTelegram, channelConsole},
		onSelect: func(choice string, state *InstallState) {
			state.scratch[channelKey] = choice
		},
	}
}
