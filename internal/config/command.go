package config

type Command string

const (
	CommandStart   Command = "/start"
	CommandRoll    Command = "roll"
	CommandUnknown Command = "unknown"
)

// DiceTriggerLabel is the reply-keyboard button caption that triggers the draw.
// The routing matches it byte for byte, so it must stay in sync with the
// keyboard sent by the welcome flow.
const DiceTriggerLabel = "🎲 БРОСИТЬ КУБИК"

func ParseCommand(text string) Command {
	switch text {
	case string(CommandStart):
		return CommandStart
	case DiceTriggerLabel:
		return CommandRoll
	}

	return CommandUnknown
}
