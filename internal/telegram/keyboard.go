package telegram

type ReplyKeyboardMarkup struct {
	Keyboard        [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard  bool               `json:"resize_keyboard"`
	OneTimeKeyboard bool               `json:"one_time_keyboard"`
}

type KeyboardButton struct {
	Text string `json:"text"`
}

type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

// DiceKeyboard is the persistent single-button keyboard shown by the welcome
// flow. It stays visible until a result or already-played message removes it.
func DiceKeyboard(buttonLabel string) ReplyKeyboardMarkup {
	return ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: buttonLabel}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: false,
	}
}

func RemoveKeyboard() ReplyKeyboardRemove {
	return ReplyKeyboardRemove{RemoveKeyboard: true}
}
