package model

// Update is the inbound webhook envelope. Telegram sends service updates
// without a message, those are acked and dropped.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      Chat   `json:"chat"`
	From      *User  `json:"from" validate:"required"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id" validate:"required"`
}

type User struct {
	ID        int64  `json:"id" validate:"required"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}
