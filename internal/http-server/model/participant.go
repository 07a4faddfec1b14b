package model

import (
	"time"
)

type Participant struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	PrizeAmount int       `json:"prize_amount"`
	PrizeLabel  string    `json:"prize_label"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
