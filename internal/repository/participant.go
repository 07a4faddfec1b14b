package repository

import (
	"fmt"
	"time"

	"giveaway-bot/internal/http-server/handlers/mysql"
	"giveaway-bot/internal/http-server/model"
)

type ParticipantRepository struct {
	dbhandler mysql.Handler
}

func NewParticipantRepository(dbhandler mysql.Handler) *ParticipantRepository {
	return &ParticipantRepository{dbhandler: dbhandler}
}

// HasParticipated reports whether at least one participation row exists for the
// user. Errors are returned as-is so the caller can log and fail open.
func (repo *ParticipantRepository) HasParticipated(userID int64) (bool, error) {
	const op = "repository.participant.HasParticipated"

	const query = "SELECT COUNT(*) FROM participants WHERE user_id = ?"

	row, err := repo.dbhandler.PrepareAndQueryRow(query, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var count int

	if err = row.Scan(&count); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return count > 0, nil
}

// SaveParticipation inserts the single participation row for a user. The
// participants table carries UNIQUE(user_id), so a lost check-then-act race
// surfaces here as a duplicate-key error.
func (repo *ParticipantRepository) SaveParticipation(participant model.Participant) error {
	const op = "repository.participant.SaveParticipation"

	const query = "INSERT INTO participants(user_id, username, first_name, prize_amount, prize_label, created_at, updated_at) " +
		"VALUES(?, ?, ?, ?, ?, ?, ?)"

	now := time.Now()

	_, err := repo.dbhandler.PrepareAndExecute(
		query,
		participant.UserID,
		participant.Username,
		participant.FirstName,
		participant.PrizeAmount,
		participant.PrizeLabel,
		now,
		now)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// NullParticipantRepository is wired when no storage DSN is configured or the
// database is unreachable at boot: everyone counts as a first-time participant.
type NullParticipantRepository struct{}

func NewNullParticipantRepository() *NullParticipantRepository {
	return &NullParticipantRepository{}
}

func (repo *NullParticipantRepository) HasParticipated(_ int64) (bool, error) {
	return false, nil
}

func (repo *NullParticipantRepository) SaveParticipation(_ model.Participant) error {
	return nil
}
