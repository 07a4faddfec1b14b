package giveaway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/exp/slog"

	"giveaway-bot/internal/config"
	"giveaway-bot/internal/http-server/model"
	"giveaway-bot/internal/lib/logger/sl"
	"giveaway-bot/internal/lib/random"
	"giveaway-bot/internal/telegram"
)

// Sender is the outbound side of the conversation. Implemented by
// telegram.Client.
type Sender interface {
	SendMessage(
		ctx context.Context,
		chatID int64,
		text string,
		parseMode string,
		replyMarkup interface{},
	) (json.RawMessage, error)
	SendDice(ctx context.Context, chatID int64, emoji string) (json.RawMessage, error)
}

// ParticipantStore gates the one-shot draw. Store failures are logged and
// treated as "not yet participated" so an outage never blocks the conversation.
type ParticipantStore interface {
	HasParticipated(userID int64) (bool, error)
	SaveParticipation(participant model.Participant) error
}

type Giveaway struct {
	log          *slog.Logger
	sender       Sender
	participants ParticipantStore
	cache        *cache.Cache
	rnd          random.Source
	prizes       []config.Prize
	revealDelay  time.Duration
}

func New(
	log *slog.Logger,
	sender Sender,
	participants ParticipantStore,
	rnd random.Source,
	prizes []config.Prize,
	revealDelay time.Duration,
) *Giveaway {
	return &Giveaway{
		log:          log,
		sender:       sender,
		participants: participants,
		cache:        cache.New(5*time.Minute, 10*time.Minute),
		rnd:          rnd,
		prizes:       prizes,
		revealDelay:  revealDelay,
	}
}

// Welcome replies to /start: the prize list with the dice keyboard for a new
// user, the already-played notice otherwise.
func (g *Giveaway) Welcome(ctx context.Context, chatID int64, from *model.User) (json.RawMessage, error) {
	const op = "handlers.giveaway.Welcome"

	log := g.log.With(
		slog.String("op", op),
		slog.Int64("user_id", from.ID),
	)

	if g.hasParticipated(log, from.ID) {
		return g.sendAlreadyPlayed(ctx, op, chatID)
	}

	payload, err := g.sender.SendMessage(
		ctx,
		chatID,
		welcomeText(g.prizes),
		telegram.ParseModeHTML,
		telegram.DiceKeyboard(config.DiceTriggerLabel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("welcome message sent")

	return payload, nil
}

// Roll runs the one-shot draw: participation gate, weighted draw, dice
// animation, reveal delay, result message, and the participation insert.
func (g *Giveaway) Roll(ctx context.Context, chatID int64, from *model.User) (json.RawMessage, error) {
	const op = "handlers.giveaway.Roll"

	log := g.log.With(
		slog.String("op", op),
		slog.Int64("user_id", from.ID),
	)

	if g.hasParticipated(log, from.ID) {
		return g.sendAlreadyPlayed(ctx, op, chatID)
	}

	drawID := uuid.New().String()
	prize := g.pickPrize(g.rnd.Percent())

	log.Info("prize drawn",
		slog.String("draw_id", drawID),
		slog.String("prize", prize.Label),
		slog.Int("amount", prize.Amount))

	if _, err := g.sender.SendDice(ctx, chatID, telegram.DiceEmoji); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	g.saveParticipation(log, from, prize)

	if g.revealDelay > 0 {
		time.Sleep(g.revealDelay)
	}

	payload, err := g.sender.SendMessage(
		ctx,
		chatID,
		resultText(prize),
		telegram.ParseModeHTML,
		telegram.RemoveKeyboard())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("result message sent", slog.String("draw_id", drawID))

	return payload, nil
}

// Help replies to any unrecognized text with the how-to-play message.
func (g *Giveaway) Help(ctx context.Context, chatID int64) (json.RawMessage, error) {
	const op = "handlers.giveaway.Help"

	payload, err := g.sender.SendMessage(
		ctx,
		chatID,
		helpText(config.DiceTriggerLabel),
		telegram.ParseModeHTML,
		telegram.DiceKeyboard(config.DiceTriggerLabel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return payload, nil
}

// pickPrize selects by cumulative banding: first prize whose running chance sum
// meets the drawn value, last prize as the fallback band.
func (g *Giveaway) pickPrize(percent float64) config.Prize {
	var cumulative float64

	for _, prize := range g.prizes {
		cumulative += float64(prize.Chance)

		if percent <= cumulative {
			return prize
		}
	}

	return g.prizes[len(g.prizes)-1]
}

func (g *Giveaway) hasParticipated(log *slog.Logger, userID int64) bool {
	if _, found := g.cache.Get(cacheKey(userID)); found {
		return true
	}

	participated, err := g.participants.HasParticipated(userID)
	if err != nil {
		log.Error("participation check failed, treating user as new", sl.Err(err))

		return false
	}

	if participated {
		g.cache.Set(cacheKey(userID), true, cache.DefaultExpiration)
	}

	return participated
}

func (g *Giveaway) saveParticipation(log *slog.Logger, from *model.User, prize config.Prize) {
	participant := model.Participant{
		UserID:      from.ID,
		Username:    from.Username,
		FirstName:   from.FirstName,
		PrizeAmount: prize.Amount,
		PrizeLabel:  prize.Label,
	}

	if err := g.participants.SaveParticipation(participant); err != nil {
		log.Error("failed to save participation", sl.Err(err))
	} else {
		log.Info("participation saved")
	}

	g.cache.Set(cacheKey(from.ID), true, cache.DefaultExpiration)
}

func (g *Giveaway) sendAlreadyPlayed(ctx context.Context, op string, chatID int64) (json.RawMessage, error) {
	payload, err := g.sender.SendMessage(ctx, chatID, alreadyPlayedText, "", telegram.RemoveKeyboard())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return payload, nil
}

func cacheKey(userID int64) string {
	return fmt.Sprintf("participant:%d", userID)
}
