package giveaway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"golang.org/x/exp/slog"

	"giveaway-bot/internal/config"
	"giveaway-bot/internal/http-server/model"
)

type sentMessage struct {
	chatID      int64
	text        string
	parseMode   string
	replyMarkup interface{}
}

type fakeSender struct {
	messages []sentMessage
	dice     []int64
	err      error
}

func (s *fakeSender) SendMessage(
	_ context.Context,
	chatID int64,
	text string,
	parseMode string,
	replyMarkup interface{},
) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}

	s.messages = append(s.messages, sentMessage{
		chatID:      chatID,
		text:        text,
		parseMode:   parseMode,
		replyMarkup: replyMarkup,
	})

	return json.RawMessage(`{"ok":true,"result":{"message_id":1}}`), nil
}

func (s *fakeSender) SendDice(_ context.Context, chatID int64, _ string) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}

	s.dice = append(s.dice, chatID)

	return json.RawMessage(`{"ok":true,"result":{"dice":{"value":4}}}`), nil
}

type fakeStore struct {
	participated bool
	checkErr     error
	saveErr      error
	saved        []model.Participant
}

func (s *fakeStore) HasParticipated(_ int64) (bool, error) {
	return s.participated, s.checkErr
}

func (s *fakeStore) SaveParticipation(p model.Participant) error {
	if s.saveErr != nil {
		return s.saveErr
	}

	s.saved = append(s.saved, p)

	return nil
}

type fixedSource struct {
	percent float64
}

func (s fixedSource) Percent() float64 {
	return s.percent
}

func newTestGiveaway(sender *fakeSender, store *fakeStore, percent float64) *Giveaway {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(log, sender, store, fixedSource{percent: percent}, config.PrizeTable.Prizes, 0)
}

func testUser() *model.User {
	return &model.User{ID: 7, Username: "lucky", FirstName: "Ира"}
}

func TestWelcomeNewUser(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	store := &fakeStore{}
	g := newTestGiveaway(sender, store, 0)

	payload, err := g.Welcome(context.Background(), 42, testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload == nil {
		t.Fatal("expected downstream payload")
	}

	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.messages))
	}

	msg := sender.messages[0]
	if msg.chatID != 42 {
		t.Errorf("message sent to chat %d, want 42", msg.chatID)
	}
	if !strings.Contains(msg.text, config.PrizeTable.Prizes[0].Label) {
		t.Errorf("welcome message does not enumerate prizes: %q", msg.text)
	}
	if msg.replyMarkup == nil {
		t.Error("welcome message must carry the dice keyboard")
	}
}

func TestWelcomeAlreadyPlayed(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	store := &fakeStore{participated: true}
	g := newTestGiveaway(sender, store, 0)

	if _, err := g.Welcome(context.Background(), 42, testUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.messages))
	}
	if sender.messages[0].text != alreadyPlayedText {
		t.Errorf("expected already-played message, got %q", sender.messages[0].text)
	}
	if len(sender.dice) != 0 {
		t.Error("no dice animation expected for a repeat visitor")
	}
}

func TestRollNewUser(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	store := &fakeStore{}
	g := newTestGiveaway(sender, store, 0) // r=0 selects the first prize

	if _, err := g.Roll(context.Background(), 42, testUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.dice) != 1 {
		t.Fatalf("expected 1 dice animation, got %d", len(sender.dice))
	}
	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 result message, got %d", len(sender.messages))
	}

	first := config.PrizeTable.Prizes[0]
	if !strings.Contains(sender.messages[0].text, first.Label) {
		t.Errorf("result message does not name the prize: %q", sender.messages[0].text)
	}
	if first.PromoCode != "" && !strings.Contains(sender.messages[0].text, first.PromoCode) {
		t.Errorf("result message does not embed the promo code: %q", sender.messages[0].text)
	}

	if len(store.saved) != 1 {
		t.Fatalf("expected 1 participation row, got %d", len(store.saved))
	}

	saved := store.saved[0]
	if saved.UserID != 7 || saved.PrizeAmount != first.Amount || saved.PrizeLabel != first.Label {
		t.Errorf("participation row mismatch: %+v", saved)
	}
}

func TestRollAlreadyPlayedShortCircuits(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	store := &fakeStore{participated: true}
	g := newTestGiveaway(sender, store, 0)

	if _, err := g.Roll(context.Background(), 42, testUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.dice) != 0 {
		t.Error("repeat visitor must not trigger a second draw")
	}
	if len(sender.messages) != 1 || sender.messages[0].text != alreadyPlayedText {
		t.Errorf("expected exactly the already-played message, got %+v", sender.messages)
	}
	if len(store.saved) != 0 {
		t.Errorf("expected zero additional inserts, got %d", len(store.saved))
	}
}

func TestRollSecondTapHitsCacheNotStore(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	store := &fakeStore{}
	g := newTestGiveaway(sender, store, 0)

	if _, err := g.Roll(context.Background(), 42, testUser()); err != nil {
		t.Fatalf("first roll: %v", err)
	}
	if _, err := g.Roll(context.Background(), 42, testUser()); err != nil {
		t.Fatalf("second roll: %v", err)
	}

	// Store still reports false, only the cache blocks the re-draw.
	if len(store.saved) != 1 {
		t.Errorf("expected a single insert across both taps, got %d", len(store.saved))
	}
	if len(sender.dice) != 1 {
		t.Errorf("expected a single draw across both taps, got %d", len(sender.dice))
	}
	if got := sender.messages[len(sender.messages)-1].text; got != alreadyPlayedText {
		t.Errorf("second tap should get the already-played message, got %q", got)
	}
}

func TestParticipationCheckFailsOpen(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	store := &fakeStore{checkErr: errors.New("store unreachable")}
	g := newTestGiveaway(sender, store, 0)

	if _, err := g.Roll(context.Background(), 42, testUser()); err != nil {
		t.Fatalf("store outage must not fail the flow: %v", err)
	}

	if len(sender.dice) != 1 {
		t.Error("user should be treated as a first-time participant when the store is down")
	}
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	store := &fakeStore{saveErr: errors.New("duplicate key")}
	g := newTestGiveaway(sender, store, 0)

	payload, err := g.Roll(context.Background(), 42, testUser())
	if err != nil {
		t.Fatalf("insert failure must not surface: %v", err)
	}
	if payload == nil {
		t.Fatal("expected the result payload despite the failed insert")
	}
}

func TestRollSenderErrorPropagates(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{err: errors.New("telegram down")}
	store := &fakeStore{}
	g := newTestGiveaway(sender, store, 0)

	if _, err := g.Roll(context.Background(), 42, testUser()); err == nil {
		t.Fatal("transport failure must propagate to the webhook catch-all")
	}
}
