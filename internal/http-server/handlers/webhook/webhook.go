package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"

	"giveaway-bot/internal/config"
	"giveaway-bot/internal/http-server/model"
	resp "giveaway-bot/internal/lib/api/response"
	"giveaway-bot/internal/lib/logger/sl"
)

// Flows is the conversation side of the webhook, implemented by
// giveaway.Giveaway.
type Flows interface {
	Welcome(ctx context.Context, chatID int64, from *model.User) (json.RawMessage, error)
	Roll(ctx context.Context, chatID int64, from *model.User) (json.RawMessage, error)
	Help(ctx context.Context, chatID int64) (json.RawMessage, error)
}

type Handler struct {
	log             *slog.Logger
	validator       *validator.Validate
	flows           Flows
	tokenConfigured bool
}

func New(log *slog.Logger, flows Flows, tokenConfigured bool) *Handler {
	return &Handler{
		log:             log,
		validator:       validator.New(),
		flows:           flows,
		tokenConfigured: tokenConfigured,
	}
}

// New handles POST updates. Every failure past method routing is folded into a
// 200-shaped ack: Telegram re-delivers the update indefinitely on any other
// status, and a permanently broken payload must not loop forever.
func (h *Handler) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.webhook.New"

		log := h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var update model.Update

		if err := render.DecodeJSON(r.Body, &update); err != nil {
			log.Error("failed to decode update", sl.Err(err))

			render.JSON(w, r, resp.Err("failed to decode update"))

			return
		}

		if update.Message == nil {
			log.Debug("update without message, acked")

			render.JSON(w, r, resp.OK())

			return
		}

		if !h.tokenConfigured {
			log.Info("bot token not configured, update ignored")

			render.JSON(w, r, resp.Info("Bot token not configured"))

			return
		}

		message := update.Message

		if err := h.validator.Struct(message); err != nil {
			var validateErr validator.ValidationErrors

			if !errors.As(err, &validateErr) {
				log.Error("failed to validate message", sl.Err(err))

				render.JSON(w, r, resp.Err("invalid message"))

				return
			}

			log.Error("invalid message", sl.Err(err))

			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		log.Info("message received",
			slog.Int64("chat_id", message.Chat.ID),
			slog.Int64("user_id", message.From.ID))

		var (
			payload json.RawMessage
			err     error
		)

		switch config.ParseCommand(message.Text) {
		case config.CommandStart:
			payload, err = h.flows.Welcome(r.Context(), message.Chat.ID, message.From)
		case config.CommandRoll:
			payload, err = h.flows.Roll(r.Context(), message.Chat.ID, message.From)
		default:
			payload, err = h.flows.Help(r.Context(), message.Chat.ID)
		}

		if err != nil {
			log.Error("flow failed", sl.Err(err))

			render.JSON(w, r, resp.Err(err.Error()))

			return
		}

		render.JSON(w, r, resp.Result(payload))
	}
}

// Preflight answers CORS preflight checks with permissive headers.
func (h *Handler) Preflight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
	}
}

// MethodNotAllowed is the only path that returns a non-2xx status.
func (h *Handler) MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, resp.MethodNotAllowed())
	}
}
