// Package bot is the inbound surface of the directory: users submit URLs in
// chat, moderators curate the pending queue with commands.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"vibeshelf/internal/config"
	"vibeshelf/internal/domain"
	"vibeshelf/internal/intake"
	"vibeshelf/internal/storage"
)

// Handler holds dependencies for the Telegram bot handlers.
type Handler struct {
	bot      *tgbot.Bot
	cfg      config.Config
	repo     storage.Repository
	pipeline *intake.Pipeline
	log      logrus.FieldLogger
}

// NewHandler creates the bot and registers all command handlers.
func NewHandler(cfg config.Config, repo storage.Repository, pipeline *intake.Pipeline, logger logrus.FieldLogger) (*Handler, error) {
	log := logger.WithField("component", "bot_handler")

	h := &Handler{
		cfg:      cfg,
		repo:     repo,
		pipeline: pipeline,
		log:      log,
	}

	// Messages that match no command are treated as candidate URLs.
	b, err := tgbot.New(cfg.TelegramBotToken, tgbot.WithDefaultHandler(h.submitHandler))
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	h.bot = b
	h.registerHandlers()

	log.Info("Telegram bot handler initialized")
	return h, nil
}

func (h *Handler) registerHandlers() {
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, h.startHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/list", tgbot.MatchTypeExact, h.listHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/pending", tgbot.MatchTypeExact, h.pendingHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/approve", tgbot.MatchTypePrefix, h.moderationHandler(domain.StatusApproved))
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/archive", tgbot.MatchTypePrefix, h.moderationHandler(domain.StatusArchived))
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/delete", tgbot.MatchTypePrefix, h.deleteHandler)
}

// Start begins polling for updates. Blocks until ctx is cancelled.
func (h *Handler) Start(ctx context.Context) {
	h.log.Info("Starting Telegram bot polling...")
	h.bot.Start(ctx)
	h.log.Info("Telegram bot polling stopped")
}

func (h *Handler) startHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	h.reply(ctx, update, "Welcome! Send me a URL and I'll analyze it and queue it for the directory. Use /list to browse approved resources.")
}

// submitHandler runs the intake pipeline on the message text and stores the
// proposed resource as pending_review.
func (h *Handler) submitHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	raw := strings.TrimSpace(update.Message.Text)
	if strings.HasPrefix(raw, "/") {
		// Unknown command, not a submission.
		return
	}
	log := h.log.WithFields(logrus.Fields{
		"user_id": userID,
		"url":     raw,
	})
	log.Info("Received URL submission")

	proposed, err := h.pipeline.Run(ctx, raw)
	if err != nil {
		log.WithError(err).Warn("Intake pipeline failed")
		h.reply(ctx, update, userMessage(err))
		return
	}

	res, err := h.repo.Create(ctx, proposed, userID)
	if err != nil {
		log.WithError(err).Error("Failed to persist resource")
		h.reply(ctx, update, msgSaveFailed)
		return
	}

	h.reply(ctx, update, fmt.Sprintf("%s\n%s\n\n%s\nCategories: %s\nType: %s | Language: %s\nID: %s",
		msgSaved, res.Title, res.Summary,
		strings.Join(res.Categories, ", "), res.ResourceType, res.Language, res.ID))
}

func (h *Handler) listHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	h.sendResourceList(ctx, update, domain.StatusApproved, "No approved resources yet.")
}

func (h *Handler) pendingHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if !h.authorize(ctx, update) {
		return
	}
	h.sendResourceList(ctx, update, domain.StatusPendingReview, "Review queue is empty.")
}

// moderationHandler builds a handler that moves "/cmd <id>" targets to the
// given status.
func (h *Handler) moderationHandler(status domain.Status) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		if !h.authorize(ctx, update) {
			return
		}
		id, ok := commandArg(update)
		if !ok {
			h.reply(ctx, update, "Usage: send the command followed by a resource ID.")
			return
		}

		res, err := h.repo.UpdateStatus(ctx, id, status)
		if err != nil {
			h.log.WithError(err).WithField("id", id).Warn("Moderation action failed")
			h.reply(ctx, update, moderationFailure(err))
			return
		}
		h.reply(ctx, update, fmt.Sprintf("%s is now %s.", res.Title, res.Status))
	}
}

func (h *Handler) deleteHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if !h.authorize(ctx, update) {
		return
	}
	id, ok := commandArg(update)
	if !ok {
		h.reply(ctx, update, "Usage: /delete <resource ID>")
		return
	}
	if err := h.repo.Delete(ctx, id); err != nil {
		h.log.WithError(err).WithField("id", id).Error("Failed to delete resource")
		h.reply(ctx, update, msgSaveFailed)
		return
	}
	h.reply(ctx, update, "Resource deleted.")
}

func (h *Handler) sendResourceList(ctx context.Context, update *models.Update, status domain.Status, empty string) {
	resources, err := h.repo.List(ctx, storage.Filter{Status: status})
	if err != nil {
		h.log.WithError(err).Error("Failed to list resources")
		h.reply(ctx, update, msgLoadFailed)
		return
	}
	if len(resources) == 0 {
		h.reply(ctx, update, empty)
		return
	}

	for _, msg := range formatResourceList(resources) {
		h.reply(ctx, update, msg)
	}
}

// maxMessageLength is Telegram's per-message text limit.
const maxMessageLength = 4096

// formatResourceList renders resources into one message per chunk, each
// within the Telegram message limit, so long lists don't fail to send.
func formatResourceList(resources []domain.Resource) []string {
	var messages []string
	var sb strings.Builder

	for _, res := range resources {
		entry := fmt.Sprintf("%s\n%s\n[%s] %s\nID: %s\n\n",
			res.Title, res.URL, res.ResourceType, strings.Join(res.Categories, ", "), res.ID)
		if sb.Len() > 0 && sb.Len()+len(entry) > maxMessageLength {
			messages = append(messages, strings.TrimSpace(sb.String()))
			sb.Reset()
		}
		sb.WriteString(entry)
	}
	if sb.Len() > 0 {
		messages = append(messages, strings.TrimSpace(sb.String()))
	}
	return messages
}

// authorize checks the sender against the moderator allow-list.
func (h *Handler) authorize(ctx context.Context, update *models.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}
	if h.cfg.IsAdmin(update.Message.From.ID) {
		return true
	}
	h.log.WithField("user_id", update.Message.From.ID).Warn("Unauthorized moderation attempt")
	h.reply(ctx, update, msgUnauthorized)
	return false
}

func (h *Handler) reply(ctx context.Context, update *models.Update, text string) {
	if update.Message == nil {
		return
	}
	_, err := h.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
	if err != nil {
		h.log.WithError(err).Error("Failed to send message")
	}
}

// commandArg extracts the argument from a "/cmd <arg>" message.
func commandArg(update *models.Update) (string, bool) {
	if update.Message == nil {
		return "", false
	}
	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

// moderationFailure keeps storage detail out of chat output.
func moderationFailure(err error) string {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return "No resource found with that ID."
	case errors.Is(err, storage.ErrInvalidTransition):
		return "That status change is not allowed."
	default:
		return msgSaveFailed
	}
}
