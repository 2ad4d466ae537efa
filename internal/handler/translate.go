package handler

import (
	"context"
	"errors"
	"strings"

	"nkrane/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Unknown commands
	if strings.HasPrefix(text, "/") {
		return nil
	}

	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(msgInternalError)
	}

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgInternalError)
	}
	if !authorized {
		return h.handleLogin(c, text)
	}

	state := h.GetState(userID)
	if state.State != domain.StateWaitingText {
		return h.handleChooseDomain(c)
	}

	return h.translate(c, state, c.Text())
}

// translate runs a terminology-controlled translation for the user's scope
func (h *Handler) translate(c tele.Context, state *domain.StateData, text string) error {
	userID := c.Sender().ID
	_ = c.Notify(tele.Typing)

	result, err := h.translationService.Translate(context.Background(), domain.TranslationRequest{
		Text:   text,
		Source: h.sourceLanguage,
		Target: state.Language,
		Domain: state.Domain,
	})
	if err != nil {
		h.logger.Error("Translation failed",
			zap.Int64("user_id", userID),
			zap.String("scope", state.Scope().String()),
			zap.Error(err),
		)
		return c.Send(translationErrorMessage(err))
	}

	if err := h.historyService.Record(userID, result); err != nil {
		h.logger.Warn("Failed to record translation", zap.Int64("user_id", userID), zap.Error(err))
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))

	return c.Send(formatResult(result), markup)
}

// translationErrorMessage maps a translation failure to a user message
func translationErrorMessage(err error) string {
	var (
		timeoutErr   *domain.TimeoutError
		transportErr *domain.TransportError
	)
	switch {
	case errors.As(err, &timeoutErr):
		return "⏳ The translation service is slow right now. Please try again."
	case errors.As(err, &transportErr):
		return "⚠️ The translation service is unavailable. Please try again later."
	default:
		return msgInternalError
	}
}

// handleChooseDomain shows populated domains as buttons
func (h *Handler) handleChooseDomain(c tele.Context) error {
	userID := c.Sender().ID
	grouped := h.terminologyService.Domains()

	h.SetState(userID, &domain.StateData{State: domain.StateChoosingDomain})

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, name := range sortedDomainNames(grouped) {
		rows = append(rows, markup.Row(markup.Data("📁 "+name, "dom_"+name)))
	}
	rows = append(rows, markup.Row(btnCancel))
	markup.Inline(rows...)

	text := "Choose a terminology domain:"
	if len(grouped) == 0 {
		text = "No terminology is loaded."
	}

	return h.reply(c, text, markup)
}

// handleDomainSelection stores the domain and shows its languages
func (h *Handler) handleDomainSelection(c tele.Context, data string) error {
	userID := c.Sender().ID
	name := strings.TrimPrefix(strings.TrimSpace(data), "dom_")

	languages := h.terminologyService.Languages(name)
	if len(languages) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown domain"})
	}

	h.SetState(userID, &domain.StateData{State: domain.StateChoosingLanguage, Domain: name})

	markup := &tele.ReplyMarkup{}
	buttons := make([]tele.Btn, 0, len(languages))
	for _, lang := range languages {
		buttons = append(buttons, markup.Data(lang, "lang_"+lang))
	}
	rows := markup.Split(4, buttons)
	rows = append(rows, markup.Row(btnCancel))
	markup.Inline(rows...)

	return h.reply(c, "📁 "+name+"\n\nChoose the target language:", markup)
}

// handleLanguageSelection completes the scope and waits for text
func (h *Handler) handleLanguageSelection(c tele.Context, data string) error {
	userID := c.Sender().ID
	lang := strings.TrimPrefix(strings.TrimSpace(data), "lang_")

	state := h.GetState(userID)
	if state.State != domain.StateChoosingLanguage {
		return c.Respond(&tele.CallbackResponse{Text: "Choose a domain first"})
	}

	next := &domain.StateData{State: domain.StateWaitingText, Domain: state.Domain, Language: lang}
	h.SetState(userID, next)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))

	return h.reply(c, "✍️ Send text to translate into "+lang+" with "+
		domain.DomainName(domain.NormalizeDomain(next.Domain))+" terminology.", markup)
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.reply(c, msgMainMenu, mainMenuMarkup())
}

// reply edits the message of a callback or sends a new one
func (h *Handler) reply(c tele.Context, text string, opts ...interface{}) error {
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}
	if err := c.Edit(text, opts...); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil
		}
		return c.Send(text, opts...)
	}
	return c.Respond()
}
