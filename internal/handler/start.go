package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Ensure user exists in database
	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(msgInternalError)
	}

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgInternalError)
	}

	h.ResetState(userID)

	if !authorized {
		return c.Send(msgPasswordPrompt)
	}

	if c.Callback() != nil {
		if err := c.Edit(msgMainMenu, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(msgMainMenu, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(msgMainMenu, mainMenuMarkup())
}

// handleLogin checks a password sent by an unauthorized user
func (h *Handler) handleLogin(c tele.Context, password string) error {
	userID := c.Sender().ID

	ok, err := h.authService.Login(userID, password)
	if err != nil {
		h.logger.Error("Failed to authorize user", zap.Error(err))
		return c.Send(msgInternalError)
	}
	if !ok {
		h.logger.Info("Wrong password", zap.Int64("user_id", userID))
		return c.Send("Wrong password.")
	}

	h.logger.Info("User authorized", zap.Int64("user_id", userID))
	h.ResetState(userID)
	return c.Send("✅ Access granted!\n\n"+msgMainMenu, mainMenuMarkup())
}
