package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Authorizer checks whether a Telegram user passed the password gate
type Authorizer interface {
	EnsureUserExists(userID int64) error
	IsAuthorized(userID int64) (bool, error)
}

const (
	msgError          = "Something went wrong. Please try again later."
	msgPasswordPrompt = "This bot is private. Send /start and then the password to continue."
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(auth Authorizer, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			if err := auth.EnsureUserExists(userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return c.Send(msgError)
			}

			authorized, err := auth.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send(msgError)
			}

			if !authorized {
				logger.Debug("Rejected unauthorized user",
					zap.Int64("user_id", userID),
					zap.String("text", c.Text()),
				)
				return c.Send(msgPasswordPrompt)
			}

			return next(c)
		}
	}
}
