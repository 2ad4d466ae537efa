package handler

import (
	"sync"

	"nkrane/internal/domain"
	"nkrane/internal/middleware"
	"nkrane/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot                *tele.Bot
	authService        *service.AuthService
	translationService *service.TranslationService
	terminologyService *service.TerminologyService
	historyService     *service.HistoryService
	sourceLanguage     string
	logger             *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	translationService *service.TranslationService,
	terminologyService *service.TerminologyService,
	historyService *service.HistoryService,
	sourceLanguage string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:                bot,
		authService:        authService,
		translationService: translationService,
		terminologyService: terminologyService,
		historyService:     historyService,
		sourceLanguage:     sourceLanguage,
		logger:             logger,
		states:             make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Password prompt and translation input
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)

	protected := h.bot.Group()
	protected.Use(middleware.AuthMiddleware(h.authService, h.logger))
	protected.Handle("/domains", h.handleDomains)
	protected.Handle("/export", h.handleExport)
	protected.Handle("/history", h.handleHistory)

	// Callback queries (inline buttons)
	protected.Handle(&btnTranslate, h.handleChooseDomain)
	protected.Handle(&btnDomains, h.handleDomains)
	protected.Handle(&btnHistory, h.handleHistory)
	protected.Handle(&btnCancel, h.handleCancel)
	protected.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	protected.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnTranslate = tele.Btn{
		Unique: "translate",
		Text:   "🌐 Translate",
	}
	btnDomains = tele.Btn{
		Unique: "domains",
		Text:   "📚 Terminology",
	}
	btnHistory = tele.Btn{
		Unique: "history",
		Text:   "🕘 History",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnTranslate),
		menu.Row(btnDomains, btnHistory),
	)
	return menu
}

const (
	msgMainMenu       = "🏠 Main menu\n\nChoose an action:"
	msgInternalError  = "Something went wrong. Please try again later."
	msgPasswordPrompt = "Hi! This bot is private. Send the password to continue:"
)
