package handler

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleHistory shows the first page of the user's translations
func (h *Handler) handleHistory(c tele.Context) error {
	return h.showHistoryPage(c, 1)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, data string) error {
	pageStr := strings.TrimPrefix(strings.TrimSpace(data), "page_")
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showHistoryPage(c, page)
}

func (h *Handler) showHistoryPage(c tele.Context, page int) error {
	userID := c.Sender().ID

	records, totalPages, err := h.historyService.GetPage(userID, page)
	if err != nil {
		h.logger.Error("Failed to get history", zap.Error(err))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Failed to load history"})
		}
		return c.Send(msgInternalError)
	}

	if len(records) == 0 {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{
				Text:      "You have no translations yet",
				ShowAlert: true,
			})
		}
		return c.Send("You have no translations yet.")
	}

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("page_%d", page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("page_%d", page+1)))
		}
		if len(navRow) > 0 {
			rows = append(rows, navRow)
		}
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.reply(c, formatHistory(records, page, totalPages), markup)
}
