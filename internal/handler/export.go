package handler

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"nkrane/internal/domain"
	"nkrane/internal/terminology"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleDomains lists domains with their languages and term counts
func (h *Handler) handleDomains(c tele.Context) error {
	text := formatDomains(h.terminologyService.Domains(), h.terminologyService.Stats())

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))

	return h.reply(c, text, markup)
}

// handleExport sends the terminology of a scope as a document
func (h *Handler) handleExport(c tele.Context) error {
	domainName, language, format, err := parseExportArgs(c.Message().Payload)
	if err != nil {
		return c.Send(err.Error())
	}

	data, err := h.terminologyService.Export(domainName, language, format)
	if err != nil {
		if errors.Is(err, domain.ErrNoTerminology) {
			return c.Send(fmt.Sprintf("No terminology for %s/%s. See /domains.", domainName, language))
		}
		h.logger.Error("Failed to export terminology", zap.Error(err))
		return c.Send(msgInternalError)
	}

	h.logger.Info("Terminology exported",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("domain", domainName),
		zap.String("language", language),
		zap.String("format", string(format)),
	)

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(data)),
		FileName: exportFileName(domainName, language, format),
		Caption:  fmt.Sprintf("%s terminology for %s", domainName, language),
	}
	return c.Send(doc)
}

var (
	errExportUsage  = errors.New("usage: /export <domain> <language> [json|csv]")
	errExportFormat = errors.New("export format must be json or csv")
)

// parseExportArgs parses "<domain> <language> [json|csv]"
func parseExportArgs(payload string) (string, string, terminology.Format, error) {
	fields := strings.Fields(payload)
	if len(fields) < 2 || len(fields) > 3 {
		return "", "", "", errExportUsage
	}

	format := terminology.FormatJSON
	if len(fields) == 3 {
		f, err := terminology.ParseFormat(fields[2])
		if err != nil || f == terminology.FormatYAML {
			return "", "", "", errExportFormat
		}
		format = f
	}

	return domain.DomainName(domain.NormalizeDomain(fields[0])), domain.NormalizeLanguage(fields[1]), format, nil
}

func exportFileName(domainName, language string, format terminology.Format) string {
	return fmt.Sprintf("%s_%s.%s", domainName, language, format)
}
