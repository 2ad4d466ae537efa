package service

import (
	"fmt"

	"nkrane/internal/domain"
	"nkrane/internal/repository"

	"go.uber.org/zap"
)

const (
	historyPageSize      = 5
	historyRetentionDays = 60
)

// HistoryService keeps the translation history of bot users
type HistoryService struct {
	historyRepo repository.HistoryRepository
	logger      *zap.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(historyRepo repository.HistoryRepository, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Record stores a finished translation of userID
func (s *HistoryService) Record(userID int64, result *domain.TranslationResult) error {
	if result == nil {
		return fmt.Errorf("translation result cannot be nil")
	}
	return s.historyRepo.SaveTranslation(domain.NewHistoryRecord(userID, result))
}

// GetPage returns a page of the user's history, newest first, with the
// total page count
func (s *HistoryService) GetPage(userID int64, page int) ([]domain.HistoryRecord, int, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * historyPageSize
	records, err := s.historyRepo.GetRecentTranslations(userID, historyPageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.historyRepo.GetTotalTranslationsCount(userID)
	if err != nil {
		return nil, 0, err
	}

	totalPages := (total + historyPageSize - 1) / historyPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return records, totalPages, nil
}

// CleanupOldData removes translations older than 60 days
func (s *HistoryService) CleanupOldData() error {
	s.logger.Info("Starting cleanup of old translations", zap.Int("retention_days", historyRetentionDays))

	if err := s.historyRepo.CleanOldTranslations(historyRetentionDays); err != nil {
		s.logger.Error("Failed to cleanup old translations", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}
