package service

import (
	"fmt"
	"testing"
	"time"

	"nkrane/internal/domain"
	"nkrane/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_Record(t *testing.T) {
	mockRepo := new(testutil.MockHistoryRepository)
	result := &domain.TranslationResult{
		Original:          "The Parliament voted.",
		Text:              "Η Βουλή ψήφισε.",
		Source:            "en",
		Target:            "el",
		Domain:            "politics",
		ReplacementsCount: 1,
	}
	mockRepo.On("SaveTranslation", domain.HistoryRecord{
		UserID:       123,
		Domain:       "politics",
		Source:       "en",
		Target:       "el",
		Original:     "The Parliament voted.",
		Text:         "Η Βουλή ψήφισε.",
		Replacements: 1,
	}).Return(nil)

	service := NewHistoryService(mockRepo, testutil.NewTestLogger())

	assert.NoError(t, service.Record(123, result))
	assert.Error(t, service.Record(123, nil))
	mockRepo.AssertExpectations(t)
}

func TestHistoryService_GetPage(t *testing.T) {
	now := time.Now()
	records := []domain.HistoryRecord{
		testutil.NewTestRecord(2, 123, "The Parliament voted.", "Η Βουλή ψήφισε.", now),
		testutil.NewTestRecord(1, 123, "minister", "υπουργός", now.Add(-time.Hour)),
	}

	tests := []struct {
		name           string
		page           int
		expectedOffset int
		total          int
		expectedPages  int
	}{
		{name: "first page", page: 1, expectedOffset: 0, total: 12, expectedPages: 3},
		{name: "page below one", page: 0, expectedOffset: 0, total: 5, expectedPages: 1},
		{name: "third page", page: 3, expectedOffset: 10, total: 12, expectedPages: 3},
		{name: "no history", page: 1, expectedOffset: 0, total: 0, expectedPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockHistoryRepository)
			mockRepo.On("GetRecentTranslations", int64(123), 5, tt.expectedOffset).Return(records, nil)
			mockRepo.On("GetTotalTranslationsCount", int64(123)).Return(tt.total, nil)

			service := NewHistoryService(mockRepo, testutil.NewTestLogger())
			got, pages, err := service.GetPage(123, tt.page)

			require.NoError(t, err)
			assert.Equal(t, records, got)
			assert.Equal(t, tt.expectedPages, pages)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestHistoryService_GetPage_Error(t *testing.T) {
	mockRepo := new(testutil.MockHistoryRepository)
	mockRepo.On("GetRecentTranslations", int64(123), 5, 0).Return(nil, fmt.Errorf("db error"))

	service := NewHistoryService(mockRepo, testutil.NewTestLogger())
	_, _, err := service.GetPage(123, 1)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "GetTotalTranslationsCount", int64(123))
}

func TestHistoryService_CleanupOldData(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name:          "successful cleanup",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockHistoryRepository)
			mockRepo.On("CleanOldTranslations", 60).Return(tt.mockError)

			service := NewHistoryService(mockRepo, testutil.NewTestLogger())

			err := service.CleanupOldData()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
