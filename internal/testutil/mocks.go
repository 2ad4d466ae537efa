package testutil

import (
	"context"

	"nkrane/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockTermRepository is a mock for TermRepository
type MockTermRepository struct {
	mock.Mock
}

func (m *MockTermRepository) ReplaceScope(scope domain.Scope, entries []domain.Entry) error {
	args := m.Called(scope, entries)
	return args.Error(0)
}

func (m *MockTermRepository) ListTerms() ([]domain.Entry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockTermRepository) DeleteScope(scope domain.Scope) (int64, error) {
	args := m.Called(scope)
	return args.Get(0).(int64), args.Error(1)
}

// MockHistoryRepository is a mock for HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) SaveTranslation(record domain.HistoryRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetRecentTranslations(userID int64, limit, offset int) ([]domain.HistoryRecord, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRecord), args.Error(1)
}

func (m *MockHistoryRepository) GetTotalTranslationsCount(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockHistoryRepository) CleanOldTranslations(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

// MockTranslator is a mock for translator.Translator
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	args := m.Called(ctx, text, source, target)
	return args.String(0), args.Error(1)
}

func (m *MockTranslator) Name() string {
	return "mock"
}

// MockPublisher is a mock for queue.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, queue string, body []byte) error {
	args := m.Called(ctx, queue, body)
	return args.Error(0)
}
