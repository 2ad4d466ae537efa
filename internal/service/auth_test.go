package service

import (
	"fmt"
	"testing"

	"nkrane/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_CheckPassword(t *testing.T) {
	tests := []struct {
		name           string
		botPassword    string
		inputPassword  string
		expectedResult bool
	}{
		{
			name:           "correct password",
			botPassword:    "secret123",
			inputPassword:  "secret123",
			expectedResult: true,
		},
		{
			name:           "incorrect password",
			botPassword:    "secret123",
			inputPassword:  "wrong",
			expectedResult: false,
		},
		{
			name:           "empty password",
			botPassword:    "secret123",
			inputPassword:  "",
			expectedResult: false,
		},
		{
			name:           "case sensitive",
			botPassword:    "Secret123",
			inputPassword:  "secret123",
			expectedResult: false,
		},
		{
			name:           "unset bot password",
			botPassword:    "",
			inputPassword:  "",
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			service := NewAuthService(mockRepo, tt.botPassword)

			result := service.CheckPassword(tt.inputPassword)

			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		repoError     error
		expectRepo    bool
		expectedOK    bool
		expectedError bool
	}{
		{
			name:       "correct password authorizes",
			password:   "secret123",
			expectRepo: true,
			expectedOK: true,
		},
		{
			name:       "wrong password",
			password:   "guess",
			expectRepo: false,
			expectedOK: false,
		},
		{
			name:          "repository error",
			password:      "secret123",
			repoError:     fmt.Errorf("db error"),
			expectRepo:    true,
			expectedOK:    false,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			if tt.expectRepo {
				mockRepo.On("AuthorizeUser", int64(123)).Return(tt.repoError)
			}

			service := NewAuthService(mockRepo, "secret123")
			ok, err := service.Login(123, tt.password)

			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
			if !tt.expectRepo {
				mockRepo.AssertNotCalled(t, "AuthorizeUser", int64(123))
			}
		})
	}
}

func TestAuthService_IsAuthorized(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockReturn    bool
		mockError     error
		expectedAuth  bool
		expectedError bool
	}{
		{
			name:         "authorized user",
			userID:       123,
			mockReturn:   true,
			expectedAuth: true,
		},
		{
			name:         "unauthorized user",
			userID:       456,
			mockReturn:   false,
			expectedAuth: false,
		},
		{
			name:          "repository error",
			userID:        789,
			mockReturn:    false,
			mockError:     fmt.Errorf("db error"),
			expectedAuth:  false,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			mockRepo.On("IsAuthorized", tt.userID).Return(tt.mockReturn, tt.mockError)

			service := NewAuthService(mockRepo, "secret")
			authorized, err := service.IsAuthorized(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedAuth, authorized)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_EnsureUserExists(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("EnsureUserExists", int64(123)).Return(nil)

	service := NewAuthService(mockRepo, "secret")
	err := service.EnsureUserExists(123)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
