package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of the IAuthService interface
type MockAuthService struct {
	mock.Mock
}

// Authorize mocks the Authorize method
func (m *MockAuthService) Authorize(key string) error {
	args := m.Called(key)
	return args.Error(0)
}
