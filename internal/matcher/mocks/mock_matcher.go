package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockMatcher struct {
	mock.Mock
}

func (m *MockMatcher) Match(ctx context.Context, imageB64 string) (string, error) {
	args := m.Called(ctx, imageB64)
	return args.String(0), args.Error(1)
}
