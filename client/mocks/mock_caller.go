package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockCaller struct {
	mock.Mock
}

func (m *MockCaller) Call(ctx context.Context, name string, payload, out interface{}) error {
	args := m.Called(ctx, name, payload, out)
	return args.Error(0)
}
