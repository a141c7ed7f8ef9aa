package mocks

import (
	"github.com/stretchr/testify/mock"
)

type MockFrontend struct {
	mock.Mock
}

func (m *MockFrontend) Busy(label string) {
	m.Called(label)
}

func (m *MockFrontend) Restore() {
	m.Called()
}

func (m *MockFrontend) Alert(msg string) {
	m.Called(msg)
}

func (m *MockFrontend) Confirm(msg string) bool {
	args := m.Called(msg)
	return args.Bool(0)
}

func (m *MockFrontend) Navigate(target string) {
	m.Called(target)
}
