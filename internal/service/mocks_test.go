package service

import (
	"context"
	"time"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- Mocks shared across service tests ---

type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (domain.QuizResult, string, []domain.Attempt, error) {
	args := m.Called(ctx, req)
	var attempts []domain.Attempt
	if args.Get(2) != nil {
		attempts = args.Get(2).([]domain.Attempt)
	}
	return args.Get(0).(domain.QuizResult), args.String(1), attempts, args.Error(3)
}

type MockTutorResponder struct {
	mock.Mock
}

func (m *MockTutorResponder) Chat(ctx context.Context, req domain.ChatRequest) (string, string, []domain.Attempt, error) {
	args := m.Called(ctx, req)
	var attempts []domain.Attempt
	if args.Get(2) != nil {
		attempts = args.Get(2).([]domain.Attempt)
	}
	return args.String(0), args.String(1), attempts, args.Error(3)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
