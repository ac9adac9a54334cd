package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nzambu/coachsim/internal/domain"
)

// MockGenerator mocks the Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockEvaluator mocks the Evaluator interface
type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, transcript []domain.Turn) string {
	args := m.Called(ctx, transcript)
	return args.String(0)
}

// MockExporter mocks the Exporter interface
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(ctx context.Context, record domain.ExportRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockAllowlistSource mocks domain.AllowlistSource
type MockAllowlistSource struct {
	mock.Mock
}

func (m *MockAllowlistSource) Load(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

// MockReferenceStore mocks domain.ReferenceStore
type MockReferenceStore struct {
	mock.Mock
}

func (m *MockReferenceStore) Current() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockReferenceStore) Replace(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

// MockArchive mocks domain.Archive
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Append(ctx context.Context, record domain.ExportRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
