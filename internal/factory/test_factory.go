package factory

import (
	"context"
	"time"

	"github.com/mcoot/gamehub/internal/dependencies/mocks"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/account"
	"github.com/mcoot/gamehub/internal/storage/memory"
)

// TestStartTime is the mock clock's initial time in test apps
var TestStartTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	MemoryStore *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies,
// in-memory storage and plaintext passwords.
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage creates a test App over an existing memory store,
// which lets tests simulate a process restart.
func NewTestAppWithStorage(store *memory.Storage) *TestApp {
	mockClock := mocks.NewMockClock(TestStartTime)
	mockClock.Step = time.Millisecond
	mockRandom := mocks.NewMockRandom()

	app, err := newWithDependencies(
		context.Background(),
		store,
		mockClock,
		mockRandom,
		account.PlainHasher{},
		model.DefaultItems(),
		nil,
	)
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		MemoryStore: store,
	}
}
