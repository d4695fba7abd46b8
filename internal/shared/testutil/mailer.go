package testutil

import (
	"context"
	"sync"

	"github.com/dojolanza/cuotas/go-api-server/internal/model"
)

// MockMailer records reminder sends instead of talking to an SMTP server.
// FailFor lists member emails whose sends should return SendErr.
type MockMailer struct {
	mu      sync.Mutex
	Sent    []string
	FailFor map[string]error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{FailFor: map[string]error{}}
}

func (m *MockMailer) SendOverdueReminder(ctx context.Context, mem *model.Member, period string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailFor[mem.Email]; ok {
		return err
	}
	m.Sent = append(m.Sent, mem.Email)
	return nil
}

func (m *MockMailer) Verify(ctx context.Context) error {
	return nil
}

// SentCount returns how many reminders were recorded
func (m *MockMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
