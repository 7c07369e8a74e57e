package email

import "sync"

// Provider sends transactional mail. Implementations must be safe for
// concurrent use; services call them from fire-and-forget goroutines.
type Provider interface {
	Send(to []string, subject, htmlBody string) error
	Close() error
}

// MockProvider is used in development and tests when SMTP is not configured.
type MockProvider struct {
	mu   sync.Mutex
	sent []MockMessage
}

type MockMessage struct {
	To      []string
	Subject string
	Body    string
}

func (m *MockProvider) Send(to []string, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, MockMessage{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *MockProvider) Close() error { return nil }

// Sent returns a copy of everything delivered so far.
func (m *MockProvider) Sent() []MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockMessage, len(m.sent))
	copy(out, m.sent)
	return out
}
