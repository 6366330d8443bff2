package services

import (
	"errors"
	"sync"
)

var errSendFailed = errors.New("send failed")

// SentEmail records one SendEmail call on the mock
type SentEmail struct {
	To       string
	Subject  string
	HTMLBody string
}

// SentSMS records one SendSMS call on the mock
type SentSMS struct {
	Phone string
	Text  string
}

// MockNotifier is a call-recording implementation of Notifier for testing
type MockNotifier struct {
	mu              sync.RWMutex
	emails          []SentEmail
	sms             []SentSMS
	chatBotMessages []string

	// FailAll makes every send return an error, for exercising the
	// best-effort policy
	FailAll bool
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SendEmail records the call
func (m *MockNotifier) SendEmail(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return &NotificationError{Channel: "email", Err: errSendFailed}
	}
	m.emails = append(m.emails, SentEmail{To: to, Subject: subject, HTMLBody: htmlBody})
	return nil
}

// SendSMS records the call
func (m *MockNotifier) SendSMS(phone, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return &NotificationError{Channel: "sms", Err: errSendFailed}
	}
	m.sms = append(m.sms, SentSMS{Phone: phone, Text: text})
	return nil
}

// SendChatBotMessage records the call
func (m *MockNotifier) SendChatBotMessage(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return &NotificationError{Channel: "chat-bot", Err: errSendFailed}
	}
	m.chatBotMessages = append(m.chatBotMessages, text)
	return nil
}

// Emails returns a copy of the recorded email calls
func (m *MockNotifier) Emails() []SentEmail {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SentEmail, len(m.emails))
	copy(out, m.emails)
	return out
}

// SMS returns a copy of the recorded SMS calls
func (m *MockNotifier) SMS() []SentSMS {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SentSMS, len(m.sms))
	copy(out, m.sms)
	return out
}

// ChatBotMessages returns a copy of the recorded chat-bot calls
func (m *MockNotifier) ChatBotMessages() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.chatBotMessages))
	copy(out, m.chatBotMessages)
	return out
}

// TotalCalls returns the number of sends recorded across all channels
func (m *MockNotifier) TotalCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.emails) + len(m.sms) + len(m.chatBotMessages)
}

// Clear removes all recorded calls
func (m *MockNotifier) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails = nil
	m.sms = nil
	m.chatBotMessages = nil
}
