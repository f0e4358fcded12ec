package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is one canned answer for MockProvider.
type MockReply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays canned replies in order and records every request.
// Replies are validated against the request schema like a real provider.
type MockProvider struct {
	mu       sync.Mutex
	replies  []MockReply
	requests []Request
}

// NewMockProvider queues replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Generate pops the next reply; an empty queue reports the provider as
// unavailable.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if len(m.replies) == 0 {
		return nil, &UnavailableError{}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return finish(req, r.Content, "mock", StopEnd, r.Usage)
}

func (m *MockProvider) ModelID() string { return "mock" }

// Queue appends replies.
func (m *MockProvider) Queue(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// Requests returns a copy of the requests seen so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
