package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/stripe/stripe-go/v82"
)

// StubSessions is an in-memory SessionGetter for environments without Stripe
// access. Err, when set, is returned for every lookup.
type StubSessions struct {
	mu       sync.RWMutex
	sessions map[string]*stripe.CheckoutSession
	calls    int
	Err      error
}

func NewStubSessions() *StubSessions {
	return &StubSessions{
		sessions: make(map[string]*stripe.CheckoutSession),
	}
}

func (s *StubSessions) Put(cs *stripe.CheckoutSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[cs.ID] = cs
}

func (s *StubSessions) Get(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.Err != nil {
		return nil, s.Err
	}

	cs, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no such checkout session: %s", id)
	}

	return cs, nil
}

// Calls returns how many lookups were made.
func (s *StubSessions) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.calls
}

func (s *StubSessions) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]*stripe.CheckoutSession)
	s.calls = 0
	s.Err = nil
}
