package service

import (
	"context"
	"log"
	"math/rand/v2"

	"github.com/google/uuid"

	"vatledger/internal/port"
)

// Greetings open order confirmation emails, rotated per tenant.
var Greetings = []string{
	"Thank you for your order",
	"Great choice",
	"Your order is in",
	"Good news",
	"We're on it",
	"Cheers for ordering",
}

// GreetingIndex picks one of Greetings. Fallback is set when the tenant counter could not
// be read and the index was chosen at random instead.
type GreetingIndex struct {
	Index    int  `json:"index"`
	Fallback bool `json:"fallback"`
}

// Text returns the greeting the index points at.
func (g GreetingIndex) Text() string {
	return Greetings[g.Index%len(Greetings)]
}

// GreetingService rotates confirmation greetings using a durable per-tenant counter.
type GreetingService interface {
	NextGreeting(ctx context.Context, tenantID uuid.UUID) GreetingIndex
}

type greetingService struct {
	counter port.GreetingCounterRepository
	randN   func(n int) int
}

// NewGreetingService creates a new GreetingService implementation.
func NewGreetingService(counter port.GreetingCounterRepository) GreetingService {
	return &greetingService{counter: counter, randN: rand.IntN}
}

// NewGreetingServiceWithRand is NewGreetingService with a custom fallback source, for tests.
func NewGreetingServiceWithRand(counter port.GreetingCounterRepository, randN func(n int) int) GreetingService {
	return &greetingService{counter: counter, randN: randN}
}

func (s *greetingService) NextGreeting(ctx context.Context, tenantID uuid.UUID) GreetingIndex {
	n, err := s.counter.Next(ctx, tenantID)
	if err != nil {
		log.Printf("greetingService.NextGreeting: counter unavailable for tenant %s, picking at random: %v", tenantID, err)
		return GreetingIndex{Index: s.randN(len(Greetings)), Fallback: true}
	}
	if n < 1 {
		n = 1
	}
	return GreetingIndex{Index: int((n - 1) % int64(len(Greetings)))}
}
