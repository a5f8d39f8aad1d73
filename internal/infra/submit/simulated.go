package submit

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"folio/internal/common"
	"folio/internal/domain/behavior"
)

var _ behavior.Submitter = (*Simulated)(nil)

// Simulated stands in for the endpoint that would receive contact messages.
// It waits for Latency and then fails with probability FailureRate.
type Simulated struct {
	latency     time.Duration
	failureRate float64

	mu   sync.Mutex
	rand *rand.Rand
}

// NewSimulated creates a simulated submitter. A nil src seeds from the
// runtime's random source.
func NewSimulated(latency time.Duration, failureRate float64, src rand.Source) *Simulated {
	var r *rand.Rand
	if src != nil {
		r = rand.New(src)
	}
	return &Simulated{
		latency:     latency,
		failureRate: failureRate,
		rand:        r,
	}
}

// Submit delivers msg after the configured latency.
func (s *Simulated) Submit(ctx context.Context, msg behavior.ContactMessage) error {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return fmt.Errorf("submitting contact message: %w", ctx.Err())
		case <-timer.C:
		}
	}

	if s.roll() < s.failureRate {
		slog.Warn("simulated submission failed", "email", msg.Email)
		return common.NewSubmissionError("simulated", "network error")
	}

	slog.Info("contact message submitted", "name", msg.Name, "email", msg.Email, "subject", msg.Subject)
	return nil
}

func (s *Simulated) roll() float64 {
	if s.rand == nil {
		return rand.Float64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64()
}
