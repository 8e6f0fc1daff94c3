package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Health is a snapshot of a remote's circuit breaker and recent outcomes.
type Health struct {
	Name                string     `json:"name"`
	CircuitState        string     `json:"circuitState"`
	ConsecutiveFailures uint32     `json:"consecutiveFailures"`
	LastSuccessAt       *time.Time `json:"lastSuccessAt,omitempty"`
	LastFailureAt       *time.Time `json:"lastFailureAt,omitempty"`
	LastError           string     `json:"lastError,omitempty"`

	state gobreaker.State
}

// IsHealthy returns true while the breaker is closed.
func (h Health) IsHealthy() bool {
	return h.state == gobreaker.StateClosed
}

// IsDegraded returns true while the breaker is probing (half-open).
func (h Health) IsDegraded() bool {
	return h.state == gobreaker.StateHalfOpen
}

// IsUnhealthy returns true while the breaker is open.
func (h Health) IsUnhealthy() bool {
	return h.state == gobreaker.StateOpen
}

type outcomes struct {
	mu            sync.Mutex
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

func (o *outcomes) record(at time.Time, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err == nil {
		o.lastSuccessAt = &at
		return
	}
	o.lastFailureAt = &at
	o.lastError = err.Error()
}

// Health returns the current health of the remote.
func (c *Client) Health() Health {
	state := c.breaker.State()
	h := Health{
		Name:                c.cfg.Name,
		CircuitState:        state.String(),
		ConsecutiveFailures: c.breaker.Counts().ConsecutiveFailures,
		state:               state,
	}

	c.outcomes.mu.Lock()
	defer c.outcomes.mu.Unlock()
	h.LastSuccessAt = c.outcomes.lastSuccessAt
	h.LastFailureAt = c.outcomes.lastFailureAt
	h.LastError = c.outcomes.lastError
	return h
}
