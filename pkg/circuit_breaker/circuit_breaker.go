package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type Config struct {
	// RecordLength is the size of the window of tracked calls.
	RecordLength int `yaml:"recordLength" envconfig:"CB_RECORD_LENGTH"`
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration `yaml:"timeout" envconfig:"CB_TIMEOUT"`
	// Percentile is the share of failed calls in the window that opens the breaker.
	Percentile float64 `yaml:"percentile" envconfig:"CB_PERCENTILE"`
	// RecoveryRequests successful probes in a row close the breaker again.
	RecoveryRequests int `yaml:"recoveryRequests" envconfig:"CB_RECOVERY_REQUESTS"`
}

func DefaultConfig() Config {
	return Config{
		RecordLength:     20,
		Timeout:          10 * time.Second,
		Percentile:       0.5,
		RecoveryRequests: 3,
	}
}

type circuitBreaker struct {
	mu sync.Mutex

	state            Status
	recordLength     int
	timeout          time.Duration
	lastAttemptedAt  time.Time
	percentile       float64
	buffer           []bool // true marks a failed call
	pos              int
	recoveryRequests int
	successCount     int

	now func() time.Time
}

type CircuitBreaker interface {
	Call(service func() error) error
	State() Status
	Reset()
}

var ErrOpenCB = errors.New("circuit breaker is open")

func NewCircuitBreaker(cfg Config) CircuitBreaker {
	def := DefaultConfig()
	if cfg.RecordLength <= 0 {
		cfg.RecordLength = def.RecordLength
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Percentile <= 0 {
		cfg.Percentile = def.Percentile
	}
	if cfg.RecoveryRequests <= 0 {
		cfg.RecoveryRequests = def.RecoveryRequests
	}
	return &circuitBreaker{
		state:            Closed,
		recordLength:     cfg.RecordLength,
		timeout:          cfg.Timeout,
		percentile:       cfg.Percentile,
		buffer:           make([]bool, cfg.RecordLength),
		recoveryRequests: cfg.RecoveryRequests,
		now:              time.Now,
	}
}

func (cb *circuitBreaker) Call(service func() error) error {
	cb.mu.Lock()
	if cb.state == Open {
		if cb.now().Sub(cb.lastAttemptedAt) > cb.timeout {
			cb.state = HalfOpen
			cb.successCount = 0
		} else {
			cb.mu.Unlock()
			return ErrOpenCB
		}
	}
	cb.mu.Unlock()

	err := service()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.buffer[cb.pos] = err != nil
	cb.pos = (cb.pos + 1) % cb.recordLength

	if cb.state == HalfOpen {
		if err != nil {
			cb.trip()
			return err
		}
		cb.successCount++
		if cb.successCount >= cb.recoveryRequests {
			cb.reset()
		}
		return nil
	}

	fails := 0
	for _, failed := range cb.buffer {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(cb.recordLength) >= cb.percentile {
		cb.trip()
	}

	return err
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

func (cb *circuitBreaker) trip() {
	cb.state = Open
	cb.successCount = 0
	cb.lastAttemptedAt = cb.now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.buffer {
		cb.buffer[i] = false
	}
	cb.successCount = 0
	cb.pos = 0
	cb.state = Closed
}
