package deploy

import (
	"context"
	"time"
)

// Polling defaults.
const (
	DefaultAttempts = 25
	DefaultInterval = 3 * time.Second
)

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Poller repeats a check until it succeeds or the attempts run out.
type Poller struct {
	attempts int
	interval time.Duration
	sleep    SleepFunc
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithAttempts sets the maximum number of checks. Values below 1 are ignored.
func WithAttempts(n int) PollerOption {
	return func(p *Poller) {
		if n > 0 {
			p.attempts = n
		}
	}
}

// WithInterval sets the delay between checks.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.interval = d
	}
}

// WithSleep replaces the timer-based sleep.
func WithSleep(fn SleepFunc) PollerOption {
	return func(p *Poller) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// NewPoller creates a poller with DefaultAttempts and DefaultInterval.
func NewPoller(opts ...PollerOption) *Poller {
	p := &Poller{
		attempts: DefaultAttempts,
		interval: DefaultInterval,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Until runs check, sleeping between attempts, until it reports true. It
// returns ErrTimeout after the last failed attempt, the first error from
// check, or the context error.
func (p *Poller) Until(ctx context.Context, check func(context.Context) (bool, error)) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := check(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if attempt >= p.attempts {
			return ErrTimeout
		}
		if err := p.sleep(ctx, p.interval); err != nil {
			return err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
