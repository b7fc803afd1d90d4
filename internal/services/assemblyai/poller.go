package assemblyai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subfix/internal/services"
)

// State is the local view of a transcript job.
type State int

const (
	StateSubmitted State = iota
	StateInProgress
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitted:
		return "submitted"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// StateFor maps a service status to a State. Statuses the service may add
// later are treated as still in progress.
func StateFor(status Status) State {
	switch status {
	case StatusQueued:
		return StateSubmitted
	case StatusCompleted:
		return StateCompleted
	case StatusError:
		return StateFailed
	default:
		return StateInProgress
	}
}

// PollPolicy controls how often Poll re-checks a job. Interval grows by
// Multiplier after each check up to MaxInterval. A zero Timeout waits
// indefinitely.
type PollPolicy struct {
	Interval    time.Duration
	MaxInterval time.Duration
	Multiplier  float64
	Timeout     time.Duration
}

// DefaultPollPolicy checks every three seconds with no timeout.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{Interval: 3 * time.Second, MaxInterval: 3 * time.Second, Multiplier: 1}
}

func (p PollPolicy) normalized() PollPolicy {
	def := DefaultPollPolicy()
	if p.Interval <= 0 {
		p.Interval = def.Interval
	}
	if p.MaxInterval < p.Interval {
		p.MaxInterval = p.Interval
	}
	if p.Multiplier < 1 {
		p.Multiplier = 1
	}
	if p.Timeout < 0 {
		p.Timeout = 0
	}
	return p
}

func (p PollPolicy) next(current time.Duration) time.Duration {
	grown := time.Duration(float64(current) * p.Multiplier)
	if grown > p.MaxInterval {
		return p.MaxInterval
	}
	return grown
}

// StatusFunc observes every status read while polling.
type StatusFunc func(state State, transcript Transcript)

// Poll reads the job until it completes or fails. A failed job returns an
// error wrapping services.ErrExternalTool with the service's detail. Work is
// never resubmitted.
func (c *Client) Poll(ctx context.Context, id string, policy PollPolicy, onStatus StatusFunc) (Transcript, error) {
	policy = policy.normalized()
	if policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
	}

	interval := policy.Interval
	for {
		transcript, err := c.Get(ctx, id)
		if err != nil {
			return Transcript{}, pollError(ctx, id, policy, err)
		}
		state := StateFor(transcript.Status)
		if onStatus != nil {
			onStatus(state, transcript)
		}
		switch state {
		case StateCompleted:
			return transcript, nil
		case StateFailed:
			detail := transcript.Error
			if detail == "" {
				detail = "transcription failed without detail"
			}
			return transcript, services.Wrap(services.ErrExternalTool, "assemblyai", "transcribe", fmt.Sprintf("transcript %s: %s", id, detail), nil)
		}

		if err := sleepWithContext(ctx, interval); err != nil {
			return Transcript{}, pollError(ctx, id, policy, err)
		}
		interval = policy.next(interval)
	}
}

func pollError(ctx context.Context, id string, policy PollPolicy, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && policy.Timeout > 0 {
		return services.Wrap(services.ErrTimeout, "assemblyai", "poll",
			fmt.Sprintf("transcript %s not finished after %s", id, policy.Timeout), err)
	}
	return err
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
