package assemblyai

import (
	"context"
	"fmt"
	"time"
)

// TimeoutError reports that the job did not reach a terminal status
// within the caller's deadline. The job may still be running remotely;
// this process has given up waiting.
type TimeoutError struct {
	JobID   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("assemblyai: job %s did not complete within %s", e.JobID, e.Timeout)
}

// Poller waits for transcription jobs to reach a terminal status.
type Poller struct {
	client *Client

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// PollerOption customizes a poller.
type PollerOption func(*Poller)

// WithClock overrides the wall clock (useful for tests).
func WithClock(now func() time.Time) PollerOption {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

// WithSleep overrides how the inter-poll suspension is performed
// (useful for tests).
func WithSleep(sleep func(context.Context, time.Duration) error) PollerOption {
	return func(p *Poller) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// NewPoller constructs a poller over the given client.
func NewPoller(client *Client, opts ...PollerOption) *Poller {
	p := &Poller{
		client: client,
		now:    time.Now,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WaitForCompletion polls the job at a fixed interval until it reaches
// a terminal status or the timeout elapses. A status query is always
// issued before the timeout is checked, so even a zero timeout incurs
// exactly one round trip. Both "completed" and "error" terminal
// statuses are returned as successful outcomes; distinguishing them is
// the caller's concern. There is no backoff and no retry of failed
// queries.
func (p *Poller) WaitForCompletion(ctx context.Context, id string, interval, timeout time.Duration) (Transcript, error) {
	start := p.now()
	for {
		transcript, err := p.client.GetTranscript(ctx, id)
		if err != nil {
			return Transcript{}, err
		}
		if transcript.IsTerminal() {
			return transcript, nil
		}

		if p.now().Sub(start) >= timeout {
			return Transcript{}, &TimeoutError{JobID: id, Timeout: timeout}
		}
		if err := p.sleep(ctx, interval); err != nil {
			return Transcript{}, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
