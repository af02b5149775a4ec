// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package poll waits for a server-side resource to reach a given state by
// re-fetching it at a fixed interval.
package poll

import (
	"context"
	"log/slog"
	"time"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
)

const DefaultInterval = 2 * time.Second

type FetchFunc func(ctx context.Context) (*apimodel.Resource, error)

type Predicate func(*apimodel.Resource) bool

// Observer is told about every fetch, including the first one (attempt 0).
// r is nil when a silent fetch failed.
type Observer func(attempt int, r *apimodel.Resource)

type Result struct {
	Resource  *apimodel.Resource
	Completed bool
	Attempts  int
}

// State is the last observed state, or "" when nothing was observed.
func (r *Result) State() string {
	if r == nil || r.Resource == nil {
		return ""
	}
	return r.Resource.State
}

type Poller struct {
	Interval time.Duration
	Sleep    func(ctx context.Context, d time.Duration) error
	Observer Observer
}

func New() *Poller {
	return &Poller{Interval: DefaultInterval}
}

type options struct {
	silent    bool
	operation string
	target    string
}

type Option func(*options)

// Silent treats fetch errors as "not there yet" instead of aborting. It exists
// for probing a server that may still be starting.
func Silent() Option {
	return func(o *options) { o.silent = true }
}

// Describe names the operation and target state for the TimeoutError.
func Describe(operation, target string) Option {
	return func(o *options) {
		o.operation = operation
		o.target = target
	}
}

// InState matches resources whose state equals target.
func InState(target string) Predicate {
	return func(r *apimodel.Resource) bool {
		return r != nil && r.State == target
	}
}

// Budget is the number of re-fetches allowed for timeout. It truncates, so a
// 5s timeout with a 2s interval allows 2 re-fetches.
func (p *Poller) Budget(timeout time.Duration) int {
	interval := p.interval()
	if timeout <= 0 {
		return 0
	}
	return int(timeout / interval)
}

func (p *Poller) interval() time.Duration {
	if p.Interval <= 0 {
		return DefaultInterval
	}
	return p.Interval
}

// WaitForState fetches until isTarget holds or the budget is spent. On
// timeout the returned Result carries the last observed resource and the
// error is a *TimeoutError.
func (p *Poller) WaitForState(ctx context.Context, fetch FetchFunc, isTarget Predicate, timeout time.Duration, opts ...Option) (*Result, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	budget := p.Budget(timeout)
	result := &Result{}

	check := func(attempt int) (bool, error) {
		r, err := fetch(ctx)
		if err != nil {
			if !o.silent {
				return false, err
			}
			slog.Debug("fetch failed while polling", "attempt", attempt, "error", err)
			r = nil
		}
		if r != nil {
			result.Resource = r
		}

		slog.Debug("polling", "operation", o.operation, "attempt", attempt, "budget", budget, "state", result.State(), "target", o.target)
		if p.Observer != nil {
			p.Observer(attempt, r)
		}

		return r != nil && isTarget(r), nil
	}

	done, err := check(0)
	if err != nil {
		return result, err
	}
	if done {
		result.Completed = true
		return result, nil
	}

	for result.Attempts < budget {
		if err := p.sleep(ctx); err != nil {
			return result, err
		}
		result.Attempts++

		done, err = check(result.Attempts)
		if err != nil {
			return result, err
		}
		if done {
			result.Completed = true
			return result, nil
		}
	}

	return result, &TimeoutError{
		Operation: o.operation,
		Target:    o.target,
		LastState: result.State(),
		Timeout:   timeout,
	}
}

func (p *Poller) sleep(ctx context.Context) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, p.interval())
	}

	timer := time.NewTimer(p.interval())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
