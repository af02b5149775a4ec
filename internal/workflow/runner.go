// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package workflow implements the operations gaucho offers on services and
// environments, each as a sequence of API calls and state polls.
package workflow

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gaucho-cli/gaucho/internal/api"
	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
	"github.com/gaucho-cli/gaucho/internal/poll"
)

const (
	DefaultTimeout        = 60 * time.Second
	DefaultStartupTimeout = 120 * time.Second
)

// Client is the subset of the API client the workflows need.
type Client interface {
	Raw(ctx context.Context, url string) ([]byte, error)
	Post(ctx context.Context, url string, body any, out any) error
	Delete(ctx context.Context, url string, body any, out any) error
	ServiceURL(id string) string

	Service(ctx context.Context, id string) (*apimodel.Resource, error)
	ServicesByName(ctx context.Context, name string) ([]apimodel.Resource, error)
	ServiceInstances(ctx context.Context, id string) ([]apimodel.Container, error)
	Project(ctx context.Context, id string) (*apimodel.Resource, error)
	Projects(ctx context.Context) ([]apimodel.Resource, error)
	ProjectsByName(ctx context.Context, name string) ([]apimodel.Resource, error)

	OpenRelay(ctx context.Context, access apimodel.HostAccess) (*api.Session, error)
}

type Runner struct {
	client Client
	poller *poll.Poller
}

func NewRunner(client Client, poller *poll.Poller) *Runner {
	if poller == nil {
		poller = poll.New()
	}
	return &Runner{client: client, poller: poller}
}

func (r *Runner) serviceFetcher(id string) poll.FetchFunc {
	return func(ctx context.Context) (*apimodel.Resource, error) {
		return r.client.Service(ctx, id)
	}
}

func (r *Runner) projectFetcher(id string) poll.FetchFunc {
	return func(ctx context.Context) (*apimodel.Resource, error) {
		return r.client.Project(ctx, id)
	}
}

// transition runs one row of the lifecycle table against current: check,
// invoke, then wait for the target state.
func (r *Runner) transition(ctx context.Context, op lifecycle.Operation, current *apimodel.Resource, body any, fetch poll.FetchFunc, timeout time.Duration) (*poll.Result, error) {
	t, url, err := lifecycle.Require(op, current)
	if err != nil {
		return nil, err
	}

	slog.Info("Invoking action", "operation", op, "id", current.ID, "action", t.Action, "state", current.State)

	switch t.Method {
	case http.MethodDelete:
		err = r.client.Delete(ctx, url, body, nil)
	default:
		err = r.client.Post(ctx, url, body, nil)
	}
	if err != nil {
		return nil, err
	}

	result, err := r.poller.WaitForState(ctx, fetch, poll.InState(t.Target), timeout, poll.Describe(string(op), t.Target))
	if err != nil {
		return result, err
	}

	slog.Info("Reached target state", "operation", op, "id", current.ID, "state", result.State(), "attempts", result.Attempts)
	return result, nil
}
