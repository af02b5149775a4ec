// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package workflow

import (
	"context"
	"fmt"
	"time"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
	"github.com/gaucho-cli/gaucho/internal/poll"
)

// Query returns the raw JSON of a service, or of all services when id is empty.
func (r *Runner) Query(ctx context.Context, id string) ([]byte, error) {
	return r.client.Raw(ctx, r.client.ServiceURL(id))
}

func (r *Runner) State(ctx context.Context, id string) (string, error) {
	service, err := r.client.Service(ctx, id)
	if err != nil {
		return "", err
	}
	return service.State, nil
}

// IDOf resolves a service name to an id. With newest the last match wins,
// otherwise the first.
func (r *Runner) IDOf(ctx context.Context, name string, newest bool) (string, error) {
	services, err := r.client.ServicesByName(ctx, name)
	if err != nil {
		return "", err
	}
	if len(services) == 0 {
		return "", &EmptyResourceError{Kind: "service", Query: name}
	}

	if newest {
		return services[len(services)-1].ID, nil
	}
	return services[0].ID, nil
}

func (r *Runner) IDOfEnv(ctx context.Context, name string) (string, error) {
	projects, err := r.client.ProjectsByName(ctx, name)
	if err != nil {
		return "", err
	}
	if len(projects) == 0 {
		return "", &EmptyResourceError{Kind: "environment", Query: name}
	}

	return projects[0].ID, nil
}

// WaitForRancher waits until the server answers and its first environment is
// active. Failures while the server is starting count as not ready.
func (r *Runner) WaitForRancher(ctx context.Context, timeout time.Duration) (*poll.Result, error) {
	fetch := func(ctx context.Context) (*apimodel.Resource, error) {
		projects, err := r.client.Projects(ctx)
		if err != nil {
			return nil, err
		}
		if len(projects) == 0 {
			return nil, fmt.Errorf("no environments yet")
		}
		return &projects[0], nil
	}

	return r.poller.WaitForState(ctx, fetch, poll.InState(lifecycle.StateActive), timeout,
		poll.Silent(), poll.Describe("wait_for_rancher", lifecycle.StateActive))
}
