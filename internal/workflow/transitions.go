// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package workflow

import (
	"context"
	"time"

	"github.com/gaucho-cli/gaucho/internal/lifecycle"
	"github.com/gaucho-cli/gaucho/internal/poll"
)

func (r *Runner) serviceTransition(ctx context.Context, op lifecycle.Operation, id string, timeout time.Duration) (*poll.Result, error) {
	service, err := r.client.Service(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.transition(ctx, op, service, nil, r.serviceFetcher(id), timeout)
}

func (r *Runner) projectTransition(ctx context.Context, op lifecycle.Operation, id string, timeout time.Duration) (*poll.Result, error) {
	project, err := r.client.Project(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.transition(ctx, op, project, nil, r.projectFetcher(id), timeout)
}

// Rollback reverts an upgraded service to its previous launch config.
func (r *Runner) Rollback(ctx context.Context, id string, timeout time.Duration) (*poll.Result, error) {
	return r.serviceTransition(ctx, lifecycle.Rollback, id, timeout)
}

// FinishUpgrade confirms an upgraded service and removes the old containers.
func (r *Runner) FinishUpgrade(ctx context.Context, id string, timeout time.Duration) (*poll.Result, error) {
	return r.serviceTransition(ctx, lifecycle.FinishUpgrade, id, timeout)
}

func (r *Runner) Activate(ctx context.Context, id string, timeout time.Duration) (*poll.Result, error) {
	return r.serviceTransition(ctx, lifecycle.Activate, id, timeout)
}

func (r *Runner) Deactivate(ctx context.Context, id string, timeout time.Duration) (*poll.Result, error) {
	return r.serviceTransition(ctx, lifecycle.Deactivate, id, timeout)
}

func (r *Runner) Remove(ctx context.Context, id string, timeout time.Duration) (*poll.Result, error) {
	return r.serviceTransition(ctx, lifecycle.Remove, id, timeout)
}

func (r *Runner) DeactivateEnv(ctx context.Context, id string, timeout time.Duration) (*poll.Result, error) {
	return r.projectTransition(ctx, lifecycle.DeactivateEnv, id, timeout)
}

// DeleteEnv removes an inactive environment. The server expects DELETE on the
// advertised action URL.
func (r *Runner) DeleteEnv(ctx context.Context, id string, timeout time.Duration) (*poll.Result, error) {
	return r.projectTransition(ctx, lifecycle.DeleteEnv, id, timeout)
}
