// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package workflow

import (
	"context"
	"log/slog"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
)

// ContainerResult records what happened to one container of a service.
type ContainerResult struct {
	Container apimodel.Container
	Action    string
	Skipped   bool
}

func (r *Runner) StartService(ctx context.Context, id string) ([]ContainerResult, error) {
	return r.containerAction(ctx, id, apimodel.ActionStart)
}

// StartContainers is the historical name of StartService.
func (r *Runner) StartContainers(ctx context.Context, id string) ([]ContainerResult, error) {
	return r.StartService(ctx, id)
}

func (r *Runner) StopService(ctx context.Context, id string) ([]ContainerResult, error) {
	return r.containerAction(ctx, id, apimodel.ActionStop)
}

func (r *Runner) RestartService(ctx context.Context, id string) ([]ContainerResult, error) {
	return r.containerAction(ctx, id, apimodel.ActionRestart)
}

// containerAction invokes action on every container of the service, in list
// order. Containers whose state does not offer the action are skipped. The
// first failed call aborts the rest.
func (r *Runner) containerAction(ctx context.Context, id, action string) ([]ContainerResult, error) {
	containers, err := r.client.ServiceInstances(ctx, id)
	if err != nil {
		return nil, err
	}

	results := make([]ContainerResult, 0, len(containers))
	for _, container := range containers {
		url, ok := container.Action(action)
		if !ok {
			slog.Warn("Container does not offer action, skipping", "container", container.ID, "action", action, "state", container.State)
			results = append(results, ContainerResult{Container: container, Action: action, Skipped: true})
			continue
		}

		slog.Info("Invoking container action", "container", container.ID, "action", action)
		if err := r.client.Post(ctx, url, nil, nil); err != nil {
			return results, err
		}
		results = append(results, ContainerResult{Container: container, Action: action})
	}

	return results, nil
}
