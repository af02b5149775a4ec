// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package workflow

import (
	"context"
	"iter"
	"log/slog"

	"github.com/gaucho-cli/gaucho/internal/api"
	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
)

// Execute runs command in the first container of the service and returns the
// first frame of output.
func (r *Runner) Execute(ctx context.Context, id, command string) ([]byte, error) {
	session, err := r.openExecute(ctx, id, command)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck
	defer session.Close()

	return session.First(ctx)
}

// ExecuteStream runs command like Execute but yields every frame until the
// relay closes or ctx is cancelled.
func (r *Runner) ExecuteStream(ctx context.Context, id, command string) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		session, err := r.openExecute(ctx, id, command)
		if err != nil {
			yield(nil, err)
			return
		}
		//nolint:errcheck
		defer session.Close()

		for frame, err := range session.Frames(ctx) {
			if !yield(frame, err) || err != nil {
				return
			}
		}
	}
}

func (r *Runner) openExecute(ctx context.Context, id, command string) (*api.Session, error) {
	containers, err := r.client.ServiceInstances(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(containers) == 0 {
		return nil, &EmptyResourceError{Kind: "containers", Query: id}
	}

	container := containers[0]
	url, ok := container.Action(apimodel.ActionExecute)
	if !ok {
		return nil, &lifecycle.PreconditionError{
			Operation:     "execute",
			State:         container.State,
			Action:        apimodel.ActionExecute,
			MissingAction: true,
		}
	}

	slog.Info("Executing command", "service", id, "container", container.ID)

	var access apimodel.HostAccess
	if err := r.client.Post(ctx, url, apimodel.NewShellExecuteRequest(command), &access); err != nil {
		return nil, err
	}

	return r.client.OpenRelay(ctx, access)
}
