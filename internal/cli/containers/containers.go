// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package containers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/cmd"
	"github.com/gaucho-cli/gaucho/internal/cli/printer"
	"github.com/gaucho-cli/gaucho/internal/cli/renderer"
	"github.com/gaucho-cli/gaucho/internal/workflow"
)

// ContainerFunc runs one action over the containers of a service.
type ContainerFunc func(ctx context.Context, id string) ([]workflow.ContainerResult, error)

type ContainerOptions struct {
	ServiceID      string
	OutputConsumer printer.Consumer
	OutputSchema   string
}

// ContainerOutcome is the machine readable form of a ContainerResult.
type ContainerOutcome struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	State   string `json:"state" yaml:"state"`
	Action  string `json:"action" yaml:"action"`
	Skipped bool   `json:"skipped" yaml:"skipped"`
}

func StartContainersCmd() *cobra.Command {
	return newContainerCmd("start_containers", "Start every stopped container of a service (same as start_service)",
		func(a *app.App) ContainerFunc { return a.Runner.StartContainers })
}

func StartServiceCmd() *cobra.Command {
	return newContainerCmd("start_service", "Start every stopped container of a service",
		func(a *app.App) ContainerFunc { return a.Runner.StartService })
}

func StopServiceCmd() *cobra.Command {
	return newContainerCmd("stop_service", "Stop every running container of a service",
		func(a *app.App) ContainerFunc { return a.Runner.StopService })
}

func RestartServiceCmd() *cobra.Command {
	return newContainerCmd("restart_service", "Restart every running container of a service",
		func(a *app.App) ContainerFunc { return a.Runner.RestartService })
}

func newContainerCmd(use, short string, pick func(a *app.App) ContainerFunc) *cobra.Command {
	command := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cmd.ExactArgs("service_id"),
		RunE: func(command *cobra.Command, args []string) error {
			opts := &ContainerOptions{ServiceID: args[0]}

			var err error
			if opts.OutputConsumer, opts.OutputSchema, err = cmd.GetOutput(command); err != nil {
				return err
			}

			app, err := cmd.AppFromContext(command.Context())
			if err != nil {
				return err
			}

			return runContainers(command.Context(), pick(app), opts, os.Stdout)
		},
		Annotations: map[string]string{
			"type":     "Containers",
			"examples": "{{.Name}} {{.Command}} 1s245",
			"args":     "<service_id>",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)
	cmd.AddOutputFlags(command)

	return command
}

// runContainers prints whatever was done before a failure, then the failure.
func runContainers(ctx context.Context, run ContainerFunc, opts *ContainerOptions, w io.Writer) error {
	results, err := run(ctx, opts.ServiceID)

	if opts.OutputConsumer == printer.ConsumerMachine {
		outcomes := make([]ContainerOutcome, len(results))
		for i, r := range results {
			outcomes[i] = ContainerOutcome{
				ID:      r.Container.ID,
				Name:    r.Container.Name,
				State:   r.Container.State,
				Action:  r.Action,
				Skipped: r.Skipped,
			}
		}
		if err == nil {
			return printer.NewMachineReadablePrinter[[]ContainerOutcome](w, opts.OutputSchema).Print(&outcomes)
		}
		return cmd.RenderError(err)
	}

	if len(results) > 0 || err == nil {
		tree, renderErr := renderer.RenderContainerResults(opts.ServiceID, results)
		if renderErr != nil {
			return renderErr
		}
		fmt.Fprint(w, tree)
	}

	return cmd.RenderError(err)
}
