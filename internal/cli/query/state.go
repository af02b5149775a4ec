// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package query

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/cmd"
	"github.com/gaucho-cli/gaucho/internal/cli/display"
	"github.com/gaucho-cli/gaucho/internal/cli/printer"
	"github.com/gaucho-cli/gaucho/internal/cli/renderer"
)

type StateOptions struct {
	ServiceID      string
	Explain        bool
	OutputConsumer printer.Consumer
	OutputSchema   string
}

// StateResult is the machine readable answer of the state command.
type StateResult struct {
	ID    string `json:"id" yaml:"id"`
	State string `json:"state" yaml:"state"`
}

func StateCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "state",
		Short: "Print the state of a service",
		Args:  cmd.ExactArgs("service_id"),
		RunE: func(command *cobra.Command, args []string) error {
			opts := &StateOptions{ServiceID: args[0]}
			opts.Explain, _ = command.Flags().GetBool("explain")

			var err error
			if opts.OutputConsumer, opts.OutputSchema, err = cmd.GetOutput(command); err != nil {
				return err
			}

			app, err := cmd.AppFromContext(command.Context())
			if err != nil {
				return err
			}

			return runState(command.Context(), app, opts, os.Stdout)
		},
		Annotations: map[string]string{
			"type":     "Inspect",
			"examples": "{{.Name}} {{.Command}} 1s245",
			"args":     "<service_id>",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().Bool("explain", false, "Also list the operations possible from this state")
	cmd.AddOutputFlags(command)

	return command
}

func runState(ctx context.Context, app *app.App, opts *StateOptions, w io.Writer) error {
	state, err := app.Runner.State(ctx, opts.ServiceID)
	if err != nil {
		return cmd.RenderError(err)
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		return printer.NewMachineReadablePrinter[StateResult](w, opts.OutputSchema).Print(&StateResult{
			ID:    opts.ServiceID,
			State: state,
		})
	}

	fmt.Fprintln(w, display.State(state))
	if opts.Explain {
		fmt.Fprint(w, renderer.RenderAvailable(state))
	}
	return nil
}
