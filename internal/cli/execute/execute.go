// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package execute

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/cmd"
	"github.com/gaucho-cli/gaucho/internal/cli/printer"
)

type ExecuteOptions struct {
	ServiceID      string
	Command        string
	Follow         bool
	OutputConsumer printer.Consumer
	OutputSchema   string
}

// ExecuteResult is the machine readable answer of the execute command.
type ExecuteResult struct {
	ServiceID string `json:"serviceId" yaml:"serviceId"`
	Command   string `json:"command" yaml:"command"`
	Output    string `json:"output" yaml:"output"`
}

func ExecuteCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "execute",
		Short: "Run a shell command in the first container of a service",
		Args:  cmd.ExactArgs("service_id", "command"),
		RunE: func(command *cobra.Command, args []string) error {
			opts := &ExecuteOptions{ServiceID: args[0], Command: args[1]}
			opts.Follow, _ = command.Flags().GetBool("follow")

			var err error
			if opts.OutputConsumer, opts.OutputSchema, err = cmd.GetOutput(command); err != nil {
				return err
			}

			app, err := cmd.AppFromContext(command.Context())
			if err != nil {
				return err
			}

			return runExecute(command.Context(), app, opts, os.Stdout)
		},
		Annotations: map[string]string{
			"type":     "Containers",
			"examples": "{{.Name}} {{.Command}} 1s245 'cat /etc/hostname'",
			"args":     "<service_id> <command>",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().Bool("follow", false, "Keep printing output until the command ends instead of only the first chunk")
	cmd.AddOutputFlags(command)

	return command
}

func runExecute(ctx context.Context, app *app.App, opts *ExecuteOptions, w io.Writer) error {
	if opts.OutputConsumer == printer.ConsumerMachine {
		var buf bytes.Buffer
		if err := collect(ctx, app, opts, &buf); err != nil {
			return cmd.RenderError(err)
		}
		return printer.NewMachineReadablePrinter[ExecuteResult](w, opts.OutputSchema).Print(&ExecuteResult{
			ServiceID: opts.ServiceID,
			Command:   opts.Command,
			Output:    buf.String(),
		})
	}

	return cmd.RenderError(collect(ctx, app, opts, w))
}

// collect copies the command output to w, frame by frame when following.
func collect(ctx context.Context, app *app.App, opts *ExecuteOptions, w io.Writer) error {
	if !opts.Follow {
		output, err := app.Runner.Execute(ctx, opts.ServiceID, opts.Command)
		if err != nil {
			return err
		}
		_, err = w.Write(output)
		return err
	}

	for frame, err := range app.Runner.ExecuteStream(ctx, opts.ServiceID, opts.Command) {
		if err != nil {
			return err
		}
		if _, err := w.Write(frame); err != nil {
			return err
		}
	}
	return nil
}
