// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package waitfor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/cmd"
	"github.com/gaucho-cli/gaucho/internal/cli/display"
	"github.com/gaucho-cli/gaucho/internal/cli/printer"
	"github.com/gaucho-cli/gaucho/internal/workflow"
)

type WaitOptions struct {
	Timeout        time.Duration
	OutputConsumer printer.Consumer
	OutputSchema   string
}

func WaitForRancherCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "wait_for_rancher",
		Short: "Wait until the Rancher server answers and its first environment is active",
		Args:  cmd.ExactArgs(),
		RunE: func(command *cobra.Command, args []string) error {
			opts := &WaitOptions{}

			var err error
			if opts.Timeout, err = cmd.GetTimeout(command); err != nil {
				return err
			}
			if opts.OutputConsumer, opts.OutputSchema, err = cmd.GetOutput(command); err != nil {
				return err
			}

			app, err := cmd.AppFromContext(command.Context())
			if err != nil {
				return err
			}

			return runWait(command.Context(), app, opts, os.Stdout)
		},
		Annotations: map[string]string{
			"type":     "Server",
			"examples": "{{.Name}} {{.Command}} --timeout 300",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	cmd.AddTimeoutFlag(command, workflow.DefaultStartupTimeout, "waiting for the server")
	cmd.AddOutputFlags(command)

	return command
}

func runWait(ctx context.Context, app *app.App, opts *WaitOptions, w io.Writer) error {
	stop := func() {}
	if opts.OutputConsumer == printer.ConsumerHuman {
		stop = app.Track("wait_for_rancher", app.Client.Host())
	}

	result, err := app.Runner.WaitForRancher(ctx, opts.Timeout)
	stop()
	if err != nil {
		return cmd.RenderError(err)
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		return printer.NewMachineReadablePrinter[apimodel.Resource](w, opts.OutputSchema).Print(result.Resource)
	}

	_, err = fmt.Fprintf(w, "%s %s %s\n",
		display.Green("Rancher is up:"),
		display.LightBlue(app.Client.Host()),
		display.Greyf("(environment %s is %s)", result.Resource.Name, result.State()))
	return err
}
