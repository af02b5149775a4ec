// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package query

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/cmd"
	"github.com/gaucho-cli/gaucho/internal/cli/printer"
)

const defaultMaxResults = 25

type QueryOptions struct {
	ServiceID      string
	MaxResults     int
	OutputConsumer printer.Consumer
	OutputSchema   string
}

func QueryCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "query",
		Short: "Show a service, or every service when no id is given",
		Args: func(command *cobra.Command, args []string) error {
			if len(args) > 1 {
				return cmd.FlagErrorf("unexpected argument %q", args[1])
			}
			return nil
		},
		RunE: func(command *cobra.Command, args []string) error {
			opts := &QueryOptions{}
			if len(args) > 0 {
				opts.ServiceID = args[0]
			}
			opts.MaxResults, _ = command.Flags().GetInt("max-results")
			outputConsumer, _ := command.Flags().GetString("output-consumer")
			opts.OutputConsumer = printer.Consumer(outputConsumer)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")

			app, err := cmd.AppFromContext(command.Context())
			if err != nil {
				return err
			}

			return runQuery(command.Context(), app, opts, os.Stdout)
		},
		Annotations: map[string]string{
			"type":     "Inspect",
			"examples": "{{.Name}} {{.Command}} 1s245 --output-consumer machine",
			"args":     "[service_id]",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().Int("max-results", defaultMaxResults, "Maximum number of services to list (0 = unlimited)")
	cmd.AddOutputFlags(command)

	return command
}

func validateQueryOptions(opts *QueryOptions) error {
	if opts.MaxResults < 0 {
		return cmd.FlagErrorf("--max-results must not be negative")
	}
	return cmd.FlagErrorWrap(printer.Validate(opts.OutputConsumer, opts.OutputSchema))
}

func runQuery(ctx context.Context, app *app.App, opts *QueryOptions, w io.Writer) error {
	if err := validateQueryOptions(opts); err != nil {
		return err
	}

	raw, err := app.Runner.Query(ctx, opts.ServiceID)
	if err != nil {
		return cmd.RenderError(err)
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		return printer.PrintRaw(w, raw, opts.OutputSchema)
	}

	return printer.NewHumanReadablePrinter[any](w).Print(raw, printer.PrintOptions{MaxResults: opts.MaxResults})
}
