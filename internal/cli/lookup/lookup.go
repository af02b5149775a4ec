// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package lookup

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/cmd"
	"github.com/gaucho-cli/gaucho/internal/cli/printer"
)

type LookupOptions struct {
	Name           string
	Environment    bool
	Newest         bool
	OutputConsumer printer.Consumer
	OutputSchema   string
}

// LookupResult is the machine readable answer of id_of and id_of_env.
type LookupResult struct {
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id" yaml:"id"`
}

func IDOfCmd() *cobra.Command {
	command := newLookupCmd("id_of", "Print the id of the service with the given name", "service_name", false)
	command.Flags().Bool("newest", false, "Pick the last match instead of the first when the name is not unique")
	return command
}

func IDOfEnvCmd() *cobra.Command {
	return newLookupCmd("id_of_env", "Print the id of the environment with the given name", "environment_name", true)
}

func newLookupCmd(use, short, arg string, environment bool) *cobra.Command {
	command := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cmd.ExactArgs(arg),
		RunE: func(command *cobra.Command, args []string) error {
			opts := &LookupOptions{Name: args[0], Environment: environment}
			if !environment {
				opts.Newest, _ = command.Flags().GetBool("newest")
			}

			var err error
			if opts.OutputConsumer, opts.OutputSchema, err = cmd.GetOutput(command); err != nil {
				return err
			}

			app, err := cmd.AppFromContext(command.Context())
			if err != nil {
				return err
			}

			return runLookup(command.Context(), app, opts, os.Stdout)
		},
		Annotations: map[string]string{
			"type":     "Inspect",
			"examples": "{{.Name}} {{.Command}} web",
			"args":     "<" + arg + ">",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)
	cmd.AddOutputFlags(command)

	return command
}

func runLookup(ctx context.Context, app *app.App, opts *LookupOptions, w io.Writer) error {
	var id string
	var err error
	if opts.Environment {
		id, err = app.Runner.IDOfEnv(ctx, opts.Name)
	} else {
		id, err = app.Runner.IDOf(ctx, opts.Name, opts.Newest)
	}
	if err != nil {
		return cmd.RenderError(err)
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		return printer.NewMachineReadablePrinter[LookupResult](w, opts.OutputSchema).Print(&LookupResult{
			Name: opts.Name,
			ID:   id,
		})
	}

	// Plain so that $(gaucho id_of web) works in scripts.
	_, err = fmt.Fprintln(w, id)
	return err
}
