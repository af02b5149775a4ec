// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package upgrade

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/cmd"
	"github.com/gaucho-cli/gaucho/internal/cli/display"
	"github.com/gaucho-cli/gaucho/internal/cli/printer"
	"github.com/gaucho-cli/gaucho/internal/cli/renderer"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
	"github.com/gaucho-cli/gaucho/internal/workflow"
)

type UpgradeOptions struct {
	workflow.UpgradeOptions
	OutputConsumer printer.Consumer
	OutputSchema   string
}

func UpgradeCmd() *cobra.Command {
	defaults := workflow.DefaultUpgradeOptions("")

	command := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade a service in place, optionally with a new image or environment value",
		Args:  cmd.ExactArgs("service_id"),
		RunE: func(command *cobra.Command, args []string) error {
			opts, err := optionsFromFlags(command, args[0])
			if err != nil {
				return err
			}

			app, err := cmd.AppFromContext(command.Context())
			if err != nil {
				return err
			}

			return runUpgrade(command.Context(), app, opts, os.Stdout)
		},
		Annotations: map[string]string{
			"type":     "Upgrade",
			"examples": "{{.Name}} {{.Command}} 1s245 --imageUuid docker:nginx:1.27 --auto_complete",
			"args":     "<service_id>",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().Bool("start_first", defaults.StartFirst, "Start the new instance before stopping the old one")
	command.Flags().Bool("complete_previous", false, "Finish a pending upgrade before starting this one")
	command.Flags().String("imageUuid", "", "Image to run, e.g. docker:nginx:1.27")
	command.Flags().Bool("auto_complete", false, "Finish the upgrade once the service reports upgraded")
	command.Flags().Int("batch_size", defaults.BatchSize, "Number of containers upgraded at a time")
	command.Flags().Int("interval_millis", defaults.IntervalMillis, "Milliseconds between batches")
	command.Flags().String("replace_env_name", "", "Environment variable to set in the launch config")
	command.Flags().String("replace_env_value", "", "Value for --replace_env_name")
	cmd.AddTimeoutFlag(command, defaults.Timeout, "the upgrade")
	cmd.AddOutputFlags(command)

	return command
}

func optionsFromFlags(command *cobra.Command, serviceID string) (*UpgradeOptions, error) {
	opts := &UpgradeOptions{UpgradeOptions: workflow.DefaultUpgradeOptions(serviceID)}

	opts.StartFirst, _ = command.Flags().GetBool("start_first")
	opts.CompletePrevious, _ = command.Flags().GetBool("complete_previous")
	opts.ImageUUID, _ = command.Flags().GetString("imageUuid")
	opts.AutoComplete, _ = command.Flags().GetBool("auto_complete")
	opts.BatchSize, _ = command.Flags().GetInt("batch_size")
	opts.IntervalMillis, _ = command.Flags().GetInt("interval_millis")

	// An empty --replace_env_value is a real value; only unset flags are skipped.
	nameSet := command.Flags().Changed("replace_env_name")
	valueSet := command.Flags().Changed("replace_env_value")
	if nameSet && valueSet {
		name, _ := command.Flags().GetString("replace_env_name")
		value, _ := command.Flags().GetString("replace_env_value")
		opts.ReplaceEnv(name, value)
	} else if nameSet != valueSet {
		display.Warning("--replace_env_name and --replace_env_value only take effect together")
	}

	var err error
	if opts.Timeout, err = cmd.GetTimeout(command); err != nil {
		return nil, err
	}
	if opts.OutputConsumer, opts.OutputSchema, err = cmd.GetOutput(command); err != nil {
		return nil, err
	}

	if err := validateUpgradeOptions(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func validateUpgradeOptions(opts *UpgradeOptions) error {
	if err := opts.Validate(); err != nil {
		return cmd.FlagErrorWrap(err)
	}
	return nil
}

func runUpgrade(ctx context.Context, app *app.App, opts *UpgradeOptions, w io.Writer) error {
	stop := func() {}
	if opts.OutputConsumer == printer.ConsumerHuman {
		stop = app.Track("upgrade", opts.ServiceID)
	}

	result, err := app.Runner.Upgrade(ctx, opts.UpgradeOptions)
	stop()
	if err != nil {
		return cmd.RenderError(err)
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		return printer.NewMachineReadablePrinter[apimodel.Resource](w, opts.OutputSchema).Print(result.Resource)
	}

	fmt.Fprint(w, renderer.RenderPollResult("upgrade", opts.ServiceID, result))
	if result.State() == lifecycle.StateUpgraded {
		display.Hint(w, "The old containers are kept until the upgrade is finished. To undo it run:", "rollback "+opts.ServiceID)
	}
	return nil
}
