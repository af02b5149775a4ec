// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/config"
	"github.com/gaucho-cli/gaucho/internal/cli/display"
	"github.com/gaucho-cli/gaucho/internal/cli/printer"
	"github.com/gaucho-cli/gaucho/internal/cli/renderer"
	"github.com/gaucho-cli/gaucho/internal/logging"
)

var RootCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}} [OPTIONS]{{if .HasAvailableSubCommands}} [COMMAND]{{end}}\n") +
	"{{if .HasAvailableSubCommands}}\n" + display.Gold("Commands:") + "{{$types := typeMap .Commands}}" +
	"{{$first := true}}{{range $type, $cmds := $types}}" +
	"{{if $first}}{{$first = false}}{{else}}\n{{end}}\n  " + display.Gold("{{$type}}:") +
	"{{range $cmd := $cmds}}\n    " + display.Green("{{rpad $cmd.Name $cmd.NamePadding}}") + "     {{$cmd.Short}}" +
	"{{if (index $cmd.Annotations \"examples\")}}\n                   " +
	display.Grey("  {{formatExamples (index $cmd.Annotations \"examples\") $cmd}}") + "{{end}}" +
	"{{end}}{{end}}\n{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range .LocalFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}" +
	"\n" + display.Gold("Environment:\n") +
	"  RANCHER_URL, RANCHER_ACCESS_KEY, RANCHER_SECRET_KEY (or CATTLE_*), SSL_VERIFY=false\n"

var SimpleCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}}{{if .HasAvailableLocalFlags}} [OPTIONS]{{end}}") +
	display.Green("{{if index .Annotations \"args\"}} {{index .Annotations \"args\"}}{{end}}") + "\n" +
	"{{if (index .Annotations \"examples\")}}\n" + display.Gold("Example:\n") +
	display.Grey("  {{formatExamples (index .Annotations \"examples\") .}}\n") + "{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range .LocalFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}" +
	"{{if .HasAvailableInheritedFlags}}\n" + display.Gold("Connection:\n") +
	"{{range .InheritedFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}"

type contextKey string

const appKey contextKey = "app"

type appHolder struct {
	app *app.App
}

// InitCommandWithContext prepares the root command so LoadApp can hand the
// App to every subcommand through its context.
func InitCommandWithContext(ctx context.Context, command *cobra.Command) *cobra.Command {
	command.SetContext(context.WithValue(ctx, appKey, &appHolder{}))
	return command
}

// LoadApp resolves the settings from the parsed flags, sets up logging and
// stores the App in the command context.
func LoadApp(command *cobra.Command) error {
	ctx := command.Context()
	if ctx == nil {
		return fmt.Errorf("command context was not initialised")
	}

	holder, ok := ctx.Value(appKey).(*appHolder)
	if !ok {
		return fmt.Errorf("command context was not initialised")
	}

	settings, err := config.Load(command.Flags())
	if err != nil {
		return err
	}

	a := app.NewApp(settings)
	logging.SetupClientLogging(settings.LogFile, settings.LogLevel, a.InvocationID)

	holder.app = a
	return nil
}

func AppFromContext(ctx context.Context) (*app.App, error) {
	if holder, ok := ctx.Value(appKey).(*appHolder); ok && holder.app != nil {
		return holder.app, nil
	}

	return nil, fmt.Errorf("gaucho is not configured")
}

// ExactArgs names the positional arguments so the error reads like usage.
func ExactArgs(names ...string) cobra.PositionalArgs {
	return func(command *cobra.Command, args []string) error {
		if len(args) < len(names) {
			return FlagErrorf("missing %s", strings.Join(names[len(args):], ", "))
		}
		if len(args) > len(names) {
			return FlagErrorf("unexpected argument %q", args[len(names)])
		}
		for i, arg := range args {
			if strings.TrimSpace(arg) == "" {
				return FlagErrorf("%s must not be empty", names[i])
			}
		}
		return nil
	}
}

func AddTimeoutFlag(command *cobra.Command, def time.Duration, what string) {
	command.Flags().Int("timeout", int(def/time.Second), fmt.Sprintf("How many seconds to wait until %s fails", what))
}

func GetTimeout(command *cobra.Command) (time.Duration, error) {
	seconds, err := command.Flags().GetInt("timeout")
	if err != nil {
		return 0, FlagErrorWrap(err)
	}
	if seconds < 0 {
		return 0, FlagErrorf("timeout must not be negative, got %d", seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

func AddOutputFlags(command *cobra.Command) {
	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command result (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the result output (json | yaml)")
}

func GetOutput(command *cobra.Command) (printer.Consumer, string, error) {
	consumer, _ := command.Flags().GetString("output-consumer")
	schema, _ := command.Flags().GetString("output-schema")

	if err := printer.Validate(printer.Consumer(consumer), schema); err != nil {
		return "", "", FlagErrorWrap(err)
	}
	return printer.Consumer(consumer), schema, nil
}

// RenderedError is an error whose message is already formatted for the
// terminal.
type RenderedError struct {
	Message string
	Err     error
}

func (e *RenderedError) Error() string {
	return e.Message
}

func (e *RenderedError) Unwrap() error {
	return e.Err
}

// RenderError turns a workflow error into the message shown to operators.
func RenderError(err error) error {
	if err == nil {
		return nil
	}

	var flagErr *FlagError
	if errors.As(err, &flagErr) {
		return err
	}

	msg, renderErr := renderer.RenderErrorMessage(err)
	if renderErr != nil {
		return fmt.Errorf("error rendering error message: %v", renderErr)
	}
	return &RenderedError{Message: msg, Err: err}
}
