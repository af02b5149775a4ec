// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gaucho-cli/gaucho"
	"github.com/gaucho-cli/gaucho/internal/cli/cmd"
	"github.com/gaucho-cli/gaucho/internal/cli/config"
	"github.com/gaucho-cli/gaucho/internal/cli/containers"
	"github.com/gaucho-cli/gaucho/internal/cli/display"
	"github.com/gaucho-cli/gaucho/internal/cli/env"
	"github.com/gaucho-cli/gaucho/internal/cli/execute"
	"github.com/gaucho-cli/gaucho/internal/cli/lookup"
	"github.com/gaucho-cli/gaucho/internal/cli/query"
	"github.com/gaucho-cli/gaucho/internal/cli/service"
	"github.com/gaucho-cli/gaucho/internal/cli/upgrade"
	"github.com/gaucho-cli/gaucho/internal/cli/waitfor"
)

func longDescription() string {
	return display.Tool + ": " + display.Green("Drive Rancher services and environments from scripts and pipelines")
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           display.Tool,
		Short:         display.Tool + " CLI",
		Long:          longDescription(),
		Version:       gaucho.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(command *cobra.Command, args []string) error {
			return cmd.LoadApp(command)
		},
	}

	hp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(command *cobra.Command, args []string) {
		if command == rootCmd {
			display.PrintBanner()
		}
		hp(command, args)
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.SetUsageTemplate(cmd.RootCmdUsageTemplate)

	rootCmd.AddCommand(query.QueryCmd())
	rootCmd.AddCommand(query.StateCmd())
	rootCmd.AddCommand(lookup.IDOfCmd())
	rootCmd.AddCommand(lookup.IDOfEnvCmd())
	rootCmd.AddCommand(waitfor.WaitForRancherCmd())
	rootCmd.AddCommand(containers.StartContainersCmd())
	rootCmd.AddCommand(containers.StartServiceCmd())
	rootCmd.AddCommand(containers.StopServiceCmd())
	rootCmd.AddCommand(containers.RestartServiceCmd())
	rootCmd.AddCommand(upgrade.UpgradeCmd())
	rootCmd.AddCommand(service.RollbackCmd())
	rootCmd.AddCommand(service.FinishUpgradeCmd())
	rootCmd.AddCommand(execute.ExecuteCmd())
	rootCmd.AddCommand(service.ActivateCmd())
	rootCmd.AddCommand(service.DeactivateCmd())
	rootCmd.AddCommand(service.RemoveCmd())
	rootCmd.AddCommand(env.DeactivateEnvCmd())
	rootCmd.AddCommand(env.DeleteEnvCmd())

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for "+rootCmd.Use)
	for _, c := range rootCmd.Commands() {
		c.PersistentFlags().BoolP("help", "h", false, fmt.Sprintf("Show help for %s command", c.Name()))
	}

	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show "+rootCmd.Use+" version information")
	rootCmd.SetVersionTemplate(fmt.Sprintf("gaucho version: %s\ngo version: %s\n", gaucho.Version, runtime.Version()))

	return rootCmd
}

func init() {
	longestFlagName := 0

	cobra.AddTemplateFunc("typeMap", func(cmds []*cobra.Command) map[string][]*cobra.Command {
		m := make(map[string][]*cobra.Command)
		for _, c := range cmds {
			if c.IsAvailableCommand() {
				t := c.Annotations["type"]
				if t == "" {
					t = "Tooling"
				}

				m[t] = append(m[t], c)
			}
		}
		return m
	})

	cobra.AddTemplateFunc("formatExamples", func(examples string, cmd *cobra.Command) string {
		cliName := cmd.Root().Name()
		cmdName := cmd.Name()
		replaced := strings.ReplaceAll(examples, "{{.Name}}", cliName)
		return strings.ReplaceAll(replaced, "{{.Command}}", cmdName)
	})

	cobra.AddTemplateFunc("optionsUsage", func(f *pflag.FlagSet) []string {
		var usage []string

		f.VisitAll(func(flag *pflag.Flag) {
			length := len(flag.Name)
			if flag.Shorthand != "" {
				length += 6
			}

			if length > longestFlagName {
				longestFlagName = length
			}
		})

		longestFlagName += 10

		f.VisitAll(func(flag *pflag.Flag) {
			s := fmt.Sprintf("      --%s ", flag.Name)
			if flag.Shorthand != "" {
				s = fmt.Sprintf("  -%s, --%s ", flag.Shorthand, flag.Name)
			}

			s = fmt.Sprintf("%-*s%s", longestFlagName, s, flag.Usage)
			if flag.DefValue != "" &&
				flag.DefValue != "false" &&
				flag.Name != "help" &&
				flag.Name != "version" {
				s += display.Grey(fmt.Sprintf(" [default: %q]", flag.DefValue))
			}

			usage = append(usage, s)
		})
		return usage
	})
}

// Start runs the command line and owns the process exit code.
func Start() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cmd.InitCommandWithContext(ctx, newRootCmd())
	failed, err := rootCmd.ExecuteC()
	stop()

	if err != nil {
		os.Exit(report(failed, err))
	}
}

func report(failed *cobra.Command, err error) int {
	var rendered *cmd.RenderedError
	if errors.As(err, &rendered) {
		fmt.Fprint(os.Stderr, rendered.Message)
		return 1
	}

	fmt.Fprintln(os.Stderr, display.Red("Error: "+err.Error()))

	var flagErr *cmd.FlagError
	if errors.As(err, &flagErr) && failed != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprint(os.Stderr, failed.UsageString())
	}
	return 1
}
