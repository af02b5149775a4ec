// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/display"
	"github.com/gaucho-cli/gaucho/internal/cli/printer"
	"github.com/gaucho-cli/gaucho/internal/cli/prompter"
	"github.com/gaucho-cli/gaucho/internal/cli/renderer"
	"github.com/gaucho-cli/gaucho/internal/poll"
	"github.com/gaucho-cli/gaucho/internal/workflow"
)

// TransitionFunc is a workflow that moves one resource into a target state.
type TransitionFunc func(ctx context.Context, id string, timeout time.Duration) (*poll.Result, error)

// Transition describes a command that runs a single lifecycle transition.
type Transition struct {
	Name    string
	Short   string
	Type    string
	Arg     string
	Example string
	Timeout time.Duration

	// Pick selects the workflow from the app once it is configured.
	Pick func(a *app.App) TransitionFunc

	// Hint, when set, is printed after a human facing success.
	Hint func(id string) (msg string, command string)

	// Confirm, when set, asks before running on an interactive terminal
	// unless --yes is given.
	Confirm func(id string) string
}

type TransitionOptions struct {
	ID             string
	Timeout        time.Duration
	OutputConsumer printer.Consumer
	OutputSchema   string
	Yes            bool
}

func NewTransitionCmd(t Transition) *cobra.Command {
	if t.Timeout == 0 {
		t.Timeout = workflow.DefaultTimeout
	}

	command := &cobra.Command{
		Use:   t.Name,
		Short: t.Short,
		Args:  ExactArgs(t.Arg),
		RunE: func(command *cobra.Command, args []string) error {
			opts := &TransitionOptions{ID: args[0]}

			var err error
			if opts.Timeout, err = GetTimeout(command); err != nil {
				return err
			}
			if opts.OutputConsumer, opts.OutputSchema, err = GetOutput(command); err != nil {
				return err
			}

			if t.Confirm != nil {
				opts.Yes, _ = command.Flags().GetBool("yes")
				if !prompter.Interactive() {
					opts.Yes = true
				}
			}

			a, err := AppFromContext(command.Context())
			if err != nil {
				return err
			}

			ok, err := Confirmed(t, opts, prompter.NewBasicPrompter(os.Stdin, os.Stderr))
			if err != nil || !ok {
				return err
			}

			return RunTransition(command.Context(), a, t, opts, os.Stdout)
		},
		Annotations: map[string]string{
			"type":     t.Type,
			"examples": t.Example,
			"args":     "<" + t.Arg + ">",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(SimpleCmdUsageTemplate)

	AddTimeoutFlag(command, t.Timeout, "the "+t.Name)
	AddOutputFlags(command)
	if t.Confirm != nil {
		command.Flags().Bool("yes", false, "Do not ask for confirmation")
	}

	return command
}

// Confirmed asks p before a transition that wants confirmation. --yes and
// machine output skip the question.
func Confirmed(t Transition, opts *TransitionOptions, p prompter.Prompter) (bool, error) {
	if t.Confirm == nil || opts.Yes || opts.OutputConsumer == printer.ConsumerMachine {
		return true, nil
	}

	ok, err := p.Confirm(t.Confirm(opts.ID))
	if err != nil {
		return false, err
	}
	if !ok {
		display.Warning("nothing was changed")
	}
	return ok, nil
}

func RunTransition(ctx context.Context, a *app.App, t Transition, opts *TransitionOptions, w io.Writer) error {
	stop := func() {}
	if opts.OutputConsumer == printer.ConsumerHuman {
		stop = a.Track(t.Name, opts.ID)
	}

	result, err := t.Pick(a)(ctx, opts.ID, opts.Timeout)
	stop()
	if err != nil {
		return RenderError(err)
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		return printer.NewMachineReadablePrinter[apimodel.Resource](w, opts.OutputSchema).Print(result.Resource)
	}

	fmt.Fprint(w, renderer.RenderPollResult(t.Name, opts.ID, result))
	if t.Hint != nil {
		msg, next := t.Hint(opts.ID)
		display.Hint(w, msg, next)
	}
	return nil
}
