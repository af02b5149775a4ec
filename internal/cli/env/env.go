// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package env

import (
	"github.com/spf13/cobra"

	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/cmd"
)

const commandType = "Environment"

func DeactivateEnvCmd() *cobra.Command {
	return cmd.NewTransitionCmd(cmd.Transition{
		Name:    "deactivate_env",
		Short:   "Deactivate an environment and wait until it is inactive",
		Type:    commandType,
		Arg:     "environment_id",
		Example: "{{.Name}} {{.Command}} 1a5",
		Pick: func(a *app.App) cmd.TransitionFunc {
			return a.Runner.DeactivateEnv
		},
		Hint: func(id string) (string, string) {
			return "An inactive environment can now be deleted with:", "delete_env " + id
		},
	})
}

func DeleteEnvCmd() *cobra.Command {
	return cmd.NewTransitionCmd(cmd.Transition{
		Name:    "delete_env",
		Short:   "Delete an inactive environment and wait until it is removed",
		Type:    commandType,
		Arg:     "environment_id",
		Example: "{{.Name}} {{.Command}} 1a5",
		Pick: func(a *app.App) cmd.TransitionFunc {
			return a.Runner.DeleteEnv
		},
		Confirm: func(id string) string {
			return "Delete environment " + id + " with everything in it?"
		},
	})
}
