// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package service

import (
	"github.com/spf13/cobra"

	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/cmd"
)

const commandType = "Service"

func ActivateCmd() *cobra.Command {
	return cmd.NewTransitionCmd(cmd.Transition{
		Name:    "activate",
		Short:   "Activate a service and wait until it is active",
		Type:    commandType,
		Arg:     "service_id",
		Example: "{{.Name}} {{.Command}} 1s245",
		Pick: func(a *app.App) cmd.TransitionFunc {
			return a.Runner.Activate
		},
	})
}

func DeactivateCmd() *cobra.Command {
	return cmd.NewTransitionCmd(cmd.Transition{
		Name:    "deactivate",
		Short:   "Deactivate a service and wait until it is inactive",
		Type:    commandType,
		Arg:     "service_id",
		Example: "{{.Name}} {{.Command}} 1s245 --timeout 120",
		Pick: func(a *app.App) cmd.TransitionFunc {
			return a.Runner.Deactivate
		},
		Hint: func(id string) (string, string) {
			return "The service keeps its containers. Bring it back with:", "activate " + id
		},
	})
}

func RemoveCmd() *cobra.Command {
	return cmd.NewTransitionCmd(cmd.Transition{
		Name:    "remove",
		Short:   "Remove an inactive service and wait until it is removed",
		Type:    commandType,
		Arg:     "service_id",
		Example: "{{.Name}} {{.Command}} 1s245",
		Pick: func(a *app.App) cmd.TransitionFunc {
			return a.Runner.Remove
		},
		Confirm: func(id string) string {
			return "Remove service " + id + " and its containers?"
		},
	})
}

func RollbackCmd() *cobra.Command {
	return cmd.NewTransitionCmd(cmd.Transition{
		Name:    "rollback",
		Short:   "Roll an upgraded service back to its previous launch config",
		Type:    "Upgrade",
		Arg:     "service_id",
		Example: "{{.Name}} {{.Command}} 1s245 --timeout 300",
		Pick: func(a *app.App) cmd.TransitionFunc {
			return a.Runner.Rollback
		},
	})
}

func FinishUpgradeCmd() *cobra.Command {
	return cmd.NewTransitionCmd(cmd.Transition{
		Name:    "finish_upgrade",
		Short:   "Finish an upgraded service and drop its old containers",
		Type:    "Upgrade",
		Arg:     "service_id",
		Example: "{{.Name}} {{.Command}} 1s245",
		Pick: func(a *app.App) cmd.TransitionFunc {
			return a.Runner.FinishUpgrade
		},
	})
}
