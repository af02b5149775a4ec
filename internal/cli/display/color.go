// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

import (
	"strings"

	"github.com/fatih/color"
	gkcolor "github.com/gookit/color"
)

func Gold(s string) string {
	return gkcolor.RGB(181, 181, 91).Sprint(s)
}
func Goldf(format string, args ...any) string {
	return gkcolor.RGB(181, 181, 91).Sprintf(format, args...)
}

func Green(s string) string {
	return gkcolor.FgGreen.Sprint(s)
}

func Grey(s string) string {
	return gkcolor.RGB(138, 138, 138).Sprint(s)
}
func Greyf(format string, args ...any) string {
	return gkcolor.RGB(138, 138, 138).Sprintf(format, args...)
}

func LightBlue(s string) string {
	return gkcolor.HiBlue.Sprint(s)
}

func Red(s string) string {
	return gkcolor.FgRed.Sprint(s)
}
func Redf(s string, args ...any) string {
	return gkcolor.FgRed.Sprintf(s, args...)
}

var (
	stateSettled    = color.New(color.FgHiGreen).SprintFunc()
	stateUpgraded   = color.New(color.FgHiYellow).SprintFunc()
	stateTransition = color.New(color.FgYellow).SprintFunc()
	stateStopped    = color.New(color.FgHiBlack).SprintFunc()
	stateFailed     = color.New(color.FgHiRed).SprintFunc()
)

// transitional are the states Rancher reports while a resource is moving
// between settled states.
var transitional = map[string]bool{
	"activating":        true,
	"creating":          true,
	"deactivating":      true,
	"finishing-upgrade": true,
	"registering":       true,
	"removing":          true,
	"requested":         true,
	"restarting":        true,
	"rolling-back":      true,
	"starting":          true,
	"stopping":          true,
	"updating-active":   true,
	"updating-inactive": true,
	"upgrading":         true,
}

// State colours a resource or container state by what it means to an
// operator: settled, waiting for a decision, moving, stopped or broken.
func State(state string) string {
	switch {
	case state == "active" || state == "running":
		return stateSettled(state)
	case state == "upgraded":
		return stateUpgraded(state)
	case state == "inactive" || state == "stopped" || state == "removed" || state == "purged":
		return stateStopped(state)
	case strings.Contains(state, "error") || state == "unhealthy":
		return stateFailed(state)
	case transitional[state]:
		return stateTransition(state)
	default:
		return state
	}
}
