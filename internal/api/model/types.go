// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"encoding/json"
)

const (
	ActionActivate      = "activate"
	ActionDeactivate    = "deactivate"
	ActionRemove        = "remove"
	ActionDelete        = "delete"
	ActionUpgrade       = "upgrade"
	ActionFinishUpgrade = "finishupgrade"
	ActionRollback      = "rollback"
	ActionStart         = "start"
	ActionStop          = "stop"
	ActionRestart       = "restart"
	ActionExecute       = "execute"
)

const LinkInstances = "instances"

// Resource is a service or an environment (project) as returned by the API.
// LaunchConfig is kept as raw JSON so upgrades can resubmit it untouched.
type Resource struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Kind         string            `json:"kind,omitempty"`
	State        string            `json:"state"`
	Actions      map[string]string `json:"actions,omitempty"`
	Links        map[string]string `json:"links,omitempty"`
	LaunchConfig json.RawMessage   `json:"launchConfig,omitempty"`
}

// Action returns the URL advertised for the named action and whether the
// server advertised it at all.
func (r *Resource) Action(name string) (string, bool) {
	if r == nil || r.Actions == nil {
		return "", false
	}
	url, ok := r.Actions[name]
	return url, ok && url != ""
}

type Collection[T any] struct {
	Type string `json:"type"`
	Data []T    `json:"data"`
}

type Container struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Type    string            `json:"type"`
	State   string            `json:"state"`
	Actions map[string]string `json:"actions,omitempty"`
}

func (c *Container) Action(name string) (string, bool) {
	if c == nil || c.Actions == nil {
		return "", false
	}
	url, ok := c.Actions[name]
	return url, ok && url != ""
}
