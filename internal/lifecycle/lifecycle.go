// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package lifecycle holds the states services and environments go through
// and which operation may start from which state.
package lifecycle

import (
	"net/http"
	"slices"

	"github.com/looplab/fsm"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
)

const (
	StateActive         = "active"
	StateInactive       = "inactive"
	StateUpdatingActive = "updating-active"
	StateUpgraded       = "upgraded"
	StateRemoved        = "removed"
)

type Operation string

const (
	Activate      Operation = "activate"
	Deactivate    Operation = "deactivate"
	DeactivateEnv Operation = "deactivate_env"
	Remove        Operation = "remove"
	DeleteEnv     Operation = "delete_env"
	Rollback      Operation = "rollback"
	Upgrade       Operation = "upgrade"
	FinishUpgrade Operation = "finish_upgrade"
)

type Transition struct {
	Operation Operation
	From      []string
	Action    string
	Method    string
	Target    string
}

var transitions = []Transition{
	{Operation: Activate, From: []string{StateInactive}, Action: apimodel.ActionActivate, Method: http.MethodPost, Target: StateActive},
	{Operation: Deactivate, From: []string{StateActive, StateUpdatingActive}, Action: apimodel.ActionDeactivate, Method: http.MethodPost, Target: StateInactive},
	{Operation: DeactivateEnv, From: []string{StateActive}, Action: apimodel.ActionDeactivate, Method: http.MethodPost, Target: StateInactive},
	{Operation: Remove, From: []string{StateInactive}, Action: apimodel.ActionRemove, Method: http.MethodPost, Target: StateRemoved},
	{Operation: DeleteEnv, From: []string{StateInactive}, Action: apimodel.ActionDelete, Method: http.MethodDelete, Target: StateRemoved},
	{Operation: Rollback, From: []string{StateUpgraded}, Action: apimodel.ActionRollback, Method: http.MethodPost, Target: StateActive},
	{Operation: Upgrade, From: []string{StateActive}, Action: apimodel.ActionUpgrade, Method: http.MethodPost, Target: StateUpgraded},
	{Operation: FinishUpgrade, From: []string{StateUpgraded}, Action: apimodel.ActionFinishUpgrade, Method: http.MethodPost, Target: StateActive},
}

var events = func() fsm.Events {
	evs := make(fsm.Events, 0, len(transitions))
	for _, t := range transitions {
		evs = append(evs, fsm.EventDesc{Name: string(t.Operation), Src: t.From, Dst: t.Target})
	}
	return evs
}()

// machine is positioned at the observed state. The server owns the real
// state, so it is only ever asked questions, never driven.
func machine(state string) *fsm.FSM {
	return fsm.NewFSM(state, events, fsm.Callbacks{})
}

func Lookup(op Operation) (Transition, bool) {
	for _, t := range transitions {
		if t.Operation == op {
			return t, true
		}
	}
	return Transition{}, false
}

// Can reports whether op may start from state.
func Can(op Operation, state string) bool {
	return machine(state).Can(string(op))
}

// Available lists the operations that may start from state, sorted.
func Available(state string) []Operation {
	var ops []Operation
	for _, name := range machine(state).AvailableTransitions() {
		ops = append(ops, Operation(name))
	}
	slices.Sort(ops)
	return ops
}

// Require checks op against the resource's state and the actions the server
// advertised, and returns the transition together with the action URL to call.
func Require(op Operation, r *apimodel.Resource) (Transition, string, error) {
	t, ok := Lookup(op)
	if !ok {
		return Transition{}, "", &PreconditionError{Operation: op}
	}

	state := ""
	if r != nil {
		state = r.State
	}

	if !Can(op, state) {
		return t, "", &PreconditionError{Operation: op, State: state, Action: t.Action}
	}

	url, ok := r.Action(t.Action)
	if !ok {
		return t, "", &PreconditionError{Operation: op, State: state, Action: t.Action, MissingAction: true}
	}

	return t, url, nil
}
