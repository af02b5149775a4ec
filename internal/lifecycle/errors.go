// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package lifecycle

import "fmt"

// PreconditionError means the operation was refused locally and no action
// was sent to the server.
type PreconditionError struct {
	Operation     Operation
	State         string
	Action        string
	MissingAction bool
}

func (e *PreconditionError) Error() string {
	if e.MissingAction {
		return fmt.Sprintf("cannot %s: the server does not offer the '%s' action in state '%s'", e.Operation, e.Action, e.State)
	}
	if e.Action == "" {
		return fmt.Sprintf("unknown operation '%s'", e.Operation)
	}
	return fmt.Sprintf("cannot %s due to its current state: %s", e.Operation, e.State)
}
