// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package poll

import (
	"fmt"
	"time"
)

// TimeoutError means the poll budget ran out before the target state was
// observed. The resource is left as the server last reported it.
type TimeoutError struct {
	Operation string
	Target    string
	LastState string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	op := e.Operation
	if op == "" {
		op = "operation"
	}
	last := e.LastState
	if last == "" {
		last = "unknown"
	}
	return fmt.Sprintf("%s took too long: state is '%s' after %s, expected '%s'. Check Rancher UI for more details", op, last, e.Timeout, e.Target)
}
