// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package workflow

import "fmt"

// EmptyResourceError means an operation needed at least one match and the
// server returned none.
type EmptyResourceError struct {
	Kind  string
	Query string
}

func (e *EmptyResourceError) Error() string {
	return fmt.Sprintf("no %s found for '%s'", e.Kind, e.Query)
}
