// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import "fmt"

// ErrorResponse is the body the API sends along with a 4xx/5xx status.
type ErrorResponse struct {
	Type      string `json:"type"`
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	FieldName string `json:"fieldName,omitempty"`
}

func (e ErrorResponse) Error() string {
	switch {
	case e.Message != "" && e.FieldName != "":
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.FieldName)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	default:
		return e.Code
	}
}
