// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"encoding/json"
)

// StringBool is a boolean that the API expects as the string "true" or "false".
type StringBool bool

func (b StringBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte(`"true"`), nil
	}
	return []byte(`"false"`), nil
}

func (b *StringBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"true"`, `true`:
		*b = true
	case `"false"`, `false`, `null`:
		*b = false
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = s == "true"
	}
	return nil
}

type InServiceStrategy struct {
	BatchSize              int             `json:"batchSize"`
	IntervalMillis         int             `json:"intervalMillis"`
	StartFirst             StringBool      `json:"startFirst"`
	LaunchConfig           json.RawMessage `json:"launchConfig"`
	SecondaryLaunchConfigs []any           `json:"secondaryLaunchConfigs"`
}

type UpgradeRequest struct {
	InServiceStrategy InServiceStrategy `json:"inServiceStrategy"`
}
