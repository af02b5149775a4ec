// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

type ExecuteRequest struct {
	AttachStdin  bool     `json:"attachStdin"`
	AttachStdout bool     `json:"attachStdout"`
	Command      []string `json:"command"`
	Tty          bool     `json:"tty"`
}

// NewShellExecuteRequest wraps command in a non-interactive /bin/sh -c call.
func NewShellExecuteRequest(command string) ExecuteRequest {
	return ExecuteRequest{
		AttachStdin:  true,
		AttachStdout: true,
		Command:      []string{"/bin/sh", "-c", command},
		Tty:          true,
	}
}

// HostAccess is the answer to an execute action: a one time token and the
// websocket endpoint that accepts it.
type HostAccess struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}
