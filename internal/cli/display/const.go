// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool   = "gaucho"
	Banner = `
  __ _  __ _ _   _  ___| |__   ___
 / _' |/ _' | | | |/ __| '_ \ / _ \
| (_| | (_| | |_| | (__| | | | (_) |
 \__, |\__,_|\__,_|\___|_| |_|\___/
 |___/                      vversion
`
)
