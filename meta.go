// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package gaucho

var Version = "0.0.0"

const DefaultHost = "http://rancher.local:8080/v1"

const APIVersionSuffix = "/v1"
