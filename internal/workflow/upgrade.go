// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
	"github.com/gaucho-cli/gaucho/internal/poll"
)

type UpgradeOptions struct {
	ServiceID        string
	StartFirst       bool
	CompletePrevious bool
	ImageUUID        string
	AutoComplete     bool
	BatchSize        int
	IntervalMillis   int
	ReplaceEnvName   string
	ReplaceEnvValue  *string
	Timeout          time.Duration
}

func DefaultUpgradeOptions(serviceID string) UpgradeOptions {
	return UpgradeOptions{
		ServiceID:      serviceID,
		StartFirst:     true,
		BatchSize:      1,
		IntervalMillis: 10000,
		Timeout:        DefaultTimeout,
	}
}

func (o UpgradeOptions) Validate() error {
	if o.ServiceID == "" {
		return fmt.Errorf("service id is required")
	}
	if o.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", o.BatchSize)
	}
	if o.IntervalMillis < 0 {
		return fmt.Errorf("interval must not be negative, got %d", o.IntervalMillis)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", o.Timeout)
	}
	return nil
}

// ReplaceEnv requests that environment variable name be set to value. An
// empty value is set as given.
func (o *UpgradeOptions) ReplaceEnv(name, value string) {
	o.ReplaceEnvName = name
	o.ReplaceEnvValue = &value
}

func (o UpgradeOptions) replacesEnv() bool {
	return o.ReplaceEnvName != "" && o.ReplaceEnvValue != nil
}

// Upgrade performs an in-service upgrade of a service and, with AutoComplete,
// confirms it. A timeout leaves the service as the server reports it.
func (r *Runner) Upgrade(ctx context.Context, opts UpgradeOptions) (*poll.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	fetch := r.serviceFetcher(opts.ServiceID)

	service, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if opts.CompletePrevious && service.State == lifecycle.StateUpgraded {
		slog.Info("Finishing previous upgrade", "id", service.ID)

		result, err := r.transition(ctx, lifecycle.FinishUpgrade, service, nil, fetch, opts.Timeout)
		var timeout *poll.TimeoutError
		if err != nil && !errors.As(err, &timeout) {
			return result, err
		}
		if timeout != nil {
			slog.Warn("Previous upgrade did not finish in time", "id", service.ID, "state", result.State())
		}
		if result != nil && result.Resource != nil {
			service = result.Resource
		}
	}

	if _, _, err := lifecycle.Require(lifecycle.Upgrade, service); err != nil {
		return nil, err
	}

	launchConfig, err := OverrideLaunchConfig(service.LaunchConfig, opts)
	if err != nil {
		return nil, err
	}

	request := apimodel.UpgradeRequest{
		InServiceStrategy: apimodel.InServiceStrategy{
			BatchSize:              opts.BatchSize,
			IntervalMillis:         opts.IntervalMillis,
			StartFirst:             apimodel.StringBool(opts.StartFirst),
			LaunchConfig:           launchConfig,
			SecondaryLaunchConfigs: []any{},
		},
	}

	result, err := r.transition(ctx, lifecycle.Upgrade, service, request, fetch, opts.Timeout)
	if err != nil {
		return result, err
	}

	if !opts.AutoComplete {
		return result, nil
	}

	if result.State() != lifecycle.StateUpgraded {
		return result, nil
	}

	return r.transition(ctx, lifecycle.FinishUpgrade, result.Resource, nil, fetch, opts.Timeout)
}

// OverrideLaunchConfig returns a copy of launchConfig with the requested
// image and environment entry replaced. The input is never modified. A single
// environment key is assigned whether or not it existed before.
func OverrideLaunchConfig(launchConfig json.RawMessage, opts UpgradeOptions) (json.RawMessage, error) {
	out := slices.Clone(launchConfig)

	if opts.replacesEnv() {
		value := *opts.ReplaceEnvValue
		if old := gjson.GetBytes(out, "environment").Map()[opts.ReplaceEnvName]; old.Exists() {
			slog.Info("Replacing environment variable", "name", opts.ReplaceEnvName, "old", old.String(), "new", value)
		} else {
			slog.Info("Setting environment variable", "name", opts.ReplaceEnvName, "new", value)
		}

		updated, err := sjson.SetBytes(out, "environment."+pathKey(opts.ReplaceEnvName), value)
		if err != nil {
			return nil, fmt.Errorf("failed to set environment variable %s: %w", opts.ReplaceEnvName, err)
		}
		out = updated
	}

	if opts.ImageUUID != "" {
		slog.Info("Replacing image", "old", gjson.GetBytes(out, "imageUuid").String(), "new", opts.ImageUUID)

		updated, err := sjson.SetBytes(out, "imageUuid", opts.ImageUUID)
		if err != nil {
			return nil, fmt.Errorf("failed to set image: %w", err)
		}
		out = updated
	}

	return out, nil
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
	`!`, `\!`,
	`=`, `\=`,
	`<`, `\<`,
	`>`, `\>`,
	`%`, `\%`,
	`:`, `\:`,
)

// pathKey turns an arbitrary key into a single sjson path component. Numeric
// keys get the ':' prefix so they stay object keys.
func pathKey(key string) string {
	escaped := pathEscaper.Replace(key)
	if isDigits(key) {
		return ":" + escaped
	}
	return escaped
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
