// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package workflow

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaucho-cli/gaucho/internal/api"
	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
	"github.com/gaucho-cli/gaucho/internal/poll"
)

func TestRollback_RequiresUpgraded(t *testing.T) {
	for _, state := range []string{lifecycle.StateActive, lifecycle.StateInactive, lifecycle.StateUpdatingActive, "upgrading"} {
		t.Run(state, func(t *testing.T) {
			f := newFakeRancher(t)
			f.addService(&fakeResource{id: "1s5", state: state})

			_, err := f.runner().Rollback(context.Background(), "1s5", DefaultTimeout)

			var precondition *lifecycle.PreconditionError
			require.True(t, errors.As(err, &precondition))
			assert.Equal(t, state, precondition.State)
			assert.Empty(t, f.mutations())
		})
	}
}

func TestRollback_ReturnsToActive(t *testing.T) {
	f := newFakeRancher(t)
	f.addService(&fakeResource{id: "1s5", state: lifecycle.StateUpgraded, settleAfter: 2})

	result, err := f.runner().Rollback(context.Background(), "1s5", DefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateActive, result.State())
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, []string{apimodel.ActionRollback}, actionsOf(f.mutations()))
}

func TestServiceTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		run    func(*Runner, context.Context, string, time.Duration) (*poll.Result, error)
		action string
		to     string
	}{
		{
			name:   "activate",
			from:   lifecycle.StateInactive,
			run:    (*Runner).Activate,
			action: apimodel.ActionActivate,
			to:     lifecycle.StateActive,
		},
		{
			name:   "deactivate",
			from:   lifecycle.StateActive,
			run:    (*Runner).Deactivate,
			action: apimodel.ActionDeactivate,
			to:     lifecycle.StateInactive,
		},
		{
			name:   "deactivate while updating",
			from:   lifecycle.StateUpdatingActive,
			run:    (*Runner).Deactivate,
			action: apimodel.ActionDeactivate,
			to:     lifecycle.StateInactive,
		},
		{
			name:   "remove",
			from:   lifecycle.StateInactive,
			run:    (*Runner).Remove,
			action: apimodel.ActionRemove,
			to:     lifecycle.StateRemoved,
		},
		{
			name:   "finish upgrade",
			from:   lifecycle.StateUpgraded,
			run:    (*Runner).FinishUpgrade,
			action: apimodel.ActionFinishUpgrade,
			to:     lifecycle.StateActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRancher(t)
			f.addService(&fakeResource{id: "1s5", state: tt.from})

			result, err := tt.run(f.runner(), context.Background(), "1s5", DefaultTimeout)
			require.NoError(t, err)
			assert.Equal(t, tt.to, result.State())

			mutations := f.mutations()
			require.Len(t, mutations, 1)
			assert.Equal(t, http.MethodPost, mutations[0].Method)
			assert.Equal(t, tt.action, mutations[0].Action)
			assert.Empty(t, mutations[0].Body)
		})
	}
}

func TestActivate_RejectsActive(t *testing.T) {
	f := newFakeRancher(t)
	f.addService(&fakeResource{id: "1s5", state: lifecycle.StateActive})

	_, err := f.runner().Activate(context.Background(), "1s5", DefaultTimeout)

	var precondition *lifecycle.PreconditionError
	require.True(t, errors.As(err, &precondition))
	assert.Empty(t, f.mutations())
}

func TestDeactivate_TimesOut(t *testing.T) {
	f := newFakeRancher(t)
	f.addService(&fakeResource{id: "1s5", state: lifecycle.StateActive, settleAfter: never})

	result, err := f.runner().Deactivate(context.Background(), "1s5", 10*time.Second)

	var timeout *poll.TimeoutError
	require.True(t, errors.As(err, &timeout))
	assert.Equal(t, lifecycle.StateInactive, timeout.Target)
	assert.Equal(t, 5, result.Attempts)
	assert.Contains(t, err.Error(), "Check Rancher UI")
}

func TestTransition_MissingServiceIsFetchError(t *testing.T) {
	f := newFakeRancher(t)

	_, err := f.runner().Activate(context.Background(), "nope", DefaultTimeout)

	var fetchErr *api.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Empty(t, f.mutations())
}

func TestDeactivateEnv(t *testing.T) {
	f := newFakeRancher(t)
	f.addProject(&fakeResource{id: "1a5", name: "staging", state: lifecycle.StateActive})

	result, err := f.runner().DeactivateEnv(context.Background(), "1a5", DefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateInactive, result.State())

	mutations := f.mutations()
	require.Len(t, mutations, 1)
	assert.Equal(t, "/v1/projects/1a5", mutations[0].Path)
}

func TestDeactivateEnv_RejectsUpdatingActive(t *testing.T) {
	f := newFakeRancher(t)
	f.addProject(&fakeResource{id: "1a5", state: lifecycle.StateUpdatingActive})

	_, err := f.runner().DeactivateEnv(context.Background(), "1a5", DefaultTimeout)

	var precondition *lifecycle.PreconditionError
	require.True(t, errors.As(err, &precondition))
	assert.Empty(t, f.mutations())
}

func TestDeleteEnv_UsesDelete(t *testing.T) {
	f := newFakeRancher(t)
	f.addProject(&fakeResource{id: "1a5", state: lifecycle.StateInactive})

	result, err := f.runner().DeleteEnv(context.Background(), "1a5", DefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateRemoved, result.State())

	mutations := f.mutations()
	require.Len(t, mutations, 1)
	assert.Equal(t, http.MethodDelete, mutations[0].Method)
	assert.Equal(t, apimodel.ActionDelete, mutations[0].Action)
}
