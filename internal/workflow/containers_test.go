// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
)

func TestStartService_SkipsContainersWithoutTheAction(t *testing.T) {
	f := newFakeRancher(t)
	svc := f.addService(&fakeResource{id: "1s5", state: lifecycle.StateActive})
	svc.containers = []apimodel.Container{
		f.container("1i1", "stopped", apimodel.ActionStart),
		f.container("1i2", "running", apimodel.ActionStop, apimodel.ActionRestart),
		f.container("1i3", "stopped", apimodel.ActionStart),
	}

	results, err := f.runner().StartService(context.Background(), "1s5")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.False(t, results[0].Skipped)
	assert.True(t, results[1].Skipped)
	assert.False(t, results[2].Skipped)

	mutations := f.mutations()
	require.Len(t, mutations, 2)
	assert.Equal(t, "/v1/containers/1i1", mutations[0].Path)
	assert.Equal(t, "/v1/containers/1i3", mutations[1].Path)
	assert.Equal(t, []string{apimodel.ActionStart, apimodel.ActionStart}, actionsOf(mutations))
}

func TestStartContainers_IsStartService(t *testing.T) {
	f := newFakeRancher(t)
	svc := f.addService(&fakeResource{id: "1s5", state: lifecycle.StateActive})
	svc.containers = []apimodel.Container{f.container("1i1", "stopped", apimodel.ActionStart)}

	results, err := f.runner().StartContainers(context.Background(), "1s5")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, apimodel.ActionStart, results[0].Action)
}

func TestStopAndRestartService(t *testing.T) {
	f := newFakeRancher(t)
	svc := f.addService(&fakeResource{id: "1s5", state: lifecycle.StateActive})
	svc.containers = []apimodel.Container{
		f.container("1i1", "running", apimodel.ActionStop, apimodel.ActionRestart),
		f.container("1i2", "running", apimodel.ActionStop, apimodel.ActionRestart),
	}

	_, err := f.runner().StopService(context.Background(), "1s5")
	require.NoError(t, err)
	_, err = f.runner().RestartService(context.Background(), "1s5")
	require.NoError(t, err)

	assert.Equal(t, []string{
		apimodel.ActionStop, apimodel.ActionStop,
		apimodel.ActionRestart, apimodel.ActionRestart,
	}, actionsOf(f.mutations()))
}

func TestStartService_NoContainers(t *testing.T) {
	f := newFakeRancher(t)
	f.addService(&fakeResource{id: "1s5", state: lifecycle.StateActive})

	results, err := f.runner().StartService(context.Background(), "1s5")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, f.mutations())
}
