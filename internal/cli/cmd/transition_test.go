// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package cmd

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/cli/app"
	"github.com/gaucho-cli/gaucho/internal/cli/config"
	"github.com/gaucho-cli/gaucho/internal/cli/printer"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
)

// serviceServer serves a single service that deactivates on request.
func serviceServer(t *testing.T, state string) *httptest.Server {
	t.Helper()

	var mu sync.Mutex
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("GET /v1/services/1s5", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		actions := map[string]string{}
		if state == lifecycle.StateActive {
			actions[apimodel.ActionDeactivate] = srv.URL + "/v1/services/1s5?action=deactivate"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(apimodel.Resource{ID: "1s5", Name: "web", Type: "service", State: state, Actions: actions})
	})
	mux.HandleFunc("POST /v1/services/1s5", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		state = lifecycle.StateInactive
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1s5"}`))
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testApp(url string) *app.App {
	a := app.NewApp(config.Settings{URL: url, AccessKey: "userid", SecretKey: "password", SSLVerify: true})
	a.Progress = nil
	a.Poller.Sleep = func(context.Context, time.Duration) error { return nil }
	return a
}

var deactivate = Transition{
	Name: "deactivate",
	Arg:  "service_id",
	Pick: func(a *app.App) TransitionFunc { return a.Runner.Deactivate },
	Hint: func(id string) (string, string) { return "Bring it back with:", "activate " + id },
}

func TestRunTransition_HumanOutput(t *testing.T) {
	a := testApp(serviceServer(t, lifecycle.StateActive).URL)

	var out bytes.Buffer
	err := RunTransition(context.Background(), a, deactivate, &TransitionOptions{
		ID:             "1s5",
		Timeout:        10 * time.Second,
		OutputConsumer: printer.ConsumerHuman,
	}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "deactivate")
	assert.Contains(t, out.String(), "inactive")
	assert.Contains(t, out.String(), "activate 1s5")
}

func TestRunTransition_MachineOutput(t *testing.T) {
	a := testApp(serviceServer(t, lifecycle.StateActive).URL)

	var out bytes.Buffer
	err := RunTransition(context.Background(), a, deactivate, &TransitionOptions{
		ID:             "1s5",
		Timeout:        10 * time.Second,
		OutputConsumer: printer.ConsumerMachine,
		OutputSchema:   "json",
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, "inactive", gjson.GetBytes(out.Bytes(), "state").String())
	assert.Equal(t, "1s5", gjson.GetBytes(out.Bytes(), "id").String())
}

func TestRunTransition_RendersPreconditionFailure(t *testing.T) {
	a := testApp(serviceServer(t, lifecycle.StateInactive).URL)

	var out bytes.Buffer
	err := RunTransition(context.Background(), a, deactivate, &TransitionOptions{
		ID:             "1s5",
		Timeout:        10 * time.Second,
		OutputConsumer: printer.ConsumerHuman,
	}, &out)

	var rendered *RenderedError
	require.True(t, errors.As(err, &rendered))
	assert.Contains(t, rendered.Message, "inactive")

	var precondition *lifecycle.PreconditionError
	assert.True(t, errors.As(err, &precondition))
	assert.Empty(t, out.String())
}

func TestNewTransitionCmd_Flags(t *testing.T) {
	command := NewTransitionCmd(deactivate)

	assert.Equal(t, "deactivate", command.Use)
	assert.Equal(t, "<service_id>", command.Annotations["args"])

	timeout, err := GetTimeout(command)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, timeout)

	assert.Error(t, command.Args(command, nil))
	assert.NoError(t, command.Args(command, []string{"1s5"}))
}

type answer bool

func (a answer) Confirm(string) (bool, error) {
	return bool(a), nil
}

func TestConfirmed(t *testing.T) {
	remove := Transition{Name: "remove", Confirm: func(id string) string { return "Remove service " + id + "?" }}
	human := &TransitionOptions{ID: "1s5", OutputConsumer: printer.ConsumerHuman}

	ok, err := Confirmed(remove, human, answer(true))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Confirmed(remove, human, answer(false))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = Confirmed(remove, &TransitionOptions{ID: "1s5", OutputConsumer: printer.ConsumerHuman, Yes: true}, answer(false))
	assert.True(t, ok)

	ok, _ = Confirmed(remove, &TransitionOptions{ID: "1s5", OutputConsumer: printer.ConsumerMachine}, answer(false))
	assert.True(t, ok)

	ok, _ = Confirmed(deactivate, human, answer(false))
	assert.True(t, ok)
}

func TestNewTransitionCmd_YesFlagOnlyWhenConfirming(t *testing.T) {
	assert.Nil(t, NewTransitionCmd(deactivate).Flags().Lookup("yes"))

	remove := Transition{Name: "remove", Arg: "service_id", Confirm: func(id string) string { return id }}
	assert.NotNil(t, NewTransitionCmd(remove).Flags().Lookup("yes"))
}
