// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/segmentio/ksuid"

	"github.com/gaucho-cli/gaucho/internal/api"
	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/cli/config"
	"github.com/gaucho-cli/gaucho/internal/cli/display"
	"github.com/gaucho-cli/gaucho/internal/poll"
	"github.com/gaucho-cli/gaucho/internal/workflow"
)

const spinnerTick = 100 * time.Millisecond

// App carries everything a command needs once the settings are known.
type App struct {
	Settings     config.Settings
	InvocationID string

	Client *api.Client
	Poller *poll.Poller
	Runner *workflow.Runner

	// Progress receives the spinner. Nil disables it.
	Progress io.Writer
}

func NewApp(settings config.Settings) *App {
	invocationID := ksuid.New().String()

	client := api.NewClient(api.Config{
		Host:               settings.URL,
		AccessKey:          settings.AccessKey,
		SecretKey:          settings.SecretKey,
		InsecureSkipVerify: !settings.SSLVerify,
		RootCAs:            settings.RootCAs,
		RequestID:          invocationID,
	}, nil)

	poller := poll.New()

	return &App{
		Settings:     settings,
		InvocationID: invocationID,
		Client:       client,
		Poller:       poller,
		Runner:       workflow.NewRunner(client, poller),
		Progress:     os.Stderr,
	}
}

// Track shows a spinner while operation polls and keeps its suffix on the
// last observed state. The returned func stops it.
func (a *App) Track(operation, id string) func() {
	if a.Progress == nil {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[11], spinnerTick, spinner.WithWriter(a.Progress))
	_ = s.Color("yellow")
	s.Suffix = fmt.Sprintf(" %s %s...", operation, id)

	a.Poller.Observer = func(attempt int, r *apimodel.Resource) {
		s.Lock()
		defer s.Unlock()
		s.Suffix = progressSuffix(operation, id, attempt, r)
	}

	s.Start()

	return func() {
		s.Stop()
		a.Poller.Observer = nil
	}
}

func progressSuffix(operation, id string, attempt int, r *apimodel.Resource) string {
	state := "waiting for the server"
	if r != nil {
		state = display.State(r.State)
	}
	if attempt == 0 {
		return fmt.Sprintf(" %s %s: %s", operation, id, state)
	}
	return fmt.Sprintf(" %s %s: %s %s", operation, id, state, display.Greyf("(poll %d)", attempt))
}
