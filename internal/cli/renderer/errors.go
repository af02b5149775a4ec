// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"errors"
	"fmt"

	"github.com/gaucho-cli/gaucho/internal/api"
	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/cli/display"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
	"github.com/gaucho-cli/gaucho/internal/poll"
	"github.com/gaucho-cli/gaucho/internal/workflow"
)

// RenderErrorMessage turns the errors a workflow can return into operator
// messages. Unknown errors are rendered as they are.
func RenderErrorMessage(err error) (string, error) {
	if err == nil {
		return "", fmt.Errorf("no error to render")
	}

	var precondition *lifecycle.PreconditionError
	if errors.As(err, &precondition) {
		msg := display.Redf("%s\n", precondition.Error())
		if !precondition.MissingAction && precondition.State != "" {
			msg += RenderAvailable(precondition.State)
		}
		return msg, nil
	}

	var timeout *poll.TimeoutError
	if errors.As(err, &timeout) {
		return display.Redf("%s\n", timeout.Error()) +
			display.Gold("The server keeps working on it; nothing was rolled back.\n"), nil
	}

	var empty *workflow.EmptyResourceError
	if errors.As(err, &empty) {
		return display.Redf("%s\n", empty.Error()), nil
	}

	var apiErr apimodel.ErrorResponse
	var fetchErr *api.FetchError
	if errors.As(err, &fetchErr) {
		if errors.As(err, &apiErr) {
			return display.Redf("could not read %s: %s\n", fetchErr.URL, apiErr.Error()), nil
		}
		return display.Redf("%s\n", fetchErr.Error()), nil
	}

	var actionErr *api.ActionError
	if errors.As(err, &actionErr) {
		if errors.As(err, &apiErr) {
			return display.Redf("the server refused %s %s: %s\n", actionErr.Method, actionErr.URL, apiErr.Error()), nil
		}
		return display.Redf("%s\n", actionErr.Error()), nil
	}

	return display.Redf("%s\n", err.Error()), nil
}
