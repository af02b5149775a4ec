// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
)

type stateOutput struct {
	ID    string `json:"id" yaml:"id"`
	State string `json:"state" yaml:"state"`
}

func TestMachineReadablePrinter(t *testing.T) {
	out := stateOutput{ID: "1s5", State: "upgraded"}

	t.Run("prints json objects", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		printer := NewMachineReadablePrinter[stateOutput](buf, "json")
		err := printer.Print(&out)
		assert.NoError(t, err)
		assert.Equal(t, `{"id":"1s5","state":"upgraded"}`+"\n", buf.String())
	})

	t.Run("prints yaml", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		printer := NewMachineReadablePrinter[stateOutput](buf, "yaml")
		err := printer.Print(&out)
		assert.NoError(t, err)

		var result stateOutput
		err = yaml.Unmarshal(buf.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, out, result)
		assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
	})

	t.Run("rejects other formats", func(t *testing.T) {
		printer := NewMachineReadablePrinter[stateOutput](bytes.NewBuffer(nil), "xml")
		assert.Error(t, printer.Print(&out))
	})
}

func TestMachineReadablePrinter_LaunchConfigAsYAMLStructure(t *testing.T) {
	resource := apimodel.Resource{
		ID:           "1s5",
		State:        "active",
		LaunchConfig: json.RawMessage(`{"imageUuid":"docker:nginx","environment":{"FOO":"bar"}}`),
	}

	buf := bytes.NewBuffer(nil)
	require.NoError(t, NewMachineReadablePrinter[apimodel.Resource](buf, "yaml").Print(&resource))

	var result map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
	launchConfig, ok := result["launchConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "docker:nginx", launchConfig["imageUuid"])
}

func TestPrintRaw(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, PrintRaw(buf, []byte(`{"type":"collection","data":[{"id":"1s5"}]}`), "yaml"))

	var result map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "collection", result["type"])

	assert.Error(t, PrintRaw(bytes.NewBuffer(nil), []byte(`not json`), "json"))
}

func TestHumanReadablePrinter(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	p := NewHumanReadablePrinter[apimodel.Resource](buf)

	err := p.Print(&apimodel.Resource{ID: "1s5", Name: "web", State: "active"}, PrintOptions{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1s5")

	err = p.Print(42, PrintOptions{})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(ConsumerHuman, ""))
	assert.NoError(t, Validate(ConsumerMachine, "json"))
	assert.NoError(t, Validate(ConsumerMachine, "yaml"))

	err := Validate("robot", "json")
	assert.ErrorContains(t, err, "output consumer must be either 'human' or 'machine'")

	err = Validate(ConsumerMachine, "xml")
	assert.ErrorContains(t, err, "output schema must be either 'json' or 'yaml'")
}
