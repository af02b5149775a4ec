// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package printer

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/cli/renderer"
)

type Consumer string

const (
	ConsumerHuman   Consumer = "human"
	ConsumerMachine Consumer = "machine"
)

// Validate checks the output flags every command shares.
func Validate(consumer Consumer, schema string) error {
	if consumer != ConsumerHuman && consumer != ConsumerMachine {
		return fmt.Errorf("output consumer must be either 'human' or 'machine'")
	}
	if consumer == ConsumerMachine {
		if schema != "json" && schema != "yaml" {
			return fmt.Errorf("output schema must be either 'json' or 'yaml' for machine consumer")
		}
	}

	return nil
}

type MachineReadablePrinter[T any] struct {
	w      io.Writer
	format string
}

func NewMachineReadablePrinter[T any](w io.Writer, format string) *MachineReadablePrinter[T] {
	return &MachineReadablePrinter[T]{
		w:      w,
		format: format,
	}
}

func (p *MachineReadablePrinter[T]) Print(v *T) error {
	var data []byte
	var err error
	switch p.format {
	case "json":
		data, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	case "yaml":
		intermediate, convertErr := convertRawMessages(v)
		if convertErr != nil {
			return fmt.Errorf("convert raw messages: %w", convertErr)
		}

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(intermediate); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = p.w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// convertRawMessages round trips through JSON so embedded raw JSON, such as a
// launch config, comes out as YAML structure instead of a byte list.
func convertRawMessages(v any) (any, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var result any
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// PrintRaw re-encodes a raw API response in the requested format.
func PrintRaw(w io.Writer, raw []byte, format string) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return NewMachineReadablePrinter[any](w, format).Print(&v)
}

type HumanReadablePrinter[T any] struct {
	w io.Writer
}

func NewHumanReadablePrinter[T any](w io.Writer) *HumanReadablePrinter[T] {
	return &HumanReadablePrinter[T]{
		w: w,
	}
}

type PrintOptions struct {
	MaxResults int
}

func (p *HumanReadablePrinter[T]) Print(v any, opts PrintOptions) error {
	var output string
	var err error

	switch v := any(v).(type) {
	case *apimodel.Resource:
		output, err = renderer.RenderResource(v)
		if err != nil {
			return fmt.Errorf("render resource: %w", err)
		}
	case *[]apimodel.Resource:
		output, err = renderer.RenderResources(*v, opts.MaxResults)
		if err != nil {
			return fmt.Errorf("render resources: %w", err)
		}
	case []byte:
		output, err = renderer.RenderQuery(v, opts.MaxResults)
		if err != nil {
			return fmt.Errorf("render query: %w", err)
		}
	default:
		return fmt.Errorf("unsupported type: %T", v)
	}

	_, err = p.w.Write([]byte(output))
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
