// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ddddddO/gtree"
	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/tidwall/gjson"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
	"github.com/gaucho-cli/gaucho/internal/cli/display"
	"github.com/gaucho-cli/gaucho/internal/lifecycle"
	"github.com/gaucho-cli/gaucho/internal/poll"
	"github.com/gaucho-cli/gaucho/internal/workflow"
)

func newTable(buf *strings.Builder) *tablewriter.Table {
	return tablewriter.NewTable(buf,
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))
}

// RenderQuery renders whatever the services endpoint returned: a single
// resource or a collection.
func RenderQuery(raw []byte, maxRows int) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("response is not valid JSON")
	}

	if gjson.GetBytes(raw, "type").String() == "collection" {
		var collection apimodel.Collection[apimodel.Resource]
		if err := json.Unmarshal(raw, &collection); err != nil {
			return "", fmt.Errorf("error decoding collection: %v", err)
		}
		return RenderResources(collection.Data, maxRows)
	}

	var resource apimodel.Resource
	if err := json.Unmarshal(raw, &resource); err != nil {
		return "", fmt.Errorf("error decoding resource: %v", err)
	}
	return RenderResource(&resource)
}

func RenderResource(r *apimodel.Resource) (string, error) {
	var buf strings.Builder
	table := newTable(&buf)
	table.Header(display.LightBlue("Field"), "Value")

	actions := make([]string, 0, len(r.Actions))
	for name := range r.Actions {
		actions = append(actions, name)
	}
	slices.Sort(actions)

	data := [][]string{
		{display.LightBlue("ID"), r.ID},
		{display.LightBlue("Name"), r.Name},
		{display.LightBlue("Type"), r.Type},
		{display.LightBlue("State"), display.State(r.State)},
		{display.LightBlue("Actions"), strings.Join(actions, ", ")},
	}
	if image := gjson.GetBytes(r.LaunchConfig, "imageUuid").String(); image != "" {
		data = append(data, []string{display.LightBlue("Image"), image})
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering resource: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering resource: %v", err)
	}

	out := buf.String()
	if env := gjson.GetBytes(r.LaunchConfig, "environment"); env.IsObject() && len(env.Map()) > 0 {
		tree, err := RenderJSONTree(display.Gold("Environment"), json.RawMessage(env.Raw))
		if err != nil {
			return "", err
		}
		out += "\n" + tree
	}

	return out, nil
}

func RenderResources(resources []apimodel.Resource, maxRows int) (string, error) {
	if len(resources) == 0 {
		return display.Gold("No resources found.\n"), nil
	}

	var buf strings.Builder
	table := newTable(&buf)
	table.Header(display.LightBlue("ID"), "Name", "Type", "State", "Image")

	effectiveMaxRows := len(resources)
	if maxRows > 0 && maxRows < len(resources) {
		effectiveMaxRows = maxRows
	}

	data := make([][]string, effectiveMaxRows)
	for i := range effectiveMaxRows {
		resource := resources[i]
		data[i] = []string{
			display.LightBlue(resource.ID),
			resource.Name,
			resource.Type,
			display.State(resource.State),
			gjson.GetBytes(resource.LaunchConfig, "imageUuid").String(),
		}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering resources: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering resources: %v", err)
	}

	summary := fmt.Sprintf("\n%s Showing %d of %d resources",
		display.Gold("Summary:"),
		effectiveMaxRows,
		len(resources))
	if maxRows > 0 && len(resources) > maxRows {
		summary += fmt.Sprintf(" (use --max-results %d to see all)", len(resources))
	}

	return buf.String() + summary + "\n", nil
}

// RenderContainerResults shows the service with one branch per container.
func RenderContainerResults(serviceID string, results []workflow.ContainerResult) (string, error) {
	if len(results) == 0 {
		return display.Goldf("Service %s has no containers.\n", serviceID), nil
	}

	var buf strings.Builder
	root := gtree.NewRoot(display.LightBlue("service " + serviceID))
	for _, result := range results {
		c := result.Container
		label := fmt.Sprintf("%s (%s) %s", c.Name, c.ID, display.State(c.State))
		node := root.Add(label)
		if result.Skipped {
			node.Add(display.Greyf("skipped: no %s action in this state", result.Action))
		} else {
			node.Add(display.Green(result.Action + " requested"))
		}
	}

	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", fmt.Errorf("error rendering containers: %v", err)
	}
	return buf.String(), nil
}

// RenderPollResult summarises a finished transition.
func RenderPollResult(operation, id string, result *poll.Result) string {
	state := display.State(result.State())
	if result.Attempts == 0 {
		return fmt.Sprintf("%s %s: %s\n", display.Green(operation), display.LightBlue(id), state)
	}
	return fmt.Sprintf("%s %s: %s %s\n", display.Green(operation), display.LightBlue(id), state,
		display.Greyf("(%d polls)", result.Attempts))
}

// RenderAvailable lists what can be done next from state.
func RenderAvailable(state string) string {
	ops := lifecycle.Available(state)
	if len(ops) == 0 {
		return ""
	}
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return display.Greyf("Possible next steps from '%s': %s\n", state, strings.Join(names, ", "))
}

func RenderJSONTree(label string, raw json.RawMessage) (string, error) {
	var buf strings.Builder
	root := gtree.NewRoot(label)
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", err
	}
	if err := renderJSONToTree(root, data); err != nil {
		return "", err
	}
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderJSONToTree(node *gtree.Node, data any) error {
	switch v := data.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			child := node.Add(key)
			if err := renderJSONToTree(child, v[key]); err != nil {
				return err
			}
		}
	case []any:
		for i, value := range v {
			child := node.Add(fmt.Sprintf("[%d]", i))
			if err := renderJSONToTree(child, value); err != nil {
				return err
			}
		}
	default:
		node.Add(fmt.Sprintf("%v", v))
	}
	return nil
}
