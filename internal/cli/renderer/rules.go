// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package renderer

import (
	"fmt"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/display"
	"github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

// RenderRules lists the rule set in evaluation order.
func RenderRules(rules []model.SortRule) (string, error) {
	var buf strings.Builder

	table := tablewriter.NewTable(&buf,
		tablewriter.WithMaxWidth(120),
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))

	table.Header(display.LightBlue("#"),
		display.LightBlue("ID"),
		display.LightBlue("Name"),
		display.LightBlue("Fields"),
		display.LightBlue("Enabled"))

	for i, r := range rules {
		enabled := display.Green("yes")
		if !r.Enabled {
			enabled = display.Grey("no")
		}
		_ = table.Append([]string{
			fmt.Sprintf("%d", i+1),
			r.ID,
			r.Name,
			strings.Join(r.Fields, "\n"),
			enabled,
		})
	}

	if err := table.Render(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderRule shows a single rule with its fields in priority order.
func RenderRule(rule model.SortRule) (string, error) {
	header := display.LightBlue(rule.Name)
	if !rule.Enabled {
		header += display.Grey(" (disabled)")
	}

	root := gtree.NewRoot(header)
	root.Add(display.Grey("id: " + rule.ID))
	if rule.Description != "" {
		root.Add(rule.Description)
	}

	fields := root.Add("fields (priority order)")
	for _, f := range rule.Fields {
		fields.Add(f)
	}

	var buf strings.Builder
	if err := gtree.OutputFromRoot(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}
