// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package rules

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/cmd"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/config"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/display"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/renderer"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/rulestore"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/util"
	"github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

func openStore(command *cobra.Command) *rulestore.Store {
	path, _ := command.Flags().GetString("rules")
	if path == "" {
		path = config.Config.RulesFilePath()
	}
	return rulestore.NewStore(util.ExpandHomePath(path))
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all sort rules",
		RunE: func(command *cobra.Command, args []string) error {
			rules, err := openStore(command).Load()
			if err != nil {
				return err
			}

			if len(rules) == 0 {
				fmt.Println(display.Grey("no sort rules defined"))
				return nil
			}

			out, err := renderer.RenderRules(rules)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
		SilenceErrors: true,
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show one rule with its fields in priority order",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			rule, err := openStore(command).Get(args[0])
			if err != nil {
				return err
			}

			out, err := renderer.RenderRule(rule)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
		SilenceErrors: true,
	}
}

func addCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "add",
		Short: "Add a sort rule",
		RunE: func(command *cobra.Command, args []string) error {
			name, _ := command.Flags().GetString("name")
			description, _ := command.Flags().GetString("description")
			fields, _ := command.Flags().GetStringArray("field")
			disabled, _ := command.Flags().GetBool("disabled")

			if name == "" {
				return cmd.FlagErrorf("--name is required")
			}
			if len(fields) == 0 {
				return cmd.FlagErrorf("at least one --field is required")
			}

			created, err := openStore(command).Add(model.SortRule{
				Name:        name,
				Description: description,
				Fields:      fields,
				Enabled:     !disabled,
			})
			if err != nil {
				return err
			}

			display.Success(fmt.Sprintf("rule %s added with id %s", created.Name, created.ID))
			return nil
		},
		SilenceErrors: true,
	}

	command.Flags().String("name", "", "Rule name")
	command.Flags().String("description", "", "Rule description")
	command.Flags().StringArray("field", nil, "Sort field in priority order, optionally targeted as key[].sub (repeatable)")
	command.Flags().Bool("disabled", false, "Create the rule disabled")

	return command
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm",
		Short: "Remove a sort rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := openStore(command).Remove(args[0]); err != nil {
				return err
			}
			display.Success("rule removed")
			return nil
		},
		SilenceErrors: true,
	}
}

func setEnabledCmd(use string, enabled bool) *cobra.Command {
	short := "Enable a sort rule"
	done := "rule enabled"
	if !enabled {
		short = "Disable a sort rule without removing it"
		done = "rule disabled"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := openStore(command).SetEnabled(args[0], enabled); err != nil {
				return err
			}
			display.Success(done)
			return nil
		},
		SilenceErrors: true,
	}
}

func moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move",
		Short: "Move a rule to a new position in the evaluation order",
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return cmd.FlagErrorf("position must be a number")
			}

			if err := openStore(command).Reorder(args[0], position); err != nil {
				return err
			}
			display.Success("rule moved")
			return nil
		},
		SilenceErrors: true,
	}
}

func RulesCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "rules",
		Short: "Manage the sort rules applied during canonicalization",
		Annotations: map[string]string{
			"type":     "Rules",
			"examples": "{{.Name}} {{.Command}} add --name users --field id  |  {{.Name}} {{.Command}} list",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.PersistentFlags().String("rules", "", "Path to a sort rules file (defaults to the configured rule store)")

	command.AddCommand(listCmd(), showCmd(), addCmd(), rmCmd(), moveCmd(),
		setEnabledCmd("enable", true), setEnabledCmd("disable", false))

	return command
}
