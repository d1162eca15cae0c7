// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	sortedjsondiff "github.com/eric-lim-idexx/sorted-json-diff"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/cmd"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/compare"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/config"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/display"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/rules"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/serve"
)

func longDescription() string {
	return display.Tool + ": " + display.Green("Order-insensitive JSON comparison with rule-driven array sorting")
}

var rootCmd = &cobra.Command{
	Use:     display.Tool,
	Short:   display.Tool + " CLI",
	Long:    longDescription(),
	Version: sortedjsondiff.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Redirect slog output to discard to prevent it from appearing on screen
		devNull, _ := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		slog.SetDefault(slog.New(slog.NewTextHandler(devNull, nil)))
	},
}

func init() {
	hp := rootCmd.HelpFunc()
	longestFlagName := 0
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		display.PrintBanner()
		hp(cmd, args)
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cobra.AddTemplateFunc("typeMap", func(cmds []*cobra.Command) map[string][]*cobra.Command {
		m := make(map[string][]*cobra.Command)
		for _, c := range cmds {
			if c.IsAvailableCommand() {
				t := c.Annotations["type"]
				if t == "" {
					t = "Tooling"
				}

				m[t] = append(m[t], c)
			}
		}
		return m
	})

	cobra.AddTemplateFunc("formatExamples", func(examples string, cmd *cobra.Command) string {
		cliName := cmd.Root().Name()
		cmdName := cmd.Name()
		replaced := strings.ReplaceAll(examples, "{{.Name}}", cliName)
		return strings.ReplaceAll(replaced, "{{.Command}}", cmdName)
	})

	cobra.AddTemplateFunc("formatDoc", func(doc string, cmd *cobra.Command) string {
		lines := strings.Split(doc, "\n")
		for i, line := range lines {
			lines[i] = "                     " + line
		}

		return strings.Join(lines, "\n")
	})

	cobra.AddTemplateFunc("optionsUsage", func(f *pflag.FlagSet) []string {
		var usage []string

		f.VisitAll(func(flag *pflag.Flag) {
			length := len(flag.Name)
			if flag.Shorthand != "" {
				length += 6
			}

			if length > longestFlagName {
				longestFlagName = length
			}
		})

		longestFlagName += 10

		f.VisitAll(func(flag *pflag.Flag) {
			s := fmt.Sprintf("      --%s ", flag.Name)
			if flag.Shorthand != "" {
				s = fmt.Sprintf("  -%s, --%s ", flag.Shorthand, flag.Name)
			}

			s = fmt.Sprintf("%-*s%s", longestFlagName, s, flag.Usage)
			if flag.DefValue != "" &&
				flag.DefValue != "[]" &&
				flag.Name != "help" &&
				flag.Name != "version" {
				s += display.Grey(fmt.Sprintf(" [default: %q]", flag.DefValue))
			}

			usage = append(usage, s)
		})
		return usage
	})

	rootCmd.SetUsageTemplate(cmd.RootCmdUsageTemplate)

	rootCmd.AddCommand(compare.CompareCmd())
	rootCmd.AddCommand(rules.RulesCmd())
	rootCmd.AddCommand(serve.ServeCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show " + display.Tool + " version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version: %s\ngo version: %s\n", display.Tool, sortedjsondiff.Version, runtime.Version())
		},
		Annotations:   map[string]string{"type": "Tooling"},
		SilenceErrors: true,
	})

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for "+rootCmd.Use)
	for _, c := range rootCmd.Commands() {
		c.PersistentFlags().BoolP("help", "h", false, fmt.Sprintf("Show help for %s command", c.Name()))
	}

	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show "+rootCmd.Use+" version information")
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version: %s\ngo version: %s\n", display.Tool, sortedjsondiff.Version, runtime.Version()))
}

// Start runs the CLI. Exit code 0 means the documents were identical (or the
// command had nothing to compare), 1 means differences were found, 2 means an
// error prevented the comparison.
func Start() {
	err := config.Config.EnsureConfigDirectory()
	if err != nil {
		fmt.Println(display.Red("Error: " + err.Error()))
		os.Exit(2)
	}

	err = config.Config.EnsureDataDirectory()
	if err != nil {
		fmt.Println(display.Red("Error: " + err.Error()))
		os.Exit(2)
	}

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrDifferencesFound) {
			os.Exit(1)
		}

		fmt.Println(display.Red("Error: " + err.Error()))

		var flagErr *cmd.FlagError
		if errors.As(err, &flagErr) {
			_ = rootCmd.Usage()
		}

		os.Exit(2)
	}
}
