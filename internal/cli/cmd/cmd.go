// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/display"
)

var RootCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}} [OPTIONS]{{if .HasAvailableSubCommands}} [COMMAND]{{end}}\n") +
	"{{if .HasAvailableSubCommands}}\n" + display.Gold("Commands:") + "{{$types := typeMap .Commands}}" +
	"{{$first := true}}{{range $type, $cmds := $types}}" +
	"{{if $first}}{{$first = false}}{{else}}\n{{end}}\n  " + display.Gold("{{$type}}:") +
	"{{range $cmd := $cmds}}\n    " + display.Green("{{rpad $cmd.Name $cmd.NamePadding}}") + "     {{$cmd.Short}}" +
	"{{if (index $cmd.Annotations \"examples\")}}\n                   " +
	display.Grey("  {{formatExamples (index $cmd.Annotations \"examples\") $cmd}}") + "{{end}}" +
	"{{if (index $cmd.Annotations \"doc\")}}\n" +
	display.Grey("{{formatDoc (index $cmd.Annotations \"doc\") $cmd}}\n") + "{{end}}" +
	"{{end}}{{end}}\n{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range .LocalFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}" +
	display.Links("Docs", "cli") +
	"\n"

var SimpleCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}}{{if .HasAvailableLocalFlags}} [OPTIONS]{{end}}{{if .HasAvailableSubCommands}} [COMMAND]{{end}}") +
	display.Green("{{if index .Annotations \"args\"}} {{index .Annotations \"args\"}}{{end}}") + "\n" +
	"{{if .HasAvailableSubCommands}}\n" + display.Gold("Commands:") +
	"{{range $cmd := .Commands}}\n  " + display.Green("{{rpad $cmd.Name $cmd.NamePadding}}") + "       {{$cmd.Short}}" +
	"{{if (index $cmd.Annotations \"examples\")}}\n                   " +
	display.Grey("  {{formatExamples (index $cmd.Annotations \"examples\") $cmd}}") + "{{end}}" +
	"{{if (index $cmd.Annotations \"doc\")}}\n" +
	display.Grey("{{formatDoc (index $cmd.Annotations \"doc\") $cmd}}\n") + "{{end}}" +
	"{{end}}\n{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range .LocalFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}" +
	display.Links("Docs", "cli") +
	"\n"
