// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eric-lim-idexx/sorted-json-diff/internal/api"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/cmd"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/config"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/display"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/logging"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/rulestore"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/util"
)

const DefaultPort = 8484

func ServeCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the comparison API server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			display.PrintBanner()
			logging.SetupServerLogging(
				fmt.Sprintf("%s/log/server.log", config.Config.DataDirectory()),
				slog.LevelInfo,
			)
		},
		RunE: func(command *cobra.Command, args []string) error {
			port, _ := command.Flags().GetInt("port")
			rulesPath, _ := command.Flags().GetString("rules")
			if rulesPath == "" {
				rulesPath = config.Config.RulesFilePath()
			}

			store := rulestore.NewStore(util.ExpandHomePath(rulesPath))
			server := api.NewServer(store, port)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				slog.Info("Shutting down API server")
				if err := server.Stop(context.Background()); err != nil {
					slog.Error("Shutdown failed", "error", err)
				}
			}()

			return server.Start()
		},
		Annotations: map[string]string{
			"type":     "Serving",
			"examples": "{{.Name}} {{.Command}} --port 8484",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().Int("port", DefaultPort, "Port to listen on")
	command.Flags().String("rules", "", "Path to a sort rules file (defaults to the configured rule store)")

	return command
}
