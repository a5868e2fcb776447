// Package cli is the medsim command line. It serves the registries, exports
// persisted state, follows the audit topic and mints development tokens.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"medsim/internal/platform/config"
	"medsim/internal/platform/logger"
)

// state is shared by the subcommands once PersistentPreRunE has run.
type state struct {
	configFile string
	cfg        config.Config
	logger     *slog.Logger
}

// Execute runs the root command until SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return err
	}
	return nil
}

func NewRootCmd() *cobra.Command {
	st := &state{}
	cmd := &cobra.Command{
		Use:           "medsim",
		Short:         "Medical simulation training registry",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags(), st.configFile)
			if err != nil {
				return err
			}
			st.cfg = cfg
			st.logger = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&st.configFile, "config", "", "config file (default ./medsim.yaml or /etc/medsim/medsim.yaml)")
	cmd.PersistentFlags().String("log.format", "json", `log format ("json" or "text")`)
	cmd.PersistentFlags().String("log.level", "info", "log level")
	cmd.PersistentFlags().String("persistence.driver", config.DriverMemory, "snapshot backend (memory, sqlite, postgres, redis, s3)")
	cmd.PersistentFlags().String("auth.jwt_signing_key", "", "HS256 signing key for bearer tokens")

	cmd.AddCommand(newServeCmd(st), newExportCmd(st), newTokenCmd(st), newAuditCmd(st))
	return cmd
}
