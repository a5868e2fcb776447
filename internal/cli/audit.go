package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	audit "medsim/pkg/platform/audit"
	"medsim/pkg/platform/audit/consumer"
)

func newAuditCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
	}
	cmd.AddCommand(newAuditTailCmd(st))
	return cmd
}

// newAuditTailCmd follows the Kafka audit topic and logs every event. Denied
// mutations are logged at warn level so they stand out.
func newAuditTailCmd(st *state) *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow the Kafka audit topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := st.cfg.Audit, st.logger
			if len(cfg.Brokers) == 0 {
				return errors.New("audit tail needs audit.brokers")
			}

			router := consumer.NewRouter(log, consumer.LogHandler(log, slog.LevelInfo))
			router.Register(audit.CategorySecurity, consumer.LogHandler(log, slog.LevelWarn))

			c, err := consumer.New(cfg.Brokers, cfg.Topic, group, router, log)
			if err != nil {
				return fmt.Errorf("open audit consumer: %w", err)
			}
			defer c.Close()

			log.InfoContext(cmd.Context(), "tailing audit topic", "topic", cfg.Topic, "group", group)
			return c.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "consumer group; empty reads the topic from the start")
	cmd.Flags().StringSlice("audit.brokers", nil, "Kafka seed brokers")
	return cmd
}
