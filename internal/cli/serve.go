package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"medsim/internal/app"
	jwttoken "medsim/internal/jwt_token"
	"medsim/internal/platform/httpserver"
	"medsim/internal/platform/metrics"
	"medsim/internal/platform/persistence"
	httptransport "medsim/internal/transport/http"
	id "medsim/pkg/domain"
	"medsim/pkg/platform/audit"
	"medsim/pkg/platform/audit/publisher"
	"medsim/pkg/platform/audit/store/fallback"
	auditkafka "medsim/pkg/platform/audit/store/kafka"
	auditmemory "medsim/pkg/platform/audit/store/memory"
	"medsim/pkg/platform/circuit"
)

func newServeCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry API and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), st)
		},
	}
	cmd.Flags().String("server.addr", ":8080", "API listen address")
	cmd.Flags().String("server.metrics_addr", ":9090", "metrics listen address")
	cmd.Flags().String("registry.initial_authority", "", "certification authority installed on first start")
	return cmd
}

func runServe(ctx context.Context, st *state) error {
	cfg, log := st.cfg, st.logger
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	auditStore, closeAudit, err := openAuditStore(ctx, st)
	if err != nil {
		return err
	}
	defer closeAudit()
	auditor := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(cfg.Audit.BufferSize),
		publisher.WithLogger(log),
	)
	defer auditor.Close()

	backend, err := persistence.Open(ctx, cfg.Persistence)
	if err != nil {
		return err
	}
	snap := persistence.NewSnapshotter(backend, persistence.WithMetrics(m), persistence.WithLogger(log))
	defer func() {
		if err := snap.Close(); err != nil {
			log.Error("failed to close snapshot backend", "error", err)
		}
	}()

	registries, err := app.New(ctx, app.Deps{
		InitialAuthority: id.Identity(cfg.Registry.InitialAuthority),
		Logger:           log,
		Metrics:          m,
		Auditor:          auditor,
		Snapshotter:      snap,
	})
	if err != nil {
		return fmt.Errorf("build registries: %w", err)
	}

	validator := jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer))
	router := httptransport.NewRouter(registries, validator, log, m)

	log.InfoContext(ctx, "starting medsim",
		"addr", cfg.Server.Addr,
		"metrics_addr", cfg.Server.MetricsAddr,
		"persistence", cfg.Persistence.Driver,
		"authority", registries.Authority.Current(ctx),
	)
	return httpserver.Run(ctx, log, cfg.Server.ShutdownTimeout,
		httpserver.New(cfg.Server.Addr, router),
		httpserver.NewMetrics(cfg.Server.MetricsAddr, reg),
	)
}

// openAuditStore returns the Kafka audit log when brokers are configured and
// an in-memory log otherwise. The Kafka log falls back to memory while the
// brokers keep failing.
func openAuditStore(ctx context.Context, st *state) (audit.Store, func(), error) {
	cfg := st.cfg.Audit
	if len(cfg.Brokers) == 0 {
		return auditmemory.NewInMemoryStore(), func() {}, nil
	}
	store, err := auditkafka.New(cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit log: %w", err)
	}
	if err := store.EnsureTopic(ctx, 1, 1); err != nil {
		st.logger.WarnContext(ctx, "could not ensure audit topic", "topic", cfg.Topic, "error", err)
	}
	guarded := fallback.New(store, auditmemory.NewInMemoryStore(),
		circuit.New("audit-kafka", circuit.WithFailureThreshold(cfg.FailureThreshold)),
		st.logger,
	)
	return guarded, guarded.Close, nil
}
