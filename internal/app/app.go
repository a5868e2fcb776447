// Package app assembles the registries and binds them to durable storage.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	authorityService "medsim/internal/authority/service"
	authorityStore "medsim/internal/authority/store"
	instructorAdapters "medsim/internal/instructor/adapters"
	instructorService "medsim/internal/instructor/service"
	instructorStore "medsim/internal/instructor/store"
	"medsim/internal/platform/instrument"
	"medsim/internal/platform/metrics"
	"medsim/internal/platform/persistence"
	scenarioService "medsim/internal/scenario/service"
	scenarioStore "medsim/internal/scenario/store"
	sessionAdapters "medsim/internal/session/adapters"
	sessionService "medsim/internal/session/service"
	sessionStore "medsim/internal/session/store"
	simulatorService "medsim/internal/simulator/service"
	simulatorStore "medsim/internal/simulator/store"
	id "medsim/pkg/domain"
	"medsim/pkg/platform/audit"
)

// Deps are the shared collaborators of every registry.
type Deps struct {
	InitialAuthority id.Identity
	Logger           *slog.Logger
	Metrics          *metrics.Metrics
	Auditor          audit.Emitter
	Snapshotter      *persistence.Snapshotter
	Clock            func() time.Time
}

// App holds one service per registry.
type App struct {
	Authority   *authorityService.Service
	Instructors *instructorService.Service
	Simulators  *simulatorService.Service
	Scenarios   *scenarioService.Service
	Sessions    *sessionService.Service
}

// New builds every registry, restoring persisted state when the snapshotter
// has a backend.
func New(ctx context.Context, deps Deps) (*App, error) {
	var opts []instrument.Option
	if deps.Logger != nil {
		opts = append(opts, instrument.WithLogger(deps.Logger))
	}
	if deps.Metrics != nil {
		opts = append(opts, instrument.WithMetrics(deps.Metrics))
	}
	if deps.Auditor != nil {
		opts = append(opts, instrument.WithAuditEmitter(deps.Auditor))
	}
	if deps.Clock != nil {
		opts = append(opts, instrument.WithClock(deps.Clock))
	}
	snap := deps.Snapshotter
	if snap == nil {
		snap = persistence.NewSnapshotter(nil)
	}

	authStore := authorityStore.New(deps.InitialAuthority)
	hook, err := persistence.BindValue(ctx, snap, persistence.BucketAuthority, authStore.Restore)
	if err != nil {
		return nil, fmt.Errorf("bind authority: %w", err)
	}
	if hook != nil {
		authStore.SetCommitHook(hook)
	}

	instructors := instructorStore.NewInMemory()
	if err := persistence.Bind(ctx, snap, persistence.BucketInstructors, instructors.Ledger()); err != nil {
		return nil, fmt.Errorf("bind instructors: %w", err)
	}
	simulators := simulatorStore.NewInMemory()
	if err := persistence.Bind(ctx, snap, persistence.BucketSimulators, simulators.Ledger()); err != nil {
		return nil, fmt.Errorf("bind simulators: %w", err)
	}
	scenarios := scenarioStore.NewInMemory()
	if err := persistence.Bind(ctx, snap, persistence.BucketScenarios, scenarios.Ledger()); err != nil {
		return nil, fmt.Errorf("bind scenarios: %w", err)
	}
	sessions := sessionStore.NewInMemory()
	if err := persistence.Bind(ctx, snap, persistence.BucketSessions, sessions.Ledger()); err != nil {
		return nil, fmt.Errorf("bind sessions: %w", err)
	}

	a := &App{}
	a.Authority = authorityService.New(authStore, opts...)
	a.Instructors = instructorService.New(instructors, instructorAdapters.NewAuthorityAdapter(a.Authority), opts...)
	a.Simulators = simulatorService.New(simulators, opts...)
	a.Scenarios = scenarioService.New(scenarios, opts...)
	a.Sessions = sessionService.New(sessions, sessionAdapters.NewScenarioAdapter(a.Scenarios), opts...)
	return a, nil
}
