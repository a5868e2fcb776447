package service

import (
	"context"
	"errors"

	"medsim/internal/platform/instrument"
	"medsim/internal/scenario/models"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/audit"
	"medsim/pkg/platform/sentinel"
)

const registryName = "scenario"

// Store persists scenario definitions.
type Store interface {
	Create(ctx context.Context, scenario *models.Scenario) error
	FindByID(ctx context.Context, scenarioID id.ScenarioID) (*models.Scenario, error)
	Execute(ctx context.Context, scenarioID id.ScenarioID, validate func(*models.Scenario) error, mutate func(*models.Scenario)) (*models.Scenario, error)
	Count() int
}

// Service manages scenario definitions. Only a scenario's creator may update it.
type Service struct {
	store Store
	rec   *instrument.Recorder
}

func New(store Store, opts ...instrument.Option) *Service {
	return &Service{
		store: store,
		rec:   instrument.New(registryName, opts...),
	}
}

// Create adds an active scenario authored by caller.
func (s *Service) Create(ctx context.Context, caller id.Identity, scenarioID id.ScenarioID, content models.Content) (id.ScenarioID, error) {
	ctx, op := s.rec.Start(ctx, "create", caller, scenarioID.String())
	scenario := models.NewScenario(scenarioID, caller, content, s.rec.Now())
	err := wrapScenarioErr(s.store.Create(ctx, scenario))
	if err := op.Finish(err, audit.EventScenarioCreated); err != nil {
		return "", err
	}
	s.rec.SetRecords(s.store.Count())
	return scenarioID, nil
}

// Update replaces the scenario's content. CreatedBy and CreatedAt are kept.
func (s *Service) Update(ctx context.Context, caller id.Identity, scenarioID id.ScenarioID, content models.Content) (*models.Scenario, error) {
	ctx, op := s.rec.Start(ctx, "update", caller, scenarioID.String())
	content = content.Normalized()
	now := s.rec.Now()
	scenario, err := s.store.Execute(ctx, scenarioID,
		func(scn *models.Scenario) error {
			if !scn.IsCreatedBy(caller) {
				return dErrors.New(dErrors.CodeUnauthorized, "only the scenario's creator may update it")
			}
			return nil
		},
		func(scn *models.Scenario) {
			scn.ApplyUpdate(content, now)
		},
	)
	if err := op.Finish(wrapScenarioErr(err), audit.EventScenarioUpdated); err != nil {
		return nil, err
	}
	return scenario, nil
}

// Get returns the scenario, or false when absent.
func (s *Service) Get(ctx context.Context, scenarioID id.ScenarioID) (*models.Scenario, bool) {
	scenario, err := s.store.FindByID(ctx, scenarioID)
	if err != nil {
		return nil, false
	}
	return scenario, true
}

func wrapScenarioErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "scenario not found")
	case errors.Is(err, sentinel.ErrAlreadyExists):
		return dErrors.New(dErrors.CodeAlreadyExists, "scenario already exists")
	default:
		var de *dErrors.Error
		if errors.As(err, &de) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "scenario store failure")
	}
}
