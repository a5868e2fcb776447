package store

import (
	"context"

	"medsim/internal/scenario/models"
	id "medsim/pkg/domain"
	"medsim/pkg/platform/ledger"
)

// InMemory keeps scenario definitions in a ledger.
type InMemory struct {
	records *ledger.Ledger[*models.Scenario]
}

func NewInMemory() *InMemory {
	return &InMemory{records: ledger.New[*models.Scenario]()}
}

func (s *InMemory) Create(ctx context.Context, scenario *models.Scenario) error {
	return s.records.Insert(ctx, scenario.ID.String(), scenario)
}

func (s *InMemory) FindByID(_ context.Context, scenarioID id.ScenarioID) (*models.Scenario, error) {
	return s.records.Find(scenarioID.String())
}

func (s *InMemory) Execute(ctx context.Context, scenarioID id.ScenarioID, validate func(*models.Scenario) error, mutate func(*models.Scenario)) (*models.Scenario, error) {
	return s.records.Execute(ctx, scenarioID.String(), validate, mutate)
}

func (s *InMemory) Count() int {
	return s.records.Len()
}

func (s *InMemory) Ledger() *ledger.Ledger[*models.Scenario] {
	return s.records
}
