package store

import (
	"context"

	"medsim/internal/simulator/models"
	id "medsim/pkg/domain"
	"medsim/pkg/platform/ledger"
)

// InMemory keeps simulator records, owner included, in a ledger.
type InMemory struct {
	records *ledger.Ledger[*models.Simulator]
}

func NewInMemory() *InMemory {
	return &InMemory{records: ledger.New[*models.Simulator]()}
}

func (s *InMemory) Create(ctx context.Context, simulator *models.Simulator) error {
	return s.records.Insert(ctx, simulator.ID.String(), simulator)
}

func (s *InMemory) FindByID(_ context.Context, simulatorID id.SimulatorID) (*models.Simulator, error) {
	return s.records.Find(simulatorID.String())
}

func (s *InMemory) Execute(ctx context.Context, simulatorID id.SimulatorID, validate func(*models.Simulator) error, mutate func(*models.Simulator)) (*models.Simulator, error) {
	return s.records.Execute(ctx, simulatorID.String(), validate, mutate)
}

func (s *InMemory) Count() int {
	return s.records.Len()
}

func (s *InMemory) Ledger() *ledger.Ledger[*models.Simulator] {
	return s.records
}
