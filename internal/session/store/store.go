package store

import (
	"context"

	"medsim/internal/session/models"
	id "medsim/pkg/domain"
	"medsim/pkg/platform/ledger"
)

// InMemory keeps practice sessions in a ledger. Completed sessions stay forever.
type InMemory struct {
	records *ledger.Ledger[*models.Session]
}

func NewInMemory() *InMemory {
	return &InMemory{records: ledger.New[*models.Session]()}
}

func (s *InMemory) Create(ctx context.Context, session *models.Session) error {
	return s.records.Insert(ctx, session.ID.String(), session)
}

func (s *InMemory) FindByID(_ context.Context, sessionID id.SessionID) (*models.Session, error) {
	return s.records.Find(sessionID.String())
}

func (s *InMemory) Execute(ctx context.Context, sessionID id.SessionID, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error) {
	return s.records.Execute(ctx, sessionID.String(), validate, mutate)
}

func (s *InMemory) Count() int {
	return s.records.Len()
}

func (s *InMemory) Ledger() *ledger.Ledger[*models.Session] {
	return s.records
}
