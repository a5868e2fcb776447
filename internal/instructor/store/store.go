package store

import (
	"context"

	"medsim/internal/instructor/models"
	id "medsim/pkg/domain"
	"medsim/pkg/platform/ledger"
)

// InMemory keeps instructor records in a ledger. Records are never deleted.
type InMemory struct {
	records *ledger.Ledger[*models.Instructor]
}

func NewInMemory() *InMemory {
	return &InMemory{records: ledger.New[*models.Instructor]()}
}

// Create inserts a new record. Returns sentinel.ErrAlreadyExists if the key is taken.
func (s *InMemory) Create(ctx context.Context, instructor *models.Instructor) error {
	return s.records.Insert(ctx, instructor.ID.String(), instructor)
}

// FindByID returns a copy of the record or sentinel.ErrNotFound.
func (s *InMemory) FindByID(_ context.Context, instructorID id.InstructorID) (*models.Instructor, error) {
	return s.records.Find(instructorID.String())
}

// Execute atomically validates and mutates one record.
func (s *InMemory) Execute(ctx context.Context, instructorID id.InstructorID, validate func(*models.Instructor) error, mutate func(*models.Instructor)) (*models.Instructor, error) {
	return s.records.Execute(ctx, instructorID.String(), validate, mutate)
}

func (s *InMemory) Count() int {
	return s.records.Len()
}

// Ledger exposes the backing ledger for snapshot binding.
func (s *InMemory) Ledger() *ledger.Ledger[*models.Instructor] {
	return s.records
}
