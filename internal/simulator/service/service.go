package service

import (
	"context"
	"errors"
	"time"

	"medsim/internal/platform/instrument"
	"medsim/internal/simulator/models"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/audit"
	"medsim/pkg/platform/sentinel"
)

const registryName = "simulator"

// Store persists simulator records.
type Store interface {
	Create(ctx context.Context, simulator *models.Simulator) error
	FindByID(ctx context.Context, simulatorID id.SimulatorID) (*models.Simulator, error)
	Execute(ctx context.Context, simulatorID id.SimulatorID, validate func(*models.Simulator) error, mutate func(*models.Simulator)) (*models.Simulator, error)
	Count() int
}

// RegisterInput describes a new piece of equipment.
type RegisterInput struct {
	SimulatorID  id.SimulatorID
	Name         string
	Model        string
	Manufacturer string
	PurchaseDate time.Time
	Features     []string
}

// Service manages simulator inventory. Anyone may register equipment and
// becomes its owner; only the owner may change it afterwards.
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

// Register adds a simulator owned by caller with status "active".
func (s *Service) Register(ctx context.Context, caller id.Identity, in RegisterInput) (id.SimulatorID, error) {
	ctx, op := s.rec.Start(ctx, "register", caller, in.SimulatorID.String())
	simulator := models.NewSimulator(
		in.SimulatorID,
		caller,
		in.Name,
		in.Model,
		in.Manufacturer,
		in.PurchaseDate,
		in.Features,
		s.rec.Now(),
	)
	err := wrapSimulatorErr(s.store.Create(ctx, simulator))
	if err := op.Finish(err, audit.EventSimulatorRegistered); err != nil {
		return "", err
	}
	s.rec.SetRecords(s.store.Count())
	return in.SimulatorID, nil
}

// RecordMaintenance stamps the simulator's last maintenance with now.
func (s *Service) RecordMaintenance(ctx context.Context, caller id.Identity, simulatorID id.SimulatorID) (*models.Simulator, error) {
	ctx, op := s.rec.Start(ctx, "record_maintenance", caller, simulatorID.String())
	now := s.rec.Now()
	simulator, err := s.store.Execute(ctx, simulatorID,
		requireOwner(caller),
		func(sim *models.Simulator) {
			sim.ApplyMaintenance(now)
		},
	)
	if err := op.Finish(wrapSimulatorErr(err), audit.EventSimulatorMaintained); err != nil {
		return nil, err
	}
	return simulator, nil
}

// SetStatus replaces the simulator's status with status, verbatim.
func (s *Service) SetStatus(ctx context.Context, caller id.Identity, simulatorID id.SimulatorID, status string) (*models.Simulator, error) {
	ctx, op := s.rec.Start(ctx, "set_status", caller, simulatorID.String())
	simulator, err := s.store.Execute(ctx, simulatorID,
		requireOwner(caller),
		func(sim *models.Simulator) {
			sim.ApplyStatus(status)
		},
	)
	if err := op.Finish(wrapSimulatorErr(err), audit.EventSimulatorStatusChanged); err != nil {
		return nil, err
	}
	return simulator, nil
}

// Get returns the simulator record, or false when absent.
func (s *Service) Get(ctx context.Context, simulatorID id.SimulatorID) (*models.Simulator, bool) {
	simulator, err := s.store.FindByID(ctx, simulatorID)
	if err != nil {
		return nil, false
	}
	return simulator, true
}

// GetOwner returns the identity that registered the simulator, or false when absent.
func (s *Service) GetOwner(ctx context.Context, simulatorID id.SimulatorID) (id.Identity, bool) {
	simulator, ok := s.Get(ctx, simulatorID)
	if !ok {
		return "", false
	}
	return simulator.Owner, true
}

func requireOwner(caller id.Identity) func(*models.Simulator) error {
	return func(sim *models.Simulator) error {
		if !sim.IsOwnedBy(caller) {
			return dErrors.New(dErrors.CodeUnauthorized, "caller does not own this simulator")
		}
		return nil
	}
}

func wrapSimulatorErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "simulator not found")
	case errors.Is(err, sentinel.ErrAlreadyExists):
		return dErrors.New(dErrors.CodeAlreadyExists, "simulator already registered")
	default:
		var de *dErrors.Error
		if errors.As(err, &de) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "simulator store failure")
	}
}
