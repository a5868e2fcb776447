package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"medsim/internal/platform/instrument"
	"medsim/internal/platform/logger"
	"medsim/internal/simulator/models"
	"medsim/internal/simulator/store"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/audit"
	"medsim/pkg/platform/audit/publisher"
	"medsim/pkg/platform/audit/store/memory"
	"medsim/pkg/testutil"
)

const (
	owner    id.Identity = "sim-lab"
	intruder id.Identity = "intruder"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *testutil.Clock
	events  *memory.InMemoryStore
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = testutil.NewClock(time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC))
	s.events = memory.NewInMemoryStore()
	s.service = New(store.NewInMemory(),
		instrument.WithLogger(logger.Discard()),
		instrument.WithClock(s.clock.Now),
		instrument.WithAuditEmitter(publisher.NewPublisher(s.events)),
	)
}

func (s *ServiceSuite) register(simulatorID id.SimulatorID) {
	s.T().Helper()
	_, err := s.service.Register(s.ctx, owner, RegisterInput{
		SimulatorID:  simulatorID,
		Name:         "SimMan 3G",
		Model:        "3G",
		Manufacturer: "Laerdal",
		PurchaseDate: time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC),
		Features:     []string{"ECG", "airway"},
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) mustGet(simulatorID id.SimulatorID) *models.Simulator {
	s.T().Helper()
	sim, ok := s.service.Get(s.ctx, simulatorID)
	s.Require().True(ok)
	return sim
}

func (s *ServiceSuite) TestRegister() {
	s.Run("any caller registers and becomes owner", func() {
		s.register("sim-1")

		sim := s.mustGet("sim-1")
		s.Equal(models.StatusActive, sim.Status)
		s.Equal(s.clock.Now(), sim.LastMaintenance)

		gotOwner, ok := s.service.GetOwner(s.ctx, "sim-1")
		s.True(ok)
		s.Equal(owner, gotOwner)
	})

	s.Run("duplicate key fails and keeps owner and record", func() {
		before := s.mustGet("sim-1")
		_, err := s.service.Register(s.ctx, intruder, RegisterInput{SimulatorID: "sim-1", Name: "Hijack"})
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyExists))
		s.Equal(before, s.mustGet("sim-1"))
	})

	s.Run("absent lookups", func() {
		_, ok := s.service.Get(s.ctx, "nope")
		s.False(ok)
		_, ok = s.service.GetOwner(s.ctx, "nope")
		s.False(ok)
	})
}

func (s *ServiceSuite) TestRecordMaintenance() {
	s.register("sim-1")

	s.Run("owner stamps maintenance", func() {
		at := s.clock.Advance(48 * time.Hour)
		sim, err := s.service.RecordMaintenance(s.ctx, owner, "sim-1")
		s.Require().NoError(err)
		s.Equal(at, sim.LastMaintenance)
	})

	s.Run("unknown simulator", func() {
		_, err := s.service.RecordMaintenance(s.ctx, owner, "nope")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("existence is checked before ownership", func() {
		_, err := s.service.RecordMaintenance(s.ctx, intruder, "nope")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("non-owner is rejected and nothing changes", func() {
		before := s.mustGet("sim-1")
		s.clock.Advance(time.Hour)
		_, err := s.service.RecordMaintenance(s.ctx, intruder, "sim-1")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal(before, s.mustGet("sim-1"))
	})
}

func (s *ServiceSuite) TestSetStatus() {
	s.register("sim-1")

	s.Run("owner sets a known status", func() {
		sim, err := s.service.SetStatus(s.ctx, owner, "sim-1", models.StatusMaintenance)
		s.Require().NoError(err)
		s.Equal(models.StatusMaintenance, sim.Status)
	})

	s.Run("arbitrary status is stored verbatim", func() {
		sim, err := s.service.SetStatus(s.ctx, owner, "sim-1", "Awaiting Parts (vendor RMA #42)")
		s.Require().NoError(err)
		s.Equal("Awaiting Parts (vendor RMA #42)", sim.Status)
	})

	s.Run("non-owner", func() {
		_, err := s.service.SetStatus(s.ctx, intruder, "sim-1", models.StatusRetired)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal("Awaiting Parts (vendor RMA #42)", s.mustGet("sim-1").Status)
	})

	s.Run("unknown simulator", func() {
		_, err := s.service.SetStatus(s.ctx, owner, "nope", models.StatusRetired)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestAuditTrail() {
	s.register("sim-1")
	_, _ = s.service.SetStatus(s.ctx, intruder, "sim-1", models.StatusRetired)
	_, _ = s.service.SetStatus(s.ctx, owner, "sim-1", models.StatusRetired)

	events, err := s.events.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal(string(audit.EventSimulatorRegistered), events[0].Action)
	s.Equal(string(audit.EventAccessDenied), events[1].Action)
	s.Equal(intruder, events[1].Actor)
	s.Equal(string(audit.EventSimulatorStatusChanged), events[2].Action)
	s.Equal("sim-1", events[2].Key)
}
