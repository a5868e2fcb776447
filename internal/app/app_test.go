package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	instructorService "medsim/internal/instructor/service"
	"medsim/internal/platform/logger"
	"medsim/internal/platform/persistence"
	"medsim/internal/platform/persistence/memory"
	scenarioModels "medsim/internal/scenario/models"
	simulatorService "medsim/internal/simulator/service"
	id "medsim/pkg/domain"
	"medsim/pkg/testutil"
)

type AppSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *testutil.Clock
	backend *memory.Backend
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = testutil.NewClock(time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC))
	s.backend = memory.New()
}

func (s *AppSuite) boot() *App {
	s.T().Helper()
	a, err := New(s.ctx, Deps{
		InitialAuthority: "board",
		Logger:           logger.Discard(),
		Snapshotter:      persistence.NewSnapshotter(s.backend, persistence.WithLogger(logger.Discard())),
		Clock:            s.clock.Now,
	})
	s.Require().NoError(err)
	return a
}

func (s *AppSuite) TestStateSurvivesRestart() {
	a := s.boot()
	_, err := a.Authority.SetAuthority(s.ctx, "board", "college")
	s.Require().NoError(err)
	_, err = a.Instructors.Register(s.ctx, "college", instructorService.RegisterInput{InstructorID: "dr-lee", ValidForDays: 90})
	s.Require().NoError(err)
	_, err = a.Simulators.Register(s.ctx, "lab", simulatorService.RegisterInput{SimulatorID: "sim-1"})
	s.Require().NoError(err)
	_, err = a.Scenarios.Create(s.ctx, "dr-lee", "S", scenarioModels.Content{Name: "Sepsis"})
	s.Require().NoError(err)
	_, err = a.Sessions.StartSession(s.ctx, "dr-lee", "X", "S", []string{"r1"})
	s.Require().NoError(err)
	_, err = a.Sessions.CompleteSession(s.ctx, "dr-lee", "X")
	s.Require().NoError(err)

	restarted := s.boot()
	s.Equal(id.Identity("college"), restarted.Authority.Current(s.ctx))
	s.True(restarted.Instructors.IsCertified(s.ctx, "dr-lee"))
	owner, ok := restarted.Simulators.GetOwner(s.ctx, "sim-1")
	s.True(ok)
	s.Equal(id.Identity("lab"), owner)
	sess, ok := restarted.Sessions.Get(s.ctx, "X")
	s.Require().True(ok)
	s.True(sess.Completed)

	_, err = restarted.Sessions.CompleteSession(s.ctx, "dr-lee", "X")
	s.Error(err, "completion survives the restart")
}

func (s *AppSuite) TestWithoutBackend() {
	a, err := New(s.ctx, Deps{InitialAuthority: "board", Logger: logger.Discard()})
	s.Require().NoError(err)
	s.True(a.Authority.IsAuthority(s.ctx, "board"))

	_, err = a.Scenarios.Create(s.ctx, "dr-a", "S", scenarioModels.Content{})
	s.NoError(err)
}
