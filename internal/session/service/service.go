package service

import (
	"context"
	"errors"

	"medsim/internal/platform/instrument"
	"medsim/internal/session/models"
	"medsim/internal/session/ports"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/audit"
	"medsim/pkg/platform/sentinel"
)

const registryName = "session"

// Store persists practice sessions.
type Store interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	Execute(ctx context.Context, sessionID id.SessionID, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error)
	Count() int
}

// Service runs the session lifecycle: open, then completed by the instructor
// who opened it.
type Service struct {
	store     Store
	scenarios ports.ScenarioReader
	rec       *instrument.Recorder
}

func New(store Store, scenarios ports.ScenarioReader, opts ...instrument.Option) *Service {
	return &Service{
		store:     store,
		scenarios: scenarios,
		rec:       instrument.New(registryName, opts...),
	}
}

// StartSession opens a session on an active scenario with caller as instructor.
// The scenario is checked before the session key.
func (s *Service) StartSession(ctx context.Context, caller id.Identity, sessionID id.SessionID, scenarioID id.ScenarioID, participants []string) (id.SessionID, error) {
	ctx, op := s.rec.Start(ctx, "start", caller, sessionID.String())

	var err error
	if !s.scenarios.IsActive(ctx, scenarioID) {
		err = dErrors.New(dErrors.CodeNotFound, "scenario not found or inactive")
	} else {
		session := models.NewSession(sessionID, scenarioID, caller, participants, s.rec.Now())
		err = wrapSessionErr(s.store.Create(ctx, session))
	}
	if err := op.Finish(err, audit.EventSessionStarted); err != nil {
		return "", err
	}
	s.rec.SetRecords(s.store.Count())
	return sessionID, nil
}

// CompleteSession closes an open session. Completing twice fails with
// CodeSessionAlreadyCompleted.
func (s *Service) CompleteSession(ctx context.Context, caller id.Identity, sessionID id.SessionID) (*models.Session, error) {
	ctx, op := s.rec.Start(ctx, "complete", caller, sessionID.String())
	now := s.rec.Now()
	session, err := s.store.Execute(ctx, sessionID,
		func(sess *models.Session) error {
			if !sess.IsLedBy(caller) {
				return dErrors.New(dErrors.CodeUnauthorized, "only the session's instructor may complete it")
			}
			if sess.Completed {
				return dErrors.New(dErrors.CodeSessionAlreadyCompleted, "session already completed")
			}
			return nil
		},
		func(sess *models.Session) {
			sess.ApplyCompletion(now)
		},
	)
	if err := op.Finish(wrapSessionErr(err), audit.EventSessionCompleted); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns the session, or false when absent.
func (s *Service) Get(ctx context.Context, sessionID id.SessionID) (*models.Session, bool) {
	session, err := s.store.FindByID(ctx, sessionID)
	if err != nil {
		return nil, false
	}
	return session, true
}

func wrapSessionErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "session not found")
	case errors.Is(err, sentinel.ErrAlreadyExists):
		return dErrors.New(dErrors.CodeAlreadyExists, "session already exists")
	default:
		var de *dErrors.Error
		if errors.As(err, &de) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "session store failure")
	}
}
