package service

import (
	"context"
	"errors"

	"medsim/internal/instructor/models"
	"medsim/internal/instructor/ports"
	"medsim/internal/platform/instrument"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
	"medsim/pkg/platform/audit"
	"medsim/pkg/platform/sentinel"
)

const registryName = "instructor"

// Store persists instructor records.
type Store interface {
	Create(ctx context.Context, instructor *models.Instructor) error
	FindByID(ctx context.Context, instructorID id.InstructorID) (*models.Instructor, error)
	Execute(ctx context.Context, instructorID id.InstructorID, validate func(*models.Instructor) error, mutate func(*models.Instructor)) (*models.Instructor, error)
	Count() int
}

// RegisterInput carries the certification details of a new instructor.
type RegisterInput struct {
	InstructorID       id.InstructorID
	Name               string
	Specialization     string
	CertificationLevel int
	ValidForDays       int
	Certifications     []string
}

// Service manages instructor certifications. Every mutation requires the
// caller to be the current certification authority.
type Service struct {
	store     Store
	authority ports.AuthorityPort
	rec       *instrument.Recorder
}

func New(store Store, authority ports.AuthorityPort, opts ...instrument.Option) *Service {
	return &Service{
		store:     store,
		authority: authority,
		rec:       instrument.New(registryName, opts...),
	}
}

// Register certifies a new instructor from now for in.ValidForDays days.
// Authorization is checked before the key.
func (s *Service) Register(ctx context.Context, caller id.Identity, in RegisterInput) (id.InstructorID, error) {
	ctx, op := s.rec.Start(ctx, "register", caller, in.InstructorID.String())
	err := s.register(ctx, caller, in)
	if err := op.Finish(err, audit.EventInstructorRegistered); err != nil {
		return "", err
	}
	s.rec.SetRecords(s.store.Count())
	return in.InstructorID, nil
}

func (s *Service) register(ctx context.Context, caller id.Identity, in RegisterInput) error {
	return s.authority.WithAuthority(ctx, caller, func() error {
		instructor := models.NewInstructor(
			in.InstructorID,
			in.Name,
			in.Specialization,
			in.CertificationLevel,
			in.ValidForDays,
			in.Certifications,
			s.rec.Now(),
		)
		return wrapInstructorErr(s.store.Create(ctx, instructor))
	})
}

// Renew restarts the certification window from now and reactivates the instructor.
func (s *Service) Renew(ctx context.Context, caller id.Identity, instructorID id.InstructorID, validForDays int) (*models.Instructor, error) {
	ctx, op := s.rec.Start(ctx, "renew", caller, instructorID.String())
	instructor, err := s.mutate(ctx, caller, instructorID, func(i *models.Instructor) {
		i.ApplyRenewal(validForDays, s.rec.Now())
	})
	if err := op.Finish(err, audit.EventInstructorRenewed); err != nil {
		return nil, err
	}
	return instructor, nil
}

// Deactivate clears the instructor's active flag.
func (s *Service) Deactivate(ctx context.Context, caller id.Identity, instructorID id.InstructorID) (*models.Instructor, error) {
	ctx, op := s.rec.Start(ctx, "deactivate", caller, instructorID.String())
	instructor, err := s.mutate(ctx, caller, instructorID, func(i *models.Instructor) {
		i.ApplyDeactivation()
	})
	if err := op.Finish(err, audit.EventInstructorDeactivated); err != nil {
		return nil, err
	}
	return instructor, nil
}

// Get returns the instructor record, or false when absent.
func (s *Service) Get(ctx context.Context, instructorID id.InstructorID) (*models.Instructor, bool) {
	instructor, err := s.store.FindByID(ctx, instructorID)
	if err != nil {
		return nil, false
	}
	return instructor, true
}

// IsCertified reports whether the instructor is active and unexpired now.
// Unknown instructors are not certified.
func (s *Service) IsCertified(ctx context.Context, instructorID id.InstructorID) bool {
	instructor, ok := s.Get(ctx, instructorID)
	if !ok {
		return false
	}
	return instructor.IsCertifiedAt(s.rec.Now())
}

// mutate applies fn to the stored instructor while the caller's authority is
// pinned, so a concurrent transfer cannot slip between check and write.
func (s *Service) mutate(ctx context.Context, caller id.Identity, instructorID id.InstructorID, fn func(*models.Instructor)) (*models.Instructor, error) {
	var instructor *models.Instructor
	err := s.authority.WithAuthority(ctx, caller, func() error {
		var err error
		instructor, err = s.store.Execute(ctx, instructorID, nil, fn)
		return wrapInstructorErr(err)
	})
	return instructor, err
}

func wrapInstructorErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "instructor not found")
	case errors.Is(err, sentinel.ErrAlreadyExists):
		return dErrors.New(dErrors.CodeAlreadyExists, "instructor already registered")
	default:
		var de *dErrors.Error
		if errors.As(err, &de) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "instructor store failure")
	}
}
