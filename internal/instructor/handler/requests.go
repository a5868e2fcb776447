package handler

import (
	"fmt"

	"medsim/internal/instructor/models"
	"medsim/internal/instructor/service"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
)

// RegisterRequest is the body of POST /instructors.
type RegisterRequest struct {
	InstructorID       string   `json:"instructor_id"`
	Name               string   `json:"name"`
	Specialization     string   `json:"specialization"`
	CertificationLevel int      `json:"certification_level"`
	ValidForDays       int      `json:"valid_for_days"`
	Certifications     []string `json:"certifications"`

	parsedID id.InstructorID
}

func (r *RegisterRequest) Validate() error {
	instructorID, err := id.ParseIdentity(r.InstructorID)
	if err != nil {
		return err
	}
	if err := validateDays(r.ValidForDays); err != nil {
		return err
	}
	r.parsedID = instructorID
	return nil
}

// Input converts the validated request into a service call.
func (r *RegisterRequest) Input() service.RegisterInput {
	return service.RegisterInput{
		InstructorID:       r.parsedID,
		Name:               r.Name,
		Specialization:     r.Specialization,
		CertificationLevel: r.CertificationLevel,
		ValidForDays:       r.ValidForDays,
		Certifications:     r.Certifications,
	}
}

// RenewRequest is the body of POST /instructors/{id}/renew.
type RenewRequest struct {
	ValidForDays int `json:"valid_for_days"`
}

func (r *RenewRequest) Validate() error {
	return validateDays(r.ValidForDays)
}

func validateDays(days int) error {
	if days < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "valid_for_days must not be negative")
	}
	if days > models.MaxValidForDays {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("valid_for_days must be at most %d", models.MaxValidForDays))
	}
	return nil
}
