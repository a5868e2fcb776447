package handler

import (
	"time"

	"medsim/internal/instructor/models"
)

// InstructorResponse is the JSON view of an instructor record.
type InstructorResponse struct {
	InstructorID       string    `json:"instructor_id"`
	Name               string    `json:"name"`
	Specialization     string    `json:"specialization"`
	CertificationDate  time.Time `json:"certification_date"`
	ExpirationDate     time.Time `json:"expiration_date"`
	CertificationLevel int       `json:"certification_level"`
	Active             bool      `json:"active"`
	Certifications     []string  `json:"certifications"`
}

func FromInstructor(i *models.Instructor) InstructorResponse {
	return InstructorResponse{
		InstructorID:       i.ID.String(),
		Name:               i.Name,
		Specialization:     i.Specialization,
		CertificationDate:  i.CertificationDate,
		ExpirationDate:     i.ExpirationDate,
		CertificationLevel: i.CertificationLevel,
		Active:             i.Active,
		Certifications:     i.Certifications,
	}
}

// CertifiedResponse answers GET /instructors/{id}/certified.
type CertifiedResponse struct {
	InstructorID string `json:"instructor_id"`
	Certified    bool   `json:"certified"`
}
