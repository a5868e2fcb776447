package models

import (
	"slices"
	"time"

	id "medsim/pkg/domain"
	strutil "medsim/pkg/platform/strings"
)

// MaxValidForDays bounds validity periods so now+days never overflows time.Duration.
const MaxValidForDays = 100_000

// Instructor is a certification record keyed by the instructor's identity.
//
// Invariants:
//   - ID and CertificationDate never change after registration
//   - ExpirationDate >= CertificationDate for non-negative validity periods
//   - Certifications is trimmed and de-duplicated, first occurrence wins
type Instructor struct {
	ID                 id.InstructorID `json:"id"`
	Name               string          `json:"name"`
	Specialization     string          `json:"specialization"`
	CertificationDate  time.Time       `json:"certification_date"`
	ExpirationDate     time.Time       `json:"expiration_date"`
	CertificationLevel int             `json:"certification_level"`
	Active             bool            `json:"active"`
	Certifications     []string        `json:"certifications"`
}

// ValidFor converts a validity period in days to a duration.
func ValidFor(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

// NewInstructor builds an active record certified at now.
func NewInstructor(
	instructorID id.InstructorID,
	name string,
	specialization string,
	certificationLevel int,
	validForDays int,
	certifications []string,
	now time.Time,
) *Instructor {
	return &Instructor{
		ID:                 instructorID,
		Name:               name,
		Specialization:     specialization,
		CertificationDate:  now,
		ExpirationDate:     now.Add(ValidFor(validForDays)),
		CertificationLevel: certificationLevel,
		Active:             true,
		Certifications:     strutil.NormalizeSet(certifications),
	}
}

func (i *Instructor) Clone() *Instructor {
	c := *i
	c.Certifications = slices.Clone(i.Certifications)
	return &c
}

// IsCertifiedAt reports whether the instructor holds a live certification at now.
// Expiry is exclusive: at exactly ExpirationDate the certification has lapsed.
func (i *Instructor) IsCertifiedAt(now time.Time) bool {
	return i.Active && i.ExpirationDate.After(now)
}

// ApplyRenewal restarts the validity window from now and reactivates the record.
// CertificationDate is kept.
func (i *Instructor) ApplyRenewal(validForDays int, now time.Time) {
	i.ExpirationDate = now.Add(ValidFor(validForDays))
	i.Active = true
}

// ApplyDeactivation clears the active flag and nothing else.
func (i *Instructor) ApplyDeactivation() {
	i.Active = false
}
