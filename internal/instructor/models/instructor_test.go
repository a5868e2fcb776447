package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func TestNewInstructor(t *testing.T) {
	inst := NewInstructor("dr-lee", "Dr. Lee", "Anesthesia", 3, 365, []string{" ACLS", "ACLS", "", "PALS"}, t0)

	assert.Equal(t, t0, inst.CertificationDate)
	assert.Equal(t, t0.Add(365*24*time.Hour), inst.ExpirationDate)
	assert.True(t, inst.Active)
	assert.Equal(t, []string{"ACLS", "PALS"}, inst.Certifications)
}

func TestNewInstructor_ZeroDaysIsNeverCertified(t *testing.T) {
	inst := NewInstructor("dr-lee", "Dr. Lee", "Anesthesia", 1, 0, nil, t0)

	assert.Equal(t, inst.CertificationDate, inst.ExpirationDate)
	assert.False(t, inst.IsCertifiedAt(t0), "expiry is exclusive")
	assert.Equal(t, []string{}, inst.Certifications)
}

func TestIsCertifiedAt(t *testing.T) {
	inst := NewInstructor("dr-lee", "Dr. Lee", "Anesthesia", 1, 1, nil, t0)

	assert.True(t, inst.IsCertifiedAt(t0))
	assert.True(t, inst.IsCertifiedAt(t0.Add(24*time.Hour-time.Millisecond)))
	assert.False(t, inst.IsCertifiedAt(t0.Add(24*time.Hour)))

	inst.ApplyDeactivation()
	assert.False(t, inst.IsCertifiedAt(t0))
}

func TestApplyRenewal(t *testing.T) {
	inst := NewInstructor("dr-lee", "Dr. Lee", "Anesthesia", 1, 365, nil, t0)
	inst.ApplyDeactivation()

	later := t0.Add(400 * 24 * time.Hour)
	inst.ApplyRenewal(30, later)

	assert.True(t, inst.Active)
	assert.Equal(t, later.Add(30*24*time.Hour), inst.ExpirationDate, "window restarts at renewal")
	assert.Equal(t, t0, inst.CertificationDate)
}

func TestClone_IsDeep(t *testing.T) {
	inst := NewInstructor("dr-lee", "Dr. Lee", "Anesthesia", 1, 1, []string{"ACLS"}, t0)
	c := inst.Clone()
	c.Certifications[0] = "BLS"
	c.Name = "changed"

	assert.Equal(t, "ACLS", inst.Certifications[0])
	assert.Equal(t, "Dr. Lee", inst.Name)
}
