package models

import (
	"slices"
	"time"

	id "medsim/pkg/domain"
	strutil "medsim/pkg/platform/strings"
)

// Scenario is a training scenario definition.
//
// Invariants:
//   - CreatedBy and CreatedAt never change after creation
//   - Active is reserved for a future retire operation; nothing sets it false
type Scenario struct {
	ID          id.ScenarioID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Difficulty  int           `json:"difficulty"`
	Specialties []string      `json:"specialties"`
	CreatedBy   id.Identity   `json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Active      bool          `json:"active"`
}

// Content is the mutable part of a scenario.
type Content struct {
	Name        string
	Description string
	Difficulty  int
	Specialties []string
}

// Normalized returns a copy with the specialties normalized.
func (c Content) Normalized() Content {
	c.Specialties = strutil.NormalizeSet(c.Specialties)
	return c
}

func NewScenario(scenarioID id.ScenarioID, createdBy id.Identity, content Content, now time.Time) *Scenario {
	return &Scenario{
		ID:          scenarioID,
		Name:        content.Name,
		Description: content.Description,
		Difficulty:  content.Difficulty,
		Specialties: strutil.NormalizeSet(content.Specialties),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
		Active:      true,
	}
}

func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Specialties = slices.Clone(s.Specialties)
	return &c
}

func (s *Scenario) IsCreatedBy(caller id.Identity) bool {
	return s.CreatedBy == caller
}

// ApplyUpdate replaces the content, stamps UpdatedAt and re-asserts Active.
// content is taken as is; callers pass it through Normalized first.
func (s *Scenario) ApplyUpdate(content Content, now time.Time) {
	s.Name = content.Name
	s.Description = content.Description
	s.Difficulty = content.Difficulty
	s.Specialties = content.Specialties
	s.UpdatedAt = now
	s.Active = true
}
