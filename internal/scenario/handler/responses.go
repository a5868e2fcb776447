package handler

import (
	"time"

	"medsim/internal/scenario/models"
)

// ScenarioResponse is the JSON view of a scenario.
type ScenarioResponse struct {
	ScenarioID  string    `json:"scenario_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Difficulty  int       `json:"difficulty"`
	Specialties []string  `json:"specialties"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Active      bool      `json:"active"`
}

func FromScenario(s *models.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ScenarioID:  s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		Difficulty:  s.Difficulty,
		Specialties: s.Specialties,
		CreatedBy:   s.CreatedBy.String(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Active:      s.Active,
	}
}
