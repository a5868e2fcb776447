package handler

import (
	"medsim/internal/scenario/models"
	id "medsim/pkg/domain"
)

// UpdateRequest is the body of PUT /scenarios/{id}.
type UpdateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Difficulty  int      `json:"difficulty"`
	Specialties []string `json:"specialties"`
}

func (r *UpdateRequest) Validate() error {
	return nil
}

func (r *UpdateRequest) Content() models.Content {
	return models.Content{
		Name:        r.Name,
		Description: r.Description,
		Difficulty:  r.Difficulty,
		Specialties: r.Specialties,
	}
}

// CreateRequest is the body of POST /scenarios.
type CreateRequest struct {
	ScenarioID string `json:"scenario_id"`
	UpdateRequest

	parsedID id.ScenarioID
}

func (r *CreateRequest) Validate() error {
	scenarioID, err := id.ParseScenarioID(r.ScenarioID)
	if err != nil {
		return err
	}
	r.parsedID = scenarioID
	return nil
}
