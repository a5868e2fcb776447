package handler

import (
	"time"

	"medsim/internal/simulator/models"
)

// SimulatorResponse is the JSON view of a simulator record.
type SimulatorResponse struct {
	SimulatorID     string    `json:"simulator_id"`
	Name            string    `json:"name"`
	Model           string    `json:"model"`
	Manufacturer    string    `json:"manufacturer"`
	PurchaseDate    time.Time `json:"purchase_date"`
	LastMaintenance time.Time `json:"last_maintenance"`
	Status          string    `json:"status"`
	Features        []string  `json:"features"`
	Owner           string    `json:"owner"`
}

func FromSimulator(s *models.Simulator) SimulatorResponse {
	return SimulatorResponse{
		SimulatorID:     s.ID.String(),
		Name:            s.Name,
		Model:           s.Model,
		Manufacturer:    s.Manufacturer,
		PurchaseDate:    s.PurchaseDate,
		LastMaintenance: s.LastMaintenance,
		Status:          s.Status,
		Features:        s.Features,
		Owner:           s.Owner.String(),
	}
}

// OwnerResponse answers GET /simulators/{id}/owner.
type OwnerResponse struct {
	SimulatorID string `json:"simulator_id"`
	Owner       string `json:"owner"`
}
