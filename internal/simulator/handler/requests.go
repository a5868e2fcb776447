package handler

import (
	"strings"
	"time"

	"medsim/internal/simulator/service"
	id "medsim/pkg/domain"
	dErrors "medsim/pkg/domain-errors"
)

// RegisterRequest is the body of POST /simulators.
type RegisterRequest struct {
	SimulatorID  string    `json:"simulator_id"`
	Name         string    `json:"name"`
	Model        string    `json:"model"`
	Manufacturer string    `json:"manufacturer"`
	PurchaseDate time.Time `json:"purchase_date"`
	Features     []string  `json:"features"`

	parsedID id.SimulatorID
}

func (r *RegisterRequest) Validate() error {
	simulatorID, err := id.ParseSimulatorID(r.SimulatorID)
	if err != nil {
		return err
	}
	r.parsedID = simulatorID
	return nil
}

func (r *RegisterRequest) Input() service.RegisterInput {
	return service.RegisterInput{
		SimulatorID:  r.parsedID,
		Name:         r.Name,
		Model:        r.Model,
		Manufacturer: r.Manufacturer,
		PurchaseDate: r.PurchaseDate,
		Features:     r.Features,
	}
}

// SetStatusRequest is the body of PUT /simulators/{id}/status.
// Any non-empty status is accepted and stored exactly as sent.
type SetStatusRequest struct {
	Status string `json:"status"`
}

func (r *SetStatusRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "status is required")
	}
	return nil
}
