package models

import (
	"slices"
	"time"

	id "medsim/pkg/domain"
	strutil "medsim/pkg/platform/strings"
)

// Well-known statuses. SetStatus accepts any non-empty value.
const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

// Simulator is an equipment record. Owner is the identity that registered it
// and never changes.
type Simulator struct {
	ID              id.SimulatorID `json:"id"`
	Name            string         `json:"name"`
	Model           string         `json:"model"`
	Manufacturer    string         `json:"manufacturer"`
	PurchaseDate    time.Time      `json:"purchase_date"`
	LastMaintenance time.Time      `json:"last_maintenance"`
	Status          string         `json:"status"`
	Features        []string       `json:"features"`
	Owner           id.Identity    `json:"owner"`
}

func NewSimulator(
	simulatorID id.SimulatorID,
	owner id.Identity,
	name, model, manufacturer string,
	purchaseDate time.Time,
	features []string,
	now time.Time,
) *Simulator {
	return &Simulator{
		ID:              simulatorID,
		Name:            name,
		Model:           model,
		Manufacturer:    manufacturer,
		PurchaseDate:    purchaseDate,
		LastMaintenance: now,
		Status:          StatusActive,
		Features:        strutil.NormalizeSet(features),
		Owner:           owner,
	}
}

func (s *Simulator) Clone() *Simulator {
	c := *s
	c.Features = slices.Clone(s.Features)
	return &c
}

func (s *Simulator) IsOwnedBy(caller id.Identity) bool {
	return s.Owner == caller
}

func (s *Simulator) ApplyMaintenance(now time.Time) {
	s.LastMaintenance = now
}

// ApplyStatus stores status verbatim.
func (s *Simulator) ApplyStatus(status string) {
	s.Status = status
}
