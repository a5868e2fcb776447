package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSimulator(t *testing.T) {
	purchased := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	sim := NewSimulator("sim-1", "owner-1", "SimMan", "3G", "Laerdal", purchased, []string{"ECG", "ECG ", "airway"}, now)

	assert.Equal(t, StatusActive, sim.Status)
	assert.Equal(t, now, sim.LastMaintenance)
	assert.Equal(t, purchased, sim.PurchaseDate)
	assert.Equal(t, []string{"ECG", "airway"}, sim.Features)
	assert.True(t, sim.IsOwnedBy("owner-1"))
	assert.False(t, sim.IsOwnedBy("someone-else"))
}

func TestApplyStatus_AcceptsArbitraryValues(t *testing.T) {
	sim := NewSimulator("sim-1", "owner-1", "", "", "", time.Time{}, nil, time.Time{})
	sim.ApplyStatus("on loan to St. Mary's")
	assert.Equal(t, "on loan to St. Mary's", sim.Status)
}

func TestSimulatorClone(t *testing.T) {
	sim := NewSimulator("sim-1", "owner-1", "SimMan", "", "", time.Time{}, []string{"ECG"}, time.Time{})
	c := sim.Clone()
	c.Features[0] = "changed"
	assert.Equal(t, "ECG", sim.Features[0])
}
