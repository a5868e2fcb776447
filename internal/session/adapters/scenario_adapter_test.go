package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medsim/internal/platform/instrument"
	"medsim/internal/platform/logger"
	"medsim/internal/scenario/models"
	scenarioService "medsim/internal/scenario/service"
	scenarioStore "medsim/internal/scenario/store"
)

func TestScenarioAdapter(t *testing.T) {
	ctx := context.Background()
	st := scenarioStore.NewInMemory()
	svc := scenarioService.New(st, instrument.WithLogger(logger.Discard()))
	adapter := NewScenarioAdapter(svc)

	_, err := svc.Create(ctx, "dr-a", "S", models.Content{Name: "Sepsis"})
	require.NoError(t, err)
	assert.True(t, adapter.IsActive(ctx, "S"))
	assert.False(t, adapter.IsActive(ctx, "missing"))

	// Nothing retires a scenario through the service; flip it on the ledger.
	_, err = st.Ledger().Execute(ctx, "S", nil, func(s *models.Scenario) { s.Active = false })
	require.NoError(t, err)
	assert.False(t, adapter.IsActive(ctx, "S"))
}
