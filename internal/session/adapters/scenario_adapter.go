package adapters

import (
	"context"

	scenarioService "medsim/internal/scenario/service"
	"medsim/internal/session/ports"
	id "medsim/pkg/domain"
)

// ScenarioAdapter implements ports.ScenarioReader with the in-process scenario service.
type ScenarioAdapter struct {
	scenarios *scenarioService.Service
}

func NewScenarioAdapter(scenarios *scenarioService.Service) ports.ScenarioReader {
	return &ScenarioAdapter{scenarios: scenarios}
}

// IsActive is false for unknown scenarios.
func (a *ScenarioAdapter) IsActive(ctx context.Context, scenarioID id.ScenarioID) bool {
	scenario, ok := a.scenarios.Get(ctx, scenarioID)
	return ok && scenario.Active
}
