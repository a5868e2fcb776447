// Package ports defines what the session ledger needs from other modules.
package ports

import (
	"context"

	id "medsim/pkg/domain"
)

// ScenarioReader answers whether a scenario can host new sessions.
type ScenarioReader interface {
	IsActive(ctx context.Context, scenarioID id.ScenarioID) bool
}
