package e2e

import (
	"github.com/cucumber/godog"

	"medsim/e2e/steps/common"
	"medsim/e2e/steps/registry"
)

// RegisterSteps registers all step definitions from the step packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	registry.RegisterSteps(ctx, tc)
}
