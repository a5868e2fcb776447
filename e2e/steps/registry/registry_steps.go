package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext is what the registry setup steps need.
type TestContext interface {
	ActAs(caller string)
	Post(path string, v any) error
	Status() int
	Body() string
}

// RegisterSteps registers shorthand steps that put records in place.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &registrySteps{tc: tc}

	ctx.Step(`^"([^"]*)" has certified instructor "([^"]*)" for (\d+) days$`, steps.certifyInstructor)
	ctx.Step(`^"([^"]*)" has registered simulator "([^"]*)"$`, steps.registerSimulator)
	ctx.Step(`^"([^"]*)" has created scenario "([^"]*)"$`, steps.createScenario)
	ctx.Step(`^"([^"]*)" has started session "([^"]*)" on scenario "([^"]*)" with participants "([^"]*)"$`, steps.startSession)
}

type registrySteps struct {
	tc TestContext
}

// as runs one setup request for caller and expects 201. Later requests go
// out anonymously until a step picks a caller.
func (s *registrySteps) as(caller, path string, body any) error {
	s.tc.ActAs(caller)
	defer s.tc.ActAs("")
	if err := s.tc.Post(path, body); err != nil {
		return err
	}
	if s.tc.Status() != http.StatusCreated {
		return fmt.Errorf("setup POST %s: status %d: %s", path, s.tc.Status(), s.tc.Body())
	}
	return nil
}

func (s *registrySteps) certifyInstructor(_ context.Context, authority, instructor string, days int) error {
	return s.as(authority, "/v1/instructors", map[string]any{
		"instructor_id":       instructor,
		"name":                instructor,
		"specialization":      "Emergency Medicine",
		"certification_level": 2,
		"valid_for_days":      days,
		"certifications":      []string{"ACLS"},
	})
}

func (s *registrySteps) registerSimulator(_ context.Context, owner, simulator string) error {
	return s.as(owner, "/v1/simulators", map[string]any{
		"simulator_id":  simulator,
		"name":          simulator,
		"model":         "SimMan 3G",
		"manufacturer":  "Laerdal",
		"purchase_date": "2024-06-01T00:00:00Z",
		"features":      []string{"airway"},
	})
}

func (s *registrySteps) createScenario(_ context.Context, author, scenario string) error {
	return s.as(author, "/v1/scenarios", map[string]any{
		"scenario_id": scenario,
		"name":        scenario,
		"description": "Adult cardiac arrest",
		"difficulty":  3,
		"specialties": []string{"cardiology"},
	})
}

func (s *registrySteps) startSession(_ context.Context, instructor, session, scenario, participants string) error {
	return s.as(instructor, "/v1/sessions", map[string]any{
		"session_id":   session,
		"scenario_id":  scenario,
		"participants": strings.Split(participants, ","),
	})
}
