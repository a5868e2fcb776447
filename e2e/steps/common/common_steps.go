package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// TestContext is what the generic request and assertion steps need.
type TestContext interface {
	Start(authority string) error
	ActAs(caller string)
	Advance(d time.Duration)
	Request(method, path, body string) error
	Status() int
	Body() string
	Field(name string) (any, bool)
	AuditActions() ([]string, error)
}

// RegisterSteps registers background, request and assertion steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the registry starts with certification authority "([^"]*)"$`, steps.registryStarts)
	ctx.Step(`^I am "([^"]*)"$`, steps.actAs)
	ctx.Step(`^I am anonymous$`, steps.anonymous)
	ctx.Step(`^(\d+) days pass$`, steps.daysPass)

	ctx.Step(`^I (GET|POST|PUT) "([^"]*)"$`, steps.request)
	ctx.Step(`^I (POST|PUT) "([^"]*)" with:$`, steps.requestWithBody)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response error should be "([^"]*)"$`, steps.errorShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be absent$`, steps.fieldShouldBeAbsent)
	ctx.Step(`^the audit trail should be:$`, steps.auditTrailShouldBe)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) registryStarts(_ context.Context, authority string) error {
	return s.tc.Start(authority)
}

func (s *commonSteps) actAs(_ context.Context, caller string) error {
	s.tc.ActAs(caller)
	return nil
}

func (s *commonSteps) anonymous(context.Context) error {
	s.tc.ActAs("")
	return nil
}

func (s *commonSteps) daysPass(_ context.Context, days int) error {
	s.tc.Advance(time.Duration(days) * 24 * time.Hour)
	return nil
}

func (s *commonSteps) request(_ context.Context, method, path string) error {
	return s.tc.Request(method, path, "")
}

func (s *commonSteps) requestWithBody(_ context.Context, method, path string, body *godog.DocString) error {
	return s.tc.Request(method, path, body.Content)
}

func (s *commonSteps) statusShouldBe(_ context.Context, status int) error {
	if s.tc.Status() != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.tc.Status(), s.tc.Body())
	}
	return nil
}

func (s *commonSteps) errorShouldBe(ctx context.Context, code string) error {
	return s.fieldShouldBe(ctx, "error", code)
}

func (s *commonSteps) fieldShouldBe(_ context.Context, field, expected string) error {
	v, ok := s.tc.Field(field)
	if !ok {
		return fmt.Errorf("response has no field %q: %s", field, s.tc.Body())
	}
	if got := render(v); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeAbsent(_ context.Context, field string) error {
	if _, ok := s.tc.Field(field); ok {
		return fmt.Errorf("expected no field %q: %s", field, s.tc.Body())
	}
	return nil
}

func (s *commonSteps) auditTrailShouldBe(_ context.Context, table *godog.Table) error {
	actions, err := s.tc.AuditActions()
	if err != nil {
		return err
	}
	expected := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		expected = append(expected, row.Cells[0].Value)
	}
	if strings.Join(actions, ",") != strings.Join(expected, ",") {
		return fmt.Errorf("expected audit trail %v, got %v", expected, actions)
	}
	return nil
}

// render prints JSON scalars the way feature files spell them. Arrays become
// comma separated lists.
func render(v any) string {
	switch t := v.(type) {
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, render(item))
		}
		return strings.Join(parts, ",")
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
